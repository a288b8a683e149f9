package topics

// Renderer formats topic content for the terminal
type Renderer interface {
	// Render formats content written in format, a file extension such as ".md"
	Render(content string, format string) string
}

// PlainRenderer returns content unchanged
type PlainRenderer struct{}

// Render implements Renderer
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
