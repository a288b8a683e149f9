// Package resolve turns an annotation produced by the matcher into a URL and
// hands it to the host: it substitutes capture groups into link templates
// and runs the selection flow when a link has several destinations.
package resolve

import (
	"regexp"
	"strconv"

	"github.com/arthur-debert/termlinks/pkg/types"
)

var placeholder = regexp.MustCompile(`\$(\d+)`)

// Resolve replaces every $N in template with capture group N. Groups that
// are out of range or did not participate become the empty string. A $ not
// followed by a digit is left alone.
func Resolve(template string, groups types.Groups) string {
	return placeholder.ReplaceAllStringFunc(template, func(ref string) string {
		n, err := strconv.Atoi(ref[1:])
		if err != nil {
			return ""
		}
		return groups.At(n)
	})
}

// ResolveAll resolves every link of ann in order
func ResolveAll(ann types.Annotation) []string {
	urls := make([]string, 0, len(ann.Links))
	for _, l := range ann.Links {
		urls = append(urls, Resolve(l.URL, ann.Groups))
	}
	return urls
}
