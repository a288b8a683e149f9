// Package paths resolves where termlinks keeps its files. It follows the
// XDG Base Directory specification and lets environment variables override
// each location.
package paths
