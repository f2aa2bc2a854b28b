// Body extraction.
//
// The body is everything after the leading header lines. Once a line that
// is not a header line has been seen, every later line belongs to the
// body, even one that happens to look like "// key: value".
package libstore

import "strings"

// extractBody strips the leading header block from content. Content with
// no header is returned unchanged; content that is only header lines
// yields an empty body.
func extractBody(content string) string {
	rest := content
	for rest != "" {
		i := strings.IndexByte(rest, '\n')
		line := rest
		if i >= 0 {
			line = rest[:i]
		}
		if !isHeaderLine(line) {
			return rest
		}
		if i < 0 {
			return ""
		}
		rest = rest[i+1:]
	}
	return ""
}
