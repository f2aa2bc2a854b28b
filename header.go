// Metadata header encoding and decoding.
//
// The header is a run of lines at the very start of a file, one per
// attribute, each of the form "// key: value". Keys are word characters
// only. Values are escaped so that each attribute stays on one physical
// line: a backslash becomes two backslashes and a newline becomes the two
// characters `\n`. The first line that does not have this shape ends the
// header, and it and everything after it is body.
//
// Decoding reads newline-terminated lines through a small buffer and
// stops as soon as a line cannot be a header line, so listing a directory
// of large flow files does not load their bodies. A final line without a
// terminating newline is never treated as header.
package libstore

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"
)

// headerLine matches one complete header line without its newline.
var headerLine = regexp.MustCompile(`^// (\w+): (.*)`)

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n")
)

// minReadBuffer is the smallest chunk bufio will accept.
const minReadBuffer = 16

func escape(value string) string {
	return escaper.Replace(value)
}

// unescape reverses escape in a single left-to-right pass. Backslash
// sequences other than `\\` and `\n` are left as they are.
func unescape(value string) string {
	return unescaper.Replace(value)
}

// encodeHeader renders meta as header lines in key order. An empty or nil
// Metadata produces an empty string.
func encodeHeader(meta *Metadata) string {
	var b strings.Builder
	for k, v := range meta.All() {
		b.WriteString("// ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(escape(v))
		b.WriteByte('\n')
	}
	return b.String()
}

// decodeHeader reads header lines from the start of r in chunk-sized reads
// and returns the decoded metadata with the byte length of the header.
func decodeHeader(r io.Reader, chunk int) (*Metadata, int64, error) {
	if chunk < minReadBuffer {
		chunk = minReadBuffer
	}
	br := bufio.NewReaderSize(r, chunk)
	meta := &Metadata{}
	var consumed int64
	var line []byte

	for {
		frag, err := br.ReadSlice('\n')
		line = append(line, frag...)

		if errors.Is(err, bufio.ErrBufferFull) {
			if !headerPrefix(line) {
				break
			}
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		m := headerLine.FindSubmatch(line[:len(line)-1])
		if m == nil {
			break
		}
		meta.Set(string(m[1]), unescape(string(m[2])))
		consumed += int64(len(line))
		line = line[:0]
	}
	return meta, consumed, nil
}

// headerPrefix reports whether b could still be the start of a header
// line. It lets decodeHeader give up on a long body line after one chunk.
func headerPrefix(b []byte) bool {
	const lead = "// "
	if len(b) <= len(lead) {
		return string(b) == lead[:len(b)]
	}
	if string(b[:len(lead)]) != lead {
		return false
	}
	i := len(lead)
	for i < len(b) && isWordByte(b[i]) {
		i++
	}
	switch {
	case i == len(b):
		return true
	case i == len(lead) || b[i] != ':':
		return false
	case i+1 == len(b):
		return true
	default:
		return b[i+1] == ' '
	}
}

// isHeaderLine reports whether a single line, without newline, has the
// header shape.
func isHeaderLine(line string) bool {
	return headerLine.MatchString(line)
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// validKey reports whether key can be written as a header attribute and
// read back.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if !isWordByte(key[i]) {
			return false
		}
	}
	return true
}
