package formula

import (
	"strings"

	"github.com/javajack/vicalc/axis"
	"github.com/javajack/vicalc/cellref"
)

// RewriteText applies fn to every reference in formula source without
// parsing it, so that input which fails to parse still follows the cells it
// names. fn receives a *Ref or *RangeRef; when it returns the same node the
// original spelling is kept. String literals and function names are copied
// unchanged.
func RewriteText(src string, fn func(Node) Node) string {
	var b strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '"':
			j := stringEnd(src, i)
			b.WriteString(src[i:j])
			i = j
		case isWordStart(c) && (i == 0 || !isWordChar(src[i-1])):
			ref, j := scanReference(src, i)
			if ref == nil {
				b.WriteString(src[i:j])
			} else if out := fn(ref); out == ref {
				b.WriteString(src[i:j])
			} else {
				b.WriteString(out.String())
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// InsertText is Insert over unparsed source.
func InsertText(src string, ax axis.Mode, index int) string {
	return RewriteText(src, func(n Node) Node { return Insert(n, ax, index) })
}

// DeleteText is Delete over unparsed source.
func DeleteText(src string, ax axis.Mode, index int) string {
	return RewriteText(src, func(n Node) Node { return Delete(n, ax, index) })
}

// OffsetText is Offset over unparsed source.
func OffsetText(src string, rowDelta, colDelta int) string {
	return RewriteText(src, func(n Node) Node { return Offset(n, rowDelta, colDelta) })
}

// stringEnd returns the index just past the string literal opening at i,
// or len(src) when it is unterminated.
func stringEnd(src string, i int) int {
	for j := i + 1; j < len(src); j++ {
		if src[j] != '"' {
			continue
		}
		if j+1 < len(src) && src[j+1] == '"' {
			j++
			continue
		}
		return j + 1
	}
	return len(src)
}

func wordEnd(src string, i int) int {
	for i < len(src) && isWordChar(src[i]) {
		i++
	}
	return i
}

// scanReference reads the word at i. It returns a node when the word is a
// cell reference, or a range when two references are joined by ':', along
// with the index where the scanned text ends.
func scanReference(src string, i int) (Node, int) {
	j := wordEnd(src, i)
	w := src[i:j]
	look := j
	for look < len(src) && (src[look] == ' ' || src[look] == '\t') {
		look++
	}
	if look < len(src) && src[look] == '(' && !strings.Contains(w, "$") {
		return nil, j
	}
	a, n, ok := cellref.Scan(w)
	if !ok || n != len(w) {
		return nil, j
	}
	if j+1 < len(src) && src[j] == ':' && isWordStart(src[j+1]) {
		k := wordEnd(src, j+1)
		if e, n, ok := cellref.Scan(src[j+1 : k]); ok && n == k-j-1 {
			return &RangeRef{Range: cellref.NewRange(a, e)}, k
		}
	}
	return &Ref{Addr: a}, j
}
