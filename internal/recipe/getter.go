package recipe

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"recipe-resolver/internal/common"
)

// IndexKind represents the kind of a structural index step.
type IndexKind int

const (
	IndexQuantity IndexKind = iota + 1 // position in a list
	IndexText                          // key in an object
)

// String returns a human-readable representation of the IndexKind.
func (k IndexKind) String() string {
	switch k {
	case IndexQuantity:
		return "quantity"
	case IndexText:
		return "text"
	default:
		return common.UnknownStr
	}
}

// Index is one structural index step narrowing a getter into nested content.
type Index struct {
	Kind     IndexKind
	Quantity int
	Text     string
}

// Quantity returns a list position index.
func Quantity(n int) Index {
	return Index{Kind: IndexQuantity, Quantity: n}
}

// Key returns an object key index.
func Key(key string) Index {
	return Index{Kind: IndexText, Text: key}
}

// String renders the index as "[n]" or ".key".
func (i Index) String() string {
	switch i.Kind {
	case IndexQuantity:
		return "[" + strconv.Itoa(i.Quantity) + "]"
	case IndexText:
		return "." + i.Text
	default:
		return "<" + common.UnknownStr + ">"
	}
}

// Getter is an access path: an identifier plus index steps applied
// outer-to-inner.
type Getter struct {
	Ident   string
	Indexes []Index
}

// NewGetter returns a getter on ident with the given indexes.
func NewGetter(ident string, indexes ...Index) Getter {
	return Getter{Ident: ident, Indexes: indexes}
}

// String renders the getter in path syntax, e.g. "items[2].label".
func (g Getter) String() string {
	var b strings.Builder

	b.WriteString(g.Ident)

	for _, idx := range g.Indexes {
		b.WriteString(idx.String())
	}

	return b.String()
}

// Equal reports whether both getters read the same path.
func (g Getter) Equal(other Getter) bool {
	return g.Ident == other.Ident && slices.Equal(g.Indexes, other.Indexes)
}

// WithSuffix returns a copy of g with suffix appended after its own indexes.
func (g Getter) WithSuffix(suffix ...Index) Getter {
	indexes := make([]Index, 0, len(g.Indexes)+len(suffix))
	indexes = append(indexes, g.Indexes...)
	indexes = append(indexes, suffix...)

	return Getter{Ident: g.Ident, Indexes: indexes}
}

// ParseGetter parses a getter path.
// Supports: "name", "items[2]", "user.name", "items[2].labels[0]".
func ParseGetter(path string) (Getter, error) {
	if path == "" {
		return Getter{}, errors.New("empty getter")
	}

	end := identEnd(path, 0)
	if end == 0 {
		return Getter{}, fmt.Errorf("invalid getter %q: missing identifier", path)
	}

	g := Getter{Ident: path[:end]}

	for pos := end; pos < len(path); {
		switch path[pos] {
		case '[':
			closing := strings.IndexByte(path[pos:], ']')
			if closing < 0 {
				return Getter{}, fmt.Errorf("invalid getter %q: unterminated index", path)
			}

			n, err := strconv.Atoi(path[pos+1 : pos+closing])
			if err != nil || n < 0 {
				return Getter{}, fmt.Errorf("invalid getter %q: bad quantity %q", path, path[pos+1:pos+closing])
			}

			g.Indexes = append(g.Indexes, Quantity(n))
			pos += closing + 1

		case '.':
			keyEnd := identEnd(path, pos+1)
			if keyEnd == pos+1 {
				return Getter{}, fmt.Errorf("invalid getter %q: empty key", path)
			}

			g.Indexes = append(g.Indexes, Key(path[pos+1:keyEnd]))
			pos = keyEnd

		default:
			return Getter{}, fmt.Errorf("invalid getter %q: unexpected %q", path, path[pos])
		}
	}

	return g, nil
}

// MustParseGetter is like ParseGetter but panics on error.
func MustParseGetter(path string) Getter {
	g, err := ParseGetter(path)
	if err != nil {
		panic(err)
	}

	return g
}

// identEnd returns the end offset of the identifier starting at start.
func identEnd(s string, start int) int {
	i := start
	for i < len(s) {
		c := s[i]
		if !isLetter(c) && c != '_' && (i == start || !isDigit(c)) {
			break
		}

		i++
	}

	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
