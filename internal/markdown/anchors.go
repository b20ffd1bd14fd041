package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
)

// AnchorID normalizes heading text into a fragment identifier: lower-cased,
// whitespace runs replaced with a single hyphen, everything outside
// [a-z0-9-] stripped.
func AnchorID(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(lowered))
	inSpace := false
	for _, r := range lowered {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte('-')
			inSpace = false
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// anchorIDs implements goldmark's parser.IDs contract so rendered heading id
// attributes and the table of contents share one allocator. Duplicate anchors
// within a document are disambiguated with -2, -3, ... suffixes in order of
// appearance.
type anchorIDs struct {
	used map[string]int
}

func newAnchorIDs() *anchorIDs {
	return &anchorIDs{used: map[string]int{}}
}

func (a *anchorIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base := AnchorID(string(value))
	if base == "" {
		if kind == ast.KindHeading {
			base = "heading"
		} else {
			base = "id"
		}
	}

	count := a.used[base]
	a.used[base] = count + 1
	if count == 0 {
		return []byte(base)
	}

	// A suffixed candidate can itself already be taken, e.g. when an earlier
	// heading was literally "Setup 2". Keep bumping until the slot is free.
	candidate := base + "-" + strconv.Itoa(count+1)
	for a.used[candidate] > 0 {
		count++
		a.used[base] = count + 1
		candidate = base + "-" + strconv.Itoa(count+1)
	}
	a.used[candidate]++
	return []byte(candidate)
}

func (a *anchorIDs) Put(value []byte) {
	a.used[string(value)]++
}
