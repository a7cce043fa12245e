package parse

import (
	"strings"

	"github.com/foliocraft/htmlbook/css/token"
)

var marginBoxNames = map[string]bool{
	"top-left-corner": true, "top-left": true, "top-center": true, "top-right": true, "top-right-corner": true,
	"bottom-left-corner": true, "bottom-left": true, "bottom-center": true, "bottom-right": true, "bottom-right-corner": true,
	"left-top": true, "left-middle": true, "left-bottom": true,
	"right-top": true, "right-middle": true, "right-bottom": true,
}

// ParsePageSelector extracts an @page rule's optional page name and
// optional :first/:left/:right/:blank pseudo-class from its prelude.
func ParsePageSelector(prelude []token.Token) *PageSelector {
	ps := &PageSelector{}
	for i := 0; i < len(prelude); i++ {
		t := prelude[i]
		switch t.Kind {
		case token.Ident:
			ps.Name = t.Value
		case token.Colon:
			if i+1 < len(prelude) && prelude[i+1].Kind == token.Ident {
				ps.Pseudo = strings.ToLower(prelude[i+1].Value)
				i++
			}
		}
	}
	return ps
}

// IsMarginBoxName reports whether name is one of the 16 page margin-box
// at-rule names (@top-left, @bottom-center, ...).
func IsMarginBoxName(name string) bool {
	return marginBoxNames[name]
}

// ImportHref extracts the target URL from an @import rule's prelude (a
// String or URL token, optionally followed by media-query tokens this
// module does not evaluate).
func ImportHref(prelude []token.Token) (string, bool) {
	for _, t := range prelude {
		switch t.Kind {
		case token.String, token.URL:
			return t.Value, true
		}
	}
	return "", false
}
