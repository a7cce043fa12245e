// Package token implements an HTML5 tokenizer: a hand-written state
// machine turning a byte stream into the token kinds the HTML5
// tokenization algorithm specifies, including RCDATA/RAWTEXT/script-data
// sub-machines and numeric/named character-reference resolution.
package token

import "github.com/foliocraft/htmlbook/intern"

// Kind discriminates the token types the tokenizer emits.
type Kind uint8

const (
	EOF Kind = iota
	Doctype
	StartTag
	EndTag
	Comment
	Character
	SpaceCharacter
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Doctype:
		return "Doctype"
	case StartTag:
		return "StartTag"
	case EndTag:
		return "EndTag"
	case Comment:
		return "Comment"
	case Character:
		return "Character"
	case SpaceCharacter:
		return "SpaceCharacter"
	}
	return "?"
}

// Attr is a raw (not yet arena-allocated) attribute as produced by the
// tokenizer; the tree builder copies Name/Value into the document arena.
type Attr struct {
	Name  string
	Value string
}

// Token is the tokenizer's single output type; which fields are
// meaningful depends on Kind.
type Token struct {
	Kind Kind

	// Doctype
	DoctypeName                   string
	PublicID, SystemID            string
	HasPublicID, HasSystemID      bool
	ForceQuirks                   bool

	// StartTag / EndTag
	TagName      string
	Attrs        []Attr
	SelfClosing  bool

	// Comment
	Data string

	// Character / SpaceCharacter
	Chars string
}

// TagNameInterned interns the token's tag name, for fast enum-style
// comparisons against the well-known tags in package intern.
func (t *Token) TagNameInterned() intern.Name {
	return intern.Intern(t.TagName)
}

// ParseError records a recoverable tokenizer anomaly; the
// tokenizer never aborts on these, it just records them for diagnostics.
type ParseError struct {
	Pos     int
	Message string
}
