package token

// state identifies one of the tokenizer's insertion states. Names follow
// the HTML5 tokenization algorithm's named states.
type state uint8

const (
	stData state = iota
	stRCDATA
	stRAWTEXT
	stScriptData
	stPLAINTEXT
	stTagOpen
	stEndTagOpen
	stTagName
	stRCDATALessThanSign
	stRCDATAEndTagOpen
	stRCDATAEndTagName
	stRAWTEXTLessThanSign
	stRAWTEXTEndTagOpen
	stRAWTEXTEndTagName
	stScriptDataLessThanSign
	stScriptDataEndTagOpen
	stScriptDataEndTagName
	stScriptDataEscapeStart
	stScriptDataEscapeStartDash
	stScriptDataEscaped
	stScriptDataEscapedDash
	stScriptDataEscapedDashDash
	stScriptDataEscapedLessThanSign
	stScriptDataEscapedEndTagOpen
	stScriptDataEscapedEndTagName
	stScriptDataDoubleEscapeStart
	stScriptDataDoubleEscaped
	stScriptDataDoubleEscapedDash
	stScriptDataDoubleEscapedDashDash
	stScriptDataDoubleEscapedLessThanSign
	stScriptDataDoubleEscapeEnd
	stBeforeAttributeName
	stAttributeName
	stAfterAttributeName
	stBeforeAttributeValue
	stAttributeValueDoubleQuoted
	stAttributeValueSingleQuoted
	stAttributeValueUnquoted
	stAfterAttributeValueQuoted
	stSelfClosingStartTag
	stBogusComment
	stMarkupDeclarationOpen
	stCommentStart
	stCommentStartDash
	stComment
	stCommentLessThanSign
	stCommentLessThanSignBang
	stCommentLessThanSignBangDash
	stCommentLessThanSignBangDashDash
	stCommentEndDash
	stCommentEnd
	stCommentEndBang
	stDOCTYPE
	stBeforeDOCTYPEName
	stDOCTYPEName
	stAfterDOCTYPEName
	stAfterDOCTYPEPublicKeyword
	stBeforeDOCTYPEPublicIdentifier
	stDOCTYPEPublicIdentifierDoubleQuoted
	stDOCTYPEPublicIdentifierSingleQuoted
	stAfterDOCTYPEPublicIdentifier
	stBetweenDOCTYPEPublicAndSystemIdentifiers
	stAfterDOCTYPESystemKeyword
	stBeforeDOCTYPESystemIdentifier
	stDOCTYPESystemIdentifierDoubleQuoted
	stDOCTYPESystemIdentifierSingleQuoted
	stAfterDOCTYPESystemIdentifier
	stBogusDOCTYPE
	stCDATASection
	stCDATASectionBracket
	stCDATASectionEnd
	stCharacterReference
	stNamedCharacterReference
	stAmbiguousAmpersand
	stNumericCharacterReference
	stHexadecimalCharacterReferenceStart
	stDecimalCharacterReferenceStart
	stHexadecimalCharacterReference
	stDecimalCharacterReference
	stNumericCharacterReferenceEnd
)

// RawTextKind identifies which of the non-Data "text" sub-machines a
// start tag should force the tokenizer into — the setState hook the tree
// builder uses for <title>, <textarea>, <style>, <script>, <plaintext>,
// etc.
type RawTextKind uint8

const (
	TextData RawTextKind = iota
	TextRCDATA
	TextRAWTEXT
	TextScriptData
	TextPLAINTEXT
)
