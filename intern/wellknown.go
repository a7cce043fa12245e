package intern

// Well-known HTML tag names, interned once at package init so comparisons
// against them never pay a pool lookup.
var (
	Html, Head, Body, Title, Base, Link, Meta, Style, Script, Noscript       Name
	Table, Caption, Colgroup, Col, Tbody, Thead, Tfoot, Tr, Td, Th           Name
	Select, Optgroup, Option, Textarea, Form, Input, Button, Label, Fieldset Name
	P, Div, Span, A, B, I, U, S, Em, Strong, Br, Hr, Pre, Listing, Plaintext Name
	Ul, Ol, Li, Dl, Dt, Dd, Applet, Marquee, Object, Template                Name
	Svg, MathML, Math, Annotation, AnnotationXML, Desc, ForeignObject       Name
	Frameset, Frame, Noframes, Image, Img, Iframe, Embed, Xmp               Name
	H1, H2, H3, H4, H5, H6, Address, Article, Aside, Footer, Header, Nav    Name
	Rp, Rt, Ruby, Center                                                     Name
)

// Well-known attribute names.
var (
	AttrID, AttrClass, AttrStyle, AttrHref, AttrSrc, AttrType, AttrName     Name
	AttrValue, AttrStart, AttrLang, AttrDir, AttrColor, AttrSize, AttrWidth Name
	AttrHeight, AttrBorder, AttrBgcolor, AttrFace, AttrDisabled, AttrChecked Name
)

// Well-known CSS keyword identifiers.
var (
	KwAuto, KwNone, KwInherit, KwInitial, KwNormal, KwBlock, KwInline      Name
	KwImportant, KwCurrentColor, KwDisc, KwDecimal, KwSquare, KwCircle     Name
)

func init() {
	Html = Intern("html")
	Head = Intern("head")
	Body = Intern("body")
	Title = Intern("title")
	Base = Intern("base")
	Link = Intern("link")
	Meta = Intern("meta")
	Style = Intern("style")
	Script = Intern("script")
	Noscript = Intern("noscript")
	Table = Intern("table")
	Caption = Intern("caption")
	Colgroup = Intern("colgroup")
	Col = Intern("col")
	Tbody = Intern("tbody")
	Thead = Intern("thead")
	Tfoot = Intern("tfoot")
	Tr = Intern("tr")
	Td = Intern("td")
	Th = Intern("th")
	Select = Intern("select")
	Optgroup = Intern("optgroup")
	Option = Intern("option")
	Textarea = Intern("textarea")
	Form = Intern("form")
	Input = Intern("input")
	Button = Intern("button")
	Label = Intern("label")
	Fieldset = Intern("fieldset")
	P = Intern("p")
	Div = Intern("div")
	Span = Intern("span")
	A = Intern("a")
	B = Intern("b")
	I = Intern("i")
	U = Intern("u")
	S = Intern("s")
	Em = Intern("em")
	Strong = Intern("strong")
	Br = Intern("br")
	Hr = Intern("hr")
	Pre = Intern("pre")
	Listing = Intern("listing")
	Plaintext = Intern("plaintext")
	Ul = Intern("ul")
	Ol = Intern("ol")
	Li = Intern("li")
	Dl = Intern("dl")
	Dt = Intern("dt")
	Dd = Intern("dd")
	Applet = Intern("applet")
	Marquee = Intern("marquee")
	Object = Intern("object")
	Template = Intern("template")
	Svg = Intern("svg")
	MathML = Intern("mathml")
	Math = Intern("math")
	Annotation = Intern("annotation")
	AnnotationXML = Intern("annotation-xml")
	Desc = Intern("desc")
	ForeignObject = Intern("foreignObject")
	Frameset = Intern("frameset")
	Frame = Intern("frame")
	Noframes = Intern("noframes")
	Image = Intern("image")
	Img = Intern("img")
	Iframe = Intern("iframe")
	Embed = Intern("embed")
	Xmp = Intern("xmp")
	H1 = Intern("h1")
	H2 = Intern("h2")
	H3 = Intern("h3")
	H4 = Intern("h4")
	H5 = Intern("h5")
	H6 = Intern("h6")
	Address = Intern("address")
	Article = Intern("article")
	Aside = Intern("aside")
	Footer = Intern("footer")
	Header = Intern("header")
	Nav = Intern("nav")
	Rp = Intern("rp")
	Rt = Intern("rt")
	Ruby = Intern("ruby")
	Center = Intern("center")

	AttrID = Intern("id")
	AttrClass = Intern("class")
	AttrStyle = Intern("style")
	AttrHref = Intern("href")
	AttrSrc = Intern("src")
	AttrType = Intern("type")
	AttrName = Intern("name")
	AttrValue = Intern("value")
	AttrStart = Intern("start")
	AttrLang = Intern("lang")
	AttrDir = Intern("dir")
	AttrColor = Intern("color")
	AttrSize = Intern("size")
	AttrWidth = Intern("width")
	AttrHeight = Intern("height")
	AttrBorder = Intern("border")
	AttrBgcolor = Intern("bgcolor")
	AttrFace = Intern("face")
	AttrDisabled = Intern("disabled")
	AttrChecked = Intern("checked")

	KwAuto = Intern("auto")
	KwNone = Intern("none")
	KwInherit = Intern("inherit")
	KwInitial = Intern("initial")
	KwNormal = Intern("normal")
	KwBlock = Intern("block")
	KwInline = Intern("inline")
	KwImportant = Intern("important")
	KwCurrentColor = Intern("currentcolor")
	KwDisc = Intern("disc")
	KwDecimal = Intern("decimal")
	KwSquare = Intern("square")
	KwCircle = Intern("circle")
}

// Namespace identifiers for DOM elements.
var (
	NSHTML   = Intern("html")
	NSSVG    = Intern("svg")
	NSMathML = Intern("mathml")
)
