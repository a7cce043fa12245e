package cascade

import "strings"

// Group name constants, grouping related longhand properties under one
// cascade lookup path.
const (
	groupMargins    = "Margins"
	groupPadding    = "Padding"
	groupBorder     = "Border"
	groupDimension  = "Dimension"
	groupDisplay    = "Display"
	groupColor      = "Color"
	groupFont       = "Font"
	groupText       = "Text"
	groupList       = "List"
	groupTable      = "Table"
	groupGenerated  = "Generated"
	groupPosition   = "Position"
	groupBackground = "Background"
	groupColumn     = "Column"
	groupX          = "X"
)

var groupByProperty = map[string]string{
	"margin-top": groupMargins, "margin-right": groupMargins,
	"margin-bottom": groupMargins, "margin-left": groupMargins,

	"padding-top": groupPadding, "padding-right": groupPadding,
	"padding-bottom": groupPadding, "padding-left": groupPadding,

	"border-top-width": groupBorder, "border-right-width": groupBorder,
	"border-bottom-width": groupBorder, "border-left-width": groupBorder,
	"border-top-style": groupBorder, "border-right-style": groupBorder,
	"border-bottom-style": groupBorder, "border-left-style": groupBorder,
	"border-top-color": groupBorder, "border-right-color": groupBorder,
	"border-bottom-color": groupBorder, "border-left-color": groupBorder,
	"border-top-left-radius": groupBorder, "border-top-right-radius": groupBorder,
	"border-bottom-left-radius": groupBorder, "border-bottom-right-radius": groupBorder,
	"border-collapse": groupTable, "border-spacing-horizontal": groupTable, "border-spacing-vertical": groupTable,
	"outline-width": groupBorder, "outline-style": groupBorder, "outline-color": groupBorder,

	"width": groupDimension, "height": groupDimension,
	"min-width": groupDimension, "min-height": groupDimension,
	"max-width": groupDimension, "max-height": groupDimension,
	"box-sizing": groupDimension,

	"display": groupDisplay, "position": groupPosition, "float": groupDisplay,
	"clear": groupDisplay, "visibility": groupDisplay, "overflow-x": groupDisplay,
	"overflow-y": groupDisplay, "z-index": groupPosition,
	"top": groupPosition, "right": groupPosition, "bottom": groupPosition, "left": groupPosition,

	"color":            groupColor,
	"background-color": groupBackground, "background-image": groupBackground,
	"background-position": groupBackground, "background-repeat": groupBackground,
	"background-attachment": groupBackground,

	"font-family": groupFont, "font-size": groupFont, "font-style": groupFont,
	"font-variant": groupFont, "font-weight": groupFont, "line-height": groupFont,

	"text-align": groupText, "text-indent": groupText, "text-decoration": groupText,
	"text-transform": groupText, "white-space": groupText, "direction": groupText,
	"letter-spacing": groupText, "word-spacing": groupText, "vertical-align": groupText,

	"list-style-type": groupList, "list-style-position": groupList, "list-style-image": groupList,

	"content": groupGenerated, "quotes": groupGenerated,
	"counter-reset": groupGenerated, "counter-increment": groupGenerated, "counter-set": groupGenerated,

	"column-rule-width": groupBorder, "column-rule-style": groupBorder, "column-rule-color": groupBorder,
	"flex-direction": groupX, "flex-wrap": groupX,
	"flex-grow": groupX, "flex-shrink": groupX, "flex-basis": groupX,
	"column-width": groupColumn, "column-count": groupColumn,
	"text-decoration-line": groupText, "text-decoration-style": groupText, "text-decoration-color": groupText,
}

// groupNameFor returns the topic group a property key belongs to.
// Unrecognized keys fall into the catch-all "X" group, matching the
// teacher's behavior for extension/unknown properties.
func groupNameFor(key string) string {
	if g, ok := groupByProperty[strings.ToLower(key)]; ok {
		return g
	}
	return groupX
}

var inherited = map[string]bool{
	"color": true, "cursor": true, "direction": true, "visibility": true,
	"font-family": true, "font-size": true, "font-style": true,
	"font-variant": true, "font-weight": true, "line-height": true,
	"letter-spacing": true, "word-spacing": true, "white-space": true,
	"text-align": true, "text-indent": true, "text-transform": true,
	"list-style-type": true, "list-style-position": true, "list-style-image": true,
	"quotes": true, "border-collapse": true, "border-spacing-horizontal": true,
	"border-spacing-vertical": true,
}

// IsInherited reports whether key is one of this module's inherited CSS
// properties (copied from the parent's computed style by default, absent
// an explicit value).
func IsInherited(key string) bool {
	return inherited[strings.ToLower(key)]
}

// allGroupNames lists every topic group, so a new computed style can
// pre-link each of its groups to the corresponding parent group before any
// declaration is applied, giving PropertyGroup.Cascade a complete chain to
// walk regardless of which groups this particular element's own rules
// touch.
var allGroupNames = []string{
	groupMargins, groupPadding, groupBorder, groupDimension, groupDisplay,
	groupColor, groupFont, groupText, groupList, groupTable, groupGenerated,
	groupPosition, groupBackground, groupColumn, groupX,
}
