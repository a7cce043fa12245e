package pipeline

// PageSize is one named paper size's dimensions in CSS pixels (96px/inch,
// CSS's fixed reference pixel density), portrait orientation.
type PageSize struct {
	WidthPx, HeightPx float64
}

// PageSizes is the named-size table Config.PageSize resolves against.
var PageSizes = map[string]PageSize{
	"A3":      {WidthPx: 1123, HeightPx: 1587},
	"A4":      {WidthPx: 794, HeightPx: 1123},
	"A5":      {WidthPx: 559, HeightPx: 794},
	"Letter":  {WidthPx: 816, HeightPx: 1056},
	"Legal":   {WidthPx: 816, HeightPx: 1344},
	"Tabloid": {WidthPx: 1056, HeightPx: 1632},
	"Ledger":  {WidthPx: 1056, HeightPx: 1632},
}
