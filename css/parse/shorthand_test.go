package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func declOf(t *testing.T, css string) Declaration {
	t.Helper()
	sheet := ParseStyleSheet("p { " + css + " }")
	require.Len(t, sheet.Rules, 1)
	require.Len(t, sheet.Rules[0].Style.Declarations, 1)
	return sheet.Rules[0].Style.Declarations[0]
}

func TestBorderRadiusFourCorners(t *testing.T) {
	expanded := ExpandShorthand(declOf(t, `border-radius: 1px 2px 3px 4px;`))
	require.Len(t, expanded, 4)
	assert.Equal(t, "border-top-left-radius", expanded[0].Property)
	assert.Equal(t, "border-top-right-radius", expanded[1].Property)
	assert.Equal(t, "border-bottom-right-radius", expanded[2].Property)
	assert.Equal(t, "border-bottom-left-radius", expanded[3].Property)
}

func TestBorderRadiusOneValueFillsAllCorners(t *testing.T) {
	expanded := ExpandShorthand(declOf(t, `border-radius: 6px;`))
	require.Len(t, expanded, 4)
	for _, d := range expanded {
		require.Len(t, d.Value, 1)
		assert.Equal(t, 6.0, d.Value[0].NumValue)
	}
}

func TestBorderRadiusDropsVerticalRadiiAfterSlash(t *testing.T) {
	expanded := ExpandShorthand(declOf(t, `border-radius: 6px 6px / 12px 12px;`))
	require.Len(t, expanded, 4)
	for _, d := range expanded {
		assert.Equal(t, 6.0, d.Value[0].NumValue)
	}
}

func TestColumnsWidthAndCount(t *testing.T) {
	expanded := ExpandShorthand(declOf(t, `columns: 200px 3;`))
	require.Len(t, expanded, 2)
	assert.Equal(t, "column-width", expanded[0].Property)
	assert.Equal(t, 200.0, expanded[0].Value[0].NumValue)
	assert.Equal(t, "column-count", expanded[1].Property)
	assert.Equal(t, 3.0, expanded[1].Value[0].NumValue)
}

func TestColumnsCountOnly(t *testing.T) {
	expanded := ExpandShorthand(declOf(t, `columns: 3;`))
	require.Len(t, expanded, 1)
	assert.Equal(t, "column-count", expanded[0].Property)
}

func TestFlexNoneExpandsToZeroGrowShrinkAutoBasis(t *testing.T) {
	expanded := ExpandShorthand(declOf(t, `flex: none;`))
	require.Len(t, expanded, 3)
	assert.Equal(t, "flex-grow", expanded[0].Property)
	assert.Equal(t, 0.0, expanded[0].Value[0].NumValue)
	assert.Equal(t, "flex-shrink", expanded[1].Property)
	assert.Equal(t, 0.0, expanded[1].Value[0].NumValue)
	assert.Equal(t, "flex-basis", expanded[2].Property)
	assert.Equal(t, "auto", expanded[2].Value[0].Value)
}

func TestFlexGrowShrinkBasis(t *testing.T) {
	expanded := ExpandShorthand(declOf(t, `flex: 2 1 10px;`))
	require.Len(t, expanded, 3)
	assert.Equal(t, "flex-grow", expanded[0].Property)
	assert.Equal(t, 2.0, expanded[0].Value[0].NumValue)
	assert.Equal(t, "flex-shrink", expanded[1].Property)
	assert.Equal(t, 1.0, expanded[1].Value[0].NumValue)
	assert.Equal(t, "flex-basis", expanded[2].Property)
	assert.Equal(t, 10.0, expanded[2].Value[0].NumValue)
}

func TestFlexSingleNumberIsGrowOnly(t *testing.T) {
	expanded := ExpandShorthand(declOf(t, `flex: 1;`))
	require.Len(t, expanded, 1)
	assert.Equal(t, "flex-grow", expanded[0].Property)
	assert.Equal(t, 1.0, expanded[0].Value[0].NumValue)
}

func TestTextDecorationLineStyleColor(t *testing.T) {
	expanded := ExpandShorthand(declOf(t, `text-decoration: underline wavy red;`))
	require.Len(t, expanded, 3)
	assert.Equal(t, "text-decoration-line", expanded[0].Property)
	assert.Equal(t, "underline", expanded[0].Value[0].Value)
	assert.Equal(t, "text-decoration-style", expanded[1].Property)
	assert.Equal(t, "wavy", expanded[1].Value[0].Value)
	assert.Equal(t, "text-decoration-color", expanded[2].Property)
	assert.Equal(t, "red", expanded[2].Value[0].Value)
}

func TestTextDecorationMultipleLineKeywords(t *testing.T) {
	expanded := ExpandShorthand(declOf(t, `text-decoration: underline overline;`))
	require.Len(t, expanded, 1)
	assert.Equal(t, "text-decoration-line", expanded[0].Property)
	require.Len(t, expanded[0].Value, 3) // underline, whitespace, overline
}
