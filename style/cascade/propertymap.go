// Package cascade implements the cascade and style builder: collecting
// the declarations that apply to an element (matched rules, inline style,
// presentation attributes), sorting them by (specificity, source
// position), applying inheritance, and resolving the lazy parts of a
// value (em/rem/viewport units, currentColor) on read.
//
// PropertyGroup/PropertyMap/the Cascade(key) parent-chain lookup follow
// the shape of a generic parent-linked property-group design, since
// that design already separates "where is this property stored" from
// "how do I find it on an ancestor" cleanly; values here are
// cssvalue.Value trees instead of raw strings, and the grouping covers
// the full longhand property set this module supports.
package cascade

import (
	"github.com/foliocraft/htmlbook/css/cssvalue"
)

// PropertyGroup holds a set of CSS properties that share a cascade
// lookup path (e.g. all four margins): each group links to the same-named
// group of the parent style, and Cascade walks that chain for one key.
type PropertyGroup struct {
	name   string
	Parent *PropertyGroup
	props  map[string]cssvalue.Value
}

// NewPropertyGroup creates an empty, named property group.
func NewPropertyGroup(name string) *PropertyGroup {
	return &PropertyGroup{name: name}
}

// Name returns the group's topic name.
func (pg *PropertyGroup) Name() string { return pg.name }

// IsSet reports whether key has a value in this group specifically (not
// considering Parent).
func (pg *PropertyGroup) IsSet(key string) bool {
	if pg == nil || pg.props == nil {
		return false
	}
	_, ok := pg.props[key]
	return ok
}

// Get returns key's value in this group specifically.
func (pg *PropertyGroup) Get(key string) (cssvalue.Value, bool) {
	if pg == nil || pg.props == nil {
		return cssvalue.Value{}, false
	}
	v, ok := pg.props[key]
	return v, ok
}

// Set stores key's value in this group, overwriting any previous value.
func (pg *PropertyGroup) Set(key string, v cssvalue.Value) {
	if pg.props == nil {
		pg.props = make(map[string]cssvalue.Value, 4)
	}
	pg.props[key] = v
}

// Cascade finds the nearest group in the Parent chain (starting at pg
// itself) that has key set.
func (pg *PropertyGroup) Cascade(key string) *PropertyGroup {
	for g := pg; g != nil; g = g.Parent {
		if g.IsSet(key) {
			return g
		}
	}
	return nil
}

// PropertyMap is the full set of property groups attached to one computed
// style. A nil map is legal and behaves as empty.
type PropertyMap struct {
	groups map[string]*PropertyGroup
}

// NewPropertyMap creates an empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{groups: make(map[string]*PropertyGroup, 12)}
}

// Group returns the named group, or nil if none is set.
func (pm *PropertyMap) Group(name string) *PropertyGroup {
	if pm == nil {
		return nil
	}
	return pm.groups[name]
}

// Property looks up key without cascading to a parent property map: only
// this map's own group is consulted.
func (pm *PropertyMap) Property(key string) (cssvalue.Value, bool) {
	g := pm.Group(groupNameFor(key))
	return g.Get(key)
}

// CascadedProperty looks up key: this group's own value if set, else —
// only if key is one of this module's inherited properties — the nearest
// ancestor group's value, walking up the Parent chain LinkGroups built.
// A non-inherited property unset on this group never reaches an
// ancestor's explicit value; the caller falls back to the initial value.
func (pm *PropertyMap) CascadedProperty(key string) (cssvalue.Value, bool) {
	g := pm.Group(groupNameFor(key))
	if v, ok := g.Get(key); ok {
		return v, true
	}
	if g == nil || !IsInherited(key) {
		return cssvalue.Value{}, false
	}
	cg := g.Parent.Cascade(key)
	return cg.Get(key)
}

// Set stores key's value in its (already-linked) group.
func (pm *PropertyMap) Set(key string, v cssvalue.Value) {
	pm.groups[groupNameFor(key)].Set(key, v)
}

// LinkGroups creates every topic group on pm, each linked to the
// corresponding group on parent (or left parentless at the document
// root), so Cascade has a complete chain to walk before any declaration
// is applied.
func (pm *PropertyMap) LinkGroups(parent *PropertyMap) {
	for _, name := range allGroupNames {
		g := NewPropertyGroup(name)
		if parent != nil {
			g.Parent = parent.Group(name)
		}
		pm.groups[name] = g
	}
}
