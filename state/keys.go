package state

import (
	"strings"

	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
)

// Fixed keys. They are always present in an export, at their default when
// never written.
const (
	KeyIconPack        = "iconPack"
	KeyAllPageIconPack = "allPageIconPack"
	KeyDockIconPack    = "dockIconPack"
	KeySearchIconPack  = "searchIconPack"
	KeyIconShape       = "iconShape"
	KeyIconSize        = "iconSize"
	KeyIconScale       = "iconScale"
	KeyShowLabels      = "showLabels"
	KeyDockEnabled     = "dockEnabled"
	KeyColumns         = "columns"
	KeyLastBackup      = "lastBackup"
	KeyPages           = "pages"
)

// fixedKeys is in export order.
var fixedKeys = []Entry{
	StringEntry(KeyIconPack, ""),
	StringEntry(KeyAllPageIconPack, ""),
	StringEntry(KeyDockIconPack, ""),
	StringEntry(KeySearchIconPack, ""),
	StringEntry(KeyIconShape, "circle"),
	IntEntry(KeyIconSize, 48),
	FloatEntry(KeyIconScale, 1.0),
	BoolEntry(KeyShowLabels, true),
	BoolEntry(KeyDockEnabled, true),
	IntEntry(KeyColumns, 4),
	LongEntry(KeyLastBackup, 0),
	StringSetEntry(KeyPages, []string{
		string(apps.ScopeFrequent),
		string(apps.ScopeFavorites),
		string(apps.ScopeAll),
	}),
}

var fixedIndex = func() map[string]Entry {
	m := make(map[string]Entry, len(fixedKeys))
	for _, e := range fixedKeys {
		m[e.Key] = e
	}
	return m
}()

// FixedKeys returns the fixed keys with their defaults, in declaration order.
func FixedKeys() []Entry {
	out := make([]Entry, len(fixedKeys))
	copy(out, fixedKeys)
	return out
}

// IsFixed reports whether key is statically known.
func IsFixed(key string) bool {
	_, ok := fixedIndex[key]
	return ok
}

// Scoped key families. A family key is "<family>_<suffix>".
const (
	// FamilyCustomIcons holds a JSON object mapping "pkg/activity" to a drawable name.
	FamilyCustomIcons = "customIcons"
	// FamilyCustomLabels holds a JSON object mapping "pkg/activity" to a label.
	FamilyCustomLabels = "customLabels"
	// FamilyIconPack holds the package id of the pack bound to a scope.
	FamilyIconPack = "iconPack"
	// FamilyCustomIconScopes is keyed by "pkg/activity" and holds the set of
	// scopes an override was applied to.
	FamilyCustomIconScopes = "customIconScopes"
)

// ScopedKey builds "<family>_<scope>".
func ScopedKey(family string, scope apps.Scope) string {
	return FamilyKey(family, string(scope))
}

// FamilyKey builds "<family>_<suffix>" for families not keyed by scope.
func FamilyKey(family, suffix string) string {
	return family + "_" + suffix
}

// splitFamilyKey returns the suffix of key when it belongs to family.
func splitFamilyKey(family, key string) (string, bool) {
	prefix := family + "_"
	if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
		return "", false
	}
	return key[len(prefix):], true
}
