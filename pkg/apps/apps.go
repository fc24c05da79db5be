// Package apps defines the identity and scope values shared by the icon
// theming core.
package apps

import (
	"fmt"
	"strings"
)

// Identity names one launchable application component.
type Identity struct {
	Package  string
	Activity string
}

// NewIdentity returns the identity for pkg/activity.
func NewIdentity(pkg, activity string) Identity {
	return Identity{Package: pkg, Activity: activity}
}

// ParseIdentity is the inverse of Flatten.
func ParseIdentity(s string) (Identity, error) {
	pkg, activity, ok := strings.Cut(s, "/")
	if !ok || pkg == "" || activity == "" || strings.Contains(activity, "/") {
		return Identity{}, fmt.Errorf("invalid application identity %q, want package/activity", s)
	}
	return Identity{Package: pkg, Activity: activity}, nil
}

// Flatten returns the "package/activity" storage form.
func (id Identity) Flatten() string {
	return id.Package + "/" + id.Activity
}

// ComponentKey returns the join key used by appfilter documents.
func (id Identity) ComponentKey() string {
	return ComponentKey(id.Package, id.Activity)
}

func (id Identity) String() string {
	return id.Flatten()
}

// ComponentKey formats ComponentInfo{pkg/activity}.
func ComponentKey(pkg, activity string) string {
	return "ComponentInfo{" + pkg + "/" + activity + "}"
}

// Scope identifies where an icon binding or override applies. User-created
// pages are scopes too, so this is not a closed set.
type Scope string

const (
	ScopeFrequent  Scope = "frequent"
	ScopeFavorites Scope = "favorites"
	ScopeAll       Scope = "all"
	ScopeDock      Scope = "dock"
	ScopeSearch    Scope = "search"
	ScopeGlobal    Scope = "__global__"
)

const customPagePrefix = "custom_"

// CustomPage returns the scope of a user-created page.
func CustomPage(name string) Scope {
	return Scope(customPagePrefix + name)
}

// IsCustomPage reports whether s names a user-created page.
func (s Scope) IsCustomPage() bool {
	return strings.HasPrefix(string(s), customPagePrefix) && len(s) > len(customPagePrefix)
}

func (s Scope) String() string {
	return string(s)
}
