package theming

import (
	"encoding/json"
	"fmt"

	lerrors "github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/ovehbe/710Launcher-sub000/state"
)

// Editor writes the icon settings a user changes from a picker: custom
// icons, custom labels and pack bindings. Each call persists once.
type Editor struct {
	store *state.Store
}

// NewEditor returns an editor over store.
func NewEditor(store *state.Store) *Editor {
	return &Editor{store: store}
}

// SetOverride pins drawable as id's icon in each of scopes and remembers the
// scope set so ClearOverride can undo it everywhere.
func (ed *Editor) SetOverride(id apps.Identity, drawable string, scopes ...apps.Scope) error {
	if drawable == "" {
		return lerrors.New(lerrors.ErrCodeInvalidInput, "drawable name must not be empty")
	}
	if len(scopes) == 0 {
		return lerrors.New(lerrors.ErrCodeInvalidInput, "at least one scope is required").
			WithDetail("app", id.Flatten())
	}

	scopeKey := state.FamilyKey(state.FamilyCustomIconScopes, id.Flatten())
	applied := ed.store.GetStringSet(scopeKey, nil)

	var puts []state.Entry
	for _, scope := range scopes {
		entry, err := ed.mapEntry(state.FamilyCustomIcons, scope, func(m map[string]string) {
			m[id.Flatten()] = drawable
		})
		if err != nil {
			return err
		}
		puts = append(puts, entry)
		applied = append(applied, string(scope))
	}
	puts = append(puts, state.StringSetEntry(scopeKey, applied))
	return ed.store.Apply(puts, nil)
}

// ClearOverride removes id's custom icon from every scope it was applied to.
func (ed *Editor) ClearOverride(id apps.Identity) error {
	scopeKey := state.FamilyKey(state.FamilyCustomIconScopes, id.Flatten())
	scopes := ed.store.GetStringSet(scopeKey, nil)

	var puts []state.Entry
	removes := []string{scopeKey}
	for _, s := range scopes {
		key := state.ScopedKey(state.FamilyCustomIcons, apps.Scope(s))
		m := ed.store.GetStringMap(key)
		if _, ok := m[id.Flatten()]; !ok {
			continue
		}
		delete(m, id.Flatten())
		if len(m) == 0 {
			removes = append(removes, key)
			continue
		}
		entry, err := encodeMap(key, m)
		if err != nil {
			return err
		}
		puts = append(puts, entry)
	}
	return ed.store.Apply(puts, removes)
}

// Override returns the drawable pinned for id in scope.
func (ed *Editor) Override(id apps.Identity, scope apps.Scope) (string, bool) {
	name, ok := ed.store.GetStringMap(state.ScopedKey(state.FamilyCustomIcons, scope))[id.Flatten()]
	return name, ok
}

// OverrideScopes returns the scopes an override for id was applied to.
func (ed *Editor) OverrideScopes(id apps.Identity) []apps.Scope {
	set := ed.store.GetStringSet(state.FamilyKey(state.FamilyCustomIconScopes, id.Flatten()), nil)
	out := make([]apps.Scope, 0, len(set))
	for _, s := range set {
		out = append(out, apps.Scope(s))
	}
	return out
}

// SetLabel sets id's label in each scope. An empty label removes it.
func (ed *Editor) SetLabel(id apps.Identity, label string, scopes ...apps.Scope) error {
	var puts []state.Entry
	var removes []string
	for _, scope := range scopes {
		key := state.ScopedKey(state.FamilyCustomLabels, scope)
		m := ed.store.GetStringMap(key)
		if label == "" {
			delete(m, id.Flatten())
		} else {
			m[id.Flatten()] = label
		}
		if len(m) == 0 {
			removes = append(removes, key)
			continue
		}
		entry, err := encodeMap(key, m)
		if err != nil {
			return err
		}
		puts = append(puts, entry)
	}
	return ed.store.Apply(puts, removes)
}

// BindPack binds packageID to scope. The reserved scopes all, dock and
// search and the global sentinel write their dedicated fixed keys; an empty
// packageID unbinds.
func (ed *Editor) BindPack(scope apps.Scope, packageID string) error {
	key := PackKey(scope)
	if packageID == "" && !state.IsFixed(key) {
		return ed.store.Remove(key)
	}
	return ed.store.SetString(key, packageID)
}

// PackKey returns the store key holding the pack bound to scope.
func PackKey(scope apps.Scope) string {
	switch scope {
	case apps.ScopeGlobal:
		return state.KeyIconPack
	case apps.ScopeAll:
		return state.KeyAllPageIconPack
	case apps.ScopeDock:
		return state.KeyDockIconPack
	case apps.ScopeSearch:
		return state.KeySearchIconPack
	}
	return state.ScopedKey(state.FamilyIconPack, scope)
}

func (ed *Editor) mapEntry(family string, scope apps.Scope, edit func(map[string]string)) (state.Entry, error) {
	key := state.ScopedKey(family, scope)
	m := ed.store.GetStringMap(key)
	edit(m)
	return encodeMap(key, m)
}

func encodeMap(key string, m map[string]string) (state.Entry, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return state.Entry{}, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return state.StringEntry(key, string(data)), nil
}
