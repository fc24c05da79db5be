// Package resolve decides which icon an application shows in a scope.
//
// ResolveIcon is a strict cascade, each step short-circuiting:
//
//  1. a per-scope override, searched by drawable name across every loaded
//     pack in Packs() order
//  2. the scope's pack auto-matching the component
//  3. the raw icon clipped to the configured fallback shape, when step 2
//     had a loaded pack to ask
//  4. the raw icon untouched
//
// The engine reads settings but never writes them.
package resolve

import (
	"image"
	"math"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/ovehbe/710Launcher-sub000/pkg/icon"
	"github.com/ovehbe/710Launcher-sub000/pkg/iconpack"
	"github.com/ovehbe/710Launcher-sub000/state"
)

// Settings is the read-only view of the configuration store the engine
// needs. *state.Store implements it.
type Settings interface {
	GetString(key, def string) string
	GetInt(key string, def int32) int32
	GetFloat(key string, def float32) float32
	GetStringMap(key string) map[string]string
}

// RawIconSource returns the platform's own icon for an application.
type RawIconSource interface {
	RawIcon(id apps.Identity) image.Image
}

// RawIconFunc adapts a function to RawIconSource.
type RawIconFunc func(id apps.Identity) image.Image

func (f RawIconFunc) RawIcon(id apps.Identity) image.Image { return f(id) }

const (
	defaultIconSize  = 48
	defaultIconScale = 1.0
	defaultShape     = "circle"
)

// Engine holds the pack instances its owner hands it. Setters may run on
// another goroutine than ResolveIcon; a pack must have finished loading
// before it is set.
type Engine struct {
	settings Settings
	raw      RawIconSource
	density  float64
	logger   *logrus.Entry

	mu         sync.RWMutex
	global     *iconpack.Pack
	legacyAll  *iconpack.Pack
	legacyDock *iconpack.Pack
	search     *iconpack.Pack
	bound      map[apps.Scope]*iconpack.Pack
}

// Option configures an Engine.
type Option func(*Engine)

// WithDensity sets the display density multiplied into the fallback size.
func WithDensity(density float64) Option {
	return func(e *Engine) {
		if density > 0 {
			e.density = density
		}
	}
}

// New returns an engine with no packs.
func New(settings Settings, raw RawIconSource, opts ...Option) *Engine {
	e := &Engine{
		settings: settings,
		raw:      raw,
		density:  1.0,
		bound:    make(map[apps.Scope]*iconpack.Pack),
		logger:   logging.NewLogger("resolve"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetGlobal installs the pack used by every scope without its own. nil
// removes it.
func (e *Engine) SetGlobal(p *iconpack.Pack) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.global = p
}

// SetLegacyAllPage installs the dedicated pack of the "all" page.
func (e *Engine) SetLegacyAllPage(p *iconpack.Pack) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.legacyAll = p
}

// SetLegacyDock installs the dedicated pack of the dock.
func (e *Engine) SetLegacyDock(p *iconpack.Pack) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.legacyDock = p
}

// SetSearch installs the dedicated pack of search results.
func (e *Engine) SetSearch(p *iconpack.Pack) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.search = p
}

// Bind installs p for exactly scope. A nil pack unbinds.
func (e *Engine) Bind(scope apps.Scope, p *iconpack.Pack) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p == nil {
		delete(e.bound, scope)
		return
	}
	e.bound[scope] = p
}

// Unbind removes scope's dedicated pack.
func (e *Engine) Unbind(scope apps.Scope) {
	e.Bind(scope, nil)
}

// BoundScopes lists scopes with an explicit binding, sorted.
func (e *Engine) BoundScopes() []apps.Scope {
	e.mu.RLock()
	defer e.mu.RUnlock()
	scopes := make([]apps.Scope, 0, len(e.bound))
	for s := range e.bound {
		scopes = append(scopes, s)
	}
	sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })
	return scopes
}

// Packs returns the loaded packs in override search order: global, legacy
// all-page, scope bindings by ascending scope id, legacy dock, search. An
// instance held in several slots is listed once, at its first slot.
func (e *Engine) Packs() []*iconpack.Pack {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.packsLocked()
}

func (e *Engine) packsLocked() []*iconpack.Pack {
	scopes := make([]string, 0, len(e.bound))
	for s := range e.bound {
		scopes = append(scopes, string(s))
	}
	sort.Strings(scopes)

	candidates := []*iconpack.Pack{e.global, e.legacyAll}
	for _, s := range scopes {
		candidates = append(candidates, e.bound[apps.Scope(s)])
	}
	candidates = append(candidates, e.legacyDock, e.search)

	seen := make(map[*iconpack.Pack]bool, len(candidates))
	packs := make([]*iconpack.Pack, 0, len(candidates))
	for _, p := range candidates {
		if !p.IsLoaded() || seen[p] {
			continue
		}
		seen[p] = true
		packs = append(packs, p)
	}
	return packs
}

// PackFor returns the pack step 2 consults for scope, or nil when no
// loaded pack applies.
func (e *Engine) PackFor(scope apps.Scope) *iconpack.Pack {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.packForLocked(scope)
}

func (e *Engine) packForLocked(scope apps.Scope) *iconpack.Pack {
	if p := e.bound[scope]; p.IsLoaded() {
		return p
	}
	switch scope {
	case apps.ScopeAll:
		if e.legacyAll.IsLoaded() {
			return e.legacyAll
		}
	case apps.ScopeDock:
		if e.legacyDock.IsLoaded() {
			return e.legacyDock
		}
	case apps.ScopeSearch:
		if e.search.IsLoaded() {
			return e.search
		}
	}
	if e.global.IsLoaded() {
		return e.global
	}
	return nil
}

// ResolveIcon returns the icon id shows in scope.
func (e *Engine) ResolveIcon(id apps.Identity, scope apps.Scope) icon.Icon {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if name, ok := e.override(id, scope); ok {
		for _, p := range e.packsLocked() {
			if img, ok := p.ResolveByName(name); ok {
				return icon.Icon{Image: img, Source: icon.SourceOverride, Pack: p.PackageID(), Drawable: name}
			}
		}
		e.logger.WithFields(logrus.Fields{
			"app":      id.Flatten(),
			"scope":    scope,
			"drawable": name,
		}).Debug("Override drawable not found in any loaded pack")
	}

	pack := e.packForLocked(scope)
	if pack != nil {
		if img, ok := pack.ResolveByComponent(id); ok {
			drawable, _ := pack.DrawableFor(id)
			return icon.Icon{Image: img, Source: icon.SourceThemed, Pack: pack.PackageID(), Drawable: drawable}
		}
		shape := icon.ParseShape(e.settings.GetString(state.KeyIconShape, defaultShape))
		img := icon.ApplyFallbackShape(e.rawIcon(id), shape, e.IconSizePx())
		return icon.Icon{Image: img, Source: icon.SourceShape, Pack: pack.PackageID()}
	}

	return icon.Icon{Image: e.rawIcon(id), Source: icon.SourceRaw}
}

// ResolveForDock resolves in the dock scope.
func (e *Engine) ResolveForDock(id apps.Identity) icon.Icon {
	return e.ResolveIcon(id, apps.ScopeDock)
}

// ResolveForSearch resolves in the search scope.
func (e *Engine) ResolveForSearch(id apps.Identity) icon.Icon {
	return e.ResolveIcon(id, apps.ScopeSearch)
}

// ResolveForGlobal resolves in the global scope.
func (e *Engine) ResolveForGlobal(id apps.Identity) icon.Icon {
	return e.ResolveIcon(id, apps.ScopeGlobal)
}

// ResolveLabel returns the label override for id in scope, or fallback.
func (e *Engine) ResolveLabel(id apps.Identity, scope apps.Scope, fallback string) string {
	labels := e.settings.GetStringMap(state.ScopedKey(state.FamilyCustomLabels, scope))
	if label, ok := labels[id.Flatten()]; ok && label != "" {
		return label
	}
	return fallback
}

// IconSizePx is round(iconSize × density × iconScale), at least 1.
func (e *Engine) IconSizePx() int {
	size := float64(e.settings.GetInt(state.KeyIconSize, defaultIconSize))
	scale := float64(e.settings.GetFloat(state.KeyIconScale, defaultIconScale))
	px := int(math.Round(size * e.density * scale))
	if px < 1 {
		return 1
	}
	return px
}

func (e *Engine) override(id apps.Identity, scope apps.Scope) (string, bool) {
	overrides := e.settings.GetStringMap(state.ScopedKey(state.FamilyCustomIcons, scope))
	name, ok := overrides[id.Flatten()]
	return name, ok && name != ""
}

func (e *Engine) rawIcon(id apps.Identity) image.Image {
	if e.raw == nil {
		return nil
	}
	return e.raw.RawIcon(id)
}
