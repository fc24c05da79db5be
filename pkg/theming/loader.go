// Package theming connects stored pack bindings to a resolve.Engine.
package theming

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/ovehbe/710Launcher-sub000/pkg/iconpack"
	"github.com/ovehbe/710Launcher-sub000/pkg/profiling"
	"github.com/ovehbe/710Launcher-sub000/pkg/resolve"
	"github.com/ovehbe/710Launcher-sub000/state"
)

// Slot names one place in the engine a pack can be installed.
type Slot struct {
	Kind  SlotKind
	Scope apps.Scope
}

type SlotKind string

const (
	SlotGlobal  SlotKind = "global"
	SlotAllPage SlotKind = "all_page"
	SlotDock    SlotKind = "dock"
	SlotSearch  SlotKind = "search"
	SlotScope   SlotKind = "scope"
)

func (s Slot) String() string {
	if s.Kind == SlotScope {
		return string(s.Kind) + ":" + string(s.Scope)
	}
	return string(s.Kind)
}

// Binding is a pack package configured for a slot.
type Binding struct {
	Slot      Slot
	PackageID string
}

// Result is the outcome of loading one binding. Pack is nil when the load
// failed; Err then carries the reason.
type Result struct {
	Binding
	Pack *iconpack.Pack
	Err  error
}

// Loader loads the packs named in the store. Every binding gets its own
// Pack instance even when two slots name the same package.
type Loader struct {
	store       *state.Store
	host        iconpack.Host
	concurrency int
	logger      *logrus.Entry
}

// NewLoader returns a loader reading bindings from store and opening
// packages through host.
func NewLoader(store *state.Store, host iconpack.Host) *Loader {
	return &Loader{
		store:       store,
		host:        host,
		concurrency: 4,
		logger:      logging.NewLogger("theming"),
	}
}

// Bindings lists the configured packs: the fixed slots first, then
// iconPack_<scope> keys by ascending scope. Empty values are unbound.
func (l *Loader) Bindings() []Binding {
	var out []Binding
	fixed := []struct {
		kind SlotKind
		key  string
	}{
		{SlotGlobal, state.KeyIconPack},
		{SlotAllPage, state.KeyAllPageIconPack},
		{SlotDock, state.KeyDockIconPack},
		{SlotSearch, state.KeySearchIconPack},
	}
	for _, f := range fixed {
		if pkg := l.store.GetString(f.key, ""); pkg != "" {
			out = append(out, Binding{Slot: Slot{Kind: f.kind}, PackageID: pkg})
		}
	}

	scopes := l.store.Scopes(state.FamilyIconPack)
	sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })
	for _, scope := range scopes {
		pkg := l.store.GetString(state.ScopedKey(state.FamilyIconPack, scope), "")
		if pkg == "" {
			continue
		}
		out = append(out, Binding{Slot: Slot{Kind: SlotScope, Scope: scope}, PackageID: pkg})
	}
	return out
}

// Load loads every binding in the background and waits for all of them.
// Cancelling ctx stops loads that have not started; a started load always
// runs to completion. The returned error is ctx's.
func (l *Loader) Load(ctx context.Context) ([]Result, error) {
	bindings := l.Bindings()
	results := make([]Result, len(bindings))
	span := profiling.Start("load packs")
	defer span.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, b := range bindings {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			timer := span.Child(b.Slot.String() + " " + b.PackageID)
			defer timer.Stop()

			p := iconpack.NewPack(l.host)
			r := Result{Binding: b}
			if p.Load(b.PackageID) {
				r.Pack = p
			} else {
				r.Err = p.LoadErr()
				l.logger.WithFields(logrus.Fields{
					"slot":    b.Slot.String(),
					"package": b.PackageID,
				}).WithError(r.Err).Warn("Icon pack failed to load")
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// LoadInto loads the configured packs and installs them in e once all have
// finished. Slots whose pack failed, and scope bindings no longer
// configured, are cleared. Nothing is installed when ctx is cancelled.
func (l *Loader) LoadInto(ctx context.Context, e *resolve.Engine) ([]Result, error) {
	results, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	Install(e, results)

	loaded := 0
	for _, r := range results {
		if r.Pack != nil {
			loaded++
		}
	}
	l.logger.WithFields(logrus.Fields{"bindings": len(results), "loaded": loaded}).Info("Icon packs installed")
	return results, nil
}

// Install replaces every pack in e with results.
func Install(e *resolve.Engine, results []Result) {
	e.SetGlobal(nil)
	e.SetLegacyAllPage(nil)
	e.SetLegacyDock(nil)
	e.SetSearch(nil)
	for _, scope := range e.BoundScopes() {
		e.Unbind(scope)
	}

	for _, r := range results {
		switch r.Slot.Kind {
		case SlotGlobal:
			e.SetGlobal(r.Pack)
		case SlotAllPage:
			e.SetLegacyAllPage(r.Pack)
		case SlotDock:
			e.SetLegacyDock(r.Pack)
		case SlotSearch:
			e.SetSearch(r.Pack)
		case SlotScope:
			e.Bind(r.Slot.Scope, r.Pack)
		}
	}
}
