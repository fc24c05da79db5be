package resolve

import (
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/ovehbe/710Launcher-sub000/pkg/icon"
	"github.com/ovehbe/710Launcher-sub000/pkg/iconpack"
	"github.com/ovehbe/710Launcher-sub000/state"
	"github.com/ovehbe/710Launcher-sub000/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	appX   = apps.NewIdentity("com.x", "com.x.Main")
	appY   = apps.NewIdentity("com.y", "com.y.Main")
	rawRed = testutil.Solid(96, 96, color.NRGBA{R: 255, A: 255})
)

type fixture struct {
	t     *testing.T
	store *state.Store
	host  *iconpack.DirHost
	raw   map[apps.Identity]image.Image
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()

	testutil.WritePack(t, root, testutil.PackFixture{
		ID:         "pack.p",
		Label:      "P",
		Components: map[string]string{appX.ComponentKey(): "icon_x"},
		Drawables:  map[string]image.Image{"icon_x": testutil.Solid(8, 8, color.NRGBA{G: 255, A: 255})},
	})
	testutil.WritePack(t, root, testutil.PackFixture{
		ID:         "pack.q",
		Label:      "Q",
		Components: map[string]string{appY.ComponentKey(): "icon_y"},
		Drawables: map[string]image.Image{
			"icon_y":      testutil.Solid(8, 8, color.NRGBA{B: 255, A: 255}),
			"icon_custom": testutil.Solid(12, 12, color.NRGBA{R: 10, G: 20, B: 30, A: 255}),
		},
	})

	return &fixture{
		t:     t,
		store: state.NewMemoryStore(),
		host:  iconpack.NewDirHost(root),
		raw:   map[apps.Identity]image.Image{appX: rawRed, appY: rawRed},
	}
}

func (f *fixture) pack(id string) *iconpack.Pack {
	f.t.Helper()
	p := iconpack.NewPack(f.host)
	require.True(f.t, p.Load(id))
	return p
}

func (f *fixture) engine(opts ...Option) *Engine {
	return New(f.store, RawIconFunc(func(id apps.Identity) image.Image { return f.raw[id] }), opts...)
}

func (f *fixture) override(scope apps.Scope, id apps.Identity, drawable string) {
	f.t.Helper()
	key := state.ScopedKey(state.FamilyCustomIcons, scope)
	m := f.store.GetStringMap(key)
	m[id.Flatten()] = drawable
	require.NoError(f.t, f.store.SetStringMap(key, m))
}

func TestThemedIconFromBoundPack(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	e.Bind(apps.ScopeFavorites, f.pack("pack.p"))

	got := e.ResolveIcon(appX, apps.ScopeFavorites)
	assert.Equal(t, icon.SourceThemed, got.Source)
	assert.Equal(t, "pack.p", got.Pack)
	assert.Equal(t, "icon_x", got.Drawable)
	assert.Equal(t, 8, got.Image.Bounds().Dx())
}

func TestOverrideSearchesEveryLoadedPack(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	e.Bind(apps.ScopeFavorites, f.pack("pack.p"))
	e.Bind(apps.ScopeDock, f.pack("pack.q"))
	f.override(apps.ScopeFavorites, appX, "icon_custom")

	got := e.ResolveIcon(appX, apps.ScopeFavorites)
	assert.Equal(t, icon.SourceOverride, got.Source)
	assert.Equal(t, "pack.q", got.Pack)
	assert.Equal(t, "icon_custom", got.Drawable)
	assert.Equal(t, 12, got.Image.Bounds().Dx())

	// The override is per scope.
	other := e.ResolveIcon(appX, apps.ScopeDock)
	assert.Equal(t, icon.SourceShape, other.Source)
}

func TestOverrideWinsOverThemedMatch(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	p := f.pack("pack.q")
	e.SetGlobal(p)
	f.override(apps.ScopeAll, appY, "icon_custom")

	got := e.ResolveIcon(appY, apps.ScopeAll)
	assert.Equal(t, icon.SourceOverride, got.Source)
	assert.Equal(t, "icon_custom", got.Drawable)
}

func TestUnresolvableOverrideFallsThrough(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	e.SetGlobal(f.pack("pack.p"))
	f.override(apps.ScopeAll, appX, "nowhere")

	got := e.ResolveIcon(appX, apps.ScopeAll)
	assert.Equal(t, icon.SourceThemed, got.Source)
	assert.Equal(t, "icon_x", got.Drawable)
}

func TestShapeFallbackWhenPackHasNoMatch(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.SetString(state.KeyIconShape, "square"))
	require.NoError(t, f.store.SetInt(state.KeyIconSize, 32))
	require.NoError(t, f.store.SetFloat(state.KeyIconScale, 0.75))
	e := f.engine(WithDensity(2))
	e.Bind(apps.ScopeFavorites, f.pack("pack.p"))

	got := e.ResolveIcon(appY, apps.ScopeFavorites)
	assert.Equal(t, icon.SourceShape, got.Source)
	assert.Equal(t, "pack.p", got.Pack)
	assert.Equal(t, image.Rect(0, 0, 48, 48), got.Image.Bounds())
	assert.Equal(t, uint8(255), testutil.Alpha(got.Image, 0, 0))
}

func TestShapeFallbackUsesConfiguredShape(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	e.SetGlobal(f.pack("pack.p"))

	got := e.ResolveIcon(appY, apps.CustomPage("work"))
	require.Equal(t, icon.SourceShape, got.Source)
	assert.Equal(t, 48, got.Image.Bounds().Dx())
	assert.Equal(t, 48, e.IconSizePx())
	assert.Equal(t, uint8(0), testutil.Alpha(got.Image, 0, 0))
	assert.Equal(t, uint8(255), testutil.Alpha(got.Image, 24, 24))
}

func TestRawIconWithoutPack(t *testing.T) {
	f := newFixture(t)
	e := f.engine()

	got := e.ResolveIcon(appX, apps.ScopeFavorites)
	assert.Equal(t, icon.SourceRaw, got.Source)
	assert.Same(t, rawRed, got.Image)
}

func TestUnloadedPackIsIgnored(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	unloaded := iconpack.NewPack(f.host)
	assert.False(t, unloaded.Load("pack.absent"))
	e.Bind(apps.ScopeFavorites, unloaded)
	e.SetGlobal(unloaded)

	got := e.ResolveIcon(appX, apps.ScopeFavorites)
	assert.Equal(t, icon.SourceRaw, got.Source)
	assert.Empty(t, e.Packs())
}

func TestScopedPackSelection(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	p := f.pack("pack.p")
	q := f.pack("pack.q")

	e.SetGlobal(p)
	e.SetLegacyDock(q)
	e.SetLegacyAllPage(q)
	e.SetSearch(q)

	assert.Same(t, q, e.PackFor(apps.ScopeDock))
	assert.Same(t, q, e.PackFor(apps.ScopeAll))
	assert.Same(t, q, e.PackFor(apps.ScopeSearch))
	assert.Same(t, p, e.PackFor(apps.ScopeFavorites))
	assert.Same(t, p, e.PackFor(apps.ScopeGlobal))

	// An exact binding beats the legacy pack.
	e.Bind(apps.ScopeDock, p)
	assert.Same(t, p, e.PackFor(apps.ScopeDock))
	e.Unbind(apps.ScopeDock)
	assert.Same(t, q, e.PackFor(apps.ScopeDock))

	e.SetGlobal(nil)
	assert.Nil(t, e.PackFor(apps.ScopeFavorites))
}

func TestConvenienceScopes(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	e.Bind(apps.ScopeDock, f.pack("pack.q"))
	e.Bind(apps.ScopeSearch, f.pack("pack.q"))
	e.Bind(apps.ScopeGlobal, f.pack("pack.q"))

	assert.Equal(t, icon.SourceThemed, e.ResolveForDock(appY).Source)
	assert.Equal(t, icon.SourceThemed, e.ResolveForSearch(appY).Source)
	assert.Equal(t, icon.SourceThemed, e.ResolveForGlobal(appY).Source)
	assert.Equal(t, icon.SourceRaw, e.ResolveIcon(appY, apps.ScopeFavorites).Source)
}

func TestPacksOrder(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	global := f.pack("pack.p")
	all := f.pack("pack.q")
	dock := f.pack("pack.p")
	search := f.pack("pack.q")
	work := f.pack("pack.p")
	fav := f.pack("pack.q")

	e.SetSearch(search)
	e.SetLegacyDock(dock)
	e.Bind(apps.CustomPage("work"), work)
	e.Bind(apps.ScopeFavorites, fav)
	e.Bind(apps.ScopeFrequent, global)
	e.SetLegacyAllPage(all)
	e.SetGlobal(global)

	packs := e.Packs()
	require.Len(t, packs, 6)
	assert.Same(t, global, packs[0])
	assert.Same(t, all, packs[1])
	assert.Same(t, work, packs[2])
	assert.Same(t, fav, packs[3])
	assert.Same(t, dock, packs[4])
	assert.Same(t, search, packs[5])
}

func TestResolveLabel(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	key := state.ScopedKey(state.FamilyCustomLabels, apps.ScopeDock)
	require.NoError(t, f.store.SetStringMap(key, map[string]string{appX.Flatten(): "Mail"}))

	assert.Equal(t, "Mail", e.ResolveLabel(appX, apps.ScopeDock, "Inbox"))
	assert.Equal(t, "Inbox", e.ResolveLabel(appX, apps.ScopeAll, "Inbox"))
	assert.Equal(t, "Other", e.ResolveLabel(appY, apps.ScopeDock, "Other"))
}

func TestResolveIsRepeatable(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	e.SetGlobal(f.pack("pack.p"))
	before := f.store.Entries()

	a := e.ResolveIcon(appY, apps.ScopeAll)
	b := e.ResolveIcon(appY, apps.ScopeAll)
	assert.Equal(t, a.Source, b.Source)
	assert.Equal(t, a.Image.(*image.NRGBA).Pix, b.Image.(*image.NRGBA).Pix)
	assert.Equal(t, before, f.store.Entries())
}

func TestConcurrentResolveOnSharedPack(t *testing.T) {
	f := newFixture(t)
	e := f.engine()
	e.SetGlobal(f.pack("pack.p"))
	e.SetSearch(f.pack("pack.q"))
	f.override(apps.ScopeDock, appY, "icon_custom")

	var wg sync.WaitGroup
	sources := make(chan icon.Source, 8*200*2)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				sources <- e.ResolveIcon(appX, apps.ScopeAll).Source
				sources <- e.ResolveForDock(appY).Source
			}
		}()
	}
	wg.Wait()
	close(sources)

	counts := map[icon.Source]int{}
	for s := range sources {
		counts[s]++
	}
	assert.Equal(t, map[icon.Source]int{icon.SourceThemed: 1600, icon.SourceOverride: 1600}, counts)
}
