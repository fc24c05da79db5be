package iconpack

import (
	"image"
	"image/color"
	"testing"

	lerrors "github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/ovehbe/710Launcher-sub000/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	mapsA = apps.NewIdentity("com.maps", "com.maps.Main")
	mailA = apps.NewIdentity("com.mail", "com.mail.Inbox")
)

func writeFixturePack(t *testing.T, root string) {
	t.Helper()
	testutil.WritePack(t, root, testutil.PackFixture{
		ID:    "com.pack",
		Label: "Pack",
		Components: map[string]string{
			mapsA.ComponentKey(): "maps",
			mailA.ComponentKey(): "missing_drawable",
			"ComponentInfo{com.other/com.other.A}": "maps",
			"ComponentInfo{com.other/com.other.B}": "shared",
		},
		Drawables: map[string]image.Image{
			"maps":   testutil.Solid(8, 8, red),
			"shared": testutil.Solid(8, 8, blue),
		},
	})
}

func TestPackLoadAndResolve(t *testing.T) {
	root := t.TempDir()
	writeFixturePack(t, root)

	p := NewPack(NewDirHost(root))
	require.True(t, p.Load("com.pack"))
	assert.True(t, p.IsLoaded())
	assert.Equal(t, "com.pack", p.PackageID())
	assert.NoError(t, p.LoadErr())
	assert.Equal(t, 4, p.Len())

	img, ok := p.ResolveByComponent(mapsA)
	require.True(t, ok)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.True(t, testutil.SameColor(img, testutil.Solid(1, 1, red), 0, 0))

	img, ok = p.ResolveByName("shared")
	require.True(t, ok)
	assert.True(t, testutil.SameColor(img, testutil.Solid(1, 1, blue), 0, 0))
}

func TestPackMissesReturnNil(t *testing.T) {
	root := t.TempDir()
	writeFixturePack(t, root)
	p := NewPack(NewDirHost(root))
	require.True(t, p.Load("com.pack"))

	img, ok := p.ResolveByComponent(mailA)
	assert.False(t, ok)
	assert.Nil(t, img)

	img, ok = p.ResolveByComponent(apps.NewIdentity("com.unknown", "com.unknown.Main"))
	assert.False(t, ok)
	assert.Nil(t, img)

	_, err := p.Drawable("missing_drawable")
	assert.True(t, lerrors.Is(err, lerrors.ErrCodeDrawableNotFound))

	_, ok = p.ResolveByName("../../etc/passwd")
	assert.False(t, ok)
}

func TestUnloadedPackResolvesNothing(t *testing.T) {
	p := NewPack(NewDirHost(t.TempDir()))
	assert.False(t, p.IsLoaded())
	_, ok := p.ResolveByComponent(mapsA)
	assert.False(t, ok)
	_, ok = p.ResolveByName("maps")
	assert.False(t, ok)
	assert.Empty(t, p.ListAllIconNames())
}

func TestFailedLoadClearsPack(t *testing.T) {
	root := t.TempDir()
	writeFixturePack(t, root)
	testutil.WritePack(t, root, testutil.PackFixture{ID: "com.broken", XML: "<resources><item"})

	p := NewPack(NewDirHost(root))
	require.True(t, p.Load("com.pack"))

	assert.False(t, p.Load("com.absent"))
	assert.False(t, p.IsLoaded())
	assert.Equal(t, "", p.PackageID())
	assert.Equal(t, 0, p.Len())
	assert.True(t, lerrors.Is(p.LoadErr(), lerrors.ErrCodePackNotFound))
	_, ok := p.ResolveByComponent(mapsA)
	assert.False(t, ok)

	require.True(t, p.Load("com.pack"))
	assert.False(t, p.Load("com.broken"))
	assert.False(t, p.IsLoaded())
	assert.True(t, lerrors.Is(p.LoadErr(), lerrors.ErrCodeParseError))
	assert.Empty(t, p.ListAllIconNames())
}

func TestPackLoadsFromAsset(t *testing.T) {
	root := t.TempDir()
	testutil.WritePack(t, root, testutil.PackFixture{
		ID:         "com.asset",
		NoResource: true,
		Asset:      testutil.AppFilterXML(map[string]string{mapsA.ComponentKey(): "maps"}),
		Drawables:  map[string]image.Image{"maps": testutil.Solid(4, 4, red)},
	})

	p := NewPack(NewDirHost(root))
	require.True(t, p.Load("com.asset"))
	_, ok := p.ResolveByComponent(mapsA)
	assert.True(t, ok)
}

func TestListAllIconNamesDistinctSorted(t *testing.T) {
	root := t.TempDir()
	writeFixturePack(t, root)
	p := NewPack(NewDirHost(root))
	require.True(t, p.Load("com.pack"))

	assert.Equal(t, []string{"maps", "missing_drawable", "shared"}, p.ListAllIconNames())
}

func TestClearResetsState(t *testing.T) {
	root := t.TempDir()
	writeFixturePack(t, root)
	p := NewPack(NewDirHost(root))
	require.True(t, p.Load("com.pack"))

	p.Clear()
	assert.False(t, p.IsLoaded())
	assert.Equal(t, 0, p.Len())
	assert.NoError(t, p.LoadErr())
}
