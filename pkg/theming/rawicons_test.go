package theming

import (
	"image/color"
	"testing"

	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/ovehbe/710Launcher-sub000/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDirIconsReadsFile(t *testing.T) {
	dir := t.TempDir()
	want := testutil.Solid(20, 20, color.NRGBA{R: 40, G: 50, B: 60, A: 255})
	testutil.WriteRawIcon(t, dir, appX.Package, appX.Activity, want)

	got := NewDirIcons(dir).RawIcon(appX)
	assert.Equal(t, 20, got.Bounds().Dx())
	assert.True(t, testutil.SameColor(want, got, 5, 5))
}

func TestDirIconsPlaceholder(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir+"/com.bad/com.bad.Main.png", []byte("not a png"))

	icons := NewDirIcons(dir)
	missing := icons.RawIcon(appX)
	assert.Equal(t, placeholderSize, missing.Bounds().Dx())
	assert.True(t, testutil.SameColor(missing, Placeholder(appX), 0, 0))

	bad := apps.NewIdentity("com.bad", "com.bad.Main")
	assert.True(t, testutil.SameColor(icons.RawIcon(bad), Placeholder(bad), 3, 3))
}
