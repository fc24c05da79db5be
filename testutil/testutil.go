package testutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// ThemesAction is the marker action fixtures declare by default.
const ThemesAction = "org.adw.launcher.THEMES"

// PackFixture describes an icon pack package written by WritePack.
type PackFixture struct {
	ID      string
	Label   string
	Actions []string
	// Components maps "ComponentInfo{pkg/activity}" to drawable names and
	// is written as res/xml/appfilter.xml unless XML is set.
	Components map[string]string
	// XML replaces the generated appfilter resource verbatim.
	XML string
	// Asset is written to assets/appfilter.xml when non-empty.
	Asset string
	// NoResource skips res/xml/appfilter.xml entirely.
	NoResource bool
	Drawables  map[string]image.Image
}

// WritePack lays out fixture under root and returns the package directory.
func WritePack(t *testing.T, root string, fixture PackFixture) string {
	t.Helper()

	dir := filepath.Join(root, fixture.ID)
	require.NoError(t, os.MkdirAll(dir, 0755))

	actions := fixture.Actions
	if actions == nil {
		actions = []string{ThemesAction}
	}
	var manifest strings.Builder
	fmt.Fprintf(&manifest, "label: %q\nactions:\n", fixture.Label)
	for _, a := range actions {
		fmt.Fprintf(&manifest, "  - %q\n", a)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pack.yaml"), []byte(manifest.String()), 0644))

	if !fixture.NoResource {
		doc := fixture.XML
		if doc == "" {
			doc = AppFilterXML(fixture.Components)
		}
		WriteFile(t, filepath.Join(dir, "res", "xml", "appfilter.xml"), []byte(doc))
	}
	if fixture.Asset != "" {
		WriteFile(t, filepath.Join(dir, "assets", "appfilter.xml"), []byte(fixture.Asset))
	}
	for name, img := range fixture.Drawables {
		WriteFile(t, filepath.Join(dir, "res", "drawable", name+".png"), EncodePNG(t, img))
	}
	return dir
}

// AppFilterXML renders components as an appfilter document, sorted by
// component for stable output.
func AppFilterXML(components map[string]string) string {
	keys := make([]string, 0, len(components))
	for k := range components {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<resources>\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "  <item component=%q drawable=%q />\n", k, components[k])
	}
	b.WriteString("</resources>\n")
	return b.String()
}

// WriteFile writes data, creating parent directories.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// WriteRawIcon writes the platform icon of pkg/activity under iconsDir.
func WriteRawIcon(t *testing.T, iconsDir, pkg, activity string, img image.Image) {
	t.Helper()
	WriteFile(t, filepath.Join(iconsDir, pkg, activity+".png"), EncodePNG(t, img))
}

// Solid returns a w×h image filled with c.
func Solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// EncodePNG encodes img as PNG.
func EncodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// SameColor reports whether two images match at (x, y) in 8-bit NRGBA.
func SameColor(a, b image.Image, x, y int) bool {
	ca := color.NRGBAModel.Convert(a.At(x, y)).(color.NRGBA)
	cb := color.NRGBAModel.Convert(b.At(x, y)).(color.NRGBA)
	return ca == cb
}

// Alpha returns the 8-bit alpha of img at (x, y).
func Alpha(img image.Image, x, y int) uint8 {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA).A
}
