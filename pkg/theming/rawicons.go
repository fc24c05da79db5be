package theming

import (
	"hash/fnv"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
)

// placeholderSize is the edge of generated raw icons.
const placeholderSize = 96

// DirIcons serves raw platform icons from <dir>/<package>/<activity>.png.
// Apps without a file get a generated placeholder so every identity has an
// icon.
type DirIcons struct {
	dir    string
	logger *logrus.Entry
}

// NewDirIcons returns a raw icon source over dir.
func NewDirIcons(dir string) *DirIcons {
	return &DirIcons{dir: dir, logger: logging.NewLogger("theming")}
}

// RawIcon implements resolve.RawIconSource.
func (d *DirIcons) RawIcon(id apps.Identity) image.Image {
	path := filepath.Join(d.dir, filepath.Base(id.Package), filepath.Base(id.Activity)+".png")
	f, err := os.Open(path)
	if err != nil {
		return Placeholder(id)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		d.logger.WithError(err).WithField("path", path).Warn("Unreadable raw icon, using placeholder")
		return Placeholder(id)
	}
	return img
}

// Placeholder returns a solid square whose colour is derived from the
// package name, so one app always gets the same placeholder.
func Placeholder(id apps.Identity) *image.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id.Package))
	sum := h.Sum32()
	c := color.NRGBA{R: uint8(sum >> 16), G: uint8(sum >> 8), B: uint8(sum), A: 255}

	img := image.NewNRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}
