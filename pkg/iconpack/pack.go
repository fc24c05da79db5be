// Package iconpack discovers, parses and loads third-party icon packs in the
// appfilter format.
package iconpack

import (
	"image"
	"io"
	"sort"

	lerrors "github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/sirupsen/logrus"
)

// Pack is one loadable icon pack instance. A Pack is not safe for
// concurrent Load and resolve calls; load it on a worker and hand it over
// once Load has returned.
//
// IsLoaded is true exactly when the resource handle is set. Every failed
// Load clears the pack, so a half-loaded pack is never observable.
type Pack struct {
	host       Host
	packageID  string
	res        Resources
	components map[string]string
	loadErr    error
	logger     *logrus.Entry
}

// NewPack returns an empty pack that loads through host.
func NewPack(host Host) *Pack {
	return &Pack{
		host:       host,
		components: make(map[string]string),
		logger:     logging.NewLogger("iconpack"),
	}
}

// Load replaces the pack's contents with packageID's. It reports false, with
// the pack cleared, when the package is missing or its appfilter cannot be
// parsed; LoadErr tells which.
func (p *Pack) Load(packageID string) bool {
	p.Clear()
	log := p.logger.WithField("package", packageID)

	if p.host == nil {
		p.loadErr = lerrors.PackNotFound(packageID)
		return false
	}

	res, err := p.host.Open(packageID)
	if err != nil {
		p.loadErr = err
		log.WithError(err).Warn("Icon pack not available")
		return false
	}

	components, err := Parse(res, packageID)
	if err != nil {
		closeResources(res)
		p.loadErr = err
		log.WithError(err).Warn("Icon pack appfilter unreadable")
		return false
	}

	p.packageID = packageID
	p.res = res
	p.components = components
	log.WithField("components", len(components)).Debug("Icon pack loaded")
	return true
}

// Clear resets the pack to its empty, unloaded state.
func (p *Pack) Clear() {
	if p.res != nil {
		closeResources(p.res)
	}
	p.packageID = ""
	p.res = nil
	p.components = make(map[string]string)
	p.loadErr = nil
}

func (p *Pack) IsLoaded() bool {
	return p != nil && p.res != nil
}

// PackageID is the loaded package, or "" when unloaded.
func (p *Pack) PackageID() string {
	return p.packageID
}

// LoadErr is the reason the last Load failed, nil after success or Clear.
func (p *Pack) LoadErr() error {
	return p.loadErr
}

// Len is the number of component mappings.
func (p *Pack) Len() int {
	return len(p.components)
}

// DrawableFor returns the drawable name the appfilter maps id to.
func (p *Pack) DrawableFor(id apps.Identity) (string, bool) {
	if !p.IsLoaded() {
		return "", false
	}
	name, ok := p.components[id.ComponentKey()]
	return name, ok
}

// ResolveByComponent loads the pack's icon for id. It does no fallback: an
// unloaded pack, an unmapped component or a missing drawable all give nil.
func (p *Pack) ResolveByComponent(id apps.Identity) (image.Image, bool) {
	name, ok := p.DrawableFor(id)
	if !ok {
		return nil, false
	}
	return p.ResolveByName(name)
}

// ResolveByName loads a drawable by name, bypassing the component map.
func (p *Pack) ResolveByName(name string) (image.Image, bool) {
	img, err := p.Drawable(name)
	if err != nil {
		if lerrors.Is(err, lerrors.ErrCodeDrawableNotFound) {
			p.logger.WithField("package", p.packageID).WithField("drawable", name).Debug("Drawable not in pack")
		} else {
			p.logger.WithError(err).WithField("drawable", name).Warn("Drawable failed to load")
		}
		return nil, false
	}
	return img, true
}

// Drawable is ResolveByName with the failure reason.
func (p *Pack) Drawable(name string) (image.Image, error) {
	if !p.IsLoaded() {
		return nil, lerrors.PackNotFound(p.packageID).WithDetail("drawable", name)
	}
	id := p.res.Identifier(name, TypeDrawable)
	if id == 0 {
		return nil, lerrors.DrawableNotFound(p.packageID, name)
	}
	img, err := p.res.Drawable(id)
	if err != nil {
		return nil, lerrors.Wrap(err, lerrors.ErrCodeDrawableNotFound, "drawable could not be decoded").
			WithDetail("package", p.packageID).
			WithDetail("drawable", name)
	}
	return img, nil
}

// ListAllIconNames returns every drawable named by the appfilter, once,
// sorted.
func (p *Pack) ListAllIconNames() []string {
	seen := make(map[string]bool, len(p.components))
	names := make([]string, 0, len(p.components))
	for _, name := range p.components {
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func closeResources(res Resources) {
	if c, ok := res.(io.Closer); ok {
		_ = c.Close()
	}
}
