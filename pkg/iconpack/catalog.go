package iconpack

import (
	"github.com/ovehbe/710Launcher-sub000/logging"
	"github.com/sirupsen/logrus"
)

// MarkerActions are the actions icon packs from existing launcher
// ecosystems advertise. The values are an interoperability contract.
var MarkerActions = []string{
	"org.adw.launcher.THEMES",
	"com.gau.go.launcherex.theme",
	"com.novalauncher.THEME",
	"org.adw.launcher.icons.ACTION_PICK_ICON",
}

// Descriptor names an installable icon pack.
type Descriptor struct {
	PackageID string `json:"package"`
	Label     string `json:"label"`
}

// Catalog discovers icon packs through a Registry.
type Catalog struct {
	registry Registry
	logger   *logrus.Entry
}

// NewCatalog returns a catalog over registry.
func NewCatalog(registry Registry) *Catalog {
	return &Catalog{registry: registry, logger: logging.NewLogger("iconpack")}
}

// ListAvailablePacks returns one descriptor per package answering any
// marker action. The first label seen for a package wins and enumeration
// order is kept; an empty result is normal.
func (c *Catalog) ListAvailablePacks() []Descriptor {
	if c.registry == nil {
		return nil
	}
	seen := make(map[string]bool)
	var packs []Descriptor
	for _, action := range MarkerActions {
		activities, err := c.registry.QueryActivities(action)
		if err != nil {
			c.logger.WithError(err).WithField("action", action).Warn("Icon pack query failed")
			continue
		}
		for _, a := range activities {
			if a.PackageID == "" || seen[a.PackageID] {
				continue
			}
			seen[a.PackageID] = true
			packs = append(packs, Descriptor{PackageID: a.PackageID, Label: a.Label})
		}
	}
	c.logger.WithField("count", len(packs)).Debug("Listed icon packs")
	return packs
}
