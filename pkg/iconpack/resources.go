package iconpack

import (
	"image"
	"io"
)

// Resource types looked up through Resources.Identifier.
const (
	TypeXML      = "xml"
	TypeDrawable = "drawable"
)

// Resources is the resource namespace of one installed pack package.
// Identifiers are positive; zero means "no such resource".
type Resources interface {
	Identifier(name, typ string) int
	OpenXML(id int) (io.ReadCloser, error)
	// OpenAsset opens a packaged file; a missing asset returns an error
	// matching os.ErrNotExist.
	OpenAsset(name string) (io.ReadCloser, error)
	Drawable(id int) (image.Image, error)
}

// Host opens the resources of installed packages. A package that is not
// installed yields a PACK_NOT_FOUND error.
type Host interface {
	Open(packageID string) (Resources, error)
}

// Activity is one component answering a marker action.
type Activity struct {
	PackageID string
	Label     string
}

// Registry answers "which installed activities respond to this action",
// in the registry's own enumeration order.
type Registry interface {
	QueryActivities(action string) ([]Activity, error)
}
