package icon

import "image"

// Source records which step of the resolution cascade produced an icon.
type Source string

const (
	SourceRaw      Source = "raw"
	SourceThemed   Source = "themed"
	SourceOverride Source = "override"
	SourceShape    Source = "shape"
)

// Icon is a resolved icon. Pack and Drawable are set for themed and
// override results.
type Icon struct {
	Image    image.Image
	Source   Source
	Pack     string
	Drawable string
}

// IsZero reports whether no image was resolved.
func (i Icon) IsZero() bool {
	return i.Image == nil
}
