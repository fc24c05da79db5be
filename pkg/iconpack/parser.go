package iconpack

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	lerrors "github.com/ovehbe/710Launcher-sub000/errors"
)

// AppFilterName is both the XML resource name and (with .xml) the asset name.
const AppFilterName = "appfilter"

// Parse extracts the component → drawable map of a pack. The XML resource
// "appfilter" is preferred; the packaged asset appfilter.xml is the
// fallback. Missing both, or malformed XML in the one used, is a
// PARSE_ERROR and no partial map is returned.
func Parse(res Resources, packageID string) (map[string]string, error) {
	if res == nil {
		return nil, lerrors.ParseFailed(packageID, fmt.Errorf("resources unavailable"))
	}

	r, source, err := openAppFilter(res)
	if err != nil {
		return nil, lerrors.ParseFailed(packageID, err)
	}
	defer r.Close()

	components, err := parseAppFilter(r)
	if err != nil {
		return nil, lerrors.ParseFailed(packageID, err).WithDetail("source", source)
	}
	return components, nil
}

func openAppFilter(res Resources) (io.ReadCloser, string, error) {
	if id := res.Identifier(AppFilterName, TypeXML); id != 0 {
		r, err := res.OpenXML(id)
		if err != nil {
			return nil, "", fmt.Errorf("open xml resource: %w", err)
		}
		return r, "xml", nil
	}

	r, err := res.OpenAsset(AppFilterName + ".xml")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("no appfilter resource or asset")
		}
		return nil, "", fmt.Errorf("open asset: %w", err)
	}
	return r, "asset", nil
}

// parseAppFilter walks start tags and keeps every <item> carrying both a
// component and a drawable attribute. Other tags and attributes are ignored.
func parseAppFilter(r io.Reader) (map[string]string, error) {
	dec := xml.NewDecoder(r)
	components := make(map[string]string)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return components, nil
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "item" {
			continue
		}
		var component, drawable string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "component":
				component = attr.Value
			case "drawable":
				drawable = attr.Value
			}
		}
		if component == "" || drawable == "" {
			continue
		}
		components[component] = drawable
	}
}
