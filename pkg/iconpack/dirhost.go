package iconpack

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
	"gopkg.in/yaml.v3"

	lerrors "github.com/ovehbe/710Launcher-sub000/errors"
)

// ManifestFile is the per-package manifest inside a DirHost root.
const ManifestFile = "pack.yaml"

// drawableExts are tried in order when resolving a drawable name.
var drawableExts = []string{".png", ".webp", ".jpg", ".jpeg"}

// Manifest describes an installed pack package.
type Manifest struct {
	Label   string   `yaml:"label"`
	Actions []string `yaml:"actions"`
}

// DirHost serves packages laid out on disk as
//
//	<root>/<package>/pack.yaml
//	<root>/<package>/res/xml/appfilter.xml
//	<root>/<package>/assets/appfilter.xml
//	<root>/<package>/res/drawable/<name>.png
//
// It is both the Host that opens packages and the Registry that answers
// marker action queries.
type DirHost struct {
	root string
}

// NewDirHost returns a host over root. A missing root is an empty host.
func NewDirHost(root string) *DirHost {
	return &DirHost{root: root}
}

// Root is the directory packages are read from.
func (h *DirHost) Root() string {
	return h.root
}

// QueryActivities lists packages whose manifest declares action, in
// directory order.
func (h *DirHost) QueryActivities(action string) ([]Activity, error) {
	entries, err := os.ReadDir(h.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read packs directory: %w", err)
	}

	var activities []Activity
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m, err := h.manifest(entry.Name())
		if err != nil {
			continue
		}
		for _, a := range m.Actions {
			if a == action {
				label := m.Label
				if label == "" {
					label = entry.Name()
				}
				activities = append(activities, Activity{PackageID: entry.Name(), Label: label})
				break
			}
		}
	}
	return activities, nil
}

// Installed lists every package directory carrying a manifest, sorted.
func (h *DirHost) Installed() []string {
	entries, err := os.ReadDir(h.root)
	if err != nil {
		return nil
	}
	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := h.manifest(entry.Name()); err == nil {
			ids = append(ids, entry.Name())
		}
	}
	sort.Strings(ids)
	return ids
}

func (h *DirHost) manifest(packageID string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(h.root, packageID, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}
	return &m, nil
}

// Open returns the resources of packageID. Packages are identified by
// directory name and must carry a manifest.
func (h *DirHost) Open(packageID string) (Resources, error) {
	if packageID == "" || strings.ContainsAny(packageID, `/\`) || packageID == "." || packageID == ".." {
		return nil, lerrors.PackNotFound(packageID)
	}
	if _, err := h.manifest(packageID); err != nil {
		return nil, lerrors.PackNotFound(packageID)
	}
	return newDirResources(filepath.Join(h.root, packageID)), nil
}

// dirResources assigns identifiers in lookup order. An identifier stays
// valid for the lifetime of the handle. Lookups may run concurrently.
type dirResources struct {
	dir string

	mu    sync.Mutex
	ids   map[string]int
	paths []string
}

func newDirResources(dir string) *dirResources {
	return &dirResources{dir: dir, ids: make(map[string]int)}
}

func (r *dirResources) Identifier(name, typ string) int {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return 0
	}
	key := typ + "/" + name
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[key]; ok {
		return id
	}

	var path string
	switch typ {
	case TypeXML:
		path = r.existing(filepath.Join(r.dir, "res", "xml", name+".xml"))
	case TypeDrawable:
		for _, ext := range drawableExts {
			if path = r.existing(filepath.Join(r.dir, "res", "drawable", name+ext)); path != "" {
				break
			}
		}
	}
	if path == "" {
		return 0
	}

	r.paths = append(r.paths, path)
	id := len(r.paths)
	r.ids[key] = id
	return id
}

func (r *dirResources) existing(path string) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}

func (r *dirResources) path(id int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id <= 0 || id > len(r.paths) {
		return "", fmt.Errorf("unknown resource id %d", id)
	}
	return r.paths[id-1], nil
}

func (r *dirResources) OpenXML(id int) (io.ReadCloser, error) {
	path, err := r.path(id)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (r *dirResources) OpenAsset(name string) (io.ReadCloser, error) {
	if strings.ContainsAny(name, `/\`) {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(r.dir, "assets", name))
}

func (r *dirResources) Drawable(id int) (image.Image, error) {
	path, err := r.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
