package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileBackend stores entries in a YAML file, in enumeration order.
type FileBackend struct {
	path string
}

type fileDoc struct {
	Version int         `yaml:"version"`
	Entries []fileEntry `yaml:"entries"`
}

type fileEntry struct {
	K string      `yaml:"k"`
	T Tag         `yaml:"t"`
	V interface{} `yaml:"v"`
}

// NewFileBackend returns a backend for the YAML file at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (f *FileBackend) Name() string { return "file" }

// Path returns the backing file.
func (f *FileBackend) Path() string { return f.path }

// Load reads the file. A missing file is an empty store.
func (f *FileBackend) Load() ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Entries))
	for _, fe := range doc.Entries {
		e, err := decodeEntry(fe.K, fe.T, fe.V)
		if err != nil {
			return nil, fmt.Errorf("parse store file: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Save writes through a temp file and rename so a crash never leaves a
// truncated store behind.
func (f *FileBackend) Save(entries []Entry) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	doc := fileDoc{Version: SnapshotVersion, Entries: make([]fileEntry, 0, len(entries))}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, fileEntry{K: e.Key, T: e.Type, V: e.Value()})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.tmp")
	if err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}
