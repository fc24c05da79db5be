package state

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/schema"
	"github.com/sirupsen/logrus"
)

// SnapshotVersion is the only export document version this store reads.
const SnapshotVersion = 1

// Snapshot is the versioned export document.
type Snapshot struct {
	Version int             `json:"version" jsonschema:"description=Export format version,minimum=1"`
	Entries []SnapshotEntry `json:"entries" jsonschema:"description=Configuration entries; fixed keys first"`
}

// SnapshotEntry is one exported entry. V's JSON shape follows T.
type SnapshotEntry struct {
	K string          `json:"k" jsonschema:"description=Configuration key,minLength=1"`
	T Tag             `json:"t" jsonschema:"description=Value type,enum=s,enum=i,enum=l,enum=f,enum=b,enum=set"`
	V json.RawMessage `json:"v" jsonschema:"description=Typed value"`
}

var snapshotValidator = schema.MustValidatorFor(&Snapshot{})

// ExportSnapshot emits every fixed key (current value or default) in
// declaration order, then every other stored key in enumeration order.
func (s *Store) ExportSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := Snapshot{Version: SnapshotVersion}
	for _, def := range fixedKeys {
		e := def
		if cur, ok := s.entries[def.Key]; ok && cur.Type == def.Type {
			e = cur
		}
		doc.Entries = append(doc.Entries, s.exportEntry(e)...)
	}
	for _, key := range s.order {
		if IsFixed(key) {
			continue
		}
		doc.Entries = append(doc.Entries, s.exportEntry(s.entries[key])...)
	}
	return doc
}

func (s *Store) exportEntry(e Entry) []SnapshotEntry {
	raw, err := e.encodeValue()
	if err != nil {
		s.logger.WithError(err).WithField("key", e.Key).Warn("Skipping entry without a JSON form")
		return nil
	}
	return []SnapshotEntry{{K: e.Key, T: e.Type, V: raw}}
}

// MarshalSnapshot renders the current export document as indented JSON.
func (s *Store) MarshalSnapshot() ([]byte, error) {
	return json.MarshalIndent(s.ExportSnapshot(), "", "  ")
}

// ParseSnapshot validates raw JSON against the document schema and decodes it.
func ParseSnapshot(data []byte) (Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic interface{}
	if err := dec.Decode(&generic); err != nil {
		return Snapshot{}, errors.ImportInvalid("document is not JSON").WithDetail("error", err.Error())
	}
	if dec.More() {
		return Snapshot{}, errors.ImportInvalid("trailing data after document")
	}
	if err := snapshotValidator.Validate(generic); err != nil {
		return Snapshot{}, errors.Wrap(err, errors.ErrCodeImportValidation, "document does not match the snapshot schema")
	}

	var doc Snapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return Snapshot{}, errors.Wrap(err, errors.ErrCodeImportValidation, "failed to decode snapshot")
	}
	return doc, nil
}

// decodeSnapshot turns a document into ordered entries without touching
// any store.
func decodeSnapshot(doc Snapshot) ([]Entry, error) {
	if doc.Version != SnapshotVersion {
		return nil, errors.ImportInvalid(fmt.Sprintf("unrecognized version %d", doc.Version)).
			WithDetail("version", doc.Version)
	}
	if doc.Entries == nil {
		return nil, errors.ImportInvalid("missing entries")
	}

	seen := make(map[string]bool, len(doc.Entries))
	entries := make([]Entry, 0, len(doc.Entries))
	for i, se := range doc.Entries {
		if se.K == "" {
			return nil, errors.ImportInvalid(fmt.Sprintf("entry %d has no key", i))
		}
		if seen[se.K] {
			return nil, errors.ImportInvalid(fmt.Sprintf("duplicate key %q", se.K)).WithDetail("key", se.K)
		}
		seen[se.K] = true
		if !se.T.Valid() {
			return nil, errors.ImportInvalid(fmt.Sprintf("key %q has unknown type %q", se.K, se.T)).WithDetail("key", se.K)
		}
		if len(se.V) == 0 {
			return nil, errors.ImportInvalid(fmt.Sprintf("key %q has no value", se.K)).WithDetail("key", se.K)
		}
		if fixed, ok := fixedIndex[se.K]; ok && fixed.Type != se.T {
			return nil, errors.ImportInvalid(fmt.Sprintf("key %q must have type %q", se.K, fixed.Type)).WithDetail("key", se.K)
		}
		e, err := decodeJSONValue(se.K, se.T, se.V)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeImportValidation, "invalid entry value").WithDetail("key", se.K)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Import replaces the whole store with the document's entries. Any
// validation or persistence failure leaves the store untouched.
func (s *Store) Import(doc Snapshot) error {
	entries, err := decodeSnapshot(doc)
	if err != nil {
		s.logger.WithError(err).Warn("Snapshot import rejected")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := storeState{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		next.entries[e.Key] = e
		next.order = append(next.order, e.Key)
	}
	if err := s.commitLocked(next); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"entries": len(entries)}).Info("Snapshot imported")
	return nil
}

// ImportSnapshot is Import reporting only success.
func (s *Store) ImportSnapshot(doc Snapshot) bool {
	return s.Import(doc) == nil
}

// ImportJSON parses, validates and imports a raw export document.
func (s *Store) ImportJSON(data []byte) error {
	doc, err := ParseSnapshot(data)
	if err != nil {
		s.logger.WithError(err).Warn("Snapshot import rejected")
		return err
	}
	return s.Import(doc)
}

// SnapshotSchema renders the JSON Schema import documents are checked against.
func SnapshotSchema() ([]byte, error) {
	return schema.GenerateJSON(&Snapshot{})
}
