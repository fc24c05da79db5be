package state

import (
	"encoding/json"

	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
)

// GetStringMap decodes a String entry holding a JSON object. Absent keys,
// other types and undecodable payloads all read as an empty map.
func (s *Store) GetStringMap(key string) map[string]string {
	raw := s.GetString(key, "")
	out := make(map[string]string)
	if raw == "" {
		return out
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Ignoring unreadable map value")
		return make(map[string]string)
	}
	return out
}

// SetStringMap stores m as a JSON object; an empty map removes the key.
func (s *Store) SetStringMap(key string, m map[string]string) error {
	if len(m) == 0 {
		return s.Remove(key)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return s.SetString(key, string(data))
}

// FamilySuffixes returns the suffix of every stored key in family, in
// enumeration order.
func (s *Store) FamilySuffixes(family string) []string {
	var out []string
	for _, key := range s.Keys() {
		if suffix, ok := splitFamilyKey(family, key); ok {
			out = append(out, suffix)
		}
	}
	return out
}

// Scopes returns every scope that has a key in family.
func (s *Store) Scopes(family string) []apps.Scope {
	suffixes := s.FamilySuffixes(family)
	out := make([]apps.Scope, 0, len(suffixes))
	for _, suffix := range suffixes {
		out = append(out, apps.Scope(suffix))
	}
	return out
}
