package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ovehbe/710Launcher-sub000/errors"
)

// ParseTag accepts a tag or its long name ("string", "int", "long",
// "float", "bool", "stringset").
func ParseTag(s string) (Tag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "s", "string":
		return TagString, nil
	case "i", "int":
		return TagInt, nil
	case "l", "long":
		return TagLong, nil
	case "f", "float":
		return TagFloat, nil
	case "b", "bool":
		return TagBool, nil
	case "set", "stringset":
		return TagStringSet, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown entry type %q", s))
}

// ParseEntry builds an Entry from its textual form. String sets are
// comma-separated.
func ParseEntry(key string, tag Tag, raw string) (Entry, error) {
	invalid := func(err error) (Entry, error) {
		return Entry{}, errors.Wrap(err, errors.ErrCodeInvalidInput,
			fmt.Sprintf("cannot read %q as %s", raw, tag)).WithDetail("key", key)
	}

	switch tag {
	case TagString:
		return StringEntry(key, raw), nil
	case TagInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
		if err != nil {
			return invalid(err)
		}
		return IntEntry(key, int32(n)), nil
	case TagLong:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return invalid(err)
		}
		return LongEntry(key, n), nil
	case TagFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
		if err != nil {
			return invalid(err)
		}
		return FloatEntry(key, float32(f)), nil
	case TagBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return invalid(err)
		}
		return BoolEntry(key, b), nil
	case TagStringSet:
		var items []string
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return StringSetEntry(key, items), nil
	}
	return Entry{}, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown entry type %q", tag))
}

// FormatValue is the inverse of ParseEntry.
func FormatValue(e Entry) string {
	switch e.Type {
	case TagFloat:
		f, _ := e.Float()
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	case TagStringSet:
		set, _ := e.StringSet()
		return strings.Join(set, ",")
	}
	return fmt.Sprint(e.Value())
}

// FixedEntry returns the default of a fixed key.
func FixedEntry(key string) (Entry, bool) {
	e, ok := fixedIndex[key]
	return e, ok
}

// Lookup returns the stored entry for key, or a fixed key's default.
func (s *Store) Lookup(key string) (Entry, bool) {
	if e, ok := s.Entry(key); ok {
		return e, true
	}
	return FixedEntry(key)
}

// TypeOf is the tag key must be written with: the fixed key's, or the
// stored entry's. ok is false for keys the store knows nothing about.
func (s *Store) TypeOf(key string) (Tag, bool) {
	e, ok := s.Lookup(key)
	return e.Type, ok
}
