package state

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Tag identifies the kind of value an Entry holds. The string form is the
// "t" field of the export document.
type Tag string

const (
	TagString    Tag = "s"
	TagInt       Tag = "i"
	TagLong      Tag = "l"
	TagFloat     Tag = "f"
	TagBool      Tag = "b"
	TagStringSet Tag = "set"
)

// Tags lists every tag in export order of documentation.
var Tags = []Tag{TagString, TagInt, TagLong, TagFloat, TagBool, TagStringSet}

// Valid reports whether t is one of the known tags.
func (t Tag) Valid() bool {
	switch t {
	case TagString, TagInt, TagLong, TagFloat, TagBool, TagStringSet:
		return true
	}
	return false
}

// Entry is one typed configuration value. Only the field matching Type is
// meaningful; use the constructors and accessors rather than the fields.
type Entry struct {
	Key  string
	Type Tag

	str  string
	num  int64
	flt  float32
	flag bool
	set  []string
}

func StringEntry(key, v string) Entry {
	return Entry{Key: key, Type: TagString, str: v}
}

func IntEntry(key string, v int32) Entry {
	return Entry{Key: key, Type: TagInt, num: int64(v)}
}

func LongEntry(key string, v int64) Entry {
	return Entry{Key: key, Type: TagLong, num: v}
}

func FloatEntry(key string, v float32) Entry {
	return Entry{Key: key, Type: TagFloat, flt: v}
}

func BoolEntry(key string, v bool) Entry {
	return Entry{Key: key, Type: TagBool, flag: v}
}

// StringSetEntry stores a set; duplicates collapse and members are kept sorted.
func StringSetEntry(key string, v []string) Entry {
	return Entry{Key: key, Type: TagStringSet, set: normalizeSet(v)}
}

func (e Entry) String() (string, bool) {
	return e.str, e.Type == TagString
}

func (e Entry) Int() (int32, bool) {
	return int32(e.num), e.Type == TagInt
}

func (e Entry) Long() (int64, bool) {
	return e.num, e.Type == TagLong
}

func (e Entry) Float() (float32, bool) {
	return e.flt, e.Type == TagFloat
}

func (e Entry) Bool() (bool, bool) {
	return e.flag, e.Type == TagBool
}

// StringSet returns a copy of the set members.
func (e Entry) StringSet() ([]string, bool) {
	if e.Type != TagStringSet {
		return nil, false
	}
	out := make([]string, len(e.set))
	copy(out, e.set)
	return out, true
}

// Value returns the payload as a plain Go value.
func (e Entry) Value() interface{} {
	switch e.Type {
	case TagString:
		return e.str
	case TagInt:
		return int32(e.num)
	case TagLong:
		return e.num
	case TagFloat:
		return e.flt
	case TagBool:
		return e.flag
	case TagStringSet:
		v, _ := e.StringSet()
		return v
	}
	return nil
}

// Equal compares key, tag and payload.
func (e Entry) Equal(o Entry) bool {
	if e.Key != o.Key || e.Type != o.Type {
		return false
	}
	switch e.Type {
	case TagString:
		return e.str == o.str
	case TagInt, TagLong:
		return e.num == o.num
	case TagFloat:
		return math.Float32bits(e.flt) == math.Float32bits(o.flt)
	case TagBool:
		return e.flag == o.flag
	case TagStringSet:
		if len(e.set) != len(o.set) {
			return false
		}
		for i := range e.set {
			if e.set[i] != o.set[i] {
				return false
			}
		}
		return true
	}
	return false
}

func (e Entry) withKey(key string) Entry {
	e.Key = key
	return e
}

// encodeValue renders the payload as the "v" field of the export document.
func (e Entry) encodeValue() (json.RawMessage, error) {
	switch e.Type {
	case TagInt, TagLong:
		return json.RawMessage(strconv.FormatInt(e.num, 10)), nil
	case TagFloat:
		f := float64(e.flt)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("key %q: float %v has no JSON form", e.Key, e.flt)
		}
		return json.RawMessage(strconv.FormatFloat(f, 'g', -1, 32)), nil
	case TagString, TagBool, TagStringSet:
		return json.Marshal(e.Value())
	}
	return nil, fmt.Errorf("key %q: unknown type %q", e.Key, e.Type)
}

// decodeEntry converts a generically decoded value (JSON with UseNumber, or
// YAML) into an Entry, checking it against the tag.
func decodeEntry(key string, tag Tag, v interface{}) (Entry, error) {
	switch tag {
	case TagString:
		s, ok := v.(string)
		if !ok {
			return Entry{}, fmt.Errorf("key %q: want string, got %T", key, v)
		}
		return StringEntry(key, s), nil
	case TagInt:
		n, err := toInt64(v)
		if err != nil {
			return Entry{}, fmt.Errorf("key %q: %w", key, err)
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return Entry{}, fmt.Errorf("key %q: %d overflows int", key, n)
		}
		return IntEntry(key, int32(n)), nil
	case TagLong:
		n, err := toInt64(v)
		if err != nil {
			return Entry{}, fmt.Errorf("key %q: %w", key, err)
		}
		return LongEntry(key, n), nil
	case TagFloat:
		f, err := toFloat64(v)
		if err != nil {
			return Entry{}, fmt.Errorf("key %q: %w", key, err)
		}
		if math.IsNaN(f) || math.Abs(f) > math.MaxFloat32 {
			return Entry{}, fmt.Errorf("key %q: %v is not a finite float", key, f)
		}
		return FloatEntry(key, float32(f)), nil
	case TagBool:
		b, ok := v.(bool)
		if !ok {
			return Entry{}, fmt.Errorf("key %q: want boolean, got %T", key, v)
		}
		return BoolEntry(key, b), nil
	case TagStringSet:
		items, ok := v.([]interface{})
		if !ok {
			return Entry{}, fmt.Errorf("key %q: want array of strings, got %T", key, v)
		}
		set := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return Entry{}, fmt.Errorf("key %q: set member %v is not a string", key, item)
			}
			set = append(set, s)
		}
		return StringSetEntry(key, set), nil
	}
	return Entry{}, fmt.Errorf("key %q: unknown type %q", key, tag)
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return strconv.ParseInt(n.String(), 10, 64)
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows long", n)
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int64(n), nil
	}
	return 0, fmt.Errorf("want integer, got %T", v)
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case json.Number:
		return strconv.ParseFloat(n.String(), 64)
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("want number, got %T", v)
}

func normalizeSet(v []string) []string {
	seen := make(map[string]bool, len(v))
	out := make([]string, 0, len(v))
	for _, s := range v {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
