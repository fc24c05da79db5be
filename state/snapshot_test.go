package state

import (
	"encoding/json"
	"testing"

	"github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportEmitsFixedDefaultsFirst(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetString("customIcons_dock", `{}`))
	require.NoError(t, s.SetInt(KeyIconSize, 64))

	doc := s.ExportSnapshot()
	assert.Equal(t, SnapshotVersion, doc.Version)
	require.Len(t, doc.Entries, len(FixedKeys())+1)

	for i, fixed := range FixedKeys() {
		assert.Equal(t, fixed.Key, doc.Entries[i].K)
		assert.Equal(t, fixed.Type, doc.Entries[i].T)
	}
	assert.JSONEq(t, "64", string(doc.Entries[5].V))
	assert.JSONEq(t, `"circle"`, string(doc.Entries[4].V))
	assert.Equal(t, "customIcons_dock", doc.Entries[len(doc.Entries)-1].K)
}

func TestExportImportRoundTrip(t *testing.T) {
	src := NewMemoryStore()
	seedStore(t, src)
	require.NoError(t, src.SetStringSet("customIconScopes_com.x/com.x.Main", []string{"dock", "all"}))
	require.NoError(t, src.SetLong("big", -9007199254740993))

	data, err := src.MarshalSnapshot()
	require.NoError(t, err)

	dst := NewMemoryStore()
	require.NoError(t, dst.SetString("stale", "gone"))
	require.NoError(t, dst.ImportJSON(data))

	assert.False(t, dst.Has("stale"))
	for _, e := range src.Entries() {
		got, ok := dst.Entry(e.Key)
		require.True(t, ok, "missing %s", e.Key)
		assert.True(t, e.Equal(got), "key %s", e.Key)
	}
	// Fixed keys never written on the source are now explicit on the target.
	assert.True(t, dst.Has(KeyColumns))
	assert.Equal(t, int32(4), dst.GetInt(KeyColumns, 0))

	again, err := dst.MarshalSnapshot()
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetString(KeyIconPack, "com.pack"))

	doc := s.ExportSnapshot()
	doc.Version = 2

	assert.False(t, s.ImportSnapshot(doc))
	assert.Equal(t, "com.pack", s.GetString(KeyIconPack, ""))
	assert.Equal(t, []string{KeyIconPack}, s.Keys())

	err := s.ImportJSON([]byte(`{"version":2,"entries":[]}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeImportValidation))
}

func TestImportFailsClosed(t *testing.T) {
	cases := map[string]string{
		"not json":             `{"version":1,`,
		"missing entries":      `{"version":1}`,
		"missing version":      `{"entries":[]}`,
		"unknown tag":          `{"version":1,"entries":[{"k":"a","t":"x","v":1}]}`,
		"missing value":        `{"version":1,"entries":[{"k":"a","t":"s"}]}`,
		"value shape mismatch": `{"version":1,"entries":[{"k":"a","t":"i","v":"1"}]}`,
		"fractional int":       `{"version":1,"entries":[{"k":"a","t":"i","v":1.5}]}`,
		"int overflow":         `{"version":1,"entries":[{"k":"a","t":"i","v":4294967296}]}`,
		"set of numbers":       `{"version":1,"entries":[{"k":"a","t":"set","v":[1]}]}`,
		"duplicate key":        `{"version":1,"entries":[{"k":"a","t":"b","v":true},{"k":"a","t":"b","v":false}]}`,
		"fixed key wrong type": `{"version":1,"entries":[{"k":"iconSize","t":"s","v":"48"}]}`,
		"empty key":            `{"version":1,"entries":[{"k":"","t":"b","v":true}]}`,
		"trailing data":        `{"version":1,"entries":[]} {}`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			s := NewMemoryStore()
			require.NoError(t, s.SetBool(KeyShowLabels, false))
			before := s.Entries()

			err := s.ImportJSON([]byte(doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeImportValidation), "got %v", err)

			after := s.Entries()
			require.Len(t, after, len(before))
			assert.True(t, before[0].Equal(after[0]))
		})
	}
}

func TestImportPersistFailureLeavesStoreUntouched(t *testing.T) {
	backend := &failingBackend{allow: 1}
	s, err := Open(backend)
	require.NoError(t, err)
	require.NoError(t, s.SetString(KeyIconPack, "com.pack"))

	doc := NewMemoryStore().ExportSnapshot()
	assert.False(t, s.ImportSnapshot(doc))
	assert.Equal(t, []string{KeyIconPack}, s.Keys())
}

func TestSnapshotValueShapes(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetFloat("f", 1.1))
	require.NoError(t, s.SetStringSet("set", []string{"b", "a"}))

	data, err := s.MarshalSnapshot()
	require.NoError(t, err)

	var generic struct {
		Entries []struct {
			K string          `json:"k"`
			V json.RawMessage `json:"v"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(data, &generic))

	values := map[string]string{}
	for _, e := range generic.Entries {
		values[e.K] = string(e.V)
	}
	assert.Equal(t, "1.1", values["f"])
	assert.JSONEq(t, `["a","b"]`, values["set"])
	assert.Equal(t, "true", values[KeyShowLabels])
}
