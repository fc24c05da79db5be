package state

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ovehbe/710Launcher-sub000/errors"
	"github.com/ovehbe/710Launcher-sub000/pkg/apps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingBackend accepts Load and rejects every Save after the first n.
type failingBackend struct {
	MemoryBackend
	allow int
}

func (f *failingBackend) Save(entries []Entry) error {
	if f.allow <= 0 {
		return fmt.Errorf("disk full")
	}
	f.allow--
	return f.MemoryBackend.Save(entries)
}

func TestTypedAccessors(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.SetString("name", "home"))
	require.NoError(t, s.SetInt("count", -7))
	require.NoError(t, s.SetLong("stamp", 1<<40))
	require.NoError(t, s.SetFloat("ratio", 0.75))
	require.NoError(t, s.SetBool("on", true))
	require.NoError(t, s.SetStringSet("tags", []string{"b", "a", "b"}))

	assert.Equal(t, "home", s.GetString("name", "x"))
	assert.Equal(t, int32(-7), s.GetInt("count", 0))
	assert.Equal(t, int64(1<<40), s.GetLong("stamp", 0))
	assert.Equal(t, float32(0.75), s.GetFloat("ratio", 0))
	assert.True(t, s.GetBool("on", false))
	assert.Equal(t, []string{"a", "b"}, s.GetStringSet("tags", nil))
}

func TestReadsFallBackToDefault(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetString("name", "home"))

	assert.Equal(t, "dflt", s.GetString("missing", "dflt"))
	// A type mismatch reads like an absent key.
	assert.Equal(t, int32(3), s.GetInt("name", 3))
	assert.Equal(t, []string{"z"}, s.GetStringSet("name", []string{"z"}))
}

func TestKeyTypeIsStable(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetString("name", "home"))

	err := s.SetInt("name", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Equal(t, "home", s.GetString("name", ""))

	err = s.SetString(KeyIconSize, "big")
	require.Error(t, err)

	require.NoError(t, s.Remove("name"))
	assert.NoError(t, s.SetInt("name", 1))
}

func TestEnumerationOrderIsInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	for _, k := range []string{"c", "a", "b"} {
		require.NoError(t, s.SetBool(k, true))
	}
	require.NoError(t, s.SetBool("a", false))
	require.NoError(t, s.Remove("c"))

	assert.Equal(t, []string{"a", "b"}, s.Keys())
}

func TestPersistFailureLeavesStoreUntouched(t *testing.T) {
	backend := &failingBackend{allow: 1}
	s, err := Open(backend)
	require.NoError(t, err)

	require.NoError(t, s.SetString("name", "home"))

	err = s.SetString("name", "work")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeStorePersist))
	assert.Equal(t, "home", s.GetString("name", ""))
}

func TestApplyIsAllOrNothing(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetString("a", "1"))
	require.NoError(t, s.SetInt("b", 2))

	err := s.Apply([]Entry{StringEntry("c", "3"), StringEntry("b", "wrong type")}, []string{"a"})
	require.Error(t, err)
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))

	require.NoError(t, s.Apply([]Entry{StringEntry("c", "3")}, []string{"a", "missing"}))
	assert.Equal(t, []string{"b", "c"}, s.Keys())
}

func TestStringMapAndScopes(t *testing.T) {
	s := NewMemoryStore()
	id := apps.NewIdentity("com.x", "com.x.Main")

	key := ScopedKey(FamilyCustomIcons, apps.ScopeFavorites)
	assert.Equal(t, "customIcons_favorites", key)

	require.NoError(t, s.SetStringMap(key, map[string]string{id.Flatten(): "icon_custom"}))
	require.NoError(t, s.SetStringMap(ScopedKey(FamilyCustomIcons, apps.ScopeDock), map[string]string{id.Flatten(): "icon_dock"}))
	require.NoError(t, s.SetString(ScopedKey(FamilyIconPack, apps.CustomPage("work")), "com.pack"))
	require.NoError(t, s.SetStringSet(FamilyKey(FamilyCustomIconScopes, id.Flatten()), []string{"dock"}))

	assert.Equal(t, "icon_custom", s.GetStringMap(key)[id.Flatten()])
	assert.Equal(t, []apps.Scope{apps.ScopeFavorites, apps.ScopeDock}, s.Scopes(FamilyCustomIcons))
	assert.Equal(t, []apps.Scope{apps.CustomPage("work")}, s.Scopes(FamilyIconPack))

	require.NoError(t, s.SetStringMap(key, nil))
	assert.False(t, s.Has(key))
}

func TestUnreadableStringMapIsEmpty(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetString("customIcons_all", "{not json"))
	assert.Empty(t, s.GetStringMap("customIcons_all"))
}

func TestFileBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "prefs.yml")

	s, err := Open(NewFileBackend(path))
	require.NoError(t, err)
	seedStore(t, s)

	reopened, err := Open(NewFileBackend(path))
	require.NoError(t, err)
	assertSameEntries(t, s, reopened)
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	backend, err := OpenSQLite(path)
	require.NoError(t, err)
	s, err := Open(backend)
	require.NoError(t, err)
	seedStore(t, s)
	require.NoError(t, backend.Close())

	backend, err = OpenSQLite(path)
	require.NoError(t, err)
	defer backend.Close()
	reopened, err := Open(backend)
	require.NoError(t, err)
	assertSameEntries(t, s, reopened)
}

func seedStore(t *testing.T, s *Store) {
	t.Helper()
	require.NoError(t, s.PutAll(
		StringEntry(KeyIconPack, "com.pack"),
		IntEntry(KeyIconSize, 56),
		FloatEntry(KeyIconScale, 1.1),
		LongEntry(KeyLastBackup, 1700000000123),
		BoolEntry(KeyShowLabels, false),
		StringSetEntry(KeyPages, []string{"all", "custom_work"}),
		StringEntry("customIcons_dock", `{"com.x/com.x.Main":"icon_x"}`),
		StringEntry("label", "true"),
	))
}

func assertSameEntries(t *testing.T, want, got *Store) {
	t.Helper()
	wantEntries := want.Entries()
	gotEntries := got.Entries()
	require.Len(t, gotEntries, len(wantEntries))
	for i := range wantEntries {
		assert.True(t, wantEntries[i].Equal(gotEntries[i]), "entry %s: want %v, got %v",
			wantEntries[i].Key, wantEntries[i].Value(), gotEntries[i].Value())
	}
}

func TestNonFiniteFloatsRejected(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.SetFloat("opacity_dock", 0.5))

	for key, v := range map[string]float32{
		"opacity_dock":   float32(math.NaN()),
		"opacity_search": float32(math.Inf(-1)),
		KeyIconScale:     float32(math.Inf(1)),
	} {
		err := s.SetFloat(key, v)
		require.Error(t, err, key)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), key)
	}
	assert.Equal(t, float32(0.5), s.GetFloat("opacity_dock", 0))
	assert.False(t, s.Has("opacity_search"))
	assert.False(t, s.Has(KeyIconScale))

	e, err := ParseEntry("opacity_all", TagFloat, "inf")
	require.NoError(t, err)
	assert.Error(t, s.Put(e))
	assert.False(t, s.Has("opacity_all"))

	doc := s.ExportSnapshot()
	assert.Len(t, doc.Entries, len(FixedKeys())+1)

	other := NewMemoryStore()
	require.True(t, other.ImportSnapshot(doc))
	assert.Equal(t, float32(1.0), other.GetFloat(KeyIconScale, 0))
	assert.Equal(t, float32(0.5), other.GetFloat("opacity_dock", 0))
}

func TestFileBackendRejectsNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\nentries:\n  - k: opacity_dock\n    t: f\n    v: .nan\n"), 0644))

	_, err := NewFileBackend(path).Load()
	assert.Error(t, err)
}
