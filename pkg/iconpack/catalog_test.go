package iconpack

import (
	"fmt"
	"testing"

	"github.com/ovehbe/710Launcher-sub000/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry map[string][]Activity

func (f fakeRegistry) QueryActivities(action string) ([]Activity, error) {
	if action == "fail" {
		return nil, fmt.Errorf("registry unavailable")
	}
	return f[action], nil
}

func TestListAvailablePacksDedupes(t *testing.T) {
	reg := fakeRegistry{
		"org.adw.launcher.THEMES": {
			{PackageID: "com.pack.one", Label: "One"},
			{PackageID: "com.pack.two", Label: "Two"},
		},
		"com.novalauncher.THEME": {
			{PackageID: "com.pack.two", Label: "Two (Nova)"},
			{PackageID: "com.pack.three", Label: "Three"},
		},
		"org.adw.launcher.icons.ACTION_PICK_ICON": {
			{PackageID: "com.pack.one", Label: "One again"},
		},
	}

	packs := NewCatalog(reg).ListAvailablePacks()
	assert.Equal(t, []Descriptor{
		{PackageID: "com.pack.one", Label: "One"},
		{PackageID: "com.pack.two", Label: "Two"},
		{PackageID: "com.pack.three", Label: "Three"},
	}, packs)
}

func TestListAvailablePacksEmpty(t *testing.T) {
	assert.Empty(t, NewCatalog(fakeRegistry{}).ListAvailablePacks())
}

type flakyRegistry struct{ fakeRegistry }

func (f flakyRegistry) QueryActivities(action string) ([]Activity, error) {
	if action == MarkerActions[0] {
		return nil, fmt.Errorf("boom")
	}
	return f.fakeRegistry.QueryActivities(action)
}

func TestListAvailablePacksSkipsFailedQueries(t *testing.T) {
	reg := flakyRegistry{fakeRegistry{
		MarkerActions[0]: {{PackageID: "hidden", Label: "Hidden"}},
		MarkerActions[1]: {{PackageID: "com.go.pack", Label: "Go"}},
	}}
	packs := NewCatalog(reg).ListAvailablePacks()
	assert.Equal(t, []Descriptor{{PackageID: "com.go.pack", Label: "Go"}}, packs)
}

func TestMarkerActionsAreStable(t *testing.T) {
	assert.Equal(t, []string{
		"org.adw.launcher.THEMES",
		"com.gau.go.launcherex.theme",
		"com.novalauncher.THEME",
		"org.adw.launcher.icons.ACTION_PICK_ICON",
	}, MarkerActions)
}

func TestDirHostRegistry(t *testing.T) {
	root := t.TempDir()
	testutil.WritePack(t, root, testutil.PackFixture{ID: "com.a", Label: "Alpha"})
	testutil.WritePack(t, root, testutil.PackFixture{
		ID:      "com.b",
		Label:   "Beta",
		Actions: []string{"com.novalauncher.THEME"},
	})
	testutil.WritePack(t, root, testutil.PackFixture{ID: "com.c", Actions: []string{"unrelated"}})
	testutil.WriteFile(t, root+"/not-a-pack/readme.txt", []byte("hi"))

	host := NewDirHost(root)
	packs := NewCatalog(host).ListAvailablePacks()
	assert.Equal(t, []Descriptor{
		{PackageID: "com.a", Label: "Alpha"},
		{PackageID: "com.b", Label: "Beta"},
	}, packs)
	assert.Equal(t, []string{"com.a", "com.b", "com.c"}, host.Installed())
}

func TestDirHostMissingRoot(t *testing.T) {
	host := NewDirHost(t.TempDir() + "/missing")
	activities, err := host.QueryActivities(MarkerActions[0])
	require.NoError(t, err)
	assert.Empty(t, activities)
	assert.Empty(t, NewCatalog(host).ListAvailablePacks())
}

func TestListAvailablePacksWithoutRegistry(t *testing.T) {
	assert.Empty(t, NewCatalog(nil).ListAvailablePacks())
}
