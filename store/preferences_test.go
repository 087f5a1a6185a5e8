package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yllada/vpn-composer/common"
	"github.com/yllada/vpn-composer/profile"
)

func newTestPreferencesStore(t *testing.T) *PreferencesStore {
	t.Helper()
	s, err := NewPreferencesStore(filepath.Join(t.TempDir(), "preferences"), nil)
	require.NoError(t, err)
	return s
}

func TestPreferencesStore_RoundTrip(t *testing.T) {
	s := newTestPreferencesStore(t)
	profileID := uuid.New()
	moduleID := uuid.New()

	prefs := map[uuid.UUID]profile.ModulePreferences{
		moduleID: {
			ExcludedEndpoints: []string{"203.0.113.1:1194"},
			FavoriteServerIDs: []string{"us-east-1", "de-1"},
		},
	}
	require.NoError(t, s.SavePreferences(profileID, prefs))

	loaded, err := s.LoadPreferences(profileID)
	require.NoError(t, err)
	require.Equal(t, prefs, loaded)
}

func TestPreferencesStore_MissingFileIsEmpty(t *testing.T) {
	s := newTestPreferencesStore(t)
	loaded, err := s.LoadPreferences(uuid.New())
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestPreferencesStore_MalformedFile(t *testing.T) {
	s := newTestPreferencesStore(t)
	profileID := uuid.New()
	require.NoError(t, os.WriteFile(s.path(profileID), []byte("{not yaml"), 0600))

	_, err := s.LoadPreferences(profileID)
	require.Error(t, err)
	require.ErrorContains(t, err, common.ErrPreferencesLoad.Error())
}

func TestPreferencesStore_InvalidModuleID(t *testing.T) {
	s := newTestPreferencesStore(t)
	profileID := uuid.New()
	require.NoError(t, os.WriteFile(s.path(profileID),
		[]byte("not-a-uuid:\n  favorite_server_ids: [x]\n"), 0600))

	_, err := s.LoadPreferences(profileID)
	require.Error(t, err)
}

func TestPreferencesStore_SaveOverwrites(t *testing.T) {
	s := newTestPreferencesStore(t)
	profileID := uuid.New()
	moduleID := uuid.New()

	require.NoError(t, s.SavePreferences(profileID, map[uuid.UUID]profile.ModulePreferences{
		moduleID: {FavoriteServerIDs: []string{"a"}},
	}))
	require.NoError(t, s.SavePreferences(profileID, map[uuid.UUID]profile.ModulePreferences{
		moduleID: {FavoriteServerIDs: []string{"b"}},
	}))

	loaded, err := s.LoadPreferences(profileID)
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, loaded[moduleID].FavoriteServerIDs)

	// No temporary files are left behind.
	entries, err := os.ReadDir(filepath.Dir(s.path(profileID)))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
