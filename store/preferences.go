// Package store provides the persistence collaborators.
// This file contains the YAML file-backed preferences store.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yllada/vpn-composer/common"
	"github.com/yllada/vpn-composer/profile"
)

// PreferencesStore persists per-profile module preferences as one YAML
// file per profile id. It satisfies profile.PreferencesStore.
type PreferencesStore struct {
	dir    string
	logger common.Logger
}

// NewPreferencesStore creates a preferences store rooted at dir,
// creating the directory if needed.
func NewPreferencesStore(dir string, logger common.Logger) (*PreferencesStore, error) {
	if logger == nil {
		logger = common.NopLogger
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, common.WrapError(err, "failed to create preferences directory")
	}
	return &PreferencesStore{dir: dir, logger: logger}, nil
}

// LoadPreferences returns the module preferences of a profile. A missing
// file yields empty preferences; a malformed file is an error.
func (s *PreferencesStore) LoadPreferences(profileID uuid.UUID) (map[uuid.UUID]profile.ModulePreferences, error) {
	data, err := os.ReadFile(s.path(profileID))
	if os.IsNotExist(err) {
		return map[uuid.UUID]profile.ModulePreferences{}, nil
	}
	if err != nil {
		return nil, common.WrapError(err, common.ErrPreferencesLoad.Error())
	}

	var raw map[string]profile.ModulePreferences
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, common.WrapError(err, common.ErrPreferencesLoad.Error())
	}

	out := make(map[uuid.UUID]profile.ModulePreferences, len(raw))
	for key, prefs := range raw {
		moduleID, err := uuid.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("%v: invalid module id %q", common.ErrPreferencesLoad, key)
		}
		out[moduleID] = prefs
	}
	return out, nil
}

// SavePreferences persists the module preferences of a profile. The file
// is written to a temporary name first and renamed into place.
func (s *PreferencesStore) SavePreferences(profileID uuid.UUID, prefs map[uuid.UUID]profile.ModulePreferences) error {
	raw := make(map[string]profile.ModulePreferences, len(prefs))
	for moduleID, p := range prefs {
		raw[moduleID.String()] = p
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return common.WrapError(err, common.ErrPreferencesSave.Error())
	}

	path := s.path(profileID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return common.WrapError(err, common.ErrPreferencesSave.Error())
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return common.WrapError(err, common.ErrPreferencesSave.Error())
	}
	return nil
}

func (s *PreferencesStore) path(profileID uuid.UUID) string {
	return filepath.Join(s.dir, profileID.String()+".yaml")
}
