package keyring

import (
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newLocalStore(t *testing.T) *Store {
	t.Helper()
	hash := sha256.Sum256([]byte("test-key-material"))
	return &Store{
		useLocal: true,
		local:    map[string]string{},
		file:     filepath.Join(t.TempDir(), "credentials.enc"),
		key:      hash[:],
	}
}

func TestCredentialKey(t *testing.T) {
	key, err := credentialKey("profile-1", "module-1")
	if err != nil {
		t.Fatalf("credentialKey() error = %v", err)
	}
	if key != "profile-1/module-1" {
		t.Errorf("credentialKey() = %q, want %q", key, "profile-1/module-1")
	}

	if _, err := credentialKey("", "module-1"); err == nil {
		t.Error("credentialKey() accepted an empty profile ID")
	}
	if _, err := credentialKey("profile-1", ""); err == nil {
		t.Error("credentialKey() accepted an empty module ID")
	}
}

func TestStore_LocalRoundTrip(t *testing.T) {
	s := newLocalStore(t)

	if err := s.Store("p1", "m1", "hunter2"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	secret, err := s.Get("p1", "m1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if secret != "hunter2" {
		t.Errorf("Get() = %q, want %q", secret, "hunter2")
	}

	// Same profile, different module: independent credentials.
	if _, err := s.Get("p1", "m2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStore_LocalPersistsEncrypted(t *testing.T) {
	s := newLocalStore(t)
	if err := s.Store("p1", "m1", "hunter2"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	raw, err := os.ReadFile(s.file)
	if err != nil {
		t.Fatalf("reading credentials file: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("credentials file is empty")
	}
	if strings.Contains(string(raw), "hunter2") {
		t.Error("credentials file contains the plaintext secret")
	}

	// A fresh store over the same file and key reads the secret back.
	reloaded := &Store{
		useLocal: true,
		local:    map[string]string{},
		file:     s.file,
		key:      s.key,
	}
	reloaded.loadLocal()
	secret, err := reloaded.Get("p1", "m1")
	if err != nil {
		t.Fatalf("Get() after reload error = %v", err)
	}
	if secret != "hunter2" {
		t.Errorf("Get() after reload = %q, want %q", secret, "hunter2")
	}
}

func TestStore_LocalDelete(t *testing.T) {
	s := newLocalStore(t)
	if err := s.Store("p1", "m1", "hunter2"); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if err := s.Delete("p1", "m1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get("p1", "m1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting a missing secret is not an error.
	if err := s.Delete("p1", "m1"); err != nil {
		t.Errorf("Delete() of missing secret error = %v", err)
	}
}

func TestStore_EmptySecretRejected(t *testing.T) {
	s := newLocalStore(t)
	if err := s.Store("p1", "m1", ""); err == nil {
		t.Error("Store() accepted an empty secret")
	}
}
