// Package keyring provides secure credential storage for tunnel module
// secrets. It uses the system keyring when available, falling back to
// encrypted local file storage when not.
//
// Secrets are scoped by profile and module, so two tunnel modules of the
// same profile hold independent credentials.
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"

	"github.com/yllada/vpn-composer/common"
)

const (
	// serviceName is the identifier used in the system keyring.
	serviceName = "vpn-composer"
)

// Common errors returned by keyring operations.
var (
	ErrNotFound    = common.ErrCredentialsNotFound
	ErrUnavailable = errors.New("keyring service unavailable")
)

// Store is a credential store backed by the system keyring with an
// encrypted local file fallback. It satisfies common.CredentialStore.
type Store struct {
	mu       sync.RWMutex
	useLocal bool
	local    map[string]string
	file     string
	key      []byte
}

// New creates a credential store. It probes the system keyring once and
// switches to the encrypted file fallback if unavailable.
func New() (*Store, error) {
	s := &Store{}

	probe := serviceName + "-probe"
	if err := keyring.Set(serviceName, probe, "probe"); err == nil {
		keyring.Delete(serviceName, probe)
		return s, nil
	}

	if err := s.initLocal(); err != nil {
		return nil, err
	}
	s.useLocal = true
	return s, nil
}

// Store saves a secret for a module of a profile.
func (s *Store) Store(profileID, moduleID, secret string) error {
	key, err := credentialKey(profileID, moduleID)
	if err != nil {
		return err
	}
	if secret == "" {
		return errors.New("secret cannot be empty")
	}

	if s.useLocal {
		s.mu.Lock()
		s.local[key] = secret
		s.mu.Unlock()
		return s.saveLocal()
	}

	if err := keyring.Set(serviceName, key, secret); err != nil {
		return common.WrapError(err, common.ErrCredentialStorage.Error())
	}
	return nil
}

// Get retrieves the secret for a module of a profile.
func (s *Store) Get(profileID, moduleID string) (string, error) {
	key, err := credentialKey(profileID, moduleID)
	if err != nil {
		return "", err
	}

	if s.useLocal {
		s.mu.RLock()
		secret, ok := s.local[key]
		s.mu.RUnlock()
		if !ok {
			return "", ErrNotFound
		}
		return secret, nil
	}

	secret, err := keyring.Get(serviceName, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", common.WrapError(err, ErrUnavailable.Error())
	}
	return secret, nil
}

// Delete removes the secret for a module of a profile. Deleting a
// missing secret is not an error.
func (s *Store) Delete(profileID, moduleID string) error {
	key, err := credentialKey(profileID, moduleID)
	if err != nil {
		return err
	}

	if s.useLocal {
		s.mu.Lock()
		delete(s.local, key)
		s.mu.Unlock()
		return s.saveLocal()
	}

	if err := keyring.Delete(serviceName, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return common.WrapError(err, ErrUnavailable.Error())
	}
	return nil
}

// credentialKey builds the keyring entry name for a profile/module pair.
func credentialKey(profileID, moduleID string) (string, error) {
	if profileID == "" {
		return "", errors.New("profile ID cannot be empty")
	}
	if moduleID == "" {
		return "", errors.New("module ID cannot be empty")
	}
	return profileID + "/" + moduleID, nil
}

// initLocal prepares the encrypted file fallback. The encryption key is
// derived from machine-specific data, not from a user secret; the goal
// is protection at rest, not against a local attacker with user rights.
func (s *Store) initLocal() error {
	configDir, err := common.GetConfigDir()
	if err != nil {
		return err
	}
	s.file = filepath.Join(configDir, common.CredentialsFileName)

	hostname, _ := os.Hostname()
	machineID := readMachineID()
	keyData := fmt.Sprintf("%s-%s-%s-%d", serviceName, hostname, machineID, os.Getuid())
	hash := sha256.Sum256([]byte(keyData))
	s.key = hash[:]

	s.local = make(map[string]string)
	s.loadLocal()
	return nil
}

func readMachineID() string {
	data, err := os.ReadFile("/etc/machine-id")
	if err == nil {
		return strings.TrimSpace(string(data))
	}
	return "default-machine-id"
}

func (s *Store) loadLocal() {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return
	}
	decrypted, err := s.decrypt(data)
	if err != nil {
		return
	}
	json.Unmarshal(decrypted, &s.local)
}

func (s *Store) saveLocal() error {
	s.mu.RLock()
	data, err := json.Marshal(s.local)
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	encrypted, err := s.encrypt(data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.file, encrypted, 0600)
}

func (s *Store) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

func (s *Store) decrypt(data []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
