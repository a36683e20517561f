// Package session holds the auth token for the current user. The token is
// the only client-side state that survives restarts: it is written at
// login, read by every authenticated request, and removed at logout. There
// is no expiry handling; a dead token is only discovered when the backend
// rejects it.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/envira/envira-cli/internal/constants"
)

var (
	// ErrNotFound is returned when no token is stored.
	ErrNotFound = errors.New("no stored session token")
)

// Store persists the auth token in the OS keyring, falling back to a
// 0600 file under the config dir on systems without a usable keyring.
type Store struct {
	configDir  string
	useKeyring bool
}

// NewStore probes keyring availability once and picks the backend.
func NewStore(configDir string) *Store {
	return &Store{
		configDir:  configDir,
		useKeyring: keyringAvailable(),
	}
}

func keyringAvailable() bool {
	// A read that comes back ErrNotFound still proves the keyring works.
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || err == keyring.ErrNotFound
}

func (s *Store) tokenFile() string {
	return filepath.Join(s.configDir, "token")
}

// Get returns the stored token, or ErrNotFound.
func (s *Store) Get() (string, error) {
	if s.useKeyring {
		tok, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
		if err != nil {
			if err == keyring.ErrNotFound {
				return "", ErrNotFound
			}
			return "", fmt.Errorf("reading token from keyring: %w", err)
		}
		return tok, nil
	}

	data, err := os.ReadFile(s.tokenFile())
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	tok := strings.TrimSpace(string(data))
	if tok == "" {
		return "", ErrNotFound
	}
	return tok, nil
}

// Set stores the token, replacing any previous one.
func (s *Store) Set(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if s.useKeyring {
		if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, token); err != nil {
			return fmt.Errorf("storing token in keyring: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(s.tokenFile(), []byte(token), 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if s.useKeyring {
		err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
		if err != nil && err != keyring.ErrNotFound {
			return fmt.Errorf("deleting token from keyring: %w", err)
		}
		return nil
	}
	if err := os.Remove(s.tokenFile()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// UsingKeyring reports which backend the store picked; used by doctor.
func (s *Store) UsingKeyring() bool {
	return s.useKeyring
}
