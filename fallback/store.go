// Package fallback is the local data path: a JSON-file store standing in for
// the hosted backend, an in-memory user roster carrying the point ledger and
// a write-through vehicle registry. It powers demo mode and is never
// reconciled with the Postgres-backed repositories.
package fallback

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Store entry names, one file per entry.
const (
	UsersKey    = "app_users"
	VehiclesKey = "vehicles"
)

// Store persists JSON blobs under named keys in a directory. Each key maps
// to a single file rewritten wholesale on every write.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Read unmarshals the entry into v. Returns os.ErrNotExist when the entry
// has never been written.
func (s *Store) Read(key string, v interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) Write(key string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(key), data, 0o644)
}

// Notifier is the toast side-channel surfaced to the UI. Severity is one of
// the models.Severity* values.
type Notifier interface {
	Notify(title, description, severity string)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) Notify(title, description, severity string) {}
