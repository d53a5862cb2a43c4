package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Keys of the durable client storage layout. The flat token keys and the
// namespaced auth blob are both written so the layout matches what the rest
// of the deployment tooling expects to find.
const (
	KeyToken             = "token"
	KeyRefreshToken      = "refreshToken"
	KeyAuthState         = "snc.auth"
	KeyFailedAttempts    = "failedLoginAttempts"
	KeyLastFailedAttempt = "lastFailedAttempt"
)

// Storage is the durable key/value store behind the credential store. No
// component outside this package touches it directly.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStorage persists the key/value map as a single JSON file on an afero
// filesystem. Tests use afero.NewMemMapFs; production uses the OS
// filesystem under the configured data folder.
type FileStorage struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates a file-backed storage at path. The parent
// directory is created on first write.
func NewFileStorage(fs afero.Fs, path string) *FileStorage {
	return &FileStorage{fs: fs, path: path}
}

func (fs *FileStorage) Get(key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	kv, err := fs.load()
	if err != nil {
		return "", false, err
	}
	v, ok := kv[key]
	return v, ok, nil
}

func (fs *FileStorage) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	kv, err := fs.load()
	if err != nil {
		return err
	}
	kv[key] = value
	return fs.save(kv)
}

func (fs *FileStorage) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	kv, err := fs.load()
	if err != nil {
		return err
	}
	if _, ok := kv[key]; !ok {
		return nil
	}
	delete(kv, key)
	return fs.save(kv)
}

func (fs *FileStorage) load() (map[string]string, error) {
	data, err := afero.ReadFile(fs.fs, fs.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileStorage.load] failed to read storage file")
	}
	kv := map[string]string{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &kv); err != nil {
			return nil, errors.Wrap(err, "[FileStorage.load] storage file is corrupt")
		}
	}
	return kv, nil
}

func (fs *FileStorage) save(kv map[string]string) error {
	data, err := json.MarshalIndent(kv, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileStorage.save] failed to encode storage")
	}
	if err := fs.fs.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileStorage.save] failed to create storage folder")
	}
	if err := afero.WriteFile(fs.fs, fs.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStorage.save] failed to write storage file")
	}
	return nil
}
