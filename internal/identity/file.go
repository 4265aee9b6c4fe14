// internal/identity/file.go
package identity

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	stderrors "realty-assistant/internal/common/errors"
)

// FileStore persists identity values in a single JSON file, the platform
// analog of the browser's local storage.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) GetOrCreate(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}

	if id, ok := values[key]; ok && id != "" {
		return id, nil
	}

	id := NewUserID()
	values[key] = id
	if err := s.write(values); err != nil {
		return "", err
	}
	return id, nil
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, stderrors.Wrap(stderrors.ErrCodeIdentityStoreFailed, "read identity file", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt file is replaced on the next write.
		return map[string]string{}, nil
	}
	return values, nil
}

func (s *FileStore) write(values map[string]string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stderrors.Wrap(stderrors.ErrCodeIdentityStoreFailed, "create identity dir", err)
		}
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return stderrors.Wrap(stderrors.ErrCodeIdentityStoreFailed, "encode identity file", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return stderrors.Wrap(stderrors.ErrCodeIdentityStoreFailed, "write identity file", err)
	}
	return nil
}
