package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per player.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(username string) string {
	return filepath.Join(s.dir, username+".json")
}

func (s *FileStore) Save(_ context.Context, data PlayerSaveData) error {
	if err := checkUsername(data.Username); err != nil {
		return err
	}
	// Ensure dir exists
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	// Write next to the target and rename so a crash never leaves a
	// truncated save.
	tmp, err := os.CreateTemp(s.dir, data.Username+".*.tmp")
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode %s: %w", data.Username, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(data.Username))
}

func (s *FileStore) Load(_ context.Context, username string) (*PlayerSaveData, error) {
	if err := checkUsername(username); err != nil {
		return nil, err
	}
	file, err := os.Open(s.path(username))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer file.Close()

	var data PlayerSaveData
	if err := json.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", username, err)
	}
	return &data, nil
}

func (s *FileStore) Close() error { return nil }
