package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

var errCorruptState = errors.New("corrupt state file")

// FileBackend stores values in a TOML file. The file is re-read on every call
// so a later process sees what an earlier one wrote.
type FileBackend struct {
	mu       sync.Mutex
	filePath string
}

// NewFileBackend creates the state directory if needed and returns a backend
// writing to state.toml inside it.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &FileBackend{filePath: filepath.Join(dir, "state.toml")}, nil
}

// Path returns the state file location.
func (f *FileBackend) Path() string { return f.filePath }

func (f *FileBackend) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *FileBackend) Put(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, _, err := f.readForWrite()
	if err != nil {
		return err
	}
	data[key] = value
	return f.write(data)
}

func (f *FileBackend) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, discarded, err := f.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok && !discarded {
		return nil
	}
	delete(data, key)
	return f.write(data)
}

func (f *FileBackend) read() (map[string]string, error) {
	data := make(map[string]string)
	raw, err := os.ReadFile(f.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := toml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode state file: %w: %w", errCorruptState, err)
	}
	return data, nil
}

// readForWrite is read, except an undecodable file is replaced rather than
// blocking every later write.
func (f *FileBackend) readForWrite() (data map[string]string, discarded bool, err error) {
	data, err = f.read()
	if errors.Is(err, errCorruptState) {
		log.Printf("store: discarding unreadable %s: %v", f.filePath, err)
		return make(map[string]string), true, nil
	}
	return data, false, err
}

// write replaces the state file atomically.
func (f *FileBackend) write(data map[string]string) error {
	raw, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.filePath), ".state-*.toml")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.filePath); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
