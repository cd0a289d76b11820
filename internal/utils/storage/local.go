package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type localStorage struct {
	root string
}

// NewLocalStorage creates root if needed. Callers treat an error as fatal.
func NewLocalStorage(root string) (FileStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("could not initialize storage %s: %w", root, err)
	}
	return &localStorage{root: root}, nil
}

func (s *localStorage) Store(_ context.Context, src io.Reader, originalName string, _ string) (string, error) {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrStoreFile, originalName, err)
	}

	name := GenerateFileName(originalName)
	target := filepath.Join(s.root, name)

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrStoreFile, originalName, err)
	}
	if _, err := io.Copy(file, src); err != nil {
		file.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("%w %s: %v", ErrStoreFile, originalName, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("%w %s: %v", ErrStoreFile, originalName, err)
	}

	return name, nil
}

func (s *localStorage) Open(_ context.Context, storedName string) (io.ReadCloser, error) {
	if !isSafeName(storedName) {
		return nil, ErrFileNotFound
	}
	file, err := os.Open(filepath.Join(s.root, storedName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}
