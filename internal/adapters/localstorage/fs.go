package localstorage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStorage implements ports.Storage for the local filesystem.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

// InitJob creates the job directory.
func (s *LocalStorage) InitJob(ctx context.Context, jobID string) error {
	path := s.GetJobPath(jobID)
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create job directory %s: %w", path, err)
	}
	return nil
}

// SaveInput saves the job input.
func (s *LocalStorage) SaveInput(ctx context.Context, jobID string, data []byte) error {
	return s.write(jobID, "input.json", data)
}

// SaveResult saves the raw backend response.
func (s *LocalStorage) SaveResult(ctx context.Context, jobID string, data []byte) error {
	return s.write(jobID, "result_raw.json", data)
}

// GetJobPath returns the path for a job directory.
func (s *LocalStorage) GetJobPath(jobID string) string {
	return filepath.Join(s.BaseDir, "jobs", jobID)
}

func (s *LocalStorage) write(jobID, name string, data []byte) error {
	path := filepath.Join(s.GetJobPath(jobID), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	return nil
}
