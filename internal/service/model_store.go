package service

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// SaveModels writes the trained model bundle to disk as gob, creating parent
// directories as needed. The write goes through a temp file so a crashed
// save never leaves a truncated artifact behind.
func SaveModels(path string, models *TrainedModels) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(models); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode models: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close model file: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadModels reads a trained model bundle from disk.
func LoadModels(path string) (*TrainedModels, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	var models TrainedModels
	if err := gob.NewDecoder(f).Decode(&models); err != nil {
		return nil, fmt.Errorf("decode models: %w", err)
	}
	return &models, nil
}
