package gen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes a generated file to the output directory and returns its
// path. It creates the directory if it doesn't exist and removes a debug
// sidecar left by an earlier failed run.
func WriteFile(file *GeneratedFile, outputDir string) (string, error) {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	outputPath := filepath.Join(outputDir, file.Filename)

	err = os.WriteFile(outputPath, file.Content, filePerm)
	if err != nil {
		return "", fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	err = os.Remove(filepath.Join(outputDir, debugFilename(file.Filename)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return outputPath, fmt.Errorf("removing debug file: %w", err)
	}

	return outputPath, nil
}
