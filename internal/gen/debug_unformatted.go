package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, debugFilename(filename)), content, filePerm)
}

// debugFilename keeps a .go suffix so editors can syntax highlight, but the
// build ignores it.
func debugFilename(filename string) string {
	return "_" + strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}
