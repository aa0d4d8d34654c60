package preprocessor

import (
	"os"
	"path/filepath"
)

// FileSystem resolves #include paths to file contents. The production
// driver backs this with the OS filesystem; tests back it with an in-memory
// map, the same seam go-corset's source.File gives its own file loading.
type FileSystem interface {
	ReadFile(path string) ([]byte, bool)
	Dir(path string) string
	Join(dir, name string) string
}

// OSFileSystem reads files directly off disk.
type OSFileSystem struct{}

// ReadFile implements FileSystem.
func (OSFileSystem) ReadFile(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Dir implements FileSystem.
func (OSFileSystem) Dir(path string) string { return filepath.Dir(path) }

// Join implements FileSystem.
func (OSFileSystem) Join(dir, name string) string { return filepath.Join(dir, name) }

// MapFileSystem is an in-memory FileSystem keyed by exact path, used by
// tests and by any embedder that wants to preprocess virtual sources.
type MapFileSystem map[string]string

// ReadFile implements FileSystem.
func (m MapFileSystem) ReadFile(path string) ([]byte, bool) {
	s, ok := m[path]
	return []byte(s), ok
}

// Dir implements FileSystem using slash-separated virtual paths.
func (m MapFileSystem) Dir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

// Join implements FileSystem using slash-separated virtual paths.
func (m MapFileSystem) Join(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return dir + "/" + name
}

// HeaderImporter is the external C-header importer collaborator (spec.md
// §4.9): given a system header name and the active search directories, it
// returns SafeC extern-declaration text to splice in, or ok=false if it
// cannot resolve the header. A nil HeaderImporter is not fatal — the
// preprocessor degrades to an "unresolved include" diagnostic.
type HeaderImporter interface {
	Import(header string, searchDirs []string) (text string, ok bool)
}
