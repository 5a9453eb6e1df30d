package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
)

// File keeps all keys in a single JSON object on disk. The whole file is
// rewritten on every SetString, which is fine at the write rates a manual
// trade journal sees.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) GetString(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := f.load()
	v, ok := data[key]
	return v, ok
}

func (f *File) SetString(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := f.load()
	data[key] = value

	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		slog.Error("store: marshal", "path", f.path, "err", err)
		return
	}
	if err := os.WriteFile(f.path, buf, 0644); err != nil {
		slog.Error("store: write", "path", f.path, "err", err)
	}
}

func (f *File) load() map[string]string {
	data := map[string]string{}

	buf, err := os.ReadFile(f.path)
	if err != nil {
		// Missing file is the empty store.
		if !os.IsNotExist(err) {
			slog.Error("store: read", "path", f.path, "err", err)
		}
		return data
	}
	if err := json.Unmarshal(buf, &data); err != nil {
		slog.Error("store: parse", "path", f.path, "err", err)
		return map[string]string{}
	}
	return data
}
