package memstore

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Objects is an in-process object store keyed by path.
type Objects struct {
	mu    sync.Mutex
	blobs map[string][]byte
	types map[string]string

	// UploadErr, when set, fails every upload.
	UploadErr error
}

func NewObjects() *Objects {
	return &Objects{
		blobs: make(map[string][]byte),
		types: make(map[string]string),
	}
}

func (o *Objects) Upload(path, contentType string, data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.UploadErr != nil {
		return o.UploadErr
	}
	o.blobs[path] = append([]byte(nil), data...)
	o.types[path] = contentType
	return nil
}

func (o *Objects) Delete(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.blobs, path)
	delete(o.types, path)
	return nil
}

func (o *Objects) Download(path string) ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	data, ok := o.blobs[path]
	if !ok {
		return nil, fmt.Errorf("object %s not found", path)
	}
	return append([]byte(nil), data...), nil
}

func (o *Objects) PublicURL(path string) string {
	return "memory://" + path
}

func (o *Objects) ContentType(path string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.types[path]
}

// Paths lists stored paths with the given prefix, sorted.
func (o *Objects) Paths(prefix string) []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	var paths []string
	for p := range o.blobs {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
