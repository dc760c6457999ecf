// Package objecturl is an in-memory table of transient references to
// uploaded bytes, shaped after the browser's object URL API.
package objecturl

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheme prefixes every URL handed out by a Table.
const Scheme = "blob:"

// Object is the content behind one URL.
type Object struct {
	Data        []byte
	ContentType string
	Created     time.Time
}

// Table maps URLs to their content. The zero value is not usable; use New.
type Table struct {
	mu      sync.RWMutex
	objects map[string]Object
}

// New creates an empty table.
func New() *Table {
	return &Table{objects: make(map[string]Object)}
}

// Create stores data and returns a fresh URL for it. The caller owns the URL
// and must Revoke it once it is no longer displayed.
func (t *Table) Create(data []byte, contentType string) string {
	url := Scheme + uuid.NewString()

	t.mu.Lock()
	t.objects[url] = Object{Data: data, ContentType: contentType, Created: time.Now()}
	t.mu.Unlock()

	return url
}

// Resolve returns the content behind url.
func (t *Table) Resolve(url string) (Object, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	obj, ok := t.objects[url]
	return obj, ok
}

// Revoke releases url. Revoking an unknown or already revoked URL is a no-op.
func (t *Table) Revoke(url string) {
	if url == "" {
		return
	}
	t.mu.Lock()
	delete(t.objects, url)
	t.mu.Unlock()
}

// Len returns the number of live URLs.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.objects)
}

// ID strips the scheme, leaving the part safe to put in a path segment.
func ID(url string) string {
	return strings.TrimPrefix(url, Scheme)
}

// FromID is the inverse of ID.
func FromID(id string) string {
	return Scheme + id
}
