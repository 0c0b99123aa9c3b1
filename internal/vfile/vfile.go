// Package vfile implements the process-wide virtual-file cache: a named
// blob store used to feed in-memory text into the file loader as if it
// were a real path on disk. Tests use it to inject fixtures; the query
// engine uses it to register in-memory resources under a nominal
// filename. Grounded on cirup_core's file.rs vfile_get/vfile_set, which
// is itself a singleton guarded by a single mutex.
package vfile

import "sync"

var (
	mu    sync.Mutex
	cache = make(map[string]string)
)

// Set inserts or overwrites the blob stored under id.
func Set(id, data string) {
	mu.Lock()
	defer mu.Unlock()
	cache[id] = data
}

// Get returns the blob stored under id, or ("", false) if absent.
func Get(id string) (string, bool) {
	mu.Lock()
	defer mu.Unlock()
	data, ok := cache[id]
	return data, ok
}

// Delete removes id from the cache, if present. Not part of the original
// contract but useful for tests that want a clean slate between cases
// without relying on process exit.
func Delete(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(cache, id)
}
