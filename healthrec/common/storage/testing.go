package storage

import (
	"sync"
)

// TestSLD is a test StorerLoaderDeleter that stores values in a map and returns configurable
// errors.
type TestSLD struct {
	Stored    map[string][]byte
	LoadErr   error
	StoreErr  error
	DeleteErr error
	mu        sync.Mutex
}

// NewTestSLD creates a new TestSLD.
func NewTestSLD() *TestSLD {
	return &TestSLD{Stored: make(map[string][]byte)}
}

// Load returns the stored value for the key, or LoadErr.
func (l *TestSLD) Load(key []byte) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Stored[string(key)], l.LoadErr
}

// Store records the value for the key and returns StoreErr.
func (l *TestSLD) Store(key []byte, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Stored[string(key)] = value
	return l.StoreErr
}

// Delete removes the value for the key and returns DeleteErr.
func (l *TestSLD) Delete(key []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.Stored, string(key))
	return l.DeleteErr
}
