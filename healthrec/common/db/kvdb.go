package db

import (
	"io/ioutil"
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/tecbot/gorocksdb"
)

// ErrClosed indicates an operation on a closed database.
var ErrClosed = errors.New("database is closed")

// KVDB is the (thin) abstraction layer of an implementation-agnostic key-value store.
type KVDB interface {
	// Get returns the value for a key.
	Get(key []byte) ([]byte, error)

	// Put stores the value for a key.
	Put(key []byte, value []byte) error

	// Delete removes the value for a key.
	Delete(key []byte) error

	// Iterate iterates through a range of key-value pairs.
	Iterate(keyLB, keyUB []byte, done chan struct{}, callback func(key, value []byte)) error

	// Close gracefully shuts down the database.
	Close()
}

// RocksDB implements the KVDB interface with a thinly wrapped RocksDB instance.
type RocksDB struct {
	rdb *gorocksdb.DB
	ro  *gorocksdb.ReadOptions
	wo  *gorocksdb.WriteOptions
}

// NewRocksDB creates a new RocksDB instance with default read and write options.
func NewRocksDB(dbDir string) (*RocksDB, error) {
	if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
		return nil, err
	}
	options := gorocksdb.NewDefaultOptions()
	options.SetCreateIfMissing(true)
	db, err := gorocksdb.OpenDb(options, dbDir)
	if err != nil {
		return nil, err
	}

	return &RocksDB{
		rdb: db,
		ro:  gorocksdb.NewDefaultReadOptions(),
		wo:  gorocksdb.NewDefaultWriteOptions(),
	}, nil
}

// NewTempDirRocksDB creates a new RocksDB instance (used mostly for local testing) in a local
// temporary directory.
func NewTempDirRocksDB() (*RocksDB, func(), error) {
	dir, err := ioutil.TempDir("", "kvdb-test-rocksdb")
	cleanup := func() {
		rmErr := os.RemoveAll(dir)
		if rmErr != nil {
			panic(rmErr)
		}
	}
	if err != nil {
		return nil, cleanup, err
	}
	rdb, err := NewRocksDB(dir)
	return rdb, cleanup, err
}

// Get returns the value for a key.
func (db *RocksDB) Get(key []byte) ([]byte, error) {
	if db.rdb == nil {
		return nil, ErrClosed
	}
	return db.rdb.GetBytes(db.ro, key)
}

// Put stores the value for a key.
func (db *RocksDB) Put(key []byte, value []byte) error {
	return db.rdb.Put(db.wo, key, value)
}

// Delete removes the value for a key.
func (db *RocksDB) Delete(key []byte) error {
	return db.rdb.Delete(db.wo, key)
}

// Iterate iterates through the key-value pairs in [keyLB, keyUB), calling the callback for each.
func (db *RocksDB) Iterate(
	keyLB, keyUB []byte, done chan struct{}, callback func(key, value []byte),
) error {
	opts := gorocksdb.NewDefaultReadOptions()
	opts.SetIterateUpperBound(keyUB)
	opts.SetFillCache(false)
	iter := db.rdb.NewIterator(opts)
	defer iter.Close()
	defer opts.Destroy()

	iter.Seek(keyLB)
	for ; iter.Valid(); iter.Next() {
		select {
		case <-done:
			return iter.Err()
		default:
			callback(iter.Key().Data(), iter.Value().Data())
		}
	}

	return iter.Err()
}

// Close gracefully shuts down the database.
func (db *RocksDB) Close() {
	db.rdb.Close()
	db.rdb = nil
}

// MemoryDB implements the KVDB interface with an in-memory map. It is safe for concurrent use and
// is intended for tests and ephemeral deployments.
type MemoryDB struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryDB creates a new, empty MemoryDB.
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{data: make(map[string][]byte)}
}

// Get returns the value for a key.
func (db *MemoryDB) Get(key []byte) ([]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return nil, ErrClosed
	}
	value, in := db.data[string(key)]
	if !in {
		return nil, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Put stores the value for a key.
func (db *MemoryDB) Put(key []byte, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrClosed
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	db.data[string(key)] = cp
	return nil
}

// Delete removes the value for a key.
func (db *MemoryDB) Delete(key []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return ErrClosed
	}
	delete(db.data, string(key))
	return nil
}

// Iterate iterates through the key-value pairs in [keyLB, keyUB) in key order, calling the
// callback for each.
func (db *MemoryDB) Iterate(
	keyLB, keyUB []byte, done chan struct{}, callback func(key, value []byte),
) error {
	db.mu.RLock()
	if db.closed {
		db.mu.RUnlock()
		return ErrClosed
	}
	keys := make([]string, 0, len(db.data))
	for k := range db.data {
		if k >= string(keyLB) && k < string(keyUB) {
			keys = append(keys, k)
		}
	}
	db.mu.RUnlock()
	sort.Strings(keys)

	for _, k := range keys {
		select {
		case <-done:
			return nil
		default:
			value, err := db.Get([]byte(k))
			if err != nil {
				return err
			}
			callback([]byte(k), value)
		}
	}
	return nil
}

// Close gracefully shuts down the database.
func (db *MemoryDB) Close() {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.closed = true
	db.data = nil
}
