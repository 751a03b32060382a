package storage

import (
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/db"
)

const (
	// MaxNamespaceKeyLength is the max key length (in bytes) for a namespaced store.
	MaxNamespaceKeyLength = 128

	// MaxLedgerValueLength is the max serialized size of a ledger account. It comfortably
	// bounds a full Record with MaxRecipients wrapped-key entries.
	MaxLedgerValueLength = 16 * 1024

	// ContentKeyLength is the fixed length (in bytes) of content store keys, which are
	// SHA-256 hashes of the stored bytes.
	ContentKeyLength = 32

	// MaxContentValueLength is the maximum length of a stored content envelope.
	MaxContentValueLength = 2*1024*1024 + 1024
)

var (
	// Ledger namespace contains the on-ledger config and record accounts.
	Ledger Namespace = []byte("ledger")

	// Client namespace contains values relevant to an owner client, e.g. its self-wrapped
	// content keys.
	Client Namespace = []byte("client")

	// Contents namespace contains locally stored encrypted content envelopes.
	Contents Namespace = []byte("contents")
)

// Namespace denotes a storage namespace, which reduces to a key prefix.
type Namespace []byte

// NamespaceStorer stores a value to durable storage under the configured namespace.
type NamespaceStorer interface {
	// Store a value for the key in the configured namespace.
	Store(key []byte, value []byte) error
}

// NamespaceLoader loads a value in the configured namespace from the durable storage.
type NamespaceLoader interface {
	// Load the value for the key in the configured namespace.
	Load(key []byte) ([]byte, error)
}

// NamespaceDeleter deletes a value in the configured namespace from the durable storage.
type NamespaceDeleter interface {
	Delete(key []byte) error
}

// NamespaceSL both stores and loads values in a configured namespace.
type NamespaceSL interface {
	NamespaceStorer
	NamespaceLoader
}

// NamespaceSLD stores, loads, and deletes values in a configured namespace.
type NamespaceSLD interface {
	NamespaceSL
	NamespaceDeleter
}

type namespaceSLD struct {
	ns  Namespace
	sld StorerLoaderDeleter
}

// NewLedgerSL creates a new NamespaceSL for the "ledger" namespace backed by a db.KVDB instance.
func NewLedgerSL(kvdb db.KVDB) NamespaceSL {
	return &namespaceSLD{
		ns: Ledger,
		sld: NewKVDBStorerLoaderDeleter(
			Ledger,
			kvdb,
			NewMaxLengthChecker(MaxNamespaceKeyLength),
			NewMaxLengthChecker(MaxLedgerValueLength),
		),
	}
}

// NewClientSL creates a new NamespaceSL for the "client" namespace backed by a db.KVDB instance.
func NewClientSL(kvdb db.KVDB) NamespaceSL {
	return &namespaceSLD{
		ns: Client,
		sld: NewKVDBStorerLoaderDeleter(
			Client,
			kvdb,
			NewMaxLengthChecker(MaxNamespaceKeyLength),
			NewMaxLengthChecker(MaxLedgerValueLength),
		),
	}
}

// NewContentsSLD creates a new NamespaceSLD for the "contents" namespace backed by a db.KVDB
// instance. Keys are required to be SHA-256 hashes.
func NewContentsSLD(kvdb db.KVDB) NamespaceSLD {
	return &namespaceSLD{
		ns: Contents,
		sld: NewKVDBStorerLoaderDeleter(
			Contents,
			kvdb,
			NewExactLengthChecker(ContentKeyLength),
			NewMaxLengthChecker(MaxContentValueLength),
		),
	}
}

func (nsl *namespaceSLD) Store(key []byte, value []byte) error {
	return nsl.sld.Store(key, value)
}

func (nsl *namespaceSLD) Load(key []byte) ([]byte, error) {
	return nsl.sld.Load(key)
}

func (nsl *namespaceSLD) Delete(key []byte) error {
	return nsl.sld.Delete(key)
}
