package ledger

import (
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
)

const (
	// MaxCIDLen is the max length (in bytes) of a record's content identifier.
	MaxCIDLen = 64

	// MaxTitleLen is the max length (in bytes) of a record's title.
	MaxTitleLen = 64

	// MaxEncryptedKeyLen is the max length (in bytes) of a wrapped content key.
	MaxEncryptedKeyLen = 512

	// MaxRecipients is the max number of access entries a record can hold.
	MaxRecipients = 10
)

// Config is the singleton ledger configuration account.
type Config struct {
	// Admin is the identity that initialized the ledger.
	Admin key.PublicKey

	// Bump is the derivation salt of the config account address.
	Bump byte
}

// AccessEntry records that a recipient holds a wrapped copy of a record's content key. A revoked
// entry is a tombstone: it stays in place with Revoked set and its EncryptedKey bytes unchanged.
type AccessEntry struct {
	Recipient    key.PublicKey
	EncryptedKey []byte
	Revoked      bool
}

// Record is the per-document ledger account. Its access list is a fixed-capacity arena rather
// than a growing collection, so the serialized account size stays bounded by construction.
type Record struct {
	// Owner is the identity that created the record; immutable after creation.
	Owner key.PublicKey

	// CID is the content identifier of the encrypted payload envelope in the content store.
	CID string

	// Title is the record's display title.
	Title string

	// CreatedAt is the ledger-observed creation time (Unix seconds).
	CreatedAt int64

	// NumEntries is the number of populated entries in the arena.
	NumEntries int

	// Entries is the access entry arena; only Entries[:NumEntries] are populated.
	Entries [MaxRecipients]AccessEntry
}

// AccessEntries returns the populated access entries.
func (r *Record) AccessEntries() []AccessEntry {
	return r.Entries[:r.NumEntries]
}

// findEntry returns the index of the entry for the recipient, or -1 when absent. Grants upsert,
// so at most one entry per recipient exists.
func (r *Record) findEntry(recipient key.PublicKey) int {
	for i := 0; i < r.NumEntries; i++ {
		if r.Entries[i].Recipient == recipient {
			return i
		}
	}
	return -1
}

// appendEntry adds a non-revoked entry to the arena. The caller is responsible for the capacity
// check.
func (r *Record) appendEntry(recipient key.PublicKey, encryptedKey []byte) {
	r.Entries[r.NumEntries] = AccessEntry{
		Recipient:    recipient,
		EncryptedKey: encryptedKey,
	}
	r.NumEntries++
}
