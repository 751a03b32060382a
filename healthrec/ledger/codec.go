package ledger

import (
	"encoding/binary"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	"github.com/pkg/errors"
)

// Account payloads use a canonical, versioned binary layout so that serialization is
// deterministic and the stored size is bounded by the arena capacity.
const accountVersion = 1

var (
	// ErrUnexpectedVersion indicates an account payload with an unsupported version byte.
	ErrUnexpectedVersion = errors.New("unexpected account version")

	// ErrMalformedAccount indicates an account payload that cannot be parsed.
	ErrMalformedAccount = errors.New("malformed account payload")
)

// MarshalConfig serializes a Config into its canonical account form.
func MarshalConfig(c *Config) []byte {
	buf := make([]byte, 0, 1+key.PublicKeyLength+1)
	buf = append(buf, accountVersion)
	buf = append(buf, c.Admin[:]...)
	buf = append(buf, c.Bump)
	return buf
}

// UnmarshalConfig parses a canonical Config account payload.
func UnmarshalConfig(data []byte) (*Config, error) {
	if len(data) != 1+key.PublicKeyLength+1 {
		return nil, ErrMalformedAccount
	}
	if data[0] != accountVersion {
		return nil, ErrUnexpectedVersion
	}
	admin, err := key.FromBytes(data[1 : 1+key.PublicKeyLength])
	if err != nil {
		return nil, err
	}
	return &Config{Admin: admin, Bump: data[len(data)-1]}, nil
}

// MarshalRecord serializes a Record into its canonical account form.
func MarshalRecord(r *Record) []byte {
	buf := make([]byte, 0, recordSize(r))
	buf = append(buf, accountVersion)
	buf = append(buf, r.Owner[:]...)
	buf = appendSized(buf, []byte(r.CID))
	buf = appendSized(buf, []byte(r.Title))
	buf = binary.BigEndian.AppendUint64(buf, uint64(r.CreatedAt))
	buf = binary.BigEndian.AppendUint16(buf, uint16(r.NumEntries))
	for i := 0; i < r.NumEntries; i++ {
		e := &r.Entries[i]
		buf = append(buf, e.Recipient[:]...)
		buf = appendSized(buf, e.EncryptedKey)
		if e.Revoked {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return buf
}

// UnmarshalRecord parses a canonical Record account payload, enforcing the same bounds the
// instructions enforce so a corrupt account cannot smuggle oversized fields back into memory.
func UnmarshalRecord(data []byte) (*Record, error) {
	if len(data) < 1+key.PublicKeyLength {
		return nil, ErrMalformedAccount
	}
	if data[0] != accountVersion {
		return nil, ErrUnexpectedVersion
	}
	offset := 1
	owner, err := key.FromBytes(data[offset : offset+key.PublicKeyLength])
	if err != nil {
		return nil, err
	}
	offset += key.PublicKeyLength

	cid, offset, err := readSized(data, offset, MaxCIDLen)
	if err != nil {
		return nil, err
	}
	title, offset, err := readSized(data, offset, MaxTitleLen)
	if err != nil {
		return nil, err
	}
	if len(data) < offset+8+2 {
		return nil, ErrMalformedAccount
	}
	createdAt := int64(binary.BigEndian.Uint64(data[offset:]))
	offset += 8
	nEntries := int(binary.BigEndian.Uint16(data[offset:]))
	offset += 2
	if nEntries > MaxRecipients {
		return nil, ErrMalformedAccount
	}

	r := &Record{
		Owner:      owner,
		CID:        string(cid),
		Title:      string(title),
		CreatedAt:  createdAt,
		NumEntries: nEntries,
	}
	for i := 0; i < nEntries; i++ {
		if len(data) < offset+key.PublicKeyLength {
			return nil, ErrMalformedAccount
		}
		recipient, err := key.FromBytes(data[offset : offset+key.PublicKeyLength])
		if err != nil {
			return nil, err
		}
		offset += key.PublicKeyLength
		encKey, next, err := readSized(data, offset, MaxEncryptedKeyLen)
		if err != nil {
			return nil, err
		}
		offset = next
		if len(data) < offset+1 {
			return nil, ErrMalformedAccount
		}
		r.Entries[i] = AccessEntry{
			Recipient:    recipient,
			EncryptedKey: encKey,
			Revoked:      data[offset] == 1,
		}
		offset++
	}
	if offset != len(data) {
		return nil, ErrMalformedAccount
	}
	return r, nil
}

func recordSize(r *Record) int {
	size := 1 + key.PublicKeyLength + 2 + len(r.CID) + 2 + len(r.Title) + 8 + 2
	for i := 0; i < r.NumEntries; i++ {
		size += key.PublicKeyLength + 2 + len(r.Entries[i].EncryptedKey) + 1
	}
	return size
}

func appendSized(buf, field []byte) []byte {
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(field)))
	return append(buf, field...)
}

func readSized(data []byte, offset, maxLen int) ([]byte, int, error) {
	if len(data) < offset+2 {
		return nil, 0, ErrMalformedAccount
	}
	fieldLen := int(binary.BigEndian.Uint16(data[offset:]))
	offset += 2
	if fieldLen > maxLen || len(data) < offset+fieldLen {
		return nil, 0, ErrMalformedAccount
	}
	field := make([]byte, fieldLen)
	copy(field, data[offset:offset+fieldLen])
	return field, offset + fieldLen, nil
}
