package store

import (
	"bytes"
	"context"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/storage"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// localStore is a Store backed by the local KVDB contents namespace. Content identifiers
// are CIDv1 strings over the raw codec and a SHA-256 multihash, so localStore addresses are
// interchangeable with those an IPFS node would assign the same bytes.
type localStore struct {
	sld storage.NamespaceSLD
}

// NewLocal creates a Store on top of the local contents namespace.
func NewLocal(sld storage.NamespaceSLD) Store {
	return &localStore{sld: sld}
}

func (s *localStore) Put(_ context.Context, payload []byte) (string, error) {
	id, digest, err := contentID(payload)
	if err != nil {
		return "", err
	}
	if err := s.sld.Store(digest, payload); err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *localStore) Get(_ context.Context, contentID string) ([]byte, error) {
	id, err := cid.Decode(contentID)
	if err != nil {
		return nil, ErrInvalidContentID
	}
	decoded, err := multihash.Decode(id.Hash())
	if err != nil || decoded.Code != multihash.SHA2_256 {
		return nil, ErrInvalidContentID
	}
	payload, err := s.sld.Load(decoded.Digest)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, ErrContentNotFound
	}
	// the address doubles as an integrity check on what comes back out
	_, digest, err := contentID(payload)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(digest, decoded.Digest) {
		return nil, ErrContentCorrupted
	}
	return payload, nil
}

func (s *localStore) IsAvailable(_ context.Context) bool {
	return true
}

func contentID(payload []byte) (cid.Cid, []byte, error) {
	hash, err := multihash.Sum(payload, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, nil, err
	}
	decoded, err := multihash.Decode(hash)
	if err != nil {
		return cid.Undef, nil, err
	}
	return cid.NewCidV1(cid.Raw, hash), decoded.Digest, nil
}
