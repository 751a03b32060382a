package store

import (
	"context"
	"crypto/sha256"
	"math/rand"
	"testing"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/db"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/storage"
	"github.com/stretchr/testify/assert"
)

func TestLocalStore_PutGet_ok(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	s := NewLocal(storage.NewContentsSLD(db.NewMemoryDB()))
	payload := make([]byte, 1024)
	_, err := rng.Read(payload)
	assert.Nil(t, err)

	contentID, err := s.Put(context.Background(), payload)
	assert.Nil(t, err)
	assert.NotEmpty(t, contentID)

	stored, err := s.Get(context.Background(), contentID)
	assert.Nil(t, err)
	assert.Equal(t, payload, stored)

	// identical bytes address identically
	contentID2, err := s.Put(context.Background(), payload)
	assert.Nil(t, err)
	assert.Equal(t, contentID, contentID2)

	assert.True(t, s.IsAvailable(context.Background()))
}

func TestLocalStore_Get_err(t *testing.T) {
	sld := storage.NewContentsSLD(db.NewMemoryDB())
	s := NewLocal(sld)

	// malformed identifier
	payload, err := s.Get(context.Background(), "not a CID")
	assert.Equal(t, ErrInvalidContentID, err)
	assert.Nil(t, payload)

	// identifier of bytes never stored
	absentID, err := NewLocal(storage.NewContentsSLD(db.NewMemoryDB())).
		Put(context.Background(), []byte("never stored here"))
	assert.Nil(t, err)
	payload, err = s.Get(context.Background(), absentID)
	assert.Equal(t, ErrContentNotFound, err)
	assert.Nil(t, payload)

	// stored bytes that no longer hash to their address
	original := []byte("original envelope")
	contentID, err := s.Put(context.Background(), original)
	assert.Nil(t, err)
	digest := sha256.Sum256(original)
	assert.Nil(t, sld.Store(digest[:], []byte("tampered envelope")))
	payload, err = s.Get(context.Background(), contentID)
	assert.Equal(t, ErrContentCorrupted, err)
	assert.Nil(t, payload)
}
