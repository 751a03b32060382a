package storage

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyChecker(t *testing.T) {
	c := NewEmptyChecker()
	assert.NotNil(t, c.Check(nil))
	assert.NotNil(t, c.Check([]byte{}))
	assert.Nil(t, c.Check([]byte{1}))
}

func TestMaxLengthChecker(t *testing.T) {
	c := NewMaxLengthChecker(4)
	assert.NotNil(t, c.Check(nil))
	assert.Nil(t, c.Check([]byte{1}))
	assert.Nil(t, c.Check(bytes.Repeat([]byte{1}, 4)))
	assert.NotNil(t, c.Check(bytes.Repeat([]byte{1}, 5)))
}

func TestExactLengthChecker(t *testing.T) {
	c := NewExactLengthChecker(4)
	assert.NotNil(t, c.Check(nil))
	assert.NotNil(t, c.Check([]byte{1}))
	assert.Nil(t, c.Check(bytes.Repeat([]byte{1}, 4)))
	assert.NotNil(t, c.Check(bytes.Repeat([]byte{1}, 5)))
}

func TestHashKeyValueChecker(t *testing.T) {
	c := NewHashKeyValueChecker()
	value := []byte("some value")
	hash := sha256.Sum256(value)
	assert.Nil(t, c.Check(hash[:], value))
	assert.NotNil(t, c.Check([]byte("not the hash"), value))
}
