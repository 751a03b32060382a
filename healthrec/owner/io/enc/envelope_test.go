package enc

import (
	"encoding/base64"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelope_MarshalUnmarshal_ok(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	c, err := NewCipher(rng)
	assert.Nil(t, err)
	key, err := GenerateContentKey(rng)
	assert.Nil(t, err)
	env, err := c.Encrypt([]byte("some metabolic panel results"), key)
	assert.Nil(t, err)

	data, err := MarshalEnvelope(env)
	assert.Nil(t, err)

	// wire form uses the three base64 fields
	wire := map[string]string{}
	assert.Nil(t, json.Unmarshal(data, &wire))
	assert.Equal(t, base64.StdEncoding.EncodeToString(env.IV), wire["iv"])
	assert.Equal(t, base64.StdEncoding.EncodeToString(env.Tag), wire["tag"])

	recovered, err := UnmarshalEnvelope(data)
	assert.Nil(t, err)
	assert.Equal(t, env, recovered)
}

func TestUnmarshalEnvelope_err(t *testing.T) {
	cases := [][]byte{
		[]byte("not json"),
		[]byte(`{"iv": "not base64!", "ciphertext": "", "tag": ""}`),
		[]byte(`{"iv": "", "ciphertext": "not base64!", "tag": ""}`),
		[]byte(`{"iv": "", "ciphertext": "", "tag": "not base64!"}`),
		[]byte(`{"iv": "", "ciphertext": "", "tag": ""}`), // wrong field lengths
	}
	for _, data := range cases {
		env, err := UnmarshalEnvelope(data)
		assert.Equal(t, ErrMalformedEnvelope, err)
		assert.Nil(t, env)
	}
}
