package enc

import (
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedEnvelope indicates envelope bytes that do not parse or whose fields have
	// the wrong lengths.
	ErrMalformedEnvelope = errors.New("malformed content envelope")
)

// Envelope holds the output of one authenticated encryption: the three fields are kept
// separate rather than concatenated, and their serialized form is the exact byte sequence
// handed to the content-addressed store.
type Envelope struct {
	IV         []byte
	Ciphertext []byte
	Tag        []byte
}

type envelopeJSON struct {
	IV         string `json:"iv"`
	Ciphertext string `json:"ciphertext"`
	Tag        string `json:"tag"`
}

// MarshalEnvelope serializes the envelope to its JSON wire form with base64-encoded fields.
func MarshalEnvelope(env *Envelope) ([]byte, error) {
	return json.Marshal(&envelopeJSON{
		IV:         base64.StdEncoding.EncodeToString(env.IV),
		Ciphertext: base64.StdEncoding.EncodeToString(env.Ciphertext),
		Tag:        base64.StdEncoding.EncodeToString(env.Tag),
	})
}

// UnmarshalEnvelope deserializes and validates an envelope from its JSON wire form.
func UnmarshalEnvelope(data []byte) (*Envelope, error) {
	wire := &envelopeJSON{}
	if err := json.Unmarshal(data, wire); err != nil {
		return nil, ErrMalformedEnvelope
	}
	iv, err := base64.StdEncoding.DecodeString(wire.IV)
	if err != nil {
		return nil, ErrMalformedEnvelope
	}
	ciphertext, err := base64.StdEncoding.DecodeString(wire.Ciphertext)
	if err != nil {
		return nil, ErrMalformedEnvelope
	}
	tag, err := base64.StdEncoding.DecodeString(wire.Tag)
	if err != nil {
		return nil, ErrMalformedEnvelope
	}
	if len(iv) != IVLength || len(tag) != TagLength {
		return nil, ErrMalformedEnvelope
	}
	return &Envelope{IV: iv, Ciphertext: ciphertext, Tag: tag}, nil
}
