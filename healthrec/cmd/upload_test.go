package cmd

import (
	"math/rand"
	"testing"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestUploadFile_missingFlags(t *testing.T) {
	viper.Set(filepathFlag, "")
	err := uploadFile()
	assert.Equal(t, errMissingFilepath, err)

	viper.Set(filepathFlag, "some/file")
	viper.Set(titleFlag, "")
	err = uploadFile()
	assert.Equal(t, errMissingTitle, err)
}

func TestParseRecipients(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	kp1 := key.NewPseudoRandomKeypair(rng)
	kp2 := key.NewPseudoRandomKeypair(rng)

	recipients, err := parseRecipients([]string{kp1.ID().String(), kp2.ID().String()})
	assert.Nil(t, err)
	assert.Equal(t, []key.PublicKey{kp1.ID(), kp2.ID()}, recipients)

	recipients, err = parseRecipients(nil)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(recipients))

	_, err = parseRecipients([]string{"not base58 0OIl"})
	assert.Equal(t, key.ErrInvalidPublicKey, err)
}

func TestGetRecordID_err(t *testing.T) {
	viper.Set(recordIDFlag, "")
	_, err := getRecordID()
	assert.Equal(t, errMissingRecordID, err)

	viper.Set(recordIDFlag, "not hex")
	_, err = getRecordID()
	assert.NotNil(t, err)
}

func TestGetRecipient_err(t *testing.T) {
	viper.Set(recipientFlag, "")
	_, err := getRecipient()
	assert.Equal(t, errMissingRecipient, err)
}
