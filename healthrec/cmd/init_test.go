package cmd

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/keychain"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestKeychainCreator_create_ok(t *testing.T) {
	keychainDir := t.TempDir()
	viper.Set(dataDirFlag, t.TempDir())
	viper.Set(keychainDirFlag, keychainDir)
	viper.Set(logLevelFlag, "info")

	kc := &keychainCreatorImpl{
		ps:      &fixedPassphraseSetter{passphrase: "some test passphrase"},
		scryptN: keychain.VeryLightScryptN,
		scryptP: keychain.VeryLightScryptP,
	}
	err := kc.create()
	assert.Nil(t, err)

	// should error once the keychain exists
	err = kc.create()
	assert.Equal(t, errKeychainExists, err)
}

func TestKeychainCreator_create_err(t *testing.T) {
	viper.Set(dataDirFlag, t.TempDir())
	viper.Set(keychainDirFlag, t.TempDir())
	viper.Set(logLevelFlag, "info")

	// passphrase setter error should bubble up
	kc := &keychainCreatorImpl{
		ps: &fixedPassphraseSetter{err: errors.New("some set error")},
	}
	err := kc.create()
	assert.NotNil(t, err)
}

type fixedPassphraseSetter struct {
	passphrase string
	err        error
}

func (s *fixedPassphraseSetter) set() (string, error) {
	return s.passphrase, s.err
}

type fixedPassphraseGetter struct {
	passphrase string
	err        error
}

func (g *fixedPassphraseGetter) get() (string, error) {
	return g.passphrase, g.err
}

func TestPassphraseSetter_set_ok(t *testing.T) {
	setPassphrase := "some passphrase"
	viper.Set(passphraseVar, setPassphrase)

	// check can get passphrase from viper
	ps1 := &passphraseSetterImpl{}
	pass1, err := ps1.set()
	assert.Nil(t, err)
	assert.Equal(t, setPassphrase, pass1)

	// check can get passphrase from input
	viper.Set(passphraseVar, "")
	ps2 := &passphraseSetterImpl{
		pg1:    &fixedPassphraseGetter{passphrase: setPassphrase},
		pg2:    &fixedPassphraseGetter{passphrase: setPassphrase},
		reader: bufio.NewReader(bytes.NewBuffer([]byte(recordedInput + "\n"))),
	}
	pass2, err := ps2.set()
	assert.Nil(t, err)
	assert.Equal(t, setPassphrase, pass2)
}

func TestPassphraseSetter_set_err(t *testing.T) {
	setPassphrase := "some passphrase"
	viper.Set(passphraseVar, "")

	ps1 := &passphraseSetterImpl{
		pg1: &fixedPassphraseGetter{err: errors.New("some get error")},
	}
	pass1, err := ps1.set()
	assert.NotNil(t, err)
	assert.Zero(t, pass1)

	ps2 := &passphraseSetterImpl{
		pg1: &fixedPassphraseGetter{passphrase: setPassphrase},
		pg2: &fixedPassphraseGetter{err: errors.New("some get error")},
	}
	pass2, err := ps2.set()
	assert.NotNil(t, err)
	assert.Zero(t, pass2)

	ps3 := &passphraseSetterImpl{
		pg1: &fixedPassphraseGetter{passphrase: setPassphrase},
		pg2: &fixedPassphraseGetter{passphrase: "something different"},
	}
	pass3, err := ps3.set()
	assert.Equal(t, errMismatchedPassphrase, err)
	assert.Zero(t, pass3)

	ps4 := &passphraseSetterImpl{
		pg1:    &fixedPassphraseGetter{passphrase: setPassphrase},
		pg2:    &fixedPassphraseGetter{passphrase: setPassphrase},
		reader: bufio.NewReader(bytes.NewBuffer([]byte("NOT RECORDED\n"))),
	}
	pass4, err := ps4.set()
	assert.Equal(t, errConfirmationNotRecorded, err)
	assert.Zero(t, pass4)
}
