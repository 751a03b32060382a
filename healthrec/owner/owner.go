package owner

import (
	"context"
	crand "crypto/rand"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/db"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/id"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/storage"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/ledger"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/io/enc"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/io/store"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/io/wrap"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/keychain"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrNoAccess indicates a Download of a record for which the client holds no active
	// access entry.
	ErrNoAccess = errors.New("no active access entry for this client")

	// ErrStoreUnavailable indicates an Upload attempted while the content store is
	// unreachable.
	ErrStoreUnavailable = errors.New("content store unavailable")
)

// Owner is the main client of the health record system. It encrypts and uploads record
// content, downloads and decrypts what has been shared with it, and manages grants on the
// records it owns.
type Owner struct {
	// clientID is the signing keypair identifying this client on the ledger
	clientID *key.Keypair

	// Config holds the configuration parameters of the client
	config *Config

	// collection of signing keys this client may act as; clientID is one of them
	keys *keychain.Keychain

	// key-value store DB used for all local storage
	db db.KVDB

	// SL for client data, e.g. self-wrapped content keys
	clientSL storage.NamespaceSL

	// access-control ledger the client submits record transactions to
	ledger *ledger.Ledger

	// content-addressed store holding encrypted envelopes
	store store.Store

	// authenticated symmetric encryption of record content
	cipher *enc.Cipher

	// wraps content keys for recipients
	protocol *wrap.Protocol

	// cache of fetched content envelopes, keyed by content identifier
	envelopes *lru.Cache

	// logger for this instance
	logger *zap.Logger
}

// NewOwner creates a new *Owner from the Config, decrypting the keychain with the supplied
// auth string.
func NewOwner(
	config *Config, keychainAuth string, ldgr *ledger.Ledger, logger *zap.Logger,
) (*Owner, error) {
	rdb, err := db.NewRocksDB(config.DbDir)
	if err != nil {
		logger.Error("unable to init RocksDB", zap.Error(err))
		return nil, err
	}
	clientSL := storage.NewClientSL(rdb)

	keys, err := loadKeychain(config.KeychainDir, keychainAuth)
	if err != nil {
		return nil, err
	}
	clientID, err := loadOrCreateClientID(logger, clientSL, keys)
	if err != nil {
		return nil, err
	}

	cipher, err := enc.NewCipher(crand.Reader)
	if err != nil {
		return nil, err
	}
	protocol, err := wrap.NewProtocol(crand.Reader)
	if err != nil {
		return nil, err
	}
	envelopes, err := lru.New(config.EnvelopeCacheSize)
	if err != nil {
		return nil, err
	}

	contentStore := store.NewIPFS(config.StoreAPIAddr, config.StorePutTimeout)
	if !contentStore.IsAvailable(context.Background()) {
		logger.Info("content store node unreachable, using local content store",
			zap.String(LoggerStoreAPIAddr, config.StoreAPIAddr))
		contentStore = store.NewLocal(storage.NewContentsSLD(rdb))
	}

	return &Owner{
		clientID:  clientID,
		config:    config,
		keys:      keys,
		db:        rdb,
		clientSL:  clientSL,
		ledger:    ldgr,
		store:     contentStore,
		cipher:    cipher,
		protocol:  protocol,
		envelopes: envelopes,
		logger:    logger,
	}, nil
}

// ID returns the public key identity of the client.
func (o *Owner) ID() key.PublicKey {
	return o.clientID.ID()
}

// Upload encrypts the content under a fresh content key, stores the envelope in the content
// store, wraps the key for each recipient, and creates the ledger record. It returns the
// new record ID and the content identifier.
func (o *Owner) Upload(
	ctx context.Context, content []byte, title string, recipients []key.PublicKey,
) (id.ID, string, error) {
	if !o.store.IsAvailable(ctx) {
		return id.ID{}, "", ErrStoreUnavailable
	}
	contentKey, err := enc.GenerateContentKey(crand.Reader)
	if err != nil {
		return id.ID{}, "", err
	}
	defer zero(contentKey)

	envelope, err := o.cipher.Encrypt(content, contentKey)
	if err != nil {
		return id.ID{}, "", err
	}
	envelopeBytes, err := enc.MarshalEnvelope(envelope)
	if err != nil {
		return id.ID{}, "", err
	}

	// the content identifier must be durable before the ledger transaction references it
	contentID, err := o.store.Put(ctx, envelopeBytes)
	if err != nil {
		return id.ID{}, "", err
	}

	encryptedKeys := make([][]byte, len(recipients))
	for i, recipient := range recipients {
		wrapped, err := o.protocol.Wrap(contentKey, o.clientID.PrivateKey,
			recipient.Public())
		if err != nil {
			return id.ID{}, "", err
		}
		encryptedKeys[i] = wrapped.Packed()
	}

	recordID := id.NewRandom()

	// self-wrapped copy stays local so the client can re-wrap for future grants without
	// keeping the raw content key around
	selfWrapped, err := o.protocol.Wrap(contentKey, o.clientID.PrivateKey,
		o.clientID.PublicKey)
	if err != nil {
		return id.ID{}, "", err
	}
	if err = saveSelfWrappedKey(o.clientSL, recordID, selfWrapped.Packed()); err != nil {
		return id.ID{}, "", err
	}

	if _, err = o.ledger.CreateRecord(o.ID(), recordID, contentID, title, recipients,
		encryptedKeys); err != nil {
		return id.ID{}, "", err
	}
	if err = appendOwnedRecordID(o.clientSL, recordID); err != nil {
		return id.ID{}, "", err
	}

	o.logger.Info("uploaded record",
		zap.String(LoggerRecordID, recordID.String()),
		zap.String(LoggerContentID, contentID),
		zap.Int(LoggerNRecipients, len(recipients)),
	)
	return recordID, contentID, nil
}

// Download fetches the record's envelope from the content store, unwraps the client's copy
// of the content key, and decrypts the content.
func (o *Owner) Download(ctx context.Context, recordID id.ID) ([]byte, error) {
	record, err := o.ledger.GetRecord(recordID)
	if err != nil {
		return nil, err
	}
	packed, err := o.wrappedKeyFor(record, recordID)
	if err != nil {
		return nil, err
	}
	contentKey, err := o.protocol.Unwrap(packed, record.Owner.Public(),
		o.clientID.PrivateKey)
	if err != nil {
		return nil, err
	}
	defer zero(contentKey)

	envelopeBytes, err := o.envelopeBytes(ctx, record.CID)
	if err != nil {
		return nil, err
	}
	envelope, err := enc.UnmarshalEnvelope(envelopeBytes)
	if err != nil {
		return nil, err
	}
	content, err := o.cipher.Decrypt(envelope, contentKey)
	if err != nil {
		return nil, err
	}
	o.logger.Info("downloaded record",
		zap.String(LoggerRecordID, recordID.String()),
		zap.String(LoggerContentID, record.CID),
	)
	return content, nil
}

// Share wraps the record's content key for the recipient and grants them access on the
// ledger. Only the record owner holds the self-wrapped copy, so only the owner can share.
func (o *Owner) Share(recordID id.ID, recipient key.PublicKey) error {
	packed, err := loadSelfWrappedKey(o.clientSL, recordID)
	if err != nil {
		return err
	}
	contentKey, err := o.protocol.Unwrap(packed, o.clientID.PublicKey,
		o.clientID.PrivateKey)
	if err != nil {
		return err
	}
	defer zero(contentKey)

	wrapped, err := o.protocol.Wrap(contentKey, o.clientID.PrivateKey, recipient.Public())
	if err != nil {
		return err
	}
	if err = o.ledger.GrantAccess(o.ID(), recordID, recipient, wrapped.Packed()); err != nil {
		return err
	}
	o.logger.Info("shared record",
		zap.String(LoggerRecordID, recordID.String()),
		zap.String(LoggerRecipient, recipient.String()),
	)
	return nil
}

// Unshare revokes the recipient's access entry on the ledger. A recipient who already
// unwrapped the content key can still decrypt previously fetched content; revocation is a
// ledger-level signal, not a cryptographic one.
func (o *Owner) Unshare(recordID id.ID, recipient key.PublicKey) error {
	if err := o.ledger.RevokeAccess(o.ID(), recordID, recipient); err != nil {
		return err
	}
	o.logger.Info("unshared record",
		zap.String(LoggerRecordID, recordID.String()),
		zap.String(LoggerRecipient, recipient.String()),
	)
	return nil
}

// Records returns the records this client has uploaded, in upload order.
func (o *Owner) Records() ([]*ledger.Record, []id.ID, error) {
	recordIDs, err := loadOwnedRecordIDs(o.clientSL)
	if err != nil {
		return nil, nil, err
	}
	records := make([]*ledger.Record, len(recordIDs))
	for i, recordID := range recordIDs {
		if records[i], err = o.ledger.GetRecord(recordID); err != nil {
			return nil, nil, err
		}
	}
	return records, recordIDs, nil
}

func (o *Owner) wrappedKeyFor(record *ledger.Record, recordID id.ID) ([]byte, error) {
	if record.Owner == o.ID() {
		return loadSelfWrappedKey(o.clientSL, recordID)
	}
	for _, entry := range record.AccessEntries() {
		if entry.Recipient == o.ID() && !entry.Revoked {
			return entry.EncryptedKey, nil
		}
	}
	return nil, ErrNoAccess
}

func (o *Owner) envelopeBytes(ctx context.Context, contentID string) ([]byte, error) {
	if cached, in := o.envelopes.Get(contentID); in {
		return cached.([]byte), nil
	}
	envelopeBytes, err := o.store.Get(ctx, contentID)
	if err != nil {
		return nil, err
	}
	o.envelopes.Add(contentID, envelopeBytes)
	return envelopeBytes, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
