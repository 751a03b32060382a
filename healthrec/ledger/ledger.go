package ledger

import (
	"crypto/sha256"
	"sync"
	"time"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/id"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/key"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/storage"
	"go.uber.org/zap"
)

// nMutexStripes is the number of mutexes record mutations are striped across. Mutations of the
// same record serialize; mutations of different records usually proceed in parallel.
const nMutexStripes = 64

var configKey = []byte("config")

// Ledger is the access-control state machine. Each instruction validates fully against a
// deserialized copy of the account and then commits with a single store, so a failed validation
// leaves no partial write behind. Callers are assumed to have been authenticated by the
// surrounding transaction runtime; the caller argument of each mutation is the verified signer.
type Ledger struct {
	sl      storage.NamespaceSL
	logger  *zap.Logger
	metrics *instructionMetrics
	now     func() time.Time

	initMu   sync.Mutex
	recordMu [nMutexStripes]sync.Mutex
}

// New creates a new Ledger on top of the given ledger-namespace storage.
func New(sl storage.NamespaceSL, logger *zap.Logger) *Ledger {
	return &Ledger{
		sl:      sl,
		logger:  logger,
		metrics: newInstructionMetrics(),
		now:     time.Now,
	}
}

// Initialize creates the singleton Config with the given admin. It fails with
// ErrAlreadyInitialized on any call after the first.
func (l *Ledger) Initialize(admin key.PublicKey) (*Config, error) {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	existing, err := l.sl.Load(configKey)
	if err != nil {
		return nil, l.fail(initializeInstruction, err)
	}
	if existing != nil {
		return nil, l.fail(initializeInstruction, ErrAlreadyInitialized)
	}
	config := &Config{
		Admin: admin,
		Bump:  configBump(admin),
	}
	if err := l.sl.Store(configKey, MarshalConfig(config)); err != nil {
		return nil, l.fail(initializeInstruction, err)
	}
	l.metrics.observe(initializeInstruction, nil)
	l.logger.Info("initialized ledger config", zap.Stringer("admin", config.Admin))
	return config, nil
}

// GetConfig returns the Config, or ErrRecordNotFound before initialization.
func (l *Ledger) GetConfig() (*Config, error) {
	data, err := l.sl.Load(configKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrRecordNotFound
	}
	return UnmarshalConfig(data)
}

// CreateRecord creates a new Record under recordID with the caller as owner and one active
// access entry per (recipient, encrypted key) pair. Nothing is persisted unless every
// validation passes.
func (l *Ledger) CreateRecord(
	caller key.PublicKey,
	recordID id.ID,
	cid string,
	title string,
	recipients []key.PublicKey,
	encryptedKeys [][]byte,
) (*Record, error) {
	mu := l.mutex(recordID)
	mu.Lock()
	defer mu.Unlock()

	if len(recipients) != len(encryptedKeys) {
		return nil, l.fail(createRecordInstruction, ErrRecipientsKeysMismatch)
	}
	if len(cid) > MaxCIDLen {
		return nil, l.fail(createRecordInstruction, ErrCidTooLong)
	}
	if len(title) > MaxTitleLen {
		return nil, l.fail(createRecordInstruction, ErrTitleTooLong)
	}
	if len(recipients) > MaxRecipients {
		return nil, l.fail(createRecordInstruction, ErrTooManyRecipients)
	}
	for _, encKey := range encryptedKeys {
		if len(encKey) > MaxEncryptedKeyLen {
			return nil, l.fail(createRecordInstruction, ErrEncryptedKeyTooLarge)
		}
	}

	existing, err := l.sl.Load(recordID.Bytes())
	if err != nil {
		return nil, l.fail(createRecordInstruction, err)
	}
	if existing != nil {
		return nil, l.fail(createRecordInstruction, ErrRecordExists)
	}

	record := &Record{
		Owner:     caller,
		CID:       cid,
		Title:     title,
		CreatedAt: l.now().Unix(),
	}
	for i, recipient := range recipients {
		record.appendEntry(recipient, encryptedKeys[i])
	}
	if err := l.sl.Store(recordID.Bytes(), MarshalRecord(record)); err != nil {
		return nil, l.fail(createRecordInstruction, err)
	}
	l.metrics.observe(createRecordInstruction, nil)
	l.logger.Info("created record",
		zap.Stringer("record_id", recordID),
		zap.Stringer("owner", caller),
		zap.Int("n_recipients", len(recipients)),
	)
	return record, nil
}

// GrantAccess gives a recipient a wrapped copy of the record's content key. If the recipient
// already has an entry (revoked or not), its wrapped key is replaced and the revoked flag
// cleared; otherwise a new active entry is appended, subject to the arena capacity.
func (l *Ledger) GrantAccess(
	caller key.PublicKey, recordID id.ID, recipient key.PublicKey, encryptedKey []byte,
) error {
	mu := l.mutex(recordID)
	mu.Lock()
	defer mu.Unlock()

	record, err := l.loadRecord(recordID)
	if err != nil {
		return l.fail(grantAccessInstruction, err)
	}
	if record.Owner != caller {
		return l.fail(grantAccessInstruction, ErrUnauthorized)
	}
	if len(encryptedKey) > MaxEncryptedKeyLen {
		return l.fail(grantAccessInstruction, ErrEncryptedKeyTooLarge)
	}

	if i := record.findEntry(recipient); i >= 0 {
		record.Entries[i].EncryptedKey = encryptedKey
		record.Entries[i].Revoked = false
	} else {
		if record.NumEntries >= MaxRecipients {
			return l.fail(grantAccessInstruction, ErrTooManyRecipients)
		}
		record.appendEntry(recipient, encryptedKey)
	}
	if err := l.sl.Store(recordID.Bytes(), MarshalRecord(record)); err != nil {
		return l.fail(grantAccessInstruction, err)
	}
	l.metrics.observe(grantAccessInstruction, nil)
	l.logger.Info("granted access",
		zap.Stringer("record_id", recordID),
		zap.Stringer("recipient", recipient),
	)
	return nil
}

// RevokeAccess tombstones the recipient's active entry: Revoked flips to true and the wrapped
// key bytes stay in place. It fails with ErrRecipientNotFound when the recipient has no active
// entry. Revocation is a ledger-level signal only; it does not rotate the content key, so a
// recipient who already unwrapped it can still decrypt previously fetched content.
func (l *Ledger) RevokeAccess(caller key.PublicKey, recordID id.ID, recipient key.PublicKey) error {
	mu := l.mutex(recordID)
	mu.Lock()
	defer mu.Unlock()

	record, err := l.loadRecord(recordID)
	if err != nil {
		return l.fail(revokeAccessInstruction, err)
	}
	if record.Owner != caller {
		return l.fail(revokeAccessInstruction, ErrUnauthorized)
	}

	i := record.findEntry(recipient)
	if i < 0 || record.Entries[i].Revoked {
		return l.fail(revokeAccessInstruction, ErrRecipientNotFound)
	}
	record.Entries[i].Revoked = true
	if err := l.sl.Store(recordID.Bytes(), MarshalRecord(record)); err != nil {
		return l.fail(revokeAccessInstruction, err)
	}
	l.metrics.observe(revokeAccessInstruction, nil)
	l.logger.Info("revoked access",
		zap.Stringer("record_id", recordID),
		zap.Stringer("recipient", recipient),
	)
	return nil
}

// GetRecord returns the Record stored under recordID, or ErrRecordNotFound.
func (l *Ledger) GetRecord(recordID id.ID) (*Record, error) {
	return l.loadRecord(recordID)
}

func (l *Ledger) loadRecord(recordID id.ID) (*Record, error) {
	data, err := l.sl.Load(recordID.Bytes())
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrRecordNotFound
	}
	return UnmarshalRecord(data)
}

func (l *Ledger) mutex(recordID id.ID) *sync.Mutex {
	return &l.recordMu[int(recordID[0])%nMutexStripes]
}

func (l *Ledger) fail(instruction string, err error) error {
	l.metrics.observe(instruction, err)
	l.logger.Debug("ledger instruction failed",
		zap.String("instruction", instruction),
		zap.Error(err),
	)
	return err
}

// configBump derives the config account's derivation salt from the admin identity.
func configBump(admin key.PublicKey) byte {
	hash := sha256.Sum256(append([]byte("config"), admin[:]...))
	return hash[0]
}
