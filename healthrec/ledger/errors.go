package ledger

import "fmt"

// Code is the stable numeric identifier of a ledger error, for cross-implementation
// compatibility. Instruction validation codes start at 6000 in declaration order; codes the
// runtime layer surfaces start at 6100.
type Code uint32

const (
	// CodeRecipientsKeysMismatch indicates recipients and encrypted keys of different lengths.
	CodeRecipientsKeysMismatch Code = 6000 + iota

	// CodeTooManyRecipients indicates an access list that would exceed MaxRecipients.
	CodeTooManyRecipients

	// CodeCidTooLong indicates a content identifier longer than MaxCIDLen.
	CodeCidTooLong

	// CodeTitleTooLong indicates a title longer than MaxTitleLen.
	CodeTitleTooLong

	// CodeEncryptedKeyTooLarge indicates a wrapped key longer than MaxEncryptedKeyLen.
	CodeEncryptedKeyTooLarge

	// CodeUnauthorized indicates a mutation attempt by a caller other than the record owner.
	CodeUnauthorized

	// CodeRecipientNotFound indicates a revocation with no matching active entry.
	CodeRecipientNotFound
)

const (
	// CodeAlreadyInitialized indicates a second Initialize call.
	CodeAlreadyInitialized Code = 6100 + iota

	// CodeRecordExists indicates record creation under an already-used record ID.
	CodeRecordExists

	// CodeRecordNotFound indicates an operation on a nonexistent record.
	CodeRecordNotFound
)

// Error is a terminal ledger instruction error. The transaction it aborted left no state change
// behind.
type Error struct {
	Code Code
	msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ledger error %d: %s", e.Code, e.msg)
}

var (
	// ErrRecipientsKeysMismatch indicates recipients and encrypted keys arrays of different
	// lengths.
	ErrRecipientsKeysMismatch = &Error{CodeRecipientsKeysMismatch,
		"recipients and encrypted keys arrays length mismatch"}

	// ErrTooManyRecipients indicates an access list that would exceed MaxRecipients.
	ErrTooManyRecipients = &Error{CodeTooManyRecipients, "too many recipients"}

	// ErrCidTooLong indicates a content identifier longer than MaxCIDLen.
	ErrCidTooLong = &Error{CodeCidTooLong, "CID too long"}

	// ErrTitleTooLong indicates a title longer than MaxTitleLen.
	ErrTitleTooLong = &Error{CodeTitleTooLong, "title too long"}

	// ErrEncryptedKeyTooLarge indicates a wrapped key longer than MaxEncryptedKeyLen.
	ErrEncryptedKeyTooLarge = &Error{CodeEncryptedKeyTooLarge,
		"encrypted symmetric key too large"}

	// ErrUnauthorized indicates a mutation attempt by a caller other than the record owner.
	ErrUnauthorized = &Error{CodeUnauthorized, "unauthorized"}

	// ErrRecipientNotFound indicates a revocation with no matching active entry.
	ErrRecipientNotFound = &Error{CodeRecipientNotFound, "recipient not found"}

	// ErrAlreadyInitialized indicates a second Initialize call.
	ErrAlreadyInitialized = &Error{CodeAlreadyInitialized, "config already initialized"}

	// ErrRecordExists indicates record creation under an already-used record ID.
	ErrRecordExists = &Error{CodeRecordExists, "record already exists"}

	// ErrRecordNotFound indicates an operation on a nonexistent record.
	ErrRecordNotFound = &Error{CodeRecordNotFound, "record not found"}
)
