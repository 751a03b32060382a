package owner

// logger keys
const (
	// LoggerClientID is a client ID.
	LoggerClientID = "clientId"

	// LoggerKeychainFilepath is a keychain filepath.
	LoggerKeychainFilepath = "keychainFilepath"

	// LoggerKeychainNKeys is the number of keys in a keychain.
	LoggerKeychainNKeys = "nKeys"

	// LoggerRecordID is a ledger record ID.
	LoggerRecordID = "recordId"

	// LoggerContentID is a content store identifier.
	LoggerContentID = "contentId"

	// LoggerRecipient is a recipient public key.
	LoggerRecipient = "recipient"

	// LoggerNRecipients is a number of recipients.
	LoggerNRecipients = "nRecipients"

	// LoggerStoreAPIAddr is a content store API address.
	LoggerStoreAPIAddr = "storeApiAddr"

	// LoggerTitle is a record title.
	LoggerTitle = "title"
)
