package owner

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/common/errors"
	"github.com/Aayx2hOG/Decentralized-health-record-app/healthrec/owner/io/store"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultLogLevel is the default log level to use.
	DefaultLogLevel = zapcore.InfoLevel

	// DefaultEnvelopeCacheSize is the default number of fetched content envelopes to keep in
	// memory.
	DefaultEnvelopeCacheSize = 64

	defaultDataSubdir     = "data"
	defaultDbSubdir       = "db"
	defaultKeychainSubdir = "keychains"
)

// Config is used to configure an Owner client.
type Config struct {
	// DataDir is the directory on the local machine where all client state is stored.
	DataDir string

	// DbDir is the local directory where the client's DB state is stored.
	DbDir string

	// KeychainDir is the local directory where the client's keychains are stored.
	KeychainDir string

	// StoreAPIAddr is the API address of the content-addressed store node.
	StoreAPIAddr string

	// StorePutTimeout is the bound on retried content store puts.
	StorePutTimeout time.Duration

	// EnvelopeCacheSize is the number of fetched content envelopes to keep in memory.
	EnvelopeCacheSize int

	// LogLevel is the log level.
	LogLevel zapcore.Level
}

// NewDefaultConfig creates a new config with default values.
func NewDefaultConfig() *Config {
	config := &Config{}
	return config.
		WithDefaultDataDir().
		WithDefaultDbDir().
		WithDefaultKeychainDir().
		WithDefaultStoreAPIAddr().
		WithDefaultStorePutTimeout().
		WithDefaultEnvelopeCacheSize().
		WithDefaultLogLevel()
}

// WithDataDir sets the data directory to the given value or to the default if empty.
func (c *Config) WithDataDir(dataDir string) *Config {
	if dataDir == "" {
		return c.WithDefaultDataDir()
	}
	c.DataDir = dataDir
	return c
}

// WithDefaultDataDir sets the data directory to a "data" subdirectory of the current
// working directory.
func (c *Config) WithDefaultDataDir() *Config {
	cwd, err := os.Getwd()
	errors.MaybePanic(err)
	c.DataDir = filepath.Join(cwd, defaultDataSubdir)
	return c
}

// WithDbDir sets the DB directory to the given value or to the default if empty.
func (c *Config) WithDbDir(dbDir string) *Config {
	if dbDir == "" {
		return c.WithDefaultDbDir()
	}
	c.DbDir = dbDir
	return c
}

// WithDefaultDbDir sets the DB directory to a "db" subdirectory of the data directory.
func (c *Config) WithDefaultDbDir() *Config {
	c.DbDir = filepath.Join(c.DataDir, defaultDbSubdir)
	return c
}

// WithKeychainDir sets the keychain directory to the given value or to the default if
// empty.
func (c *Config) WithKeychainDir(keychainDir string) *Config {
	if keychainDir == "" {
		return c.WithDefaultKeychainDir()
	}
	c.KeychainDir = keychainDir
	return c
}

// WithDefaultKeychainDir sets the keychain directory to a "keychains" subdirectory of the
// data directory.
func (c *Config) WithDefaultKeychainDir() *Config {
	c.KeychainDir = filepath.Join(c.DataDir, defaultKeychainSubdir)
	return c
}

// WithStoreAPIAddr sets the content store API address to the given value or to the default
// if empty.
func (c *Config) WithStoreAPIAddr(addr string) *Config {
	if addr == "" {
		return c.WithDefaultStoreAPIAddr()
	}
	c.StoreAPIAddr = addr
	return c
}

// WithDefaultStoreAPIAddr sets the content store API address to that of a local IPFS
// daemon.
func (c *Config) WithDefaultStoreAPIAddr() *Config {
	c.StoreAPIAddr = store.DefaultIPFSAPIAddr
	return c
}

// WithStorePutTimeout sets the store put timeout to the given value or to the default if
// zero.
func (c *Config) WithStorePutTimeout(timeout time.Duration) *Config {
	if timeout == 0 {
		return c.WithDefaultStorePutTimeout()
	}
	c.StorePutTimeout = timeout
	return c
}

// WithDefaultStorePutTimeout sets the store put timeout to the default value.
func (c *Config) WithDefaultStorePutTimeout() *Config {
	c.StorePutTimeout = store.DefaultPutTimeout
	return c
}

// WithEnvelopeCacheSize sets the envelope cache size to the given value or to the default
// if zero.
func (c *Config) WithEnvelopeCacheSize(size int) *Config {
	if size == 0 {
		return c.WithDefaultEnvelopeCacheSize()
	}
	c.EnvelopeCacheSize = size
	return c
}

// WithDefaultEnvelopeCacheSize sets the envelope cache size to the default value.
func (c *Config) WithDefaultEnvelopeCacheSize() *Config {
	c.EnvelopeCacheSize = DefaultEnvelopeCacheSize
	return c
}

// WithLogLevel sets the log level to the given value.
func (c *Config) WithLogLevel(logLevel zapcore.Level) *Config {
	c.LogLevel = logLevel
	return c
}

// WithDefaultLogLevel sets the log level to the default value.
func (c *Config) WithDefaultLogLevel() *Config {
	c.LogLevel = DefaultLogLevel
	return c
}
