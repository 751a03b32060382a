package owner

import "os"

// Close closes the client's DB.
func (o *Owner) Close() {
	o.db.Close()
}

// CloseAndRemove closes the client and removes all local state.
func (o *Owner) CloseAndRemove() error {
	o.Close()
	return os.RemoveAll(o.config.DataDir)
}
