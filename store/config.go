package store

import "fmt"

// Config holds the connection settings for the Store. Both values are
// required; there are no defaults a multi-user deployment could share.
type Config struct {
	// URI is the MongoDB connection string (mongodb:// or mongodb+srv://).
	URI string

	// Database is the database name holding the sceneforge collections.
	Database string
}

// validate ensures both required settings are present.
func (c Config) validate() error {
	if c.URI == "" {
		return fmt.Errorf("%w: URI", ErrMissingConfig)
	}
	if c.Database == "" {
		return fmt.Errorf("%w: Database", ErrMissingConfig)
	}
	return nil
}
