package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/keyring"
	"github.com/julianstephens/habitrack/internal/storage/postgres"
	"github.com/julianstephens/habitrack/internal/storage/sqlite"
	"github.com/julianstephens/habitrack/internal/utils"
)

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// New returns an unopened store for target, which is one of:
//   - a SQLite file path (the default), "~" is expanded
//   - a postgres:// or postgresql:// URL without a password
//   - "keyring", meaning the connection string stored in the OS keyring
//
// The caller runs Init or Load.
func New(target string) (Provider, error) {
	switch {
	case target == constants.KeyringTarget:
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string in keyring, use 'habitrack keyring set' to store one")
			}
			return nil, err
		}
		// Keyring entries may carry a password; that is what the keyring is for.
		return postgres.New(connStr), nil

	case postgres.IsConnString(target):
		if err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store it with 'habitrack keyring set' and set database to %q, or use PGPASSWORD or .pgpass", err, constants.KeyringTarget)
			}
			return nil, err
		}
		return postgres.New(target), nil

	default:
		if target == "" {
			target = constants.DefaultDBPath
		}
		path, err := utils.ExpandHome(target)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}
