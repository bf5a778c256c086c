package vpathrepo

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/vpathfs/repository/internal/kvstore"
)

// Option configures a Repository at construction, grounded on frango's
// functional-options style (WithSourceDir, WithLogger, ...).
type Option func(*Repository)

// WithLogger sets a custom structured logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithStore overrides the default in-memory KeyValueStore, e.g. with a
// kvstore.BoltStore for a persistent repository.
func WithStore(store kvstore.Store) Option {
	return func(r *Repository) {
		r.store = store
	}
}

// WithFilesystem overrides the default afero.Fs (the OS filesystem) used
// for all on-disk probing, e.g. with afero.NewMemMapFs() in tests.
func WithFilesystem(fs afero.Fs) Option {
	return func(r *Repository) {
		r.fs = fs
	}
}
