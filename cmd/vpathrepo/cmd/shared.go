package cmd

import (
	"fmt"

	vpathrepo "github.com/vpathfs/repository"
	"github.com/vpathfs/repository/internal/kvstore"
)

// openRepository builds a Repository from the persistent --base-dir/--store
// flags, opening a bbolt store on disk when --store is set.
func openRepository() (*vpathrepo.Repository, func() error, error) {
	opts := []vpathrepo.Option{vpathrepo.WithLogger(logger)}
	closeFn := func() error { return nil }

	if flags.storePath != "" {
		store, err := kvstore.OpenBoltStore(flags.storePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening store %q: %w", flags.storePath, err)
		}
		opts = append(opts, vpathrepo.WithStore(store))
		closeFn = store.Close
	}

	repo, err := vpathrepo.New(flags.baseDir, opts...)
	if err != nil {
		return nil, nil, err
	}
	return repo, closeFn, nil
}
