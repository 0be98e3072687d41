package poe

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration and the initial claims. Each claim is
// subject to the same rules as a claim created by a transaction.
func (*Initializer) FromGenesis(opts weave.Options, params weave.GenesisParams, kv weave.KVStore) error {
	conf := Configuration{
		Metadata: &weave.Metadata{Schema: 1},
	}
	switch err := gconf.InitConfig(kv, opts, "poe", &conf); {
	case err == nil, errors.ErrNotFound.Is(err):
		// Without a configuration the default limits apply.
	default:
		return errors.Wrap(err, "cannot initialize gconf based configuration")
	}

	var claims []struct {
		Content []byte        `json:"content"`
		Owner   weave.Address `json:"owner"`
		Height  int64         `json:"height"`
	}
	if err := opts.ReadOptions("poe", &claims); err != nil {
		return errors.Wrap(err, "cannot load claims")
	}

	registry := NewRegistry()
	for i, c := range claims {
		if _, err := registry.Create(kv, c.Owner, c.Content, c.Height); err != nil {
			return errors.Wrapf(err, "claim #%d", i)
		}
	}
	return nil
}
