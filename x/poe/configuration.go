package poe

import (
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/migration"
)

const (
	// DefaultMaxContentLength is used when no configuration is stored.
	DefaultMaxContentLength = 512

	// MaxContentLengthLimit is the upper bound of any configured content
	// length. Messages carrying longer content are rejected before
	// reaching the registry.
	MaxContentLengthLimit = 4096
)

func init() {
	migration.MustRegister(1, &Configuration{}, migration.NoModification)
}

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	switch n := c.MaxContentLength; {
	case n <= 0:
		errs = errors.AppendField(errs, "MaxContentLength", errors.Wrap(errors.ErrInput, "must be greater than zero"))
	case n > MaxContentLengthLimit:
		errs = errors.AppendField(errs, "MaxContentLength", errors.Wrapf(errors.ErrInput, "must not be greater than %d", MaxContentLengthLimit))
	}
	return errs
}

// maxContentLength returns the content length limit currently in force.
func maxContentLength(db gconf.ReadStore) (int, error) {
	var conf Configuration
	switch err := gconf.Load(db, "poe", &conf); {
	case err == nil:
		return int(conf.MaxContentLength), nil
	case errors.ErrNotFound.Is(err):
		return DefaultMaxContentLength, nil
	default:
		return 0, errors.Wrap(err, "load configuration")
	}
}
