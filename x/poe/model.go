package poe

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/orm"
)

func init() {
	migration.MustRegister(1, &Claim{}, migration.NoModification)
}

var _ orm.Model = (*Claim)(nil)

func (c *Claim) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "Content", validateContent(c.Content, MaxContentLengthLimit))
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	if c.Height < 0 {
		errs = errors.AppendField(errs, "Height", errors.Wrap(errors.ErrInput, "must not be negative"))
	}
	return errs
}

// validateContent returns an error if the content cannot be used as a claim
// key. Empty content is rejected because the bucket treats an empty key as a
// request to generate a sequence key.
func validateContent(content []byte, max int) error {
	switch n := len(content); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "content is required")
	case n > max:
		return errors.Wrapf(ErrContentTooLong, "%d bytes, limit is %d", n, max)
	}
	return nil
}

// NewClaimBucket returns a bucket for storing claims. The claimed content
// is the key.
func NewClaimBucket() orm.ModelBucket {
	b := orm.NewModelBucket("claims", &Claim{},
		orm.WithIndex("owner", claimOwner, false))
	return migration.NewModelBucket("poe", b)
}

// claimOwner indexes claims by owner. A native index cannot be used because
// it packs the primary key into the index key and limits it to 254 bytes.
func claimOwner(o orm.Object) ([]byte, error) {
	if o == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	c, ok := o.Value().(*Claim)
	if !ok {
		return nil, errors.Wrap(errors.ErrType, "not a Claim")
	}
	return c.Owner, nil
}

// RegisterQuery exposes the claims bucket and its owner index to queries.
func RegisterQuery(qr weave.QueryRouter) {
	NewClaimBucket().Register("claims", qr)
}
