package poe

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/orm"
)

// Registry maintains the content claims. Each content key has at most one
// claim at any time.
//
// Every mutating operation runs all of its checks before writing, so a
// failed operation never modifies the store.
type Registry struct {
	claims orm.ModelBucket
}

// NewRegistry returns a registry backed by the claims bucket.
func NewRegistry() *Registry {
	return &Registry{claims: NewClaimBucket()}
}

// Claim returns the claim of the given content key.
func (r *Registry) Claim(db weave.ReadOnlyKVStore, content []byte) (*Claim, error) {
	var c Claim
	switch err := r.claims.One(db, content, &c); {
	case err == nil:
		return &c, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(ErrNoSuchClaim, "content %s", shortContent(content))
	default:
		return nil, errors.Wrap(err, "cannot load claim")
	}
}

// ClaimsOf returns all claims owned by given address.
func (r *Registry) ClaimsOf(db weave.ReadOnlyKVStore, owner weave.Address) ([]*Claim, error) {
	var claims []*Claim
	switch _, err := r.claims.ByIndex(db, "owner", owner, &claims); {
	case err == nil:
		return claims, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "cannot list claims")
	}
}

// ValidateCreate returns an error if the content cannot be claimed.
func (r *Registry) ValidateCreate(db weave.ReadOnlyKVStore, content []byte) error {
	max, err := maxContentLength(db)
	if err != nil {
		return err
	}
	if err := validateContent(content, max); err != nil {
		return err
	}
	switch _, err := r.Claim(db, content); {
	case err == nil:
		return errors.Wrapf(ErrAlreadyClaimed, "content %s", shortContent(content))
	case ErrNoSuchClaim.Is(err):
		// All good, the content is not claimed yet.
		return nil
	default:
		return err
	}
}

// Create records the caller as the owner of the content at given height.
func (r *Registry) Create(db weave.KVStore, caller weave.Address, content []byte, height int64) (*Claim, error) {
	if err := r.ValidateCreate(db, content); err != nil {
		return nil, err
	}
	claim := Claim{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  append([]byte(nil), content...),
		Owner:    caller,
		Height:   height,
	}
	if _, err := r.claims.Put(db, claim.Content, &claim); err != nil {
		return nil, errors.Wrap(err, "cannot store claim")
	}
	return &claim, nil
}

// ValidateRevoke returns the claim that would be revoked by the caller, or
// an error if the caller cannot revoke it.
func (r *Registry) ValidateRevoke(db weave.ReadOnlyKVStore, caller weave.Address, content []byte) (*Claim, error) {
	return r.owned(db, caller, content)
}

// Revoke removes the claim of the content. Only the owner can revoke.
func (r *Registry) Revoke(db weave.KVStore, caller weave.Address, content []byte) error {
	claim, err := r.ValidateRevoke(db, caller, content)
	if err != nil {
		return err
	}
	if err := r.claims.Delete(db, claim.Content); err != nil {
		return errors.Wrap(err, "cannot delete claim")
	}
	return nil
}

// ValidateTransfer returns the claim that would be transferred by the
// caller, or an error if the caller cannot transfer it.
func (r *Registry) ValidateTransfer(db weave.ReadOnlyKVStore, caller weave.Address, content []byte) (*Claim, error) {
	return r.owned(db, caller, content)
}

// Transfer makes newOwner the owner of the content. The claim height is set
// to given height. Only the owner can transfer, including to itself.
func (r *Registry) Transfer(db weave.KVStore, caller, newOwner weave.Address, content []byte, height int64) (*Claim, error) {
	claim, err := r.ValidateTransfer(db, caller, content)
	if err != nil {
		return nil, err
	}
	claim.Owner = newOwner
	claim.Height = height
	if _, err := r.claims.Put(db, claim.Content, claim); err != nil {
		return nil, errors.Wrap(err, "cannot store claim")
	}
	return claim, nil
}

func (r *Registry) owned(db weave.ReadOnlyKVStore, caller weave.Address, content []byte) (*Claim, error) {
	claim, err := r.Claim(db, content)
	if err != nil {
		return nil, err
	}
	if !claim.Owner.Equals(caller) {
		return nil, errors.Wrapf(ErrNotOwner, "claim is owned by %s", claim.Owner)
	}
	return claim, nil
}
