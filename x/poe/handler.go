package poe

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/x"
)

const (
	createClaimCost   = 0
	revokeClaimCost   = 0
	transferClaimCost = 0
)

// RegisterRoutes registers handlers for all poe messages.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	r = migration.SchemaMigratingRegistry("poe", r)

	registry := NewRegistry()
	r.Handle(&CreateClaimMsg{}, &createClaimHandler{auth: auth, registry: registry})
	r.Handle(&RevokeClaimMsg{}, &revokeClaimHandler{auth: auth, registry: registry})
	r.Handle(&TransferClaimMsg{}, &transferClaimHandler{auth: auth, registry: registry})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(
		"poe", &Configuration{}, auth, migration.CurrentAdmin))
}

type createClaimHandler struct {
	auth     x.Authenticator
	registry *Registry
}

func (h *createClaimHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, _, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.registry.ValidateCreate(db, msg.Content); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createClaimCost}, nil
}

func (h *createClaimHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, caller, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	height, err := blockHeight(ctx)
	if err != nil {
		return nil, err
	}
	claim, err := h.registry.Create(db, caller, msg.Content, height)
	if err != nil {
		return nil, err
	}
	claimsCreated.Inc()
	weave.GetLogger(ctx).Info("claim created",
		"content", shortContent(claim.Content),
		"owner", claim.Owner,
		"height", claim.Height)
	return &weave.DeliverResult{Data: claim.Content}, nil
}

func (h *createClaimHandler) load(ctx weave.Context, tx weave.Tx) (*CreateClaimMsg, weave.Address, error) {
	var msg CreateClaimMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := soleSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

type revokeClaimHandler struct {
	auth     x.Authenticator
	registry *Registry
}

func (h *revokeClaimHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, caller, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.registry.ValidateRevoke(db, caller, msg.Content); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: revokeClaimCost}, nil
}

func (h *revokeClaimHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, caller, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.registry.Revoke(db, caller, msg.Content); err != nil {
		return nil, err
	}
	claimsRevoked.Inc()
	weave.GetLogger(ctx).Info("claim revoked",
		"content", shortContent(msg.Content),
		"owner", caller)
	return &weave.DeliverResult{Data: msg.Content}, nil
}

func (h *revokeClaimHandler) load(ctx weave.Context, tx weave.Tx) (*RevokeClaimMsg, weave.Address, error) {
	var msg RevokeClaimMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := soleSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

type transferClaimHandler struct {
	auth     x.Authenticator
	registry *Registry
}

func (h *transferClaimHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, caller, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.registry.ValidateTransfer(db, caller, msg.Content); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferClaimCost}, nil
}

func (h *transferClaimHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, caller, err := h.load(ctx, tx)
	if err != nil {
		return nil, err
	}
	height, err := blockHeight(ctx)
	if err != nil {
		return nil, err
	}
	claim, err := h.registry.Transfer(db, caller, msg.NewOwner, msg.Content, height)
	if err != nil {
		return nil, err
	}
	claimsTransferred.Inc()
	weave.GetLogger(ctx).Info("claim transferred",
		"content", shortContent(claim.Content),
		"from", caller,
		"to", claim.Owner,
		"height", claim.Height)
	return &weave.DeliverResult{Data: claim.Content}, nil
}

func (h *transferClaimHandler) load(ctx weave.Context, tx weave.Tx) (*TransferClaimMsg, weave.Address, error) {
	var msg TransferClaimMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	caller, err := soleSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, caller, nil
}

// soleSigner returns the address of the only account that authorized the
// transaction. Signature order is not signed content, so a transaction
// with several signers cannot tell which of them is the caller.
func soleSigner(ctx weave.Context, auth x.Authenticator) (weave.Address, error) {
	switch signers := auth.GetConditions(ctx); len(signers) {
	case 0:
		return nil, errors.Wrap(errors.ErrUnauthorized, "message must be signed")
	case 1:
		return signers[0].Address(), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnauthorized, "message must have a single signer, got %d", len(signers))
	}
}

func blockHeight(ctx weave.Context) (int64, error) {
	height, ok := weave.GetHeight(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block height not present in context")
	}
	return height, nil
}
