package poe

import (
	"bytes"
	"context"
	"testing"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/app"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/gconf"
	"github.com/iov-one/weave/migration"
	"github.com/iov-one/weave/store"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/weavetest/assert"
)

func TestClaimUseCases(t *testing.T) {
	var (
		aliceCond = weavetest.NewCondition()
		bobbyCond = weavetest.NewCondition()
	)

	type Request struct {
		Tx          weave.Tx
		Conditions  []weave.Condition
		BlockHeight int64
		WantErr     *errors.Error
	}

	cases := map[string]struct {
		Requests  []Request
		AfterTest func(t *testing.T, db weave.KVStore)
	}{
		"create a claim": {
			Requests: []Request{
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 7,
				},
			},
			AfterTest: func(t *testing.T, db weave.KVStore) {
				claim, err := NewRegistry().Claim(db, []byte("document"))
				assert.Nil(t, err)
				assert.Equal(t, aliceCond.Address(), claim.Owner)
				assert.Equal(t, int64(7), claim.Height)
			},
		},
		"claim a document twice": {
			Requests: []Request{
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 1,
				},
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{bobbyCond},
					BlockHeight: 2,
					WantErr:     ErrAlreadyClaimed,
				},
			},
			AfterTest: func(t *testing.T, db weave.KVStore) {
				claim, err := NewRegistry().Claim(db, []byte("document"))
				assert.Nil(t, err)
				assert.Equal(t, aliceCond.Address(), claim.Owner)
				assert.Equal(t, int64(1), claim.Height)
			},
		},
		"content too long for the default configuration": {
			Requests: []Request{
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  bytes.Repeat([]byte{1}, DefaultMaxContentLength+1),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 1,
					WantErr:     ErrContentTooLong,
				},
			},
		},
		"content over the absolute limit is an invalid message": {
			Requests: []Request{
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  bytes.Repeat([]byte{1}, MaxContentLengthLimit+1),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 1,
					WantErr:     ErrContentTooLong,
				},
			},
		},
		"unsigned message": {
			Requests: []Request{
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					BlockHeight: 1,
					WantErr:     errors.ErrUnauthorized,
				},
			},
		},
		"message signed by several accounts": {
			Requests: []Request{
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{aliceCond, bobbyCond},
					BlockHeight: 1,
					WantErr:     errors.ErrUnauthorized,
				},
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 2,
				},
				{
					Tx: &weavetest.Tx{Msg: &TransferClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
						NewOwner: bobbyCond.Address(),
					}},
					Conditions:  []weave.Condition{aliceCond, bobbyCond},
					BlockHeight: 3,
					WantErr:     errors.ErrUnauthorized,
				},
				{
					Tx: &weavetest.Tx{Msg: &RevokeClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{bobbyCond, aliceCond},
					BlockHeight: 4,
					WantErr:     errors.ErrUnauthorized,
				},
			},
			AfterTest: func(t *testing.T, db weave.KVStore) {
				claim, err := NewRegistry().Claim(db, []byte("document"))
				assert.Nil(t, err)
				assert.Equal(t, aliceCond.Address(), claim.Owner)
				assert.Equal(t, int64(2), claim.Height)
			},
		},
		"revoke and claim again": {
			Requests: []Request{
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 1,
				},
				{
					Tx: &weavetest.Tx{Msg: &RevokeClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{bobbyCond},
					BlockHeight: 2,
					WantErr:     ErrNotOwner,
				},
				{
					Tx: &weavetest.Tx{Msg: &RevokeClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 3,
				},
				{
					Tx: &weavetest.Tx{Msg: &RevokeClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 4,
					WantErr:     ErrNoSuchClaim,
				},
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{bobbyCond},
					BlockHeight: 5,
				},
			},
			AfterTest: func(t *testing.T, db weave.KVStore) {
				claim, err := NewRegistry().Claim(db, []byte("document"))
				assert.Nil(t, err)
				assert.Equal(t, bobbyCond.Address(), claim.Owner)
				assert.Equal(t, int64(5), claim.Height)
			},
		},
		"transfer a claim": {
			Requests: []Request{
				{
					Tx: &weavetest.Tx{Msg: &CreateClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 1,
				},
				{
					Tx: &weavetest.Tx{Msg: &TransferClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
						NewOwner: bobbyCond.Address(),
					}},
					Conditions:  []weave.Condition{bobbyCond},
					BlockHeight: 2,
					WantErr:     ErrNotOwner,
				},
				{
					Tx: &weavetest.Tx{Msg: &TransferClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
						NewOwner: bobbyCond.Address(),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 3,
				},
				{
					Tx: &weavetest.Tx{Msg: &TransferClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("unknown"),
						NewOwner: bobbyCond.Address(),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 4,
					WantErr:     ErrNoSuchClaim,
				},
			},
			AfterTest: func(t *testing.T, db weave.KVStore) {
				claim, err := NewRegistry().Claim(db, []byte("document"))
				assert.Nil(t, err)
				assert.Equal(t, bobbyCond.Address(), claim.Owner)
				assert.Equal(t, int64(3), claim.Height)
			},
		},
		"transfer requires a valid new owner": {
			Requests: []Request{
				{
					Tx: &weavetest.Tx{Msg: &TransferClaimMsg{
						Metadata: &weave.Metadata{Schema: 1},
						Content:  []byte("document"),
						NewOwner: weave.Address("invalid"),
					}},
					Conditions:  []weave.Condition{aliceCond},
					BlockHeight: 1,
					WantErr:     errors.ErrInput,
				},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "poe")

			rt := app.NewRouter()
			auth := &weavetest.CtxAuth{Key: "auth"}
			RegisterRoutes(rt, auth)

			for i, req := range tc.Requests {
				ctx := weave.WithHeight(context.Background(), req.BlockHeight)
				ctx = weave.WithChainID(ctx, "testchain-123")
				ctx = auth.SetConditions(ctx, req.Conditions...)

				cache := db.CacheWrap()
				if _, err := rt.Check(ctx, cache, req.Tx); !req.WantErr.Is(err) {
					t.Fatalf("unexpected %d check error: want %q, got %+v", i, req.WantErr, err)
				}
				cache.Discard()
				if _, err := rt.Deliver(ctx, db, req.Tx); !req.WantErr.Is(err) {
					t.Fatalf("unexpected %d deliver error: want %q, got %+v", i, req.WantErr, err)
				}
			}

			if tc.AfterTest != nil {
				tc.AfterTest(t, db)
			}
		})
	}
}

func TestDeliverReturnsContent(t *testing.T) {
	aliceCond := weavetest.NewCondition()

	db := store.MemStore()
	migration.MustInitPkg(db, "poe")

	h := createClaimHandler{
		auth:     &weavetest.Auth{Signer: aliceCond},
		registry: NewRegistry(),
	}
	tx := &weavetest.Tx{Msg: &CreateClaimMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  []byte("document"),
	}}

	ctx := weave.WithHeight(context.Background(), 3)
	res, err := h.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, []byte("document"), res.Data)
}

func TestDeliverRequiresBlockHeight(t *testing.T) {
	aliceCond := weavetest.NewCondition()

	db := store.MemStore()
	migration.MustInitPkg(db, "poe")

	h := createClaimHandler{
		auth:     &weavetest.Auth{Signer: aliceCond},
		registry: NewRegistry(),
	}
	tx := &weavetest.Tx{Msg: &CreateClaimMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  []byte("document"),
	}}

	_, err := h.Deliver(context.Background(), db, tx)
	assert.IsErr(t, errors.ErrHuman, err)

	_, err = NewRegistry().Claim(db, []byte("document"))
	assert.IsErr(t, ErrNoSuchClaim, err)
}

func TestUpdateConfiguration(t *testing.T) {
	var (
		ownerCond = weavetest.NewCondition()
		otherCond = weavetest.NewCondition()
	)

	db := store.MemStore()
	migration.MustInitPkg(db, "poe")

	rt := app.NewRouter()
	auth := &weavetest.CtxAuth{Key: "auth"}
	RegisterRoutes(rt, auth)

	conf := Configuration{
		Metadata:         &weave.Metadata{Schema: 1},
		Owner:            ownerCond.Address(),
		MaxContentLength: DefaultMaxContentLength,
	}
	if err := gconf.Save(db, "poe", &conf); err != nil {
		t.Fatalf("cannot save configuration: %s", err)
	}

	tx := &weavetest.Tx{Msg: &UpdateConfigurationMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Patch: &Configuration{
			Metadata:         &weave.Metadata{Schema: 1},
			Owner:            ownerCond.Address(),
			MaxContentLength: 8,
		},
	}}

	ctx := weave.WithHeight(context.Background(), 1)
	_, err := rt.Deliver(auth.SetConditions(ctx, otherCond), db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = rt.Deliver(auth.SetConditions(ctx, ownerCond), db, tx)
	assert.Nil(t, err)

	create := &weavetest.Tx{Msg: &CreateClaimMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  []byte("123456789"),
	}}
	_, err = rt.Deliver(auth.SetConditions(ctx, ownerCond), db, create)
	assert.IsErr(t, ErrContentTooLong, err)
}
