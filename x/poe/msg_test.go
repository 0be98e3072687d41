package poe

import (
	"bytes"
	"testing"

	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/weavetest"
	"github.com/iov-one/weave/weavetest/assert"
)

func TestMsgValidate(t *testing.T) {
	alice := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Msg      weave.Msg
		WantErrs map[string]*errors.Error
	}{
		"valid create claim": {
			Msg: &CreateClaimMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Content:  []byte("document"),
			},
			WantErrs: map[string]*errors.Error{
				"Metadata": nil,
				"Content":  nil,
			},
		},
		"create claim without content": {
			Msg: &CreateClaimMsg{
				Metadata: &weave.Metadata{Schema: 1},
			},
			WantErrs: map[string]*errors.Error{
				"Metadata": nil,
				"Content":  errors.ErrEmpty,
			},
		},
		"create claim over the absolute limit": {
			Msg: &CreateClaimMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Content:  bytes.Repeat([]byte{1}, MaxContentLengthLimit+1),
			},
			WantErrs: map[string]*errors.Error{
				"Metadata": nil,
				"Content":  ErrContentTooLong,
			},
		},
		"revoke claim without metadata": {
			Msg: &RevokeClaimMsg{
				Content: []byte("document"),
			},
			WantErrs: map[string]*errors.Error{
				"Metadata": errors.ErrMetadata,
				"Content":  nil,
			},
		},
		"valid transfer claim": {
			Msg: &TransferClaimMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Content:  []byte("document"),
				NewOwner: alice,
			},
			WantErrs: map[string]*errors.Error{
				"Metadata": nil,
				"Content":  nil,
				"NewOwner": nil,
			},
		},
		"transfer claim without new owner": {
			Msg: &TransferClaimMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Content:  []byte("document"),
			},
			WantErrs: map[string]*errors.Error{
				"Metadata": nil,
				"Content":  nil,
				"NewOwner": errors.ErrEmpty,
			},
		},
		"update configuration without patch": {
			Msg: &UpdateConfigurationMsg{
				Metadata: &weave.Metadata{Schema: 1},
			},
			WantErrs: map[string]*errors.Error{
				"Metadata": nil,
				"Patch":    errors.ErrEmpty,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Msg.Validate()
			for field, wantErr := range tc.WantErrs {
				assert.FieldError(t, err, field, wantErr)
			}
		})
	}
}

func TestMsgPath(t *testing.T) {
	assert.Equal(t, "poe/create_claim", (&CreateClaimMsg{}).Path())
	assert.Equal(t, "poe/revoke_claim", (&RevokeClaimMsg{}).Path())
	assert.Equal(t, "poe/transfer_claim", (&TransferClaimMsg{}).Path())
	assert.Equal(t, "poe/update_configuration", (&UpdateConfigurationMsg{}).Path())
}
