package poe

import (
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/errors"
	"github.com/iov-one/weave/migration"
)

func init() {
	migration.MustRegister(1, &CreateClaimMsg{}, migration.NoModification)
	migration.MustRegister(1, &RevokeClaimMsg{}, migration.NoModification)
	migration.MustRegister(1, &TransferClaimMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

var _ weave.Msg = (*CreateClaimMsg)(nil)

func (CreateClaimMsg) Path() string {
	return "poe/create_claim"
}

func (m *CreateClaimMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Content", validateContent(m.Content, MaxContentLengthLimit))
	return errs
}

var _ weave.Msg = (*RevokeClaimMsg)(nil)

func (RevokeClaimMsg) Path() string {
	return "poe/revoke_claim"
}

func (m *RevokeClaimMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Content", validateContent(m.Content, MaxContentLengthLimit))
	return errs
}

var _ weave.Msg = (*TransferClaimMsg)(nil)

func (TransferClaimMsg) Path() string {
	return "poe/transfer_claim"
}

func (m *TransferClaimMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Content", validateContent(m.Content, MaxContentLengthLimit))
	errs = errors.AppendField(errs, "NewOwner", m.NewOwner.Validate())
	return errs
}

var _ weave.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return "poe/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		errs = errors.AppendField(errs, "Patch", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Patch", m.Patch.Validate())
	}
	return errs
}
