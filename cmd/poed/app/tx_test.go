package app

import (
	"testing"

	"github.com/iov-one/poe/x/poe"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/crypto"
	"github.com/iov-one/weave/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxDecoderAndGetMsg(t *testing.T) {
	msgs := []weave.Msg{
		&poe.CreateClaimMsg{Metadata: &weave.Metadata{Schema: 1}, Content: []byte("a")},
		&poe.RevokeClaimMsg{Metadata: &weave.Metadata{Schema: 1}, Content: []byte("b")},
		&poe.TransferClaimMsg{Metadata: &weave.Metadata{Schema: 1}, Content: []byte("c")},
	}
	sums := []isTx_Sum{
		&Tx_PoeCreateClaimMsg{PoeCreateClaimMsg: msgs[0].(*poe.CreateClaimMsg)},
		&Tx_PoeRevokeClaimMsg{PoeRevokeClaimMsg: msgs[1].(*poe.RevokeClaimMsg)},
		&Tx_PoeTransferClaimMsg{PoeTransferClaimMsg: msgs[2].(*poe.TransferClaimMsg)},
	}

	for i, sum := range sums {
		raw, err := (&Tx{Sum: sum}).Marshal()
		require.NoError(t, err)

		tx, err := TxDecoder(raw)
		require.NoError(t, err)
		msg, err := tx.GetMsg()
		require.NoError(t, err)
		assert.Equal(t, msgs[i].Path(), msg.Path())
	}

	_, err := TxDecoder([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestGetSignBytesIgnoresSignatures(t *testing.T) {
	tx := &Tx{
		Sum: &Tx_PoeCreateClaimMsg{PoeCreateClaimMsg: &poe.CreateClaimMsg{
			Metadata: &weave.Metadata{Schema: 1},
			Content:  []byte("document"),
		}},
	}
	before, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(crypto.GenPrivKeyEd25519(), tx, "test-chain", 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	after, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, tx.Signatures, 1)
}

func TestTxFee(t *testing.T) {
	payer := crypto.GenPrivKeyEd25519().PublicKey().Address()
	tx := &Tx{}
	tx.Fee(payer, coin.NewCoin(1, 0, "POE"))

	assert.Equal(t, payer, tx.GetFees().Payer)
	assert.True(t, tx.GetFees().Fees.Equals(coin.NewCoin(1, 0, "POE")))
}
