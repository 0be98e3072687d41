package app

import (
	"github.com/iov-one/poe/x/poe"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
	"github.com/iov-one/weave/commands"
	"github.com/iov-one/weave/crypto"
	"github.com/iov-one/weave/x/cash"
	"github.com/iov-one/weave/x/sigs"
)

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	owner := pub.Address()
	user := &sigs.UserData{
		Pubkey:   pub,
		Sequence: 17,
	}

	content, err := poe.Fingerprint([]byte("proof of existence"))
	if err != nil {
		panic(err)
	}
	claim := &poe.Claim{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  content,
		Owner:    owner,
		Height:   42,
	}
	createMsg := &poe.CreateClaimMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  content,
	}
	transferMsg := &poe.TransferClaimMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  content,
		NewOwner: crypto.GenPrivKeyEd25519().PublicKey().Address(),
	}
	revokeMsg := &poe.RevokeClaimMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  content,
	}

	unsigned := Tx{
		Sum: &Tx_PoeCreateClaimMsg{PoeCreateClaimMsg: createMsg},
	}
	unsigned.Fee(owner, coin.NewCoin(0, 10000000, "POE"))
	tx := unsigned
	sig, err := sigs.SignTx(priv, &tx, "test-123", 17)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	wallet := &cash.Set{
		Metadata: &weave.Metadata{Schema: 1},
		Coins: []*coin.Coin{
			{Whole: 50000, Ticker: "POE"},
		},
	}

	return []commands.Example{
		{Filename: "wallet", Obj: wallet},
		{Filename: "priv_key", Obj: priv},
		{Filename: "pub_key", Obj: pub},
		{Filename: "user", Obj: user},
		{Filename: "claim", Obj: claim},
		{Filename: "create_claim_msg", Obj: createMsg},
		{Filename: "transfer_claim_msg", Obj: transferMsg},
		{Filename: "revoke_claim_msg", Obj: revokeMsg},
		{Filename: "unsigned_tx", Obj: &unsigned},
		{Filename: "signed_tx", Obj: &tx},
	}
}
