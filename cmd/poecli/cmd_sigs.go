package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/poe/cmd/poed/client"
	"github.com/iov-one/weave/crypto"
	"github.com/iov-one/weave/x/sigs"
	"golang.org/x/crypto/ed25519"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

Chain ID and the signer sequence are fetched from the node unless provided.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("POECLI_TM_ADDR", defaultTmAddr),
			"Tendermint node address. You can use POECLI_TM_ADDR environment variable to set it.")
		keyPathFl = fl.String("key", env("POECLI_PRIV_KEY", defaultKeyPath()),
			"Path to the private key file that transaction should be signed with. You can use POECLI_PRIV_KEY environment variable to set it.")
		chainFl = fl.String("chain", "", "Chain ID. If not provided, it is fetched from the node.")
		seqFl   = fl.Int64("seq", -1, "Signer sequence. If not provided, it is fetched from the node.")
	)
	fl.Parse(args)

	if *keyPathFl == "" {
		return errors.New("private key is required")
	}
	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	chainID, seq := *chainFl, *seqFl
	if chainID == "" || seq < 0 {
		poeClient := client.NewClient(client.NewHTTPConnection(*tmAddrFl))
		if chainID == "" {
			if chainID, err = poeClient.ChainID(); err != nil {
				return fmt.Errorf("cannot fetch chain ID: %s", err)
			}
		}
		if seq < 0 {
			aNonce := client.NewNonce(poeClient, key.PublicKey().Address())
			if seq, err = aNonce.Next(); err != nil {
				return fmt.Errorf("cannot get the next sequence number: %s", err)
			}
		}
	}

	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	_, err = writeTx(output, tx)
	return err
}

func decodePrivateKey(filepath string) (*crypto.PrivateKey, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q file: %s", filepath, err)
	}
	if len(data) != ed25519.PrivateKeySize {
		return nil, errors.New("invalid key length")
	}
	key := &crypto.PrivateKey{
		Priv: &crypto.PrivateKey_Ed25519{Ed25519: data},
	}
	return key, nil
}
