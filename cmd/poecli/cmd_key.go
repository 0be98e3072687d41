package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/crypto"
	"golang.org/x/crypto/ed25519"
)

func defaultKeyPath() string {
	return filepath.Join(os.Getenv("HOME"), ".poed.priv.key")
}

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("POECLI_PRIV_KEY", defaultKeyPath()),
			"Path to the private key file. You can use POECLI_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("cannot generate ed25519 key: %s", err)
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(priv); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key. By default the hex
representation is printed.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("POECLI_PRIV_KEY", defaultKeyPath()),
			"Path to the private key file. You can use POECLI_PRIV_KEY environment variable to set it.")
		bech32Fl = fl.String("bech32", "", "If provided, print the bech32 representation using given human readable prefix.")
	)
	fl.Parse(args)

	raw, err := ioutil.ReadFile(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return fmt.Errorf("invalid private key length: %d", len(raw))
	}

	key := &crypto.PrivateKey{
		Priv: &crypto.PrivateKey_Ed25519{
			Ed25519: raw,
		},
	}
	addr := key.PublicKey().Address()
	if *bech32Fl == "" {
		_, err = fmt.Fprintln(output, addr)
		return err
	}
	enc, err := toBech32(*bech32Fl, addr)
	if err != nil {
		return fmt.Errorf("cannot serialize to bech32: %s", err)
	}
	_, err = fmt.Fprintln(output, enc)
	return err
}

func toBech32(prefix string, addr weave.Address) (string, error) {
	data, err := bech32.ConvertBits(addr, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("cannot convert bits: %s", err)
	}
	return bech32.Encode(prefix, data)
}
