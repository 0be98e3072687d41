package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/poe/cmd/poed/app"
	"github.com/iov-one/poe/x/poe"
	"github.com/iov-one/weave"
)

func cmdCreateClaim(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for claiming a content. Content can be provided either
directly or as a file. When a file is given, its fingerprint is claimed.
`)
		fl.PrintDefaults()
	}
	var (
		contentFl = flContent(fl, "content", "Content to claim, CID or hex encoded.")
		fileFl    = fl.String("file", "", "Path to a file which fingerprint should be claimed.")
	)
	fl.Parse(args)

	content, err := contentArg(*contentFl, *fileFl)
	if err != nil {
		flagDie("%s", err)
	}

	msg := poe.CreateClaimMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  content,
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("given data produce an invalid message: %s", err)
	}

	tx := &app.Tx{
		Sum: &app.Tx_PoeCreateClaimMsg{
			PoeCreateClaimMsg: &msg,
		},
	}
	_, err = writeTx(output, tx)
	return err
}

func cmdRevokeClaim(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for revoking a claim. Only the owner of the claim can
revoke it. Once revoked, the content can be claimed again by anyone.
`)
		fl.PrintDefaults()
	}
	var (
		contentFl = flContent(fl, "content", "Claimed content, CID or hex encoded.")
		fileFl    = fl.String("file", "", "Path to a file which fingerprint was claimed.")
	)
	fl.Parse(args)

	content, err := contentArg(*contentFl, *fileFl)
	if err != nil {
		flagDie("%s", err)
	}

	msg := poe.RevokeClaimMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  content,
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("given data produce an invalid message: %s", err)
	}

	tx := &app.Tx{
		Sum: &app.Tx_PoeRevokeClaimMsg{
			PoeRevokeClaimMsg: &msg,
		},
	}
	_, err = writeTx(output, tx)
	return err
}

func cmdTransferClaim(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for transferring the ownership of a claim to another
address. Only the owner of the claim can transfer it.
`)
		fl.PrintDefaults()
	}
	var (
		contentFl = flContent(fl, "content", "Claimed content, CID or hex encoded.")
		fileFl    = fl.String("file", "", "Path to a file which fingerprint was claimed.")
		toFl      = flAddress(fl, "to", "", "Address of the new owner.")
	)
	fl.Parse(args)

	content, err := contentArg(*contentFl, *fileFl)
	if err != nil {
		flagDie("%s", err)
	}
	if len(*toFl) == 0 {
		flagDie("new owner address is required")
	}

	msg := poe.TransferClaimMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Content:  content,
		NewOwner: *toFl,
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("given data produce an invalid message: %s", err)
	}

	tx := &app.Tx{
		Sum: &app.Tx_PoeTransferClaimMsg{
			PoeTransferClaimMsg: &msg,
		},
	}
	_, err = writeTx(output, tx)
	return err
}

// contentArg returns the content key either given directly or computed as the
// fingerprint of a file. Exactly one of them must be provided.
func contentArg(content []byte, path string) ([]byte, error) {
	switch {
	case len(content) != 0 && path != "":
		return nil, errors.New("content and file flags are mutually exclusive")
	case len(content) != 0:
		return content, nil
	case path != "":
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read %q file: %s", path, err)
		}
		return poe.Fingerprint(data)
	default:
		return nil, errors.New("content or file must be provided")
	}
}
