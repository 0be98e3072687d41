package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/poe/x/poe"
)

func cmdTransactionView(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the transaction read from the input as JSON. Use it to check what a
transaction authorizes before signing it.
`)
		fl.PrintDefaults()
	}
	var (
		contentFl = fl.Bool("content", false, "Print only the claimed content of a claim transaction, as CID or hex.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	if *contentFl {
		msg, err := tx.GetMsg()
		if err != nil {
			return fmt.Errorf("cannot extract message: %s", err)
		}
		var content []byte
		switch m := msg.(type) {
		case *poe.CreateClaimMsg:
			content = m.Content
		case *poe.RevokeClaimMsg:
			content = m.Content
		case *poe.TransferClaimMsg:
			content = m.Content
		default:
			return fmt.Errorf("%T is not a claim message", msg)
		}
		_, err = fmt.Fprintln(output, poe.FormatContent(content))
		return err
	}

	pretty, err := json.MarshalIndent(tx, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = output.Write(pretty)
	return err
}
