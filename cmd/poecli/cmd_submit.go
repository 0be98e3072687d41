package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/poe/cmd/poed/client"
	"github.com/iov-one/poe/x/poe"
	"github.com/iov-one/weave"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read binary serialized transaction from standard input and submit it.

For claim transactions the claimed content is written out. Make sure to
collect enough signatures before submitting the transaction.
`)
		fl.PrintDefaults()
	}
	var (
		tmAddrFl = fl.String("tm", env("POECLI_TM_ADDR", defaultTmAddr),
			"Tendermint node address. You can use POECLI_TM_ADDR environment variable to set it.")
	)
	fl.Parse(args)

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction from input: %s", err)
	}

	poeClient := client.NewClient(client.NewHTTPConnection(*tmAddrFl))

	resp := poeClient.BroadcastTx(tx)
	if err := resp.IsError(); err != nil {
		return fmt.Errorf("cannot broadcast transaction: %s", err)
	}

	response, err := extractResponse(tx, resp.Response.DeliverTx.Data)
	if err != nil {
		return fmt.Errorf("cannot extract response: %s", err)
	}
	if response != "" {
		fmt.Fprintln(output, response)
	}
	return nil
}

// extractResponse returns a human readable representation of the response
// data of given transaction. It returns an empty string if the response is
// not worth showing to the user.
func extractResponse(tx weave.Tx, respData []byte) (string, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return "", fmt.Errorf("cannot extract message from transaction: %s", err)
	}
	switch msg.(type) {
	case *poe.CreateClaimMsg, *poe.TransferClaimMsg, *poe.RevokeClaimMsg:
		if len(respData) == 0 {
			return "", nil
		}
		return poe.FormatContent(respData), nil
	default:
		return "", nil
	}
}
