package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iov-one/poe/x/poe"
	"github.com/iov-one/weave/weavetest"
)

func TestCmdCreateClaimHappyPath(t *testing.T) {
	var output bytes.Buffer
	args := []string{
		"-content", "DEADBEEF",
	}
	if err := cmdCreateClaim(nil, &output, args); err != nil {
		t.Fatalf("cannot create a transaction: %s", err)
	}

	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}
	txmsg, err := tx.GetMsg()
	if err != nil {
		t.Fatalf("cannot get transaction message: %s", err)
	}
	msg := txmsg.(*poe.CreateClaimMsg)
	if !bytes.Equal(msg.Content, fromHex(t, "deadbeef")) {
		t.Fatalf("unexpected content: %X", msg.Content)
	}
}

func TestCmdCreateClaimFromFile(t *testing.T) {
	path := mustCreateFile(t, strings.NewReader("my precious document"))

	var output bytes.Buffer
	if err := cmdCreateClaim(nil, &output, []string{"-file", path}); err != nil {
		t.Fatalf("cannot create a transaction: %s", err)
	}

	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}
	want, err := poe.Fingerprint([]byte("my precious document"))
	if err != nil {
		t.Fatalf("cannot compute fingerprint: %s", err)
	}
	if got := tx.GetPoeCreateClaimMsg().Content; !bytes.Equal(got, want) {
		t.Fatalf("want %X content, got %X", want, got)
	}
}

func TestCmdCreateClaimFromCID(t *testing.T) {
	content, err := poe.Fingerprint([]byte("document"))
	if err != nil {
		t.Fatalf("cannot compute fingerprint: %s", err)
	}

	var output bytes.Buffer
	if err := cmdCreateClaim(nil, &output, []string{"-content", poe.FormatContent(content)}); err != nil {
		t.Fatalf("cannot create a transaction: %s", err)
	}
	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}
	if got := tx.GetPoeCreateClaimMsg().Content; !bytes.Equal(got, content) {
		t.Fatalf("want %X content, got %X", content, got)
	}
}

func TestCmdRevokeClaimHappyPath(t *testing.T) {
	var output bytes.Buffer
	if err := cmdRevokeClaim(nil, &output, []string{"-content", "0102"}); err != nil {
		t.Fatalf("cannot create a transaction: %s", err)
	}

	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}
	msg := tx.GetPoeRevokeClaimMsg()
	if msg == nil {
		t.Fatal("not a revoke claim transaction")
	}
	if !bytes.Equal(msg.Content, []byte{1, 2}) {
		t.Fatalf("unexpected content: %X", msg.Content)
	}
}

func TestCmdTransferClaimHappyPath(t *testing.T) {
	newOwner := weavetest.NewCondition().Address()

	var output bytes.Buffer
	args := []string{
		"-content", "0102",
		"-to", newOwner.String(),
	}
	if err := cmdTransferClaim(nil, &output, args); err != nil {
		t.Fatalf("cannot create a transaction: %s", err)
	}

	tx, _, err := readTx(&output)
	if err != nil {
		t.Fatalf("cannot unmarshal created transaction: %s", err)
	}
	msg := tx.GetPoeTransferClaimMsg()
	if msg == nil {
		t.Fatal("not a transfer claim transaction")
	}
	if !msg.NewOwner.Equals(newOwner) {
		t.Fatalf("want %s new owner, got %s", newOwner, msg.NewOwner)
	}
}

func TestContentArg(t *testing.T) {
	path := mustCreateFile(t, strings.NewReader("abc"))

	if _, err := contentArg(nil, ""); err == nil {
		t.Fatal("content or file is required")
	}
	if _, err := contentArg([]byte{1}, path); err == nil {
		t.Fatal("content and file cannot be used together")
	}
	if _, err := contentArg(nil, path+".missing"); err == nil {
		t.Fatal("missing file must fail")
	}
	if got, err := contentArg([]byte{1}, ""); err != nil || !bytes.Equal(got, []byte{1}) {
		t.Fatalf("unexpected result: %X, %v", got, err)
	}
}
