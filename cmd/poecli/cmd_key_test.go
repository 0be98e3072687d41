package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/weave"
)

func TestKeygenAndKeyaddr(t *testing.T) {
	dir, err := ioutil.TempDir("", "poecli")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	defer os.RemoveAll(dir)
	keyPath := filepath.Join(dir, "priv.key")

	if err := cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath}); err != nil {
		t.Fatalf("cannot generate a key: %s", err)
	}
	if err := cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath}); err == nil {
		t.Fatal("existing key must not be overwritten")
	}

	var hexOut bytes.Buffer
	if err := cmdKeyaddr(nil, &hexOut, []string{"-key", keyPath}); err != nil {
		t.Fatalf("cannot print address: %s", err)
	}
	addr, err := weave.ParseAddress(strings.TrimSpace(hexOut.String()))
	if err != nil {
		t.Fatalf("invalid address printed %q: %s", hexOut.String(), err)
	}

	var bechOut bytes.Buffer
	if err := cmdKeyaddr(nil, &bechOut, []string{"-key", keyPath, "-bech32", "tpoe"}); err != nil {
		t.Fatalf("cannot print bech32 address: %s", err)
	}
	want, err := toBech32("tpoe", addr)
	if err != nil {
		t.Fatalf("cannot encode address: %s", err)
	}
	if got := strings.TrimSpace(bechOut.String()); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if !strings.HasPrefix(want, "tpoe1") {
		t.Fatalf("unexpected bech32 prefix: %q", want)
	}
}
