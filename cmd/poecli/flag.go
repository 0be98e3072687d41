package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iov-one/poe/x/poe"
	"github.com/iov-one/weave"
	"github.com/iov-one/weave/coin"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *weave.Address {
	var a weave.Address
	if defaultVal != "" {
		var err error
		a, err = weave.ParseAddress(defaultVal)
		if err != nil {
			flagDie("Cannot parse %q weave.Address flag value. %s", name, err)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flCoin returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided.
func flCoin(fl *flag.FlagSet, name, defaultVal, usage string) *coin.Coin {
	var c coin.Coin
	if defaultVal != "" {
		var err error
		c, err = coin.ParseHumanFormat(defaultVal)
		if err != nil {
			flagDie("Cannot parse %q coin flag value. %s", name, err)
		}
	}
	fl.Var(&c, name, usage)
	return &c
}

// flContent returns a content key value. Both CID and hex encoded values are
// accepted.
func flContent(fl *flag.FlagSet, name, usage string) *[]byte {
	var c flagcontent
	fl.Var(&c, name, usage)
	return (*[]byte)(&c)
}

type flagcontent []byte

func (c flagcontent) String() string {
	if len(c) == 0 {
		return ""
	}
	return poe.FormatContent(c)
}

func (c *flagcontent) Set(raw string) error {
	val, err := poe.ParseContent(raw)
	if err != nil {
		return err
	}
	*c = val
	return nil
}

// flagDie terminates the program when a flag is invalid.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
