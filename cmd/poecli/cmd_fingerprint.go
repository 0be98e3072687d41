package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/poe/x/poe"
)

func cmdFingerprint(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read data from standard input and print its fingerprint as a CID. This is the
content that is claimed when using a file.
`)
		fl.PrintDefaults()
	}
	var (
		hexFl = fl.Bool("hex", false, "Print the hex representation instead of CID.")
	)
	fl.Parse(args)

	data, err := ioutil.ReadAll(input)
	if err != nil {
		return fmt.Errorf("cannot read input: %s", err)
	}
	content, err := poe.Fingerprint(data)
	if err != nil {
		return fmt.Errorf("cannot compute fingerprint: %s", err)
	}
	if *hexFl {
		_, err = fmt.Fprintf(output, "%X\n", content)
	} else {
		_, err = fmt.Fprintln(output, poe.FormatContent(content))
	}
	return err
}
