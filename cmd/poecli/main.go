package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// commands is a register of all availables commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is an independent runable that is taking input and output
// being stdin and stdout. Given args are the command line arguments, without
// the program name, that should be parsed using the flag package. In a special
// case of an invalid argument a message to os.Stderr and os.Exit(2) call are
// allowed.
//
// Commands are meant to be combined using a unix pipe. For example, claiming a
// document is done by creating, signing and submitting a transaction:
//
//   $ poecli create-claim -file contract.pdf \
//       | poecli sign \
//       | poecli submit
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"create-claim":   cmdCreateClaim,
	"fingerprint":    cmdFingerprint,
	"keyaddr":        cmdKeyaddr,
	"keygen":         cmdKeygen,
	"list-claims":    cmdListClaims,
	"resolve-claim":  cmdResolveClaim,
	"revoke-claim":   cmdRevokeClaim,
	"sign":           cmdSignTransaction,
	"submit":         cmdSubmitTransaction,
	"transfer-claim": cmdTransferClaim,
	"version":        cmdVersion,
	"view":           cmdTransactionView,
	"with-fee":       cmdWithFee,
}

func main() {
	// Configuration can be provided by a .env file in the current
	// directory. Already set environment variables take precedence.
	_ = godotenv.Load()

	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the proof of existence application.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	fmt.Fprintln(out, gitHash)
	return nil
}

// gitHash is set during the compilation time.
var gitHash = "dev"
