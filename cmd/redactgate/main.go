// SPDX-FileCopyrightText: 2022 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	redactgate "github.com/xmidt-org/redactgate/internal"
	"go.uber.org/fx"
)

var (
	// dynamic versioning
	Version string
	Date    string
	Commit  string
)

func printVersion(f *pflag.FlagSet) bool {
	if pVersion, _ := f.GetBool("version"); pVersion {
		printVersionInfo(os.Stdout)
		return true
	}
	return false
}

func printVersionInfo(writer io.Writer) {
	fmt.Fprintf(writer, "%s:\n", redactgate.ApplicationName)
	fmt.Fprintf(writer, "  version: \t%s\n", Version)
	fmt.Fprintf(writer, "  go version: \t%s\n", runtime.Version())
	fmt.Fprintf(writer, "  built time: \t%s\n", Date)
	fmt.Fprintf(writer, "  git commit: \t%s\n", Commit)
	fmt.Fprintf(writer, "  os/arch: \t%s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// RedactGate runs the service until it receives a shutdown signal.
func RedactGate(arguments []string) (exitCode int) {
	v, l, f, err := redactgate.Setup(arguments)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// This allows us to communicate the version of the binary upon request.
	if printVersion(f) {
		return 0
	}

	app := fx.New(redactgate.Options(v, l))

	switch err := app.Err(); {
	case errors.Is(err, pflag.ErrHelp):
		return
	case err == nil:
		app.Run()
	default:
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

func main() {
	os.Exit(RedactGate(os.Args[1:]))
}
