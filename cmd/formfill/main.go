package main

import (
	"fmt"
	"os"

	"github.com/formfill/formfill/internal/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "formfill:", err)
		os.Exit(1)
	}
}
