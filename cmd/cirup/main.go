package main

import (
	"fmt"
	"os"

	"github.com/devolutions-sync/cirup/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "cirup: %v\n", err)
		os.Exit(1)
	}
}
