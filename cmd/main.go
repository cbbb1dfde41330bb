package main

import (
	"fmt"
	"os"

	"github.com/wcrum/krb-tui/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.New(cli.RemoteGateway, version).Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
