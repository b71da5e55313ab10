package main

import (
	"fmt"
	"os"

	"github.com/example/aerobridge/internal/cli"
)

func main() {
	if err := cli.Execute(cli.NewRootCmd()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
