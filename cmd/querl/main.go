package main

import (
	"os"

	"github.com/querl/querl/pkg/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
