package main

import (
	"os"

	"github.com/AbdelazizMoustafa10m/Rook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
