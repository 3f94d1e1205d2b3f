package main

import (
	"github/keymint/go-signer/cmd"
)

func main() {
	cmd.Execute()
}
