// Package main is the entry point for the embedapi application
package main

import (
	"github.com/ethpandaops/embedapi/cmd"
)

func main() {
	cmd.Execute()
}
