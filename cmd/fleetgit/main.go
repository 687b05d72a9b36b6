// Package main is the entry point for the fleetgit CLI.
package main

import (
	"github.com/gizzahub/fleetgit"
	"github.com/gizzahub/fleetgit/cmd/fleetgit/cmd"
)

func main() {
	cmd.Execute(fleetgit.FullVersion())
}
