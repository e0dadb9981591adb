// Package main is the entry point for eggdl.
package main

import (
	"github.com/eggdl-cli/eggdl/cmd"
	"github.com/eggdl-cli/eggdl/config"
	"github.com/eggdl-cli/eggdl/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
