// Package main is the entry point for vhls.
package main

import (
	"github.com/samber/lo"
	"github.com/vhls-cli/vhls/cmd"
	"github.com/vhls-cli/vhls/config"
	"github.com/vhls-cli/vhls/internal/sweep"
	"github.com/vhls-cli/vhls/log"
	"github.com/vhls-cli/vhls/where"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Engine sockets of killed sessions.
	sweep.CollectGarbage(where.Temp())

	cmd.Execute()
}
