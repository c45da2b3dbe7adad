// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/peterbourgon/ff/v3/ffcli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	root := &ffcli.Command{
		ShortUsage: "scmips <subcommand> [flags]",
		FlagSet:    flag.NewFlagSet("scmips", flag.ExitOnError),
		Subcommands: []*ffcli.Command{
			runCommand(),
			dumpCommand(),
			serveCommand(),
		},
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
	}

	err := root.ParseAndRun(ctx, os.Args[1:])
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
