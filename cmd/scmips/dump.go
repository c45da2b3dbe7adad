package main

import (
	"context"
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/term"
)

// labelEntry is a label table row, as dumped.
type labelEntry struct {
	Label string
	Index int
	Pc    string
}

func dumpCommand() *ffcli.Command {
	opt := newOptions("dump")

	return &ffcli.Command{
		Name:       "dump",
		ShortUsage: "scmips dump [flags] <program.s>",
		ShortHelp:  "Assemble a program and print its instructions and labels",
		FlagSet:    opt.fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix("SCMIPS")},
		Exec: func(ctx context.Context, args []string) (err error) {
			cfg, err := opt.config()
			if err != nil {
				return
			}

			path, err := programPath(cfg, args)
			if err != nil {
				return
			}

			inf, err := os.Open(path)
			if err != nil {
				return
			}
			defer inf.Close()

			prog, err := cfg.Assembler().Parse(inf)
			if err != nil {
				return fmt.Errorf("%v: %w", path, err)
			}

			printer := pp.New()
			printer.SetOutput(os.Stdout)
			printer.SetColoringEnabled(term.IsTerminal(int(os.Stdout.Fd())))

			for n, ins := range prog.Instructions {
				fmt.Printf("%04X: %-28s line %d\n", n*4, ins.String(), ins.LineNo)
			}

			var labels []labelEntry
			for label, index := range prog.Labels.All() {
				labels = append(labels, labelEntry{
					Label: label,
					Index: index,
					Pc:    fmt.Sprintf("%04X", index*4),
				})
			}
			printer.Println(labels)

			if cfg.Verbose {
				printer.Println(prog.Instructions)
			}

			return
		},
	}
}
