package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"golang.org/x/term"

	"github.com/ezrec/scmips/config"
	"github.com/ezrec/scmips/emulator"
	"github.com/ezrec/scmips/trace"
	"github.com/ezrec/scmips/tracedb"
)

var errProgramMissing = errors.New("missing program file")

const prompt = "Enter cycles to print (comma-separated, or 'all', or 'last'. e.g. 30,34,last): "

// askSelection prompts for the cycles to trace.
func askSelection(in io.Reader, out io.Writer) (sel trace.Selection, err error) {
	fmt.Fprint(out, prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return
	}

	return trace.ParseSelection(line)
}

// programPath returns the program file from the arguments or configuration.
func programPath(cfg *config.Config, args []string) (path string, err error) {
	switch len(args) {
	case 0:
		path = cfg.Program
	case 1:
		path = args[0]
	default:
		err = fmt.Errorf("unknown arguments: %v", args[1:])
		return
	}
	if len(path) == 0 {
		err = errProgramMissing
	}
	return
}

func newRunOptions() (opt *options) {
	opt = newOptions("run")
	fs := opt.fs
	fs.StringVar(&opt.output, "o", "-", "trace output file, '-' for stdout")
	fs.StringVar(&opt.database, "db", "", "SQLite trace database")
	fs.StringVar(&opt.cycles, "cycles", "", "cycles to trace, e.g. 30,34,last or all")
	return
}

func runCommand() *ffcli.Command {
	opt := newRunOptions()

	return &ffcli.Command{
		Name:       "run",
		ShortUsage: "scmips run [flags] <program.s>",
		ShortHelp:  "Assemble and simulate a program, writing a cycle trace",
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

			sel := cfg.Cycles
			if sel.Empty() {
				sel = trace.Last
				if term.IsTerminal(int(os.Stdin.Fd())) {
					sel, err = askSelection(os.Stdin, os.Stderr)
					if err != nil {
						return
					}
				}
			}

			inf, err := os.Open(path)
			if err != nil {
				return
			}
			defer inf.Close()

			emu := emulator.NewEmulator()
			emu.Verbose = cfg.Verbose
			emu.Selection = sel

			err = emu.Load(inf, cfg.Assembler())
			if err != nil {
				return fmt.Errorf("%v: %w", path, err)
			}

			var out io.Writer = os.Stdout
			if cfg.Output != "-" {
				var ouf *os.File
				ouf, err = os.Create(cfg.Output)
				if err != nil {
					return
				}
				defer ouf.Close()
				out = ouf
			}
			emu.Sinks = append(emu.Sinks, trace.NewTextWriter(out))

			if len(cfg.Database) != 0 {
				var store *tracedb.Store
				store, err = tracedb.Open(ctx, cfg.Database, cfg.Verbose)
				if err != nil {
					return
				}
				defer store.Close()
				err = store.Reset(ctx)
				if err != nil {
					return
				}
				emu.Sinks = append(emu.Sinks, store)
			}

			summary, err := emu.Run(ctx)
			if cfg.Verbose && summary != nil {
				log.Printf("%v: %v after %d cycles", path, summary.State, summary.Cycles)
			}
			if err != nil {
				return fmt.Errorf("%v: %w", path, err)
			}

			return
		},
	}
}
