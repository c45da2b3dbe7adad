package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/ezrec/scmips/server"
)

func serveCommand() *ffcli.Command {
	opt := newOptions("serve")
	opt.fs.StringVar(&opt.addr, "addr", ":1357", "listen address")

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: "scmips serve [flags]",
		ShortHelp:  "Serve simulations over HTTP",
		FlagSet:    opt.fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix("SCMIPS")},
		Exec: func(ctx context.Context, args []string) (err error) {
			cfg, err := opt.config()
			if err != nil {
				return
			}

			e := server.New(cfg.Verbose)

			go func() {
				<-ctx.Done()
				e.Shutdown(context.Background())
			}()

			log.Printf("scmips: listening on %v", cfg.Addr)
			err = e.Start(cfg.Addr)
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
			return
		},
	}
}
