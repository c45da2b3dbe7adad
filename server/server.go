// Package server exposes the simulator over HTTP.
package server

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ezrec/scmips/cpu"
	"github.com/ezrec/scmips/emulator"
	"github.com/ezrec/scmips/trace"
)

// DefaultLimit is the default cycle limit of a single simulation.
const DefaultLimit = 1_000_000

// Request is the body of a simulation request.
type Request struct {
	Program       string            `json:"program"`         // Assembly source.
	Cycles        string            `json:"cycles"`          // Cycle selection, default "all,last".
	Lenient       bool              `json:"lenient"`         // Defer missing labels to runtime.
	KeepAfterHalt bool              `json:"keep_after_halt"` // Load lines after the halt.
	Defines       map[string]string `json:"defines"`         // Assembler predefines.
	Text          bool              `json:"text"`            // Include the text trace.
}

// Response is the result of a simulation request.
type Response struct {
	Records []*cpu.Record `json:"records"`
	Summary *cpu.Summary  `json:"summary,omitempty"`
	Trace   string        `json:"trace,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// recorder keeps the records of a run.
type recorder struct {
	records []*cpu.Record
}

func (r *recorder) Cycle(_ context.Context, rec *cpu.Record) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *recorder) Final(_ context.Context, _ *cpu.Summary) error {
	return nil
}

// Server runs simulations on request.
type Server struct {
	Verbose bool // If set, logs every request.
	Limit   int  // Cycle limit per simulation.
}

// New creates the HTTP handler.
func New(verbose bool) *echo.Echo {
	srv := &Server{
		Verbose: verbose,
		Limit:   DefaultLimit,
	}

	e := echo.New()
	e.HideBanner = true
	if verbose {
		e.Use(srv.logger)
	}

	e.GET("/healthz", srv.Healthz)
	e.POST("/simulate", srv.Simulate)

	return e
}

func (srv *Server) logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		err = next(c)
		log.Printf("server: %v %v => %d", c.Request().Method, c.Request().URL.Path, c.Response().Status)
		return
	}
}

// Healthz reports that the service is up.
func (srv *Server) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Simulate assembles and runs a program.
func (srv *Server) Simulate(c echo.Context) (err error) {
	var req Request
	err = c.Bind(&req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, &Response{Error: err.Error()})
	}

	sel := trace.Selection{All: true, Final: true}
	if len(strings.TrimSpace(req.Cycles)) != 0 {
		sel, err = trace.ParseSelection(req.Cycles)
		if err != nil {
			return c.JSON(http.StatusBadRequest, &Response{Error: err.Error()})
		}
	}

	asm := &cpu.Assembler{
		Verbose:       srv.Verbose,
		Lenient:       req.Lenient,
		KeepAfterHalt: req.KeepAfterHalt,
	}
	for name, value := range req.Defines {
		asm.Predefine(name, value)
	}

	rec := &recorder{records: []*cpu.Record{}}
	var text bytes.Buffer

	emu := emulator.NewEmulator()
	emu.Verbose = srv.Verbose
	emu.Selection = sel
	emu.Limit = srv.Limit
	emu.Sinks = []emulator.Sink{rec}
	if req.Text {
		emu.Sinks = append(emu.Sinks, trace.NewTextWriter(&text))
	}

	err = emu.Load(strings.NewReader(req.Program), asm)
	if err != nil {
		return c.JSON(http.StatusBadRequest, &Response{Error: err.Error()})
	}

	summary, err := emu.Run(c.Request().Context())

	resp := &Response{
		Records: rec.records,
		Summary: summary,
		Trace:   text.String(),
	}
	if err != nil {
		resp.Error = err.Error()
	}

	return c.JSON(http.StatusOK, resp)
}
