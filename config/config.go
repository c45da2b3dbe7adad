// Package config loads simulator settings from YAML.
package config

import (
	"errors"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/scmips/cpu"
	"github.com/ezrec/scmips/trace"
	"github.com/ezrec/scmips/translate"
)

var f = translate.From

var (
	ErrDefineSyntax = errors.New(f("define must be NAME=VALUE"))
)

// ErrLoad reports the configuration file that failed to load.
type ErrLoad struct {
	Path string
	Err  error
}

func (err *ErrLoad) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrLoad) Unwrap() error {
	return err.Err
}

// Defines are assembler predefines, settable as repeated NAME=VALUE flags.
type Defines map[string]string

// String returns the defines as sorted NAME=VALUE pairs.
func (defs *Defines) String() string {
	if defs == nil {
		return ""
	}
	var pairs []string
	for _, name := range slices.Sorted(maps.Keys(*defs)) {
		pairs = append(pairs, name+"="+(*defs)[name])
	}
	return strings.Join(pairs, ",")
}

// Set adds a NAME=VALUE define.
func (defs *Defines) Set(text string) (err error) {
	name, value, ok := strings.Cut(text, "=")
	name = strings.TrimSpace(name)
	if !ok || len(name) == 0 {
		err = ErrDefineSyntax
		return
	}
	if *defs == nil {
		*defs = Defines{}
	}
	(*defs)[name] = strings.TrimSpace(value)
	return
}

// Config is the simulator configuration.
type Config struct {
	Program       string          `yaml:"program"`         // Assembly source file.
	Output        string          `yaml:"output"`          // Trace output file, '-' for stdout.
	Cycles        trace.Selection `yaml:"cycles"`          // Cycles to trace.
	Database      string          `yaml:"database"`        // SQLite trace database DSN.
	Language      string          `yaml:"language"`        // Message language tag.
	Addr          string          `yaml:"addr"`            // HTTP listen address.
	Verbose       bool            `yaml:"verbose"`         // Verbose logging.
	Lenient       bool            `yaml:"lenient"`         // Defer missing labels to runtime.
	KeepAfterHalt bool            `yaml:"keep_after_halt"` // Load lines after the halt.
	Defines       Defines         `yaml:"defines"`         // Assembler predefines.
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: "-",
		Addr:   ":1357",
	}
}

// Load reads a YAML configuration file over the defaults. Unknown keys are
// an error.
func Load(path string) (cfg *Config, err error) {
	defer func() {
		if err != nil {
			cfg = nil
			err = &ErrLoad{Path: path, Err: err}
		}
	}()

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	cfg = Default()
	dec := yaml.NewDecoder(inf)
	dec.KnownFields(true)
	err = dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		// Empty file
		err = nil
	}
	return
}

// Assembler returns an assembler set up by the configuration.
func (cfg *Config) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{
		Verbose:       cfg.Verbose,
		Lenient:       cfg.Lenient,
		KeepAfterHalt: cfg.KeepAfterHalt,
	}
	for name, value := range cfg.Defines {
		asm.Predefine(name, value)
	}
	return
}
