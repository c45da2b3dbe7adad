package main

import (
	"flag"

	"github.com/ezrec/scmips/config"
	"github.com/ezrec/scmips/trace"
	"github.com/ezrec/scmips/translate"
)

// options are the flags shared by every subcommand. Flags that are set
// override the configuration file.
type options struct {
	fs *flag.FlagSet

	configPath    string
	output        string
	database      string
	cycles        string
	language      string
	addr          string
	verbose       bool
	lenient       bool
	keepAfterHalt bool
	defines       config.Defines
}

func newOptions(name string) (opt *options) {
	opt = &options{
		fs: flag.NewFlagSet(name, flag.ContinueOnError),
	}

	fs := opt.fs
	fs.StringVar(&opt.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opt.language, "lang", "", "message language (BCP 47 tag)")
	fs.Var(&opt.defines, "D", "assembler predefine NAME=VALUE (repeatable)")
	fs.BoolVar(&opt.lenient, "lenient", false, "report missing labels at runtime")
	fs.BoolVar(&opt.keepAfterHalt, "keep-after-halt", false, "load lines after the halt instruction")
	fs.BoolVar(&opt.verbose, "v", false, "verbose mode")

	return
}

// config merges the configuration file with the flags set.
func (opt *options) config() (cfg *config.Config, err error) {
	cfg = config.Default()
	if len(opt.configPath) != 0 {
		cfg, err = config.Load(opt.configPath)
		if err != nil {
			return
		}
	}

	opt.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "o":
			cfg.Output = opt.output
		case "db":
			cfg.Database = opt.database
		case "cycles":
			var sel trace.Selection
			sel, err = trace.ParseSelection(opt.cycles)
			if err == nil {
				cfg.Cycles = sel
			}
		case "lang":
			cfg.Language = opt.language
		case "addr":
			cfg.Addr = opt.addr
		case "v":
			cfg.Verbose = opt.verbose
		case "lenient":
			cfg.Lenient = opt.lenient
		case "keep-after-halt":
			cfg.KeepAfterHalt = opt.keepAfterHalt
		case "D":
			if cfg.Defines == nil {
				cfg.Defines = config.Defines{}
			}
			for name, value := range opt.defines {
				cfg.Defines[name] = value
			}
		}
	})
	if err != nil {
		return
	}

	if len(cfg.Language) != 0 {
		err = translate.SetLanguage(cfg.Language)
	}

	return
}
