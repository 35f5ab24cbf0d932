package main

import (
	"flag"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/vendcore/helpers/cli"
	"github.com/temoto/vendcore/internal/state"
	"github.com/temoto/vendcore/internal/vending"
	"github.com/temoto/vendcore/log2"
)

var log = log2.NewStderr(log2.LInfo)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "", "HCL config path, empty = factory setup")
	flagDebug := cmdline.Bool("debug", false, "debug log, overrides config log.level")
	_ = cmdline.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)

	config := state.DefaultConfig()
	if *flagConfig != "" {
		config = state.MustReadConfig(log, *flagConfig)
	}
	level, err := config.LogLevel()
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	if *flagDebug {
		level = log2.LDebug
	}
	log.SetLevel(level)

	m, err := vending.NewFromConfig(log, config)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	con := newConsole(m, log, os.Stdout)
	if err := cli.MainLoop("vending", con.execute, con.complete); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
}
