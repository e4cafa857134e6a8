package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"samdtimer/host/board"
	"samdtimer/host/serial"
)

// envPrefix lets every flag be set from TCCTL_<FLAG>, e.g. TCCTL_DEVICE.
const envPrefix = "TCCTL"

type rootConfig struct {
	verbose bool
	device  string
	timeout time.Duration
	debug   bool
}

func (c *rootConfig) registerFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "v", false, "increase log verbosity")
	fs.StringVar(&c.device, "device", "/dev/ttyACM0", "serial device of the board")
	fs.DurationVar(&c.timeout, "timeout", time.Second, "maximum wait for each response")
	fs.BoolVar(&c.debug, "debug", false, "print firmware debug output")
}

func (c *rootConfig) Exec(context.Context, []string) error {
	return flag.ErrHelp
}

func newRootCmd() (*ffcli.Command, *rootConfig) {
	var cfg rootConfig

	fs := flag.NewFlagSet("tcctl", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "tcctl",
		ShortUsage: "tcctl [flags] <subcommand>",
		ShortHelp:  "Configure and watch SAMD TC/TCC interrupt timers.",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec:       cfg.Exec,
	}, &cfg
}

func newLogger(verbose bool) *log.Logger {
	if verbose {
		return log.New(os.Stderr, "tcctl: ", log.Ltime|log.Lmicroseconds)
	}
	return log.New(io.Discard, "", 0)
}

// connect opens the board and loads its dictionary.
func connect(c *rootConfig) (*board.Board, error) {
	logger := newLogger(c.verbose)
	logger.Printf("opening %s", c.device)

	b, err := board.ConnectWithConfig(serial.DefaultConfig(c.device))
	if err != nil {
		return nil, err
	}
	b.Timeout = c.timeout
	b.DebugOutput = func(line string) { logger.Print("firmware: ", line) }
	if c.debug {
		b.DebugOutput = func(line string) { fmt.Fprintln(os.Stderr, line) }
	}

	if err := b.RetrieveDictionary(); err != nil {
		b.Close()
		return nil, err
	}
	d := b.Dictionary()
	logger.Printf("firmware %s (%s), timers %s", d.Version, d.BuildVersions, d.Config["TIMER_INSTANCES"])

	if c.debug {
		if err := b.SetDebug(true); err != nil {
			b.Close()
			return nil, err
		}
	}
	return b, nil
}
