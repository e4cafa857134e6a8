package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type eventsConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
}

func (c *eventsConfig) Exec(context.Context, []string) error {
	b, err := connect(c.rootConfig)
	if err != nil {
		return err
	}
	defer b.Close()

	lines, err := b.DumpEvents()
	if err != nil {
		return err
	}
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
	return nil
}

func newEventsCmd(rootConfig *rootConfig, out, err io.Writer) *ffcli.Command {
	cfg := eventsConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("tcctl events", flag.ExitOnError)
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "events",
		ShortUsage: "events",
		ShortHelp:  "Prints the firmware event ring: configures, rescales and switches.",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec:       cfg.Exec,
	}
}
