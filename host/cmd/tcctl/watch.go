package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"samdtimer/host/board"
)

type watchConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	every      time.Duration
	count      int
}

func (c *watchConfig) Exec(ctx context.Context, args []string) error {
	inst, err := instanceArg(args)
	if err != nil {
		return err
	}

	b, err := connect(c.rootConfig)
	if err != nil {
		return err
	}
	defer b.Close()

	prev, err := b.Query(inst)
	if err != nil {
		return err
	}
	writeState(c.out, prev)

	ticker := time.NewTicker(c.every)
	defer ticker.Stop()
	for n := 0; c.count == 0 || n < c.count; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		st, err := b.Query(inst)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, rateLine(prev, st))
		prev = st
	}
	return nil
}

// rateLine reports the interrupt rate measured between two samples. Both
// counters are free running, so unsigned subtraction handles wrap.
func rateLine(prev, cur board.TimerState) string {
	ticks := cur.Ticks - prev.Ticks
	span := cur.Clock - prev.Clock
	return fmt.Sprintf("%s ticks=%d +%d in %v rate %v", cur.Instance, cur.Ticks, ticks,
		time.Duration(span)*time.Microsecond, frequencyOf(ticks, span))
}

func newWatchCmd(rootConfig *rootConfig, out, err io.Writer) *ffcli.Command {
	cfg := watchConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("tcctl watch", flag.ExitOnError)
	fs.DurationVar(&cfg.every, "every", time.Second, "sampling interval")
	fs.IntVar(&cfg.count, "count", 0, "number of samples, 0 runs until interrupted")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "watch",
		ShortUsage: "watch [-every <d>] [-count <n>] <instance>",
		ShortHelp:  "Samples the tick count of a timer and prints the measured rate.",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec:       cfg.Exec,
	}
}
