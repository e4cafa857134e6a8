/*
tcctl configures and watches the TC/TCC interrupt timers of a SAMD21 or
SAMD51 board running the samdtimer firmware.

It talks to the firmware over its USB CDC port. The plan subcommand works
offline and shows the register values a period would be programmed with.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/peterbourgon/ff/v3/ffcli"
)

func main() {
	var (
		out = os.Stdout
		err = os.Stderr
	)

	rootCmd, cfg := newRootCmd()
	rootCmd.Subcommands = []*ffcli.Command{
		newPlanCmd(cfg, out, err),
		newInfoCmd(cfg, out, err),
		newConfigCmd(cfg, out, err),
		newSwitchCmd(cfg, out, err, "enable", "Resumes the counter of a configured timer.", setEnabled(true)),
		newSwitchCmd(cfg, out, err, "disable", "Stops the counter, keeping its count.", setEnabled(false)),
		newSwitchCmd(cfg, out, err, "attach", "Enables the interrupt line of a configured timer.", setAttached(true)),
		newSwitchCmd(cfg, out, err, "detach", "Disables the interrupt line; the counter keeps running.", setAttached(false)),
		newWatchCmd(cfg, out, err),
		newEventsCmd(cfg, out, err),
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		num := 0
		for range c {
			num++
			if num >= 3 {
				os.Exit(1)
			}
			cancel()
		}
	}()

	if err := rootCmd.ParseAndRun(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", rootCmd.Name, err)
			os.Exit(1)
		} else if cfg.verbose {
			fmt.Fprintf(os.Stderr, "%s: cancelled\n", rootCmd.Name)
		}
	}
}
