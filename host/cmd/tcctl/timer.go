package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"samdtimer/core"
	"samdtimer/host/board"
)

// instanceArg parses the single <instance> argument, eg tc3 or TCC0.
func instanceArg(args []string) (core.Instance, error) {
	if len(args) != 1 {
		return 0, errors.New("expected one timer instance, eg tc3")
	}
	inst, err := core.ParseInstance(args[0])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", args[0], err)
	}
	return inst, nil
}

type configConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	period     periodFlags
}

func (c *configConfig) Exec(_ context.Context, args []string) error {
	inst, err := instanceArg(args)
	if err != nil {
		return err
	}
	if _, err := c.period.periodUS(); err != nil {
		return err
	}

	b, err := connect(c.rootConfig)
	if err != nil {
		return err
	}
	defer b.Close()

	var s core.Setting
	if c.period.frequency > 0 {
		s, err = b.ConfigureFrequency(inst, hertz(c.period.frequency))
	} else {
		s, err = b.ConfigureInterval(inst, uint32(c.period.interval.Microseconds()))
	}
	if err != nil {
		return err
	}

	actual := s.PeriodUS(b.Dictionary().ClockHz())
	fmt.Fprintf(c.out, "%s prescaler DIV%d compare %d period %v (%v)\n",
		inst, s.Prescaler, s.Compare, usToDuration(actual), periodFrequency(actual))
	return nil
}

func newConfigCmd(rootConfig *rootConfig, out, err io.Writer) *ffcli.Command {
	cfg := configConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("tcctl config", flag.ExitOnError)
	cfg.period.register(fs)
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "config",
		ShortUsage: "config -interval <d> | -frequency <f> <instance>",
		ShortHelp:  "Programs a timer, rescaling a running counter, and starts it.",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec:       cfg.Exec,
	}
}

type switchFunc func(b *board.Board, inst core.Instance) error

func setEnabled(on bool) switchFunc {
	return func(b *board.Board, inst core.Instance) error { return b.SetEnabled(inst, on) }
}

func setAttached(on bool) switchFunc {
	return func(b *board.Board, inst core.Instance) error { return b.SetAttached(inst, on) }
}

type switchConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	apply      switchFunc
}

func (c *switchConfig) Exec(_ context.Context, args []string) error {
	inst, err := instanceArg(args)
	if err != nil {
		return err
	}

	b, err := connect(c.rootConfig)
	if err != nil {
		return err
	}
	defer b.Close()

	if err := c.apply(b, inst); err != nil {
		return err
	}
	st, err := b.Query(inst)
	if err != nil {
		return err
	}
	writeState(c.out, st)
	return nil
}

func newSwitchCmd(rootConfig *rootConfig, out, err io.Writer, name, help string, apply switchFunc) *ffcli.Command {
	cfg := switchConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
		apply:      apply,
	}

	fs := flag.NewFlagSet("tcctl "+name, flag.ExitOnError)
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       name,
		ShortUsage: name + " <instance>",
		ShortHelp:  help,
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec:       cfg.Exec,
	}
}

func onOff(b bool, on, off string) string {
	if b {
		return on
	}
	return off
}

func writeState(w io.Writer, st board.TimerState) {
	fmt.Fprintf(w, "%s %s %s ticks=%d\n", st.Instance,
		onOff(st.Enabled, "enabled", "disabled"),
		onOff(st.Attached, "attached", "detached"),
		st.Ticks)
}
