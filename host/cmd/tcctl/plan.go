package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"periph.io/x/conn/v3/physic"

	"samdtimer/core"
)

// periodFlags selects a period either directly or as a frequency.
type periodFlags struct {
	interval  time.Duration
	frequency physic.Frequency
}

func (p *periodFlags) register(fs *flag.FlagSet) {
	fs.DurationVar(&p.interval, "interval", 0, "period between interrupts, eg 1ms, 250us")
	fs.Var(&p.frequency, "frequency", "interrupt rate, eg 1kHz, 50Hz")
}

// periodUS returns the requested period in microseconds.
func (p *periodFlags) periodUS() (float64, error) {
	switch {
	case p.interval > 0 && p.frequency > 0:
		return 0, errors.New("give -interval or -frequency, not both")
	case p.interval > 0:
		return float64(p.interval) / float64(time.Microsecond), nil
	case p.frequency > 0:
		return 1e6 / hertz(p.frequency), nil
	}
	return 0, errors.New("no -interval or -frequency given")
}

func hertz(f physic.Frequency) float64 {
	return float64(f) / float64(physic.Hertz)
}

// frequencyOf converts a count over a span of µs to a rate.
func frequencyOf(count, spanUS uint32) physic.Frequency {
	if spanUS == 0 {
		return 0
	}
	return physic.Frequency(math.Round(float64(count) * 1e6 / float64(spanUS) * float64(physic.Hertz)))
}

func periodFrequency(us float64) physic.Frequency {
	return physic.Frequency(math.Round(1e6 / us * float64(physic.Hertz)))
}

func usToDuration(us float64) time.Duration {
	return time.Duration(math.Round(us * float64(time.Microsecond)))
}

type planConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	period     periodFlags
	clockHz    uint
}

func (c *planConfig) Exec(_ context.Context, _ []string) error {
	us, err := c.period.periodUS()
	if err != nil {
		return err
	}
	if c.clockHz == 0 || c.clockHz > math.MaxUint32 {
		return fmt.Errorf("clock %d Hz out of range", c.clockHz)
	}
	writePlan(c.out, us, uint32(c.clockHz))
	return nil
}

// writePlan prints the register values for a period and the period they
// actually produce.
func writePlan(w io.Writer, us float64, clockHz uint32) {
	s := core.Compute(us, clockHz)
	actual := s.PeriodUS(clockHz)
	fmt.Fprintf(w, "requested  %v\n", usToDuration(us))
	fmt.Fprintf(w, "prescaler  DIV%d\n", s.Prescaler)
	fmt.Fprintf(w, "compare    %d\n", s.Compare)
	fmt.Fprintf(w, "actual     %v (%v)\n", usToDuration(actual), periodFrequency(actual))
	fmt.Fprintf(w, "error      %+.4f%%\n", (actual-us)/us*100)
}

func newPlanCmd(rootConfig *rootConfig, out, err io.Writer) *ffcli.Command {
	cfg := planConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("tcctl plan", flag.ExitOnError)
	cfg.period.register(fs)
	fs.UintVar(&cfg.clockHz, "clock", core.TimerClockHz, "timer clock in Hz")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "plan",
		ShortUsage: "plan -interval <d> | -frequency <f>",
		ShortHelp:  "Shows the prescaler and compare value for a period without a board.",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec:       cfg.Exec,
	}
}
