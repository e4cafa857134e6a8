package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"samdtimer/host/board"
)

type infoConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	json       bool
}

func (c *infoConfig) Exec(context.Context, []string) error {
	b, err := connect(c.rootConfig)
	if err != nil {
		return err
	}
	defer b.Close()

	if c.json {
		_, err := c.out.Write(append(b.DictionaryJSON(), '\n'))
		return err
	}
	clock, err := b.Clock()
	if err != nil {
		return err
	}
	writeInfo(c.out, b.Dictionary(), clock)
	return nil
}

func writeInfo(w io.Writer, d *board.Dictionary, clock uint32) {
	fmt.Fprintf(w, "version   %s\n", d.Version)
	fmt.Fprintf(w, "build     %s\n", d.BuildVersions)
	fmt.Fprintf(w, "uptime    %d us\n", clock)
	fmt.Fprintf(w, "timers    %v\n", d.Instances())

	fmt.Fprintln(w, "\nconfig:")
	for _, k := range sortedKeys(d.Config) {
		fmt.Fprintf(w, "  %s = %v\n", k, d.Config[k])
	}
	fmt.Fprintln(w, "\ncommands:")
	writeMessages(w, d.Commands)
	fmt.Fprintln(w, "\nresponses:")
	writeMessages(w, d.Responses)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// writeMessages lists signatures by ID.
func writeMessages(w io.Writer, m map[string]int) {
	sigs := make([]string, 0, len(m))
	for sig := range m {
		sigs = append(sigs, sig)
	}
	sort.Slice(sigs, func(i, j int) bool { return m[sigs[i]] < m[sigs[j]] })
	for _, sig := range sigs {
		fmt.Fprintf(w, "  [%2d] %s\n", m[sig], sig)
	}
}

func newInfoCmd(rootConfig *rootConfig, out, err io.Writer) *ffcli.Command {
	cfg := infoConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("tcctl info", flag.ExitOnError)
	fs.BoolVar(&cfg.json, "json", false, "print the raw dictionary")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "info",
		ShortUsage: "info [-json]",
		ShortHelp:  "Prints the firmware dictionary: version, timers, message table.",
		FlagSet:    fs,
		Options:    []ff.Option{ff.WithEnvVarPrefix(envPrefix)},
		Exec:       cfg.Exec,
	}
}
