package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/bobmcallan/etoro-extractor/internal/config"
)

// versionCmd prints the binary's build information.
type versionCmd struct{}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "print version and build information" }
func (*versionCmd) Usage() string            { return "etoro-extractor version\n" }
func (*versionCmd) SetFlags(f *flag.FlagSet) {}

func (*versionCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	fmt.Printf("etoro-extractor %s\n", config.GetFullVersion())
	return subcommands.ExitSuccess
}
