// Package main provides the entry point for the itinerary-filter CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/itinerary-filter/cmd/itinerary-filter/commands"
	"github.com/theoremus-urban-solutions/itinerary-filter/internal"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &commands.Options{}

	rootCmd := &cobra.Command{
		Use:   "itinerary-filter",
		Short: "Filter and index itineraries by departure, chronology and ground time",
		Long: `itinerary-filter loads itineraries from a sample set, a GTFS static feed or a
GTFS-Realtime trip updates feed, then filters them with predicates or queries
ordered indexes built over their characteristics.

Commands:
  filter    Apply predicates in source order
  index     Range-query an index by departure or ground time
  demo      Run the standard scenarios`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			internal.InitLogging(opts.Verbose)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default itinerary-filter.yml or config.yml)")
	rootCmd.PersistentFlags().StringVar(&opts.Feed, "feed", "", "feed name from config.feeds[]")
	rootCmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", "", "output format: text|json|yaml")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(commands.NewFilterCommand(opts))
	rootCmd.AddCommand(commands.NewIndexCommand(opts))
	rootCmd.AddCommand(commands.NewDemoCommand(opts))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itinerary-filter %s\n", version)
		},
	}
}
