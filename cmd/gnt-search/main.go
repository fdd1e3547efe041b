// Command gnt-search runs the Guard & Towers search engine as a
// standalone CLI: feed it a position and time budget, get back the
// engine's chosen move plus a short search report.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gnt-ai/searchcore/internal/engine"
)

var (
	cfgFile    string
	ttSizeMB   int
	weightFile string
	logLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gnt-search",
		Short: "Guard & Towers search engine",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./gnt-search.toml)")
	root.PersistentFlags().IntVar(&ttSizeMB, "tt-size", 64, "transposition table size in MB")
	root.PersistentFlags().StringVar(&weightFile, "weights", "", "TOML file overriding evaluation weights")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(newMoveCmd())
	root.AddCommand(newPerftCmd())
	return root
}

func setupLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func loadConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("gnt-search")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return nil
		}
		return err
	}
	return nil
}

func loadWeights() (*engine.Weights, error) {
	w := engine.DefaultWeights()
	if weightFile == "" {
		return w, nil
	}
	if err := loadWeightsFile(weightFile, w); err != nil {
		return nil, err
	}
	return w, nil
}

func printMoveReport(move string, info engine.SearchInfo) {
	bold := color.New(color.Bold)
	bold.Printf("bestmove %s\n", move)
	fmt.Printf("depth %d score %d nodes %d time %s\n",
		info.Depth, info.Score, info.Nodes, info.Time)
}
