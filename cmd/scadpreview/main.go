// Command scadpreview watches a .scad file and re-emits its linearized CSG
// chain dump on every change, standing in for the live-preview trigger at
// the seam between the compiler and an external rasterizer (the GUI shell
// itself stays out of scope).
//
// Usage:
//
//	scadpreview [flags] <input.scad>
//	scadpreview --config preview.yaml watch.scad
package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gopenscad/scad"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scadpreview <input.scad>",
		Short: "Watch an OpenSCAD file and print its CSG chain on every change",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.scadpreview.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every dump at debug level")
	cobra.OnInitialize(initConfig)
	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".scadpreview")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("SCADPREVIEW")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("loaded config")
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	if verbose || viper.GetBool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	path := args[0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("scadpreview: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("scadpreview: watching %s: %w", path, err)
	}

	dumpOnce(path)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				dumpOnce(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}

func dumpOnce(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("read failed")
		return
	}
	file, err := scad.Parse(string(source))
	if err != nil {
		log.Error().Err(err).Msg("parse failed")
		return
	}
	root := scad.Evaluate(file)
	term := scad.BuildCSGTerm(root)
	norm := scad.Normalize(term)
	chain := scad.Linearize(norm)

	if chain.ExceedsPreviewBudget() {
		log.Warn().Int("primitives", len(chain.Primitives)).Msg("chain exceeds preview budget")
	}
	fmt.Print(chain.Dump())
	log.Debug().Str("path", path).Int("primitives", len(chain.Primitives)).Msg("chain dumped")
}
