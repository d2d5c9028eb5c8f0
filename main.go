// ==============================================================================================
// FILE: main.go
// ==============================================================================================
// PURPOSE: Entry point. Script-file-vs-REPL branching, generalized into cobra subcommands:
//          "run <file>" executes a program non-interactively; "repl" (the default) opens an
//          interactive shell. Both share the same config/logging setup.
// ==============================================================================================

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"applesoft/config"
	"applesoft/interp"
	"applesoft/lineio"
	"applesoft/repl"
	"applesoft/screen"
	"applesoft/store"
)

var (
	configPath  string
	debug       bool
	screenFlag  string
)

func main() {
	root := &cobra.Command{
		Use:   "basic",
		Short: "An interactive Applesoft BASIC interpreter",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML session config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug-level logging")
	root.PersistentFlags().StringVar(&screenFlag, "screen", "", "screen geometry override, WIDTHxHEIGHT")

	root.AddCommand(runCmd(), replCmd())
	root.RunE = replCmd().RunE

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Load and run a program file, then exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadSessionConfig()
			scr := screen.NewANSI(os.Stdout, cfg.Screen.Width, cfg.Screen.Height)
			in := lineio.NewStdin(os.Stdin)
			it := interp.New(scr, in, logger)

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			for _, l := range splitLines(string(data)) {
				if _, err := it.StoreLine(l); err != nil {
					return err
				}
			}
			return it.Run(context.Background())
		},
	}
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := loadSessionConfig()
			scr := screen.NewANSI(os.Stdout, cfg.Screen.Width, cfg.Screen.Height)
			in := lineio.NewStdin(os.Stdin)
			it := interp.New(scr, in, logger)
			st := store.New(cfg.SaveDir)

			sh := repl.New(it, st, os.Stdin, os.Stdout, logger)
			sh.Run(context.Background())
			return nil
		},
	}
}

func loadSessionConfig() (config.Config, *logrus.Logger) {
	cfg := config.Default()
	if configPath != "" {
		if loaded, err := config.Load(configPath); err == nil {
			cfg = loaded
		}
	}
	if screenFlag != "" {
		var w, h int
		if n, _ := fmt.Sscanf(screenFlag, "%dx%d", &w, &h); n == 2 {
			cfg.Screen.Width, cfg.Screen.Height = w, h
		}
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return cfg, logger
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i, r := range text {
		if r == '\n' {
			line := text[start:i]
			line = trimCR(line)
			if line != "" {
				lines = append(lines, line)
			}
			start = i + 1
		}
	}
	if start < len(text) {
		line := trimCR(text[start:])
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}
