// Command bramble runs the bramble demo states in a window.
//
//	bramble --config bramble.yaml --state menu
//	bramble --script smoke.json --log-level debug
//	bramble --cpuprofile ./profiles
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/bramble"
	"github.com/phanxgames/bramble/host"
	"github.com/pkg/profile"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("bramble", "Run the bramble demo states.")
	configPath = app.Flag("config", "YAML configuration file.").Short('c').ExistingFile()
	startState = app.Flag("state", "State to load first (menu, sprites).").Short('s').String()
	logLevel   = app.Flag("log-level", "Log level: debug, info, warn or error.").Enum("debug", "info", "warn", "error")
	scriptPath = app.Flag("script", "JSON input script to play instead of live input.").ExistingFile()
	cpuProfile = app.Flag("cpuprofile", "Write a CPU profile into this directory.").String()
	debug      = app.Flag("debug", "Log per-frame stats.").Bool()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.NoShutdownHook).Stop()
	}

	cfg := bramble.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = bramble.LoadConfigFile(*configPath); err != nil {
			return err
		}
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *startState != "" {
		cfg.Start = *startState
	}
	if cfg.Start == "" {
		cfg.Start = "menu"
	}
	if *debug {
		cfg.Debug = true
	}

	var opts []host.Option
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			return fmt.Errorf("bramble: read script: %w", err)
		}
		runner, err := bramble.LoadTestScript(data)
		if err != nil {
			return err
		}
		opts = append(opts, host.WithScript(runner))
	}

	eng := host.New(cfg, opts...)
	registerStates(eng)
	return host.Run(eng)
}
