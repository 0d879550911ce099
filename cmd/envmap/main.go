package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lucasyvas/envmap"
)

// Version information set during build
var (
	version = "dev"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	debugMode := flag.Bool("debug", false, "Enable debug logging")
	configFile := flag.String("config", "", "Path to the variable manifest (yaml or toml)")
	exportLines := flag.Bool("export", false, "Print 'export KEY=VALUE' lines instead of 'KEY=VALUE'")

	flag.Parse()

	if *debugMode {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if *showVersion {
		fmt.Printf("%s %s\n", "envmap", version)
		os.Exit(0)
	}

	if *configFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -config flag is required")
		os.Exit(1)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
	})

	if err := run(*configFile, *exportLines); err != nil {
		var loadErr *envmap.LoadError
		if errors.As(err, &loadErr) {
			for name, cause := range loadErr.Vars {
				log.Error().Str("env_var", name).Msg(cause.Error())
			}
		}
		log.Error().Err(err).Msg("Failed to resolve environment")
		os.Exit(1)
	}
}

func run(configFile string, exportLines bool) error {
	manifest, err := envmap.LoadManifest(configFile)
	if err != nil {
		return err
	}

	sources, err := manifest.Sources()
	if err != nil {
		return err
	}

	loader := envmap.NewLoader(envmap.OS(), sources...)
	resolved, err := loader.Load(manifest.Request())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if exportLines {
			fmt.Printf("export %s=%s\n", name, resolved[name])
		} else {
			fmt.Printf("%s=%s\n", name, resolved[name])
		}
	}
	return nil
}
