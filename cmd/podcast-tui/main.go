package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/podcast-downloader/internal/config"
	"github.com/handiism/podcast-downloader/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "Configuration file path (TOML)")
	flag.Parse()

	settings := config.DefaultSettings()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		settings = loaded
	}

	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
