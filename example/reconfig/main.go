package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/flog"
)

const configFile = "reconfig.toml"

var initialConfig = `
[log]
  name = "reconfig"
  directory = "./logs"
  level = 2 # Info
  enable_async = true
`

// Edit reconfig.toml while this runs, e.g. set level = 1 to see debug records
// or change directory to start a new run.
func main() {
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := os.WriteFile(configFile, []byte(initialConfig), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", configFile, err)
			os.Exit(1)
		}
	}

	cfg, err := flog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", configFile, err)
		os.Exit(1)
	}

	logger := flog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Shutdown(time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = logger.WatchConfigFile(ctx, configFile, func(err error) {
		if err != nil {
			fmt.Printf("reload rejected: %v\n", err)
			return
		}
		c := logger.GetConfig()
		fmt.Printf("reloaded: level=%s run=%s\n", flog.LevelName(c.Level), logger.RunDirectory())
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to watch %s: %v\n", configFile, err)
		os.Exit(1)
	}

	fmt.Printf("Watching %s, press Ctrl+C to stop\n", configFile)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Debugf("tick %d", i)
			logger.Infof("tick %d", i)
		}
	}
}
