package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lixenwraith/flog"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[log]
  level = 1 # Debug
  name = "simple"
  directory = "./simple_logs"
  extension = "log"
  enable_console = true
  console_ignored_fields = 0b0011 # hide time and thread id on the console
  enable_async = true
  flush_interval_ms = 100
  # Other settings use defaults
`

func main() {
	fmt.Println("--- Simple Logger Example ---")

	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write example config: %v\n", err)
	} else {
		fmt.Printf("Created example config file: %s\n", configFile)
	}

	// A missing file falls back to defaults
	cfg, err := flog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := flog.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger initialized, run directory: %s\n", flog.Default().RunDirectory())

	flog.Debugf("debug message, config loaded from %s", configFile)
	flog.Infof("application starting")
	flog.Warnf("low disk space threshold approaching: %d%%", 85)

	db := flog.GetModule("db")
	db.Infof("connected to %s", "primary")
	db.Errorf("query failed: %v", os.ErrDeadlineExceeded)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker := flog.GetModule(fmt.Sprintf("worker%d", id))
			for j := 0; j < 3; j++ {
				worker.Infof("step %d", j)
				time.Sleep(10 * time.Millisecond)
			}
		}(i)
	}
	wg.Wait()

	flog.Write("raw", "line", 42)

	if err := flog.Flush(time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Flush error: %v\n", err)
	}
	fmt.Printf("Current log file: %s\n", flog.Default().CurrentFile())

	if err := flog.Shutdown(time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger shutdown error: %v\n", err)
	}
	fmt.Println("--- Example Finished ---")
}
