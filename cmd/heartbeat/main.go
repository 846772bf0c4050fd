package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/flog"
)

func main() {
	// Test cycle: disable -> PROC -> PROC+DISK -> PROC+DISK+SYS -> PROC+DISK -> PROC -> disable
	levels := []struct {
		level       int64
		description string
	}{
		{0, "Heartbeats disabled"},
		{1, "PROC heartbeats only"},
		{2, "PROC+DISK heartbeats"},
		{3, "PROC+DISK+SYS heartbeats"},
		{2, "PROC+DISK heartbeats (reducing from 3)"},
		{1, "PROC heartbeats only (reducing from 2)"},
		{0, "Heartbeats disabled (final)"},
	}

	logger := flog.NewLogger()

	for _, levelConfig := range levels {
		overrides := []string{
			"name=heartbeat",
			"directory=./logs",
			"level=debug",
			"enable_console=false",
			"heartbeat_interval_s=1",
			fmt.Sprintf("heartbeat_level=%d", levelConfig.level),
		}

		if err := logger.ApplyConfigString(overrides...); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reconfigure logger: %v\n", err)
			os.Exit(1)
		}
		if err := logger.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Testing: %s\n", levelConfig.description)

		// Heartbeats only go to a file a record has already opened
		logger.Infof("heartbeat level set to %d", levelConfig.level)
		time.Sleep(2500 * time.Millisecond)
	}

	fmt.Printf("Heartbeat records are in %s\n", logger.CurrentFile())
	if err := logger.Shutdown(time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shut down logger: %v\n", err)
	}
}
