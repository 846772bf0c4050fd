package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/flog"
)

const (
	logDirectory = "./temp_logs"
	logInterval  = 200 * time.Millisecond
)

// main walks the logger through each combination of console and file output
func main() {
	if err := os.RemoveAll(logDirectory); err != nil {
		fmt.Printf("Warning: could not remove old log directory: %v\n", err)
	}

	fmt.Println("--- Running Output Sink Scenarios ---")
	fmt.Printf("! All file-based logs will be in the '%s' directory.\n\n", logDirectory)

	fmt.Println("--- SCENARIO 1: Testing configurations in isolation (new logger per test) ---")
	testFileOnly()
	testStdoutOnly()
	testStderrOnly()
	testNoOutput()

	fmt.Println("\n--- SCENARIO 2: Testing reconfiguration on a single logger instance ---")
	testReconfigurationTransitions()

	fmt.Println("\n--- Output Sink Scenarios Complete ---")
	fmt.Printf("Check the '%s' directory for log files.\n", logDirectory)
}

func testFileOnly() {
	logger := flog.NewLogger()
	runTestPhase(logger, "1.1: File-Only",
		"directory="+logDirectory,
		"name=file_only",
		"enable_console=false",
	)
	shutdownLogger(logger, "1.1: File-Only")
}

func testStdoutOnly() {
	logger := flog.NewLogger()
	runTestPhase(logger, "1.2: Stdout-Only",
		"enable_console=true",
		"enable_file=false",
		"console_ignored_fields=0",
	)
	shutdownLogger(logger, "1.2: Stdout-Only")
}

func testStderrOnly() {
	fmt.Fprintln(os.Stderr, "\n---")
	logger := flog.NewLogger()
	runTestPhase(logger, "1.3: Stderr-Only",
		"enable_console=true",
		"console_target=stderr",
		"enable_file=false",
	)
	fmt.Fprintln(os.Stderr, "---")
	shutdownLogger(logger, "1.3: Stderr-Only")
}

// testNoOutput disables both sinks; records are discarded before formatting
func testNoOutput() {
	logger := flog.NewLogger()
	runTestPhase(logger, "1.4: No-Output (logs should be dropped)",
		"enable_console=false",
		"enable_file=false",
	)
	shutdownLogger(logger, "1.4: No-Output")
}

func testReconfigurationTransitions() {
	logger := flog.NewLogger()

	runTestPhase(logger, "2.1: Reconfig - Initial (Dual File+Stdout)",
		"directory="+logDirectory,
		"name=reconfig",
		"enable_console=true",
		"enable_file=true",
		"enable_async=true",
	)

	runTestPhase(logger, "2.2: Reconfig - Transition to Stdout-Only",
		"enable_file=false",
	)

	// The run directory and sequence survive; the next record reopens a file
	runTestPhase(logger, "2.3: Reconfig - Transition back to Dual (File+Stdout)",
		"enable_file=true",
	)

	fmt.Println("\n[Phase 2.4: Reconfig - Testing log levels on final state]")
	final := logger.Module("final")
	final.Debugf("This is a debug message.")
	final.Infof("This is an info message.")
	final.Warnf("This is a warning message.")
	final.Errorf("This is an error message.")
	time.Sleep(logInterval)

	shutdownLogger(logger, "2: Reconfiguration")
}

// runTestPhase applies overrides, starts the worker and logs a phase marker pair
func runTestPhase(logger *flog.Logger, phaseName string, overrides ...string) {
	fmt.Printf("\n[Phase %s]\n", phaseName)
	fmt.Println("  Config:", overrides)

	if err := logger.ApplyConfigString(overrides...); err != nil {
		fmt.Printf("  ERROR: Failed to initialize/reconfigure logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Start(); err != nil {
		fmt.Printf("  ERROR: Failed to start logger: %v\n", err)
		os.Exit(1)
	}

	logger.Infof("start_phase name=%q", phaseName)
	time.Sleep(logInterval)
	logger.Infof("end_phase name=%q", phaseName)
	time.Sleep(logInterval)

	if f := logger.CurrentFile(); f != "" {
		fmt.Println("  File:", f)
	}
}

func shutdownLogger(l *flog.Logger, phaseName string) {
	if err := l.Shutdown(500 * time.Millisecond); err != nil {
		fmt.Printf("  WARNING: Shutdown error in phase '%s': %v\n", phaseName, err)
	}
}
