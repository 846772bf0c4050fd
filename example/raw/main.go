package main

import (
	"fmt"
	"time"

	"github.com/lixenwraith/flog"
)

// TestPayload defines a struct for testing complex type output
type TestPayload struct {
	RequestID uint64
	User      string
	Metrics   map[string]float64
}

func main() {
	fmt.Println("--- Logger Raw Output Test ---")

	byteRecord := []byte("binary\ndata\twith\x00null")

	structRecord := TestPayload{
		RequestID: 9223372036854775807,
		User:      "test_user",
		Metrics: map[string]float64{
			"latency_ms":  15.7,
			"cpu_percent": 88.2,
		},
	}

	// Write emits values with no metadata on console and file alike
	fmt.Println("\n[1] Raw output via Logger.Write()")
	logger1 := flog.NewLogger()
	err := logger1.ApplyConfigString(
		"name=raw",
		"directory=./logs",
		"enable_console=true",
	)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}

	logger1.Write("Byte Record ->", byteRecord)
	logger1.Write("Struct Record ->", structRecord)
	logger1.Write("Scalars ->", 42, 3.5, true, nil)
	fmt.Printf("File copy: %s\n", logger1.CurrentFile())
	logger1.Shutdown()

	// Console sanitizing rewrites the message of formatted records only
	fmt.Println("\n[2] Formatted output with console_sanitize=txt")
	logger2 := flog.NewLogger()
	err = logger2.ApplyConfigString(
		"enable_console=true",
		"enable_file=false",
		"console_sanitize=txt",
		"console_ignored_fields=0b1011",
	)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return
	}
	if err := logger2.Start(); err != nil {
		fmt.Printf("Failed to start logger: %v\n", err)
		return
	}

	logger2.Infof("byte record -> %s", byteRecord)
	logger2.Infof("struct record -> %+v", structRecord)
	logger2.Shutdown(100 * time.Millisecond)

	fmt.Println("\n--- Test Complete ---")
}
