package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/flog"
)

// Simulate rapid reconfiguration
func main() {
	var count atomic.Int64

	err := flog.InitWithDefaults("name=reconfig", "directory=./logs", "enable_console=false")
	if err != nil {
		fmt.Printf("Initial Init error: %v\n", err)
		return
	}

	done := make(chan struct{})
	go func() {
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			flog.Infof("test log %d", i)
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	// Alternate settings that restart the worker, switch paths and rotate
	for i := 0; i < 10; i++ {
		err := flog.Default().ApplyConfigString(
			fmt.Sprintf("flush_interval_ms=%d", 10*(i+1)),
			fmt.Sprintf("enable_async=%t", i%2 == 0),
			fmt.Sprintf("max_size_bytes=%d", 4096*(i+1)),
		)
		if err != nil {
			fmt.Printf("Reconfigure error: %v\n", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	close(done)

	stats := flog.Default().Stats()
	fmt.Printf("Total logs attempted: %d, written: %d, write errors: %d\n",
		count.Load(), stats.RecordsWritten, stats.WriteErrors)

	if err := flog.Shutdown(time.Second); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
}
