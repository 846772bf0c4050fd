package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lixenwraith/flog"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

var levels = []int64{
	flog.LevelDebug,
	flog.LevelInfo,
	flog.LevelWarn,
	flog.LevelError,
}

func generateRandomMessage(rng *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rng.Intn(len(chars))])
	}
	return sb.String()
}

func main() {
	app := &cli.Command{
		Name:  "stress",
		Usage: "hammer the logger from many goroutines and report throughput",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "./stress_logs", Usage: "log root directory"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Value: 64, Usage: "producer goroutines"},
			&cli.IntFlag{Name: "records", Aliases: []string{"n"}, Value: 5000, Usage: "records per worker"},
			&cli.IntFlag{Name: "max-message", Value: 1024, Usage: "upper bound of random message size"},
			&cli.IntFlag{Name: "max-size-bytes", Value: 1 << 20, Usage: "rotation threshold"},
			&cli.IntFlag{Name: "max-total-kb", Value: 0, Usage: "run directory cap, 0 disables cleanup"},
			&cli.BoolFlag{Name: "async", Value: true, Usage: "queue records below ERROR"},
			&cli.BoolFlag{Name: "clean", Usage: "remove the log root before starting"},
			&cli.DurationFlag{Name: "shutdown-timeout", Value: 10 * time.Second},
		},
		Action: runStress,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "stress: %v\n", err)
		os.Exit(1)
	}
}

func runStress(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	if cmd.Bool("clean") {
		_ = os.RemoveAll(dir)
	}

	logger, err := flog.NewBuilder().
		Name("stress").
		Directory(dir).
		EnableConsole(false).
		EnableAsync(cmd.Bool("async")).
		MaxSizeBytes(int64(cmd.Int("max-size-bytes"))).
		MaxTotalSizeKB(int64(cmd.Int("max-total-kb"))).
		HeartbeatLevel(2).
		HeartbeatIntervalS(1).
		Build()
	if err != nil {
		return err
	}
	if err := logger.Start(); err != nil {
		return err
	}

	workers := cmd.Int("workers")
	records := cmd.Int("records")
	maxMessage := cmd.Int("max-message")

	fmt.Printf("Starting stress test: %d workers x %d records, run directory %s\n",
		workers, records, logger.RunDirectory())

	g, gctx := errgroup.WithContext(ctx)
	startTime := time.Now()
	for w := 0; w < workers; w++ {
		id := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))
			m := logger.Module(fmt.Sprintf("w%03d", id))
			for i := 0; i < records; i++ {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				msg := generateRandomMessage(rng, rng.Intn(maxMessage)+10)
				m.Output(1, levels[rng.Intn(len(levels))], "seq=%d %s", i, msg)
			}
			return nil
		})
	}

	runErr := g.Wait()
	duration := time.Since(startTime)

	stats := logger.Stats()
	fmt.Printf("Wrote %d records (%d bytes) in %v\n",
		stats.RecordsWritten, stats.BytesWritten, duration.Round(time.Millisecond))
	if duration.Seconds() > 0 {
		fmt.Printf("Approximate records/sec: %.0f\n", float64(workers*records)/duration.Seconds())
	}
	fmt.Printf("Last file: %s\n", logger.CurrentFile())

	if err := logger.Shutdown(cmd.Duration("shutdown-timeout")); err != nil {
		return err
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
