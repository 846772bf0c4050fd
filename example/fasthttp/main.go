package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/flog"
	"github.com/lixenwraith/flog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	logger, err := flog.NewBuilder().
		Name("fasthttp_server").
		Directory("./logs").
		LevelString("info").
		EnableAsync(true).
		MaxSizeMB(10).
		Build()
	if err != nil {
		panic(err)
	}
	if err := logger.Start(); err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(flog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)
	access := logger.Module("access")

	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			requestHandler(ctx)
			access.Infof("%s %s %d %v", ctx.Method(), ctx.Path(), ctx.Response.StatusCode(), time.Since(start))
		},
		Logger: fasthttpAdapter,

		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

// customLevelDetector recognizes fasthttp's own messages before falling back
// to keyword detection
func customLevelDetector(msg string) (int64, bool) {
	if strings.Contains(msg, "connection cannot be served") {
		return flog.LevelWarn, true
	}
	if strings.Contains(msg, "error when serving connection") {
		return flog.LevelError, true
	}
	return compat.DetectLogLevel(msg)
}
