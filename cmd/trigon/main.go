package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fosdem/trigon/lib/config"
	tlog "github.com/fosdem/trigon/lib/log"
	"github.com/fosdem/trigon/lib/painter"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(tlog.NewHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg := config.Default()
	if len(os.Args) > 1 {
		var err error
		cfg, err = config.Parse(os.Args[1])
		if err != nil {
			slog.Error(err.Error(), "module", "config")
			return -1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := painter.MakeWindowAndPaint(ctx, cfg)
	if err != nil {
		slog.Error(err.Error(), "module", "main")
		return -1
	}
	return 0
}
