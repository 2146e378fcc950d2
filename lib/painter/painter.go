package painter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fosdem/trigon/lib/api"
	"github.com/fosdem/trigon/lib/config"
	"github.com/fosdem/trigon/lib/frameloop"
	"github.com/fosdem/trigon/lib/kbdctl"
	"github.com/fosdem/trigon/lib/rendering/gldriver"
	"github.com/fosdem/trigon/lib/rendering/shaders"
	"github.com/fosdem/trigon/lib/sink/windowsink"
	"github.com/fosdem/trigon/lib/stats"
	"github.com/fosdem/trigon/lib/theatre"
)

// MakeWindowAndPaint opens the window, builds the objects from cfg and draws
// them until the window is closed, escape is pressed or ctx is done. It must
// run on the thread that was locked in main.
func MakeWindowAndPaint(ctx context.Context, cfg *config.Config) error {
	sink := windowsink.New(&cfg.Window)
	err := sink.Start()
	if err != nil {
		return err
	}
	defer sink.Close()

	driver, err := gldriver.Init()
	if err != nil {
		return err
	}

	sink.CaptureKeys()

	loader := shaders.NewLoader(shaders.SourceFS(string(cfg.ShaderDir)), &shaders.ShaderData{GLSLVersion: cfg.GLSLVersion}, driver, driver)
	theatre, err := theatre.New(cfg, driver, loader)
	if err != nil {
		return fmt.Errorf("could not build theatre: %w", err)
	}
	defer func() {
		if err := theatre.Cleanup(); err != nil {
			slog.Error(fmt.Sprintf("cleanup failed: %s", err), "module", "painter")
		}
	}()
	theatre.Start()

	stats := stats.New(len(theatre.Objects))
	api.ServeInBackground(theatre, stats, cfg.Api)

	kbdctl.SetupShortcutKeys(theatre, sink)

	loop := frameloop.New(sink, driver, frameloop.Objects(theatre.Objects))
	loop.Poll = kbdctl.Poll
	loop.ShutdownRequested = theatre.ShutdownRequested
	loop.Stats = stats

	slog.Info(fmt.Sprintf("drawing %d objects", len(theatre.Objects)), "module", "painter")
	return loop.Run(ctx)
}
