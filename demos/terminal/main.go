// terminal draws the evergreen as colored text. Arrow keys orbit, +/- zoom,
// space celebrates, c redraws the ornaments, m toggles sound, q quits. The
// mouse hovers and clicks ornaments like the windowed scene.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/evergreen/chime"
	"github.com/phanxgames/evergreen/term"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	seed := flag.Uint64("seed", 0, "random seed (0 for a fresh layout each run)")
	fps := flag.Int("fps", 30, "redraw rate")
	still := flag.Bool("still", false, "disable auto-rotation")
	ornaments := flag.Int("ornaments", 60, "number of ornaments")
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	cfg := term.DefaultConfig()
	cfg.Seed = *seed
	cfg.FPS = *fps
	cfg.AutoRotate = !*still
	cfg.Layout.Count = *ornaments
	app := term.New(screen, cfg)

	// Audio is optional; a log line here would land on the alternate screen.
	player := chime.NewPlayer(chime.DefaultConfig())
	if err := player.Init(); err == nil {
		defer player.Close()
		app.SetSoundPlayer(player)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
