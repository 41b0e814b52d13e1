// tree opens a window with the decorated evergreen: drifting snow, rising
// golden sparkles, 60 ornaments and the celebration overlay. Drag to
// orbit, scroll or pinch to zoom, click ornaments for confetti.
//
// Pass -script to replay a JSON test script and exit when it finishes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/chime"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	seed := flag.Uint64("seed", 0, "random seed (0 for a fresh layout each run)")
	debug := flag.Bool("debug", false, "log per-frame timings to stderr")
	fps := flag.Bool("fps", false, "show the FPS readout")
	mute := flag.Bool("mute", true, "start with sound muted")
	ornaments := flag.Int("ornaments", 60, "number of ornaments")
	script := flag.String("script", "", "JSON test script to replay")
	shots := flag.String("screenshots", "screenshots", "directory for screenshots")
	flag.Parse()

	cfg := evergreen.DefaultSceneConfig()
	cfg.Seed = *seed
	cfg.Layout.Count = *ornaments
	cfg.Debug = *debug
	cfg.ScreenshotDir = *shots

	scene, err := evergreen.NewScene(cfg)
	if err != nil {
		return fmt.Errorf("new scene: %w", err)
	}

	player := chime.NewPlayer(chime.DefaultConfig())
	if err := player.Init(); err != nil {
		log.Printf("audio disabled: %v", err)
	} else {
		defer player.Close()
		scene.SetSoundPlayer(player)
		if !*mute {
			scene.ToggleMute()
		}
	}

	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := evergreen.LoadTestScript(data)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
	}

	return evergreen.Run(scene, evergreen.RunConfig{
		Title:     "Evergreen",
		Width:     cfg.Width,
		Height:    cfg.Height,
		ShowFPS:   *fps,
		Resizable: true,
	})
}
