// Command smokefx shows the smoke effect on an air-conditioner control
// screen.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--preset <name>    Start with a specific preset (e.g., --preset=glyph-mix)
//	--presets <path>   Load presets from a YAML file instead of the built-in set
//	--seed <n>         Fixed random seed for reproducible smoke
//	--verbose          Enable verbose logging (default off)
//
// Controls:
//
//	1 / 2 / 3   - Fan speed
//	Tab         - Next preset
//	P           - Power on/off
//	F11         - Toggle fullscreen
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/smokefx/pkg/app"
	"github.com/decker502/smokefx/pkg/config"
	"github.com/decker502/smokefx/pkg/embedded"
)

var (
	presetFlag  = flag.String("preset", "", "Start with a specific preset name")
	presetsFlag = flag.String("presets", "", "Path to a preset YAML file (default: built-in presets)")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	smokeApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		Preset:     *presetFlag,
		PresetPath: *presetsFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Smoke FX")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(smokeApp); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	smokeApp.Shutdown()
}
