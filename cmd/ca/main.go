//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"voxel-ca/internal/app"
	"voxel-ca/internal/config"
	"voxel-ca/internal/core"
	_ "voxel-ca/internal/sims/moore3d"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	appCfg := app.NewConfig()
	appCfg.Bind(flag.CommandLine)
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	sim, err := core.New(cfg.Sim, cfg.Map())
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, appCfg, cfg.Seed)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("voxel-ca — " + sim.Name())
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
