package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lane-catcher/audio"
	"github.com/lixenwraith/lane-catcher/config"
	"github.com/lixenwraith/lane-catcher/constants"
	"github.com/lixenwraith/lane-catcher/core"
	"github.com/lixenwraith/lane-catcher/engine"
	"github.com/lixenwraith/lane-catcher/input"
	"github.com/lixenwraith/lane-catcher/network"
	"github.com/lixenwraith/lane-catcher/render"
	"github.com/lixenwraith/lane-catcher/status"
)

var (
	configFlag = flag.String("config", "", "TOML config file")
	timeFlag   = flag.Int("time", 0, "Session length in seconds (overrides config)")
	listenFlag = flag.String("listen", "", "Websocket bridge address, e.g. "+constants.DefaultBridgeAddr)
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	seedFlag   = flag.Uint64("seed", 0, "Spawn seed, 0 picks one per run")
	dumpFlag   = flag.Bool("dump-config", false, "Print the effective config as TOML and exit")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lane-catcher: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "lane-catcher: %v\n", err)
		os.Exit(1)
	}

	if *dumpFlag {
		if err := cfg.Encode(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "lane-catcher: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "lane-catcher: %v\n", err)
		os.Exit(1)
	}
}

// applyFlags overrides cfg with the flags given on the command line
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "time":
			cfg.Game.TimeLimit = *timeFlag
		case "listen":
			cfg.Bridge.Listen = *listenFlag
		case "mute":
			cfg.Audio.Muted = *muteFlag
		case "seed":
			cfg.Game.Seed = *seedFlag
		}
	})
}

func run(cfg *config.Config) error {
	ec, err := cfg.ToEngine()
	if err != nil {
		return err
	}
	keys, err := cfg.KeyMap()
	if err != nil {
		return err
	}
	aliases, err := cfg.PoseAliases()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	// Dependency Injection: goroutines started through core.Go restore the screen on crash
	core.SetCrashHandler(screen.Fini)
	defer core.SetCrashHandler(nil)

	stats := status.NewRegistry()
	view := render.NewRenderer(screen,
		render.WithStats(stats),
		render.WithBridgeAddr(cfg.Bridge.Listen),
	)
	loop := engine.NewLoop(engine.WithAfterFrame(view.Draw))

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[MAIN] spawn seed %d", seed)

	eng, err := engine.New(ec, loop,
		engine.WithRandom(engine.NewRandom(seed)),
		engine.WithStats(stats),
	)
	if err != nil {
		return err
	}

	player := audio.NewPlayer(cfg.AudioConfig())
	if err := player.Initialize(); err != nil {
		log.Printf("[AUDIO] %v (continuing without audio)", err)
	} else {
		defer player.Cleanup()
	}
	view.SetMuted(player.Muted())

	stabilizer := input.NewStabilizer(cfg.Settle(), func(lane engine.Lane) {
		loop.Post(func() {
			eng.MoveBasket(lane)
		})
	})
	stabilizer.SetAliases(aliases)
	defer stabilizer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var bridge engine.Observer
	if nc := cfg.BridgeConfig(log.Default()); nc != nil {
		srv := network.NewServer(nc, network.NewLoopGame(loop, eng, stabilizer), stats)
		bridge = srv.Bridge()
		core.Go(func() {
			if err := srv.ListenAndServe(ctx); err != nil {
				log.Printf("[BRIDGE] %v", err)
			}
		})
	}

	eng.Bind(engine.Fanout(view, audio.NewCues(player), stabilizer, bridge))

	core.Go(func() {
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("[MAIN] loop: %v", err)
		}
	})

	events := make(chan tcell.Event, 16)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	ctl := &controller{loop: loop, eng: eng, view: view, player: player}
	for {
		select {
		case <-loop.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ctl.handle(keys.Resolve(ev)) {
					log.Printf("[MAIN] quit, stats %v", stats.Snapshot())
					return nil
				}
			}
		}
	}
}
