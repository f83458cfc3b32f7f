package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/deskrush/api"
	"github.com/lixenwraith/deskrush/audio"
	"github.com/lixenwraith/deskrush/config"
	"github.com/lixenwraith/deskrush/core"
	"github.com/lixenwraith/deskrush/engine"
	"github.com/lixenwraith/deskrush/event"
	"github.com/lixenwraith/deskrush/render"
	"github.com/lixenwraith/deskrush/status"
	"github.com/lixenwraith/deskrush/system"
	"github.com/lixenwraith/deskrush/telemetry"
)

var (
	configFlag = flag.String("config", "", "Level file (YAML); built-in office level when empty")
	seedFlag   = flag.Uint64("seed", 0, "Random seed; 0 keeps the level or environment seed")
	debugFlag  = flag.Bool("debug", false, "Write logs to "+logDir+"/"+logFileName)
	muteFlag   = flag.Bool("mute", false, "Disable audio")
	httpFlag   = flag.String("http", "", "Status API listen address, e.g. 127.0.0.1:8080")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash("MAIN", r)
		}
	}()

	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return err
	}
	applyFlags(cfg)

	if logFile := setupLogging(cfg.Runtime.Debug); logFile != nil {
		defer logFile.Close()
	}

	gameCfg, err := cfg.GameConfig()
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	session := uuid.NewString()
	log.Printf("session %s, seed %d", session, seed)

	// Audio is optional; a missing device leaves the game silent
	audioCfg, err := audio.LoadConfig(nil)
	if err != nil {
		return err
	}
	if cfg.Runtime.Mute {
		audioCfg.Enabled = false
	}
	sound := audio.NewSoundManager(audioCfg)
	if err := sound.Initialize(); err != nil {
		log.Printf("audio: initialization failed: %v (continuing without audio)", err)
	}
	defer sound.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()
	core.SetCrashTerminal(screen)
	defer core.SetCrashTerminal(nil)
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()

	view := render.NewView()
	collab := view.Collaborators()
	collab.Sound = sound

	registry := status.NewRegistry()
	registry.Strings.Get("session.id").Store(session)

	epoch := time.Now()
	game, err := system.NewGame(gameCfg, engine.WorldOptions{
		Epoch:  epoch,
		Rand:   engine.NewRandSource(seed),
		Status: registry,
		Collab: collab,
	})
	if err != nil {
		return err
	}
	defer game.Teardown()

	game.World.RegisterHandler(system.NewSessionFlow(game.Countdown, func(o system.Outcome, sum event.LevelPayload) {
		view.SetBanner(outcomeBanner(o, sum))
		log.Printf("level over: %s, resolved %d, expired %d", o, sum.Resolved, sum.Expired)
	}))
	game.World.RegisterHandler(telemetry.NewStatusCounter(game.World))

	g, gctx := errgroup.WithContext(ctx)

	if url := cfg.Runtime.MQTTURL; url != "" {
		client := telemetry.NewMQTTClient(url, "deskrush-"+session)
		if err := client.Connect(); err != nil {
			log.Printf("mqtt: failed to connect to %s: %v (continuing without event stream)", url, err)
		} else {
			defer client.Disconnect()
			stream := telemetry.NewEventStream(client, cfg.Runtime.MQTTTopic, session)
			game.World.RegisterHandler(stream)
			g.Go(func() error { return stream.Run(gctx) })
		}
	}

	if url := cfg.Runtime.DatabaseURL; url != "" {
		db, err := telemetry.OpenPostgres(ctx, url)
		if err != nil {
			log.Printf("%v (continuing without session recording)", err)
		} else {
			defer db.Close()
			rec := telemetry.NewRecorder(db, session, epoch, seed)
			game.World.RegisterHandler(rec)
			g.Go(func() error { return rec.Run(gctx) })
		}
	}

	if addr := cfg.Runtime.HTTPAddr; addr != "" {
		srv := api.New(addr, registry, game)
		g.Go(func() error { return srv.Run(gctx) })
		g.Go(func() error {
			<-gctx.Done()
			return srv.Shutdown(context.Background())
		})
	}

	// PollEvent blocks until Fini, so the poller lives outside the group
	events := make(chan tcell.Event, 256)
	core.Go("EVENT POLLER", func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	fe := newFrontend(screen, game, view, sound, engine.NewPausableClock(nil), cfg.Runtime.Debug)
	game.Start()

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				core.HandleCrash("FRAME LOOP", r)
			}
		}()
		return fe.run(gctx, events)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

// applyFlags lets command-line flags win over level file and environment
func applyFlags(cfg *config.Config) {
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	if *debugFlag {
		cfg.Runtime.Debug = true
	}
	if *muteFlag {
		cfg.Runtime.Mute = true
	}
	if *httpFlag != "" {
		cfg.Runtime.HTTPAddr = *httpFlag
	}
}

func outcomeBanner(o system.Outcome, sum event.LevelPayload) string {
	switch o {
	case system.OutcomeCleared:
		return fmt.Sprintf("LEVEL CLEARED  resolved %d  q to quit", sum.Resolved)
	case system.OutcomeTimeOut:
		return fmt.Sprintf("TIME OUT  resolved %d, expired %d  q to quit", sum.Resolved, sum.Expired)
	}
	return ""
}
