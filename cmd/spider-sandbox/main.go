// Command spider-sandbox walks a procedural spider over a floor, a wall and a
// ramp in the terminal, with a patrolling drone, a laser gate and a vent
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wallwalker/audio"
	"github.com/lixenwraith/wallwalker/locomotion"
	"github.com/lixenwraith/wallwalker/parameter"
)

var (
	configFlag = flag.String("config", "", "Locomotion config YAML (defaults when empty)")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to logs/wallwalker.log")
	audioFlag  = flag.Bool("audio", true, "Play footsteps and breathing")
	colorFlag  = flag.String("color", "auto", "Color mode: auto, truecolor, 256")
)

var screen tcell.Screen

// crash restores the terminal before reporting a panic
func crash(r any) {
	if screen != nil {
		screen.Fini()
	}
	fmt.Fprintf(os.Stderr, "\n\x1b[31mSPIDER-SANDBOX CRASHED: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			crash(r)
		}
	}()

	flag.Parse()

	logger, logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := locomotion.DefaultConfig()
	if *configFlag != "" {
		loaded, err := locomotion.LoadConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	switch *colorFlag {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor", "true", "24bit":
		os.Setenv("COLORTERM", "truecolor")
	}

	audioCfg := audio.LoadAudioConfig()
	audioCfg.Enabled = audioCfg.Enabled && *audioFlag
	sound := audio.NewSoundManager(audioCfg)
	sound.SetLogger(logger)
	if err := sound.Initialize(); err != nil {
		// Non-fatal, the sandbox runs silent
		logger.Warn("audio unavailable", "err", err)
	}
	defer sound.Cleanup()

	s, err := newSandbox(cfg, sound, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build sandbox: %v\n", err)
		os.Exit(1)
	}

	scr, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := scr.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen = scr
	defer scr.Fini()

	run(scr, s)
}

func run(scr tcell.Screen, s *sandbox) {
	events := make(chan tcell.Event, 64)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				crash(r)
			}
		}()
		for {
			ev := scr.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(parameter.RenderStep)
	defer ticker.Stop()

	zoom := 2.0
	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !handleKey(ev, s, &zoom) {
					return
				}
			case *tcell.EventResize:
				scr.Sync()
			}

		case now := <-ticker.C:
			s.loop.Advance(now.Sub(last))
			last = now
			draw(scr, s, zoom)
		}
	}
}

// handleKey applies one key press, returns false to quit
func handleKey(ev *tcell.EventKey, s *sandbox, zoom *float64) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		s.press(actForward, ev.Modifiers()&tcell.ModShift != 0)
		return true
	case tcell.KeyDown:
		s.press(actBack, ev.Modifiers()&tcell.ModShift != 0)
		return true
	case tcell.KeyLeft:
		s.press(actLeft, ev.Modifiers()&tcell.ModShift != 0)
		return true
	case tcell.KeyRight:
		s.press(actRight, ev.Modifiers()&tcell.ModShift != 0)
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r := ev.Rune(); r {
	case 'q':
		return false
	case 'w', 'W':
		s.press(actForward, r == 'W')
	case 's', 'S':
		s.press(actBack, r == 'S')
	case 'a', 'A':
		s.press(actLeft, r == 'A')
	case 'd', 'D':
		s.press(actRight, r == 'D')
	case 'g':
		s.toggleGroundCheck()
	case 'b':
		s.toggleBreathing()
	case 'v':
		s.startVent()
	case 'p':
		s.togglePatrol()
	case '+', '=':
		*zoom = min(*zoom*1.25, maxZoom)
	case '-':
		*zoom = max(*zoom/1.25, minZoom)
	}
	return true
}
