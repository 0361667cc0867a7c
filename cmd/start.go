package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/faiface/pixel/pixelgl"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"

	"github.com/beanboi7/chyp8/chyp"
	"github.com/beanboi7/chyp8/emu/audio"
	"github.com/beanboi7/chyp8/emu/screen"
)

var startCmd = &cobra.Command{
	Use:   "start path/ROM",
	Short: "load and start the Emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  Start,
}

// chyp8 start 'path/to/ROM' -r 60 -c 10
func Start(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true
	logger, closeLog, err := createLogger(s)
	if err != nil {
		return err
	}
	defer closeLog()

	romPath := args[0]
	rom, err := chyp.LoadGame(romPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var reload <-chan []byte
	if s.watch {
		if reload, err = chyp.WatchROM(ctx, logger, romPath); err != nil {
			return err
		}
	}

	speaker := newSpeaker(logger, s)
	if c, ok := speaker.(interface{ Close() }); ok {
		defer c.Close()
	}

	logger.Info("Starting emulator",
		log.String("rom", romPath),
		log.Int("clock", s.session.InstructionsPerTick),
		log.Int("refresh", s.session.TickRate))

	if s.terminal {
		term, err := screen.NewTerminal(s.screen)
		if err != nil {
			return err
		}
		defer term.Close()
		return run(ctx, logger, s, term, term, speaker, rom, reload)
	}

	var runErr error
	pixelgl.Run(func() {
		win, err := screen.NewWindow(s.screen)
		if err != nil {
			runErr = err
			return
		}
		defer win.Close()
		runErr = run(ctx, logger, s, win, win, speaker, rom, reload)
	})
	return runErr
}

func newSpeaker(logger *log.Logger, s settings) chyp.Speaker {
	if s.mute {
		return audio.Mute{}
	}
	b, err := audio.NewBeeper(s.audio)
	if err != nil {
		logger.Warn("Sound disabled", log.Err(err))
		return audio.Mute{}
	}
	return b
}

func run(ctx context.Context, logger *log.Logger, s settings, display chyp.Display, input chyp.Input,
	speaker chyp.Speaker, rom []byte, reload <-chan []byte) error {

	c, err := chyp.New(logger, s.session, display, input, speaker, s.cpuOptions()...)
	if err != nil {
		return err
	}
	if err := c.Load(rom); err != nil {
		return err
	}
	return c.Run(ctx, reload)
}
