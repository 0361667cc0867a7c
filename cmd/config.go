package cmd

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/viper"

	"github.com/beanboi7/chyp8/chyp"
	"github.com/beanboi7/chyp8/emu/audio"
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/screen"
)

const (
	keyClock      = "clock"
	keyRefresh    = "refresh"
	keyScale      = "scale"
	keyTerminal   = "terminal"
	keyMute       = "mute"
	keyTone       = "tone"
	keyBeepFile   = "beep-file"
	keyWatch      = "watch"
	keySeed       = "seed"
	keyForeground = "fg"
	keyBackground = "bg"
	keyDebug      = "debug"
	keyQuiet      = "quiet"
	keyLogFile    = "log-file"
)

type settings struct {
	session chyp.Config
	screen  screen.Config
	audio   audio.Config

	terminal bool
	mute     bool
	watch    bool
	seed     int64
	debug    bool
	quiet    bool
	logFile  string
}

// loadSettings collects flags, environment and config file values.
func loadSettings() (settings, error) {
	s := settings{
		session: chyp.Config{
			InstructionsPerTick: viper.GetInt(keyClock),
			TickRate:            viper.GetInt(keyRefresh),
		},
		screen: screen.Config{
			Title: "Chyp8",
			Scale: viper.GetInt(keyScale),
		},
		audio: audio.Config{
			Frequency: viper.GetFloat64(keyTone),
			File:      viper.GetString(keyBeepFile),
		},
		terminal: viper.GetBool(keyTerminal),
		mute:     viper.GetBool(keyMute),
		watch:    viper.GetBool(keyWatch),
		seed:     viper.GetInt64(keySeed),
		debug:    viper.GetBool(keyDebug),
		quiet:    viper.GetBool(keyQuiet),
		logFile:  viper.GetString(keyLogFile),
	}

	if s.session.InstructionsPerTick < 1 {
		return s, fmt.Errorf("%s must be at least 1, got %d", keyClock, s.session.InstructionsPerTick)
	}
	if s.session.TickRate < 1 || s.session.TickRate > chyp.MaxTickRate {
		return s, fmt.Errorf("%s must be between 1 and %d, got %d", keyRefresh, chyp.MaxTickRate, s.session.TickRate)
	}
	if s.screen.Scale < 1 {
		return s, fmt.Errorf("%s must be at least 1, got %d", keyScale, s.screen.Scale)
	}

	var ok bool
	if s.screen.Foreground, ok = screen.Color(viper.GetString(keyForeground)); !ok {
		return s, fmt.Errorf("unknown colour %q", viper.GetString(keyForeground))
	}
	if s.screen.Background, ok = screen.Color(viper.GetString(keyBackground)); !ok {
		return s, fmt.Errorf("unknown colour %q", viper.GetString(keyBackground))
	}

	// tcell owns the terminal, so without a log file there is nowhere to log
	s.session.Trace = s.debug && (s.logFile != "" || !s.terminal)
	return s, nil
}

func (s settings) cpuOptions() []cpu.Option {
	if s.seed == 0 {
		return nil
	}
	return []cpu.Option{cpu.WithRandom(rand.New(rand.NewSource(s.seed)))}
}

// createLogger creates a logger with the level picked by the debug and
// quiet flags. The returned function closes the log file, if any.
func createLogger(s settings) (*log.Logger, func(), error) {
	cfg := log.DefaultConfig()
	if s.debug {
		cfg.Level = log.DebugLevel
	} else if s.quiet {
		cfg.Level = log.ErrorLevel
	}

	closeLog := func() {}
	switch {
	case s.logFile != "":
		f, err := os.OpenFile(s.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		cfg.Output = f
		closeLog = func() { _ = f.Close() }
	case s.terminal:
		cfg.Output = io.Discard
	}
	return log.NewWithConfig(cfg), closeLog, nil
}
