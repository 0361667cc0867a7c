// Package audio plays the sound timer tone.
package audio

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.25
)

type Config struct {
	Frequency float64 // square wave pitch in Hz
	File      string  // optional mp3 looped instead of the square wave
}

// Beeper plays a tone through the speaker while the sound timer is active.
type Beeper struct {
	ctrl   *beep.Ctrl
	closer io.Closer
}

func NewBeeper(cfg Config) (*Beeper, error) {
	b := &Beeper{}

	var streamer beep.Streamer
	if cfg.File != "" {
		s, err := b.openFile(cfg.File)
		if err != nil {
			return nil, err
		}
		streamer = s
	} else {
		if cfg.Frequency <= 0 {
			return nil, fmt.Errorf("invalid tone frequency %v", cfg.Frequency)
		}
		streamer = Tone(sampleRate, cfg.Frequency)
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		b.Close()
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	b.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}
	speaker.Play(b.ctrl)
	return b, nil
}

func (b *Beeper) openFile(name string) (beep.Streamer, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	s, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	b.closer = s

	var streamer beep.Streamer = beep.Loop(-1, s)
	if format.SampleRate != sampleRate {
		streamer = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}
	return streamer, nil
}

// SetActive starts or pauses the tone.
func (b *Beeper) SetActive(active bool) {
	speaker.Lock()
	b.ctrl.Paused = !active
	speaker.Unlock()
}

func (b *Beeper) Close() {
	if b.ctrl != nil {
		b.SetActive(false)
	}
	if b.closer != nil {
		b.closer.Close()
	}
}

// Tone returns an endless square wave at freq Hz.
func Tone(sr beep.SampleRate, freq float64) beep.Streamer {
	period := float64(sr) / freq
	pos := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			v := volume
			if pos >= period/2 {
				v = -volume
			}
			samples[i][0], samples[i][1] = v, v
			if pos++; pos >= period {
				pos -= period
			}
		}
		return len(samples), true
	})
}

// Mute is used when sound is disabled.
type Mute struct{}

func (Mute) SetActive(bool) {}
