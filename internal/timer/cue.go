package timer

import (
	"errors"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/sandeepkv93/cozy/internal/logger"
)

// Cue plays a sound once and calls onEnded when playback finishes.
type Cue interface {
	Play(onEnded func()) error
}

// Volume adjusts an external music player while the cue plays.
type Volume interface {
	SetVolume(level float64) error
}

const (
	DuckedVolume = 0.3
	FullVolume   = 1.0
)

var ErrNoPlayer = errors.New("timer: no audio player found")

type NoopCue struct{}

func (NoopCue) Play(onEnded func()) error {
	if onEnded != nil {
		onEnded()
	}
	return nil
}

// BellCue rings the terminal bell. The bell has no end event so onEnded
// fires after Length.
type BellCue struct {
	W      io.Writer
	Length time.Duration
}

func (b BellCue) Play(onEnded func()) error {
	if _, err := b.W.Write([]byte("\a")); err != nil {
		return err
	}
	length := b.Length
	if length <= 0 {
		length = 500 * time.Millisecond
	}
	if onEnded != nil {
		time.AfterFunc(length, onEnded)
	}
	return nil
}

// ExecCue plays File with an external player such as paplay or afplay.
type ExecCue struct {
	Player string
	File   string
}

var players = []string{"paplay", "afplay", "aplay"}

// DetectPlayer returns the first known audio player found on PATH.
func DetectPlayer() (string, error) {
	for _, p := range players {
		if path, err := exec.LookPath(p); err == nil {
			return path, nil
		}
	}
	return "", ErrNoPlayer
}

func (e ExecCue) Play(onEnded func()) error {
	cmd := exec.Command(e.Player, e.File)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Warn("cue player exited with error", "player", e.Player, "err", err)
		}
		if onEnded != nil {
			onEnded()
		}
	}()
	return nil
}

// PlayerctlVolume ducks whatever MPRIS player playerctl controls.
type PlayerctlVolume struct{}

func (PlayerctlVolume) SetVolume(level float64) error {
	return exec.Command("playerctl", "volume", formatLevel(level)).Run()
}

func formatLevel(level float64) string {
	switch {
	case level <= 0:
		return "0"
	case level >= 1:
		return "1"
	}
	return strconv.FormatFloat(level, 'f', 2, 64)
}

// Chime plays cue times in a row. Each play after the first starts from the
// previous one's end event. Playback failures are logged and swallowed; done
// always runs once, after the volume is restored.
func Chime(cue Cue, times int, vol Volume, done func()) {
	var once sync.Once
	finish := func() {
		once.Do(func() {
			setVolume(vol, FullVolume)
			if done != nil {
				done()
			}
		})
	}
	if cue == nil || times <= 0 {
		finish()
		return
	}

	setVolume(vol, DuckedVolume)
	var mu sync.Mutex
	played := 0
	var onEnded func()
	onEnded = func() {
		mu.Lock()
		played++
		more := played < times
		mu.Unlock()
		if !more {
			finish()
			return
		}
		if err := cue.Play(onEnded); err != nil {
			logger.Warn("completion cue failed", "err", err)
			finish()
		}
	}
	if err := cue.Play(onEnded); err != nil {
		logger.Warn("completion cue failed", "err", err)
		finish()
	}
}

func setVolume(vol Volume, level float64) {
	if vol == nil {
		return
	}
	if err := vol.SetVolume(level); err != nil {
		logger.Debug("music volume unavailable", "level", level, "err", err)
	}
}
