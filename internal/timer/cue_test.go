package timer

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

type recordingCue struct {
	plays   int
	pending []func()
	fail    bool
}

func (c *recordingCue) Play(onEnded func()) error {
	if c.fail {
		return errors.New("autoplay blocked")
	}
	c.plays++
	c.pending = append(c.pending, onEnded)
	return nil
}

func (c *recordingCue) end() {
	next := c.pending[0]
	c.pending = c.pending[1:]
	next()
}

type recordingVolume struct {
	levels []float64
}

func (v *recordingVolume) SetVolume(level float64) error {
	v.levels = append(v.levels, level)
	return nil
}

func TestChimePlaysTwiceInSequence(t *testing.T) {
	cue := &recordingCue{}
	vol := &recordingVolume{}
	done := 0
	Chime(cue, 2, vol, func() { done++ })

	if cue.plays != 1 {
		t.Fatalf("second play must wait for the first to end, plays=%d", cue.plays)
	}
	cue.end()
	if cue.plays != 2 || done != 0 {
		t.Fatalf("expected second play after first ended, plays=%d done=%d", cue.plays, done)
	}
	cue.end()
	if cue.plays != 2 || done != 1 {
		t.Fatalf("expected exactly two plays then done, plays=%d done=%d", cue.plays, done)
	}
	if len(vol.levels) != 2 || vol.levels[0] != DuckedVolume || vol.levels[1] != FullVolume {
		t.Fatalf("expected duck then restore, got %v", vol.levels)
	}
}

func TestChimeSwallowsPlaybackFailure(t *testing.T) {
	cue := &recordingCue{fail: true}
	vol := &recordingVolume{}
	done := 0
	Chime(cue, 2, vol, func() { done++ })
	if done != 1 {
		t.Fatalf("done must run even when playback fails, got %d", done)
	}
	if vol.levels[len(vol.levels)-1] != FullVolume {
		t.Fatalf("volume should be restored, got %v", vol.levels)
	}
}

func TestChimeWithoutVolumeOrCue(t *testing.T) {
	done := 0
	Chime(nil, 2, nil, func() { done++ })
	Chime(NoopCue{}, 2, nil, func() { done++ })
	if done != 2 {
		t.Fatalf("expected done twice, got %d", done)
	}
}

func TestBellCueRingsAndEnds(t *testing.T) {
	var buf bytes.Buffer
	ended := make(chan struct{})
	cue := BellCue{W: &buf, Length: time.Millisecond}
	if err := cue.Play(func() { close(ended) }); err != nil {
		t.Fatalf("play: %v", err)
	}
	if buf.String() != "\a" {
		t.Fatalf("expected BEL, got %q", buf.String())
	}
	select {
	case <-ended:
	case <-time.After(time.Second):
		t.Fatal("bell cue never ended")
	}
}

func TestExecCueMissingPlayer(t *testing.T) {
	cue := ExecCue{Player: "cozy-no-such-player", File: "ding.wav"}
	if err := cue.Play(nil); err == nil {
		t.Fatal("expected start error for missing player")
	}
}

func TestExpiryNotification(t *testing.T) {
	n := ExpiryNotification(Session{TaskName: "Plank", Total: 90})
	if n.Body != "Plank is done (01:30)" {
		t.Fatalf("unexpected body: %q", n.Body)
	}
	if escapeAppleScript(`say "hi"`) != `say \"hi\"` {
		t.Fatal("unexpected escaping")
	}
}
