package tui

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	clickFreq     = 1760
	clickLength   = 8 * time.Millisecond
	clickInterval = 25 * time.Millisecond
)

// Clicker plays a short tick when the wheel crosses a mark. Until Init
// succeeds it only counts the ticks.
type Clicker struct {
	mu      sync.Mutex
	enabled bool
	last    time.Time

	clicks atomic.Int64
}

// Init opens the audio device. Failure is not fatal; the clicker stays
// silent.
func (c *Clicker) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	c.enabled = true
	return nil
}

// Close silences the clicker.
func (c *Clicker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled {
		speaker.Clear()
		c.enabled = false
	}
}

// Click plays one tick at now. Ticks closer than clickInterval merge into one
// so a fast fling does not turn into a buzz.
func (c *Clicker) Click(now time.Time) {
	c.clicks.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || now.Sub(c.last) < clickInterval {
		return
	}
	c.last = now

	tone, err := generators.SineTone(sampleRate, clickFreq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(clickLength), tone))
}

// Clicks returns how many ticks were requested, played or not.
func (c *Clicker) Clicks() int64 { return c.clicks.Load() }
