// Package pulse turns threshold-crossing pulses into short audible clicks,
// standing in for haptic feedback on hosts without a vibration motor.
package pulse

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/go-drift/cardscroller/pkg/cards"
)

const (
	sampleRate = beep.SampleRate(44100)

	// ClickDuration is the length of one click.
	ClickDuration = 30 * time.Millisecond

	exitFrequency  = 880.0
	enterFrequency = 660.0
)

// Sink receives pulses from a scroll frame.
type Sink interface {
	Pulse(p cards.Pulse)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(p cards.Pulse)

// Pulse calls f(p).
func (f SinkFunc) Pulse(p cards.Pulse) { f(p) }

// Discard drops every pulse.
var Discard Sink = SinkFunc(func(cards.Pulse) {})

// Emit sends every pulse of a frame to sink.
func Emit(sink Sink, pulses []cards.Pulse) {
	if sink == nil {
		return
	}
	for _, p := range pulses {
		sink.Pulse(p)
	}
}

// Speaker plays a click per pulse through the default audio device.
// Until Initialize succeeds, pulses are dropped silently.
type Speaker struct {
	// Volume is the linear gain of a click, in [0,1].
	Volume float64

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker returns an uninitialized speaker at half volume.
func NewSpeaker() *Speaker {
	return &Speaker{Volume: 0.5, mixer: &beep.Mixer{}}
}

// Initialize opens the audio device. Hosts usually ignore the error and run
// without sound.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Pulse queues a click. Exits click higher than enters.
func (s *Speaker) Pulse(p cards.Pulse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	click := Click(sampleRate, p.Direction, s.Volume)
	speaker.Lock()
	s.mixer.Add(click)
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// Click builds one click: a short sine burst with an exponential decay.
func Click(rate beep.SampleRate, dir cards.PulseDirection, volume float64) beep.Streamer {
	freq := exitFrequency
	if dir == cards.PulseEnter {
		freq = enterFrequency
	}
	n := rate.N(ClickDuration)
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	shaped := &decay{streamer: beep.Take(n, tone), rate: rate}
	return gain(shaped, volume)
}

// decay fades a streamer out exponentially.
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	pos      int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.pos) / float64(d.rate)
		env := math.Exp(-t * 120)
		samples[i][0] *= env
		samples[i][1] *= env
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// gain applies a linear volume. math.Log2(0) is -Inf, so zero is silent.
func gain(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(volume, 1))}
}
