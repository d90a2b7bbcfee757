package pulse

import (
	"math"
	"testing"

	"github.com/gopxl/beep"

	"github.com/go-drift/cardscroller/pkg/cards"
)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
		if len(out) > 1<<20 {
			t.Fatal("click never ended")
		}
	}
	return out
}

func TestClick_LengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, dir := range []cards.PulseDirection{cards.PulseExit, cards.PulseEnter} {
		samples := drain(t, Click(rate, dir, 1))
		if len(samples) != rate.N(ClickDuration) {
			t.Errorf("%v: %d samples, want %d", dir, len(samples), rate.N(ClickDuration))
		}
		peak := 0.0
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("%v: sample %d = %v", dir, i, s)
			}
			peak = math.Max(peak, math.Abs(s[0]))
		}
		if peak == 0 {
			t.Errorf("%v: click is silent", dir)
		}
	}
}

func TestClick_Decays(t *testing.T) {
	samples := drain(t, Click(beep.SampleRate(44100), cards.PulseExit, 1))
	head, tail := 0.0, 0.0
	for _, s := range samples[:100] {
		head = math.Max(head, math.Abs(s[0]))
	}
	for _, s := range samples[len(samples)-100:] {
		tail = math.Max(tail, math.Abs(s[0]))
	}
	if tail >= head {
		t.Errorf("tail peak %v should be below head peak %v", tail, head)
	}
}

func TestClick_Muted(t *testing.T) {
	for i, s := range drain(t, Click(beep.SampleRate(44100), cards.PulseExit, 0)) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, s)
		}
	}
}

func TestSpeaker_UninitializedIsSilent(t *testing.T) {
	s := NewSpeaker()
	s.Pulse(cards.Pulse{Index: 1})
	s.Close()
}

func TestEmit(t *testing.T) {
	var got []int
	sink := SinkFunc(func(p cards.Pulse) { got = append(got, p.Index) })
	Emit(sink, []cards.Pulse{{Index: 2}, {Index: 5}})
	Emit(nil, []cards.Pulse{{Index: 9}})
	Emit(Discard, []cards.Pulse{{Index: 9}})
	if len(got) != 2 || got[0] != 2 || got[1] != 5 {
		t.Errorf("got %v", got)
	}
}
