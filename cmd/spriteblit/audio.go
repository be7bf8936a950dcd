package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const audioSampleRate = beep.SampleRate(48000)

// soundBoard plays the demo's bounce blip. All methods are safe to call
// when initialization failed or was skipped; they just do nothing.
type soundBoard struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func newSoundBoard() *soundBoard {
	return &soundBoard{mixer: &beep.Mixer{}}
}

func (sb *soundBoard) Init() error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.initialized {
		return nil
	}

	if err := speaker.Init(audioSampleRate, audioSampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sb.mixer)
	sb.initialized = true
	return nil
}

func (sb *soundBoard) Cleanup() {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.initialized {
		return
	}

	speaker.Lock()
	sb.mixer.Clear()
	speaker.Unlock()
	sb.initialized = false
}

// PlayBounce queues a short blip for a wall hit.
func (sb *soundBoard) PlayBounce() {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.initialized {
		return
	}

	blip := beep.Take(audioSampleRate.N(time.Millisecond*90), newBlipGenerator(audioSampleRate, 880))
	speaker.Lock()
	sb.mixer.Add(blip)
	speaker.Unlock()
}

// blipGenerator produces a sine ping with an exponential decay envelope.
type blipGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newBlipGenerator(sr beep.SampleRate, freq float64) *blipGenerator {
	return &blipGenerator{sr: sr, freq: freq}
}

func (g *blipGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-t * 30)
		sample := 0.25 * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *blipGenerator) Err() error {
	return nil
}
