package synth

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Device is an audio output that pulls samples from a single streamer.
// Lock and Unlock guard changes to the streamer graph against the pull loop.
type Device interface {
	Open(sr beep.SampleRate, s beep.Streamer) error
	Lock()
	Unlock()
	Close() error
}

// SpeakerDevice plays through the system audio output.
type SpeakerDevice struct {
	// Buffer is the output latency; zero means 50ms.
	Buffer time.Duration
}

// Open initializes the speaker and starts playing s.
func (d *SpeakerDevice) Open(sr beep.SampleRate, s beep.Streamer) error {
	buf := d.Buffer
	if buf <= 0 {
		buf = 50 * time.Millisecond
	}
	if err := speaker.Init(sr, sr.N(buf)); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

func (d *SpeakerDevice) Lock()   { speaker.Lock() }
func (d *SpeakerDevice) Unlock() { speaker.Unlock() }

// Close stops playback and releases the output.
func (d *SpeakerDevice) Close() error {
	speaker.Clear()
	speaker.Close()
	return nil
}

// OfflineDevice never touches hardware: samples are pulled only when Advance
// is called. It makes the audio clock fully controllable.
type OfflineDevice struct {
	// OpenErr, when set, is returned by Open to simulate a denied device.
	OpenErr error

	mu     sync.Mutex
	sr     beep.SampleRate
	s      beep.Streamer
	closed bool
	pulled int
	peak   float64
	buf    [512][2]float64
}

// NewOfflineDevice returns an unopened offline device.
func NewOfflineDevice() *OfflineDevice {
	return &OfflineDevice{}
}

// Open attaches s to the device.
func (d *OfflineDevice) Open(sr beep.SampleRate, s beep.Streamer) error {
	if d.OpenErr != nil {
		return d.OpenErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errors.New("offline device closed")
	}
	d.sr = sr
	d.s = s
	return nil
}

func (d *OfflineDevice) Lock()   { d.mu.Lock() }
func (d *OfflineDevice) Unlock() { d.mu.Unlock() }

// Close detaches the streamer; later Advance calls do nothing.
func (d *OfflineDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.s = nil
	return nil
}

// Advance pulls dur worth of samples and returns how many were pulled.
func (d *OfflineDevice) Advance(dur time.Duration) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.s == nil || d.closed {
		return 0
	}
	want := d.sr.N(dur)
	done := 0
	for done < want {
		chunk := d.buf[:min(len(d.buf), want-done)]
		n, ok := d.s.Stream(chunk)
		for _, frame := range chunk[:n] {
			d.peak = max(d.peak, abs(frame[0]), abs(frame[1]))
		}
		done += n
		if !ok || n == 0 {
			break
		}
	}
	d.pulled += done
	return done
}

// Pulled returns the total number of samples pulled so far.
func (d *OfflineDevice) Pulled() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pulled
}

// Peak returns the largest absolute sample seen since the last ResetPeak.
func (d *OfflineDevice) Peak() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.peak
}

// ResetPeak clears the peak meter.
func (d *OfflineDevice) ResetPeak() {
	d.mu.Lock()
	d.peak = 0
	d.mu.Unlock()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// clock counts the samples pulled through the mix bus. onAdvance runs on the
// pull goroutine after each count update.
type clock struct {
	s         beep.Streamer
	samples   atomic.Int64
	onAdvance func(now int64)
}

func (c *clock) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = c.s.Stream(samples)
	now := c.samples.Add(int64(n))
	if c.onAdvance != nil {
		c.onAdvance(now)
	}
	return n, ok
}

func (c *clock) Err() error { return c.s.Err() }
