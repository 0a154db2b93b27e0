// Package synth renders pitches as sound.
//
// A Synth owns one audio Device and a mix bus. Every note gets its own voice
// streamer on the bus, so notes overlap freely; all timing is measured in
// samples pulled by the device rather than wall-clock timers.
package synth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"

	"github.com/verte-zerg/tuinote/internal/theory"
)

// Defaults for a new Synth.
const (
	DefaultSampleRate = beep.SampleRate(44100)
	DefaultVolume     = 0.3
	DefaultDuration   = time.Second
)

// ErrClosed is returned by a Synth after Dispose.
var ErrClosed = errors.New("synth closed")

// AudioUnavailableError reports that the audio device could not be opened.
type AudioUnavailableError struct {
	Err error
}

func (e *AudioUnavailableError) Error() string {
	return fmt.Sprintf("audio unavailable: %v", e.Err)
}

func (e *AudioUnavailableError) Unwrap() error {
	return e.Err
}

// State is the lifecycle state of a Synth.
type State uint8

// Lifecycle states.
const (
	Uninitialized State = iota
	Running
	Unavailable
	Closed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Unavailable:
		return "unavailable"
	case Closed:
		return "closed"
	default:
		return "uninitialized"
	}
}

// Synth plays notes on a Device.
type Synth struct {
	dev  Device
	sr   beep.SampleRate
	warn func(error)

	volume atomic.Uint64

	mu      sync.Mutex
	state   State
	initErr error
	mixer   *beep.Mixer
	clock   *clock

	pendingMu sync.Mutex
	pending   map[*Playback]struct{}
}

// New returns a Synth for dev. A nil dev plays through the system speaker.
// The device is not opened until the first Initialize or play call.
func New(dev Device) *Synth {
	if dev == nil {
		dev = &SpeakerDevice{}
	}
	s := &Synth{
		dev:     dev,
		sr:      DefaultSampleRate,
		warn:    defaultWarn,
		pending: map[*Playback]struct{}{},
	}
	s.volume.Store(math.Float64bits(DefaultVolume))
	return s
}

func defaultWarn(err error) {
	if _, werr := fmt.Fprintf(os.Stderr, "warning: %v\n", err); werr != nil {
		// Best-effort logging to stderr.
		_ = werr
	}
}

// SetWarn replaces the hook that receives recovered errors, such as a pitch
// with no known frequency. A nil fn discards them.
func (s *Synth) SetWarn(fn func(error)) {
	if fn == nil {
		fn = func(error) {}
	}
	s.mu.Lock()
	s.warn = fn
	s.mu.Unlock()
}

// SampleRate returns the output sample rate.
func (s *Synth) SampleRate() beep.SampleRate {
	return s.sr
}

// Initialize opens the device. It is safe to call repeatedly: the device is
// opened at most once, and a failure is remembered and returned again.
func (s *Synth) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initLocked()
}

func (s *Synth) initLocked() error {
	switch s.state {
	case Running:
		return nil
	case Unavailable:
		return s.initErr
	case Closed:
		return ErrClosed
	}
	mixer := &beep.Mixer{}
	clk := &clock{s: mixer, onAdvance: s.settle}
	if err := s.dev.Open(s.sr, clk); err != nil {
		s.state = Unavailable
		s.initErr = &AudioUnavailableError{Err: err}
		return s.initErr
	}
	s.mixer = mixer
	s.clock = clk
	s.state = Running
	return nil
}

// State returns the lifecycle state.
func (s *Synth) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Now returns the audio clock: the time represented by samples pulled so far.
func (s *Synth) Now() time.Duration {
	s.mu.Lock()
	clk := s.clock
	s.mu.Unlock()
	if clk == nil {
		return 0
	}
	return s.sr.D(int(clk.samples.Load()))
}

// SetVolume sets the master volume, clamped to 0..1. Notes already started
// keep the volume they started with.
func (s *Synth) SetVolume(vol float64) {
	if vol < 0 || math.IsNaN(vol) {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	s.volume.Store(math.Float64bits(vol))
}

// Volume returns the master volume.
func (s *Synth) Volume() float64 {
	return math.Float64frombits(s.volume.Load())
}

// Dispose stops all sound and closes the device. Pending playbacks complete
// immediately. Later calls return ErrClosed.
func (s *Synth) Dispose() error {
	s.mu.Lock()
	if s.state == Closed {
		s.mu.Unlock()
		return nil
	}
	wasRunning := s.state == Running
	s.state = Closed
	s.mixer = nil
	s.clock = nil
	s.mu.Unlock()

	var err error
	if wasRunning {
		err = s.dev.Close()
	}

	s.pendingMu.Lock()
	pending := s.pending
	s.pending = nil
	s.pendingMu.Unlock()
	for pb := range pending {
		pb.finish()
	}
	return err
}

// Start schedules p for d and returns without waiting.
func (s *Synth) Start(p theory.Pitch, d time.Duration, timbre Timbre) (*Playback, error) {
	return s.start([]note{{pitch: p, duration: d}}, timbre)
}

// PlayTone plays p for d and waits until its scheduled stop time. Canceling
// ctx stops the wait, not the note.
func (s *Synth) PlayTone(ctx context.Context, p theory.Pitch, d time.Duration, timbre Timbre) error {
	pb, err := s.Start(p, d, timbre)
	if err != nil {
		return err
	}
	return pb.Wait(ctx)
}

// PlayChord starts every pitch at the same sample and waits for all of them.
func (s *Synth) PlayChord(ctx context.Context, pitches []theory.Pitch, d time.Duration, timbre Timbre) error {
	notes := make([]note, 0, len(pitches))
	for _, p := range pitches {
		notes = append(notes, note{pitch: p, duration: d})
	}
	pb, err := s.start(notes, timbre)
	if err != nil {
		return err
	}
	return pb.Wait(ctx)
}

// PlayArpeggio plays pitches one after another with gap between them and
// waits for the last one.
func (s *Synth) PlayArpeggio(ctx context.Context, pitches []theory.Pitch, noteDur, gap time.Duration, timbre Timbre) error {
	notes := make([]note, 0, len(pitches))
	for i, p := range pitches {
		notes = append(notes, note{
			pitch:    p,
			offset:   time.Duration(i) * (noteDur + gap),
			duration: noteDur,
		})
	}
	pb, err := s.start(notes, timbre)
	if err != nil {
		return err
	}
	return pb.Wait(ctx)
}

type note struct {
	pitch    theory.Pitch
	offset   time.Duration
	duration time.Duration
}

func (s *Synth) start(notes []note, timbre Timbre) (*Playback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.initLocked(); err != nil {
		return nil, err
	}

	vol := s.Volume()
	pb := newPlayback(s, len(notes))
	var end int64
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		freq, err := theory.FrequencyOrDefault(n.pitch)
		if err != nil {
			s.warn(err)
		}
		v := newVoice(s.sr, freq, timbre.Envelope().Schedule(n.duration), timbre.Harmonics())
		parts := make([]beep.Streamer, 0, 3)
		if off := s.sr.N(n.offset); off > 0 {
			parts = append(parts, beep.Silence(off))
		}
		parts = append(parts,
			&effects.Gain{Streamer: v, Gain: vol - 1},
			beep.Callback(pb.voiceDone),
		)
		streamers = append(streamers, beep.Seq(parts...))
		pb.length = max(pb.length, n.offset+v.schedule.Duration())
		end = max(end, int64(s.sr.N(n.offset)+v.total))
	}
	if len(streamers) == 0 {
		pb.finish()
		return pb, nil
	}

	s.track(pb)
	s.dev.Lock()
	startSample := s.clock.samples.Load()
	pb.startedAt = s.sr.D(int(startSample))
	pb.due = startSample + end
	s.mixer.Add(streamers...)
	s.dev.Unlock()
	return pb, nil
}

func (s *Synth) track(pb *Playback) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	if s.pending != nil {
		s.pending[pb] = struct{}{}
	}
}

// settle completes playbacks whose voices have drained and whose last sample
// the clock has counted, so Done never closes before StartedAt+Length.
func (s *Synth) settle(now int64) {
	s.pendingMu.Lock()
	var ready []*Playback
	for pb := range s.pending {
		if pb.remaining.Load() <= 0 && now >= pb.due {
			ready = append(ready, pb)
		}
	}
	s.pendingMu.Unlock()
	for _, pb := range ready {
		pb.finish()
	}
}

func (s *Synth) forget(pb *Playback) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	delete(s.pending, pb)
}

// Playback tracks scheduled notes until their stop time.
type Playback struct {
	synth     *Synth
	done      chan struct{}
	once      sync.Once
	remaining atomic.Int32
	startedAt time.Duration
	length    time.Duration
	// due is the clock sample count at which the last voice has been
	// pulled. Written and read under the device lock.
	due int64
}

func newPlayback(s *Synth, voices int) *Playback {
	pb := &Playback{synth: s, done: make(chan struct{})}
	pb.remaining.Store(int32(voices))
	return pb
}

// voiceDone runs inside the mix, before the clock counts the chunk; settle
// does the completing.
func (pb *Playback) voiceDone() {
	pb.remaining.Add(-1)
}

func (pb *Playback) finish() {
	pb.once.Do(func() {
		close(pb.done)
		pb.synth.forget(pb)
	})
}

// Done is closed exactly once, when every note has reached its stop time or
// the Synth is disposed.
func (pb *Playback) Done() <-chan struct{} {
	return pb.done
}

// Wait blocks until Done or until ctx is canceled.
func (pb *Playback) Wait(ctx context.Context) error {
	select {
	case <-pb.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartedAt returns the audio clock time the notes were scheduled at.
func (pb *Playback) StartedAt() time.Duration {
	return pb.startedAt
}

// Length returns the scheduled length from start to the last stop time.
func (pb *Playback) Length() time.Duration {
	return pb.length
}
