package synth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"

	"github.com/verte-zerg/tuinote/internal/theory"
)

type countingDevice struct {
	*OfflineDevice
	opens  int
	closes int
}

func (d *countingDevice) Open(sr beep.SampleRate, s beep.Streamer) error {
	d.opens++
	return d.OfflineDevice.Open(sr, s)
}

func (d *countingDevice) Close() error {
	d.closes++
	return d.OfflineDevice.Close()
}

var c4 = theory.Pitch{Letter: theory.C, Accidental: theory.Natural, Octave: 4}

func isDone(pb *Playback) bool {
	select {
	case <-pb.Done():
		return true
	default:
		return false
	}
}

func newOffline() (*Synth, *OfflineDevice) {
	dev := NewOfflineDevice()
	s := New(dev)
	s.SetWarn(nil)
	return s, dev
}

func TestPlaybackCompletesAtStopTime(t *testing.T) {
	s, dev := newOffline()
	pb, err := s.Start(c4, 1000*ms, Sine)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	dev.Advance(999 * ms)
	if isDone(pb) {
		t.Fatalf("completed before the scheduled stop time")
	}
	dev.Advance(2 * ms)
	if !isDone(pb) {
		t.Fatalf("expected completion after 1s of audio")
	}
	if got := s.Now(); got < 1000*ms || got > 1002*ms {
		t.Fatalf("unexpected audio clock %s", got)
	}
	if pb.Length() != 1000*ms || pb.StartedAt() != 0 {
		t.Fatalf("unexpected schedule start=%s length=%s", pb.StartedAt(), pb.Length())
	}
	// Extra signals are absorbed.
	pb.voiceDone()
	pb.finish()
}

func TestZeroDurationStillCompletes(t *testing.T) {
	s, dev := newOffline()
	pb, err := s.Start(c4, 0, Piano)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	dev.Advance(ms)
	if !isDone(pb) {
		t.Fatalf("zero-length note never completed")
	}
	if dev.Peak() != 0 {
		t.Fatalf("zero-length note should be silent, peak %f", dev.Peak())
	}
}

func TestCompletionFollowsAudioClock(t *testing.T) {
	s, dev := newOffline()
	if err := s.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	dev.Advance(100 * ms)

	pb, err := s.Start(c4, 50*ms, Sine)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if pb.StartedAt() != 100*ms {
		t.Fatalf("started at %s, want 100ms", pb.StartedAt())
	}
	for i := 0; i < 49; i++ {
		dev.Advance(ms)
		if isDone(pb) {
			t.Fatalf("completed at %s, before %s", s.Now(), pb.StartedAt()+pb.Length())
		}
	}
	dev.Advance(ms)
	if !isDone(pb) {
		t.Fatalf("not completed at %s", s.Now())
	}
	if s.Now() < pb.StartedAt()+pb.Length() {
		t.Fatalf("completed at %s, before stop time %s", s.Now(), pb.StartedAt()+pb.Length())
	}
}

func TestVoiceDrainAloneDoesNotComplete(t *testing.T) {
	s, _ := newOffline()
	pb, err := s.Start(c4, 10*ms, Sine)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	// The voice callback fires inside the mix before the clock counts the
	// chunk; completion waits for the count.
	pb.voiceDone()
	if isDone(pb) {
		t.Fatalf("completed before the clock reached the stop time")
	}
	s.settle(pb.due - 1)
	if isDone(pb) {
		t.Fatalf("completed one sample early")
	}
	s.settle(pb.due)
	if !isDone(pb) {
		t.Fatalf("expected completion once the clock reached the stop time")
	}
}

func TestInitializeOnce(t *testing.T) {
	dev := &countingDevice{OfflineDevice: NewOfflineDevice()}
	s := New(dev)
	if s.State() != Uninitialized {
		t.Fatalf("device opened eagerly")
	}
	for i := 0; i < 3; i++ {
		if err := s.Initialize(); err != nil {
			t.Fatalf("initialize: %v", err)
		}
	}
	if _, err := s.Start(c4, 10*ms, Sine); err != nil {
		t.Fatalf("start: %v", err)
	}
	if dev.opens != 1 {
		t.Fatalf("expected one open, got %d", dev.opens)
	}
}

func TestPlayAutoInitializes(t *testing.T) {
	s, _ := newOffline()
	if _, err := s.Start(c4, 10*ms, Sine); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.State() != Running {
		t.Fatalf("expected running, got %s", s.State())
	}
}

func TestAudioUnavailable(t *testing.T) {
	denied := errors.New("no output device")
	dev := &countingDevice{OfflineDevice: &OfflineDevice{OpenErr: denied}}
	s := New(dev)
	_, err := s.Start(c4, 10*ms, Sine)
	var unavailable *AudioUnavailableError
	if !errors.As(err, &unavailable) || !errors.Is(err, denied) {
		t.Fatalf("expected AudioUnavailableError wrapping the cause, got %v", err)
	}
	if err := s.PlayTone(context.Background(), c4, 10*ms, Sine); !errors.As(err, &unavailable) {
		t.Fatalf("expected cached failure, got %v", err)
	}
	if dev.opens != 1 {
		t.Fatalf("failed open should not be retried, got %d opens", dev.opens)
	}
	if s.State() != Unavailable {
		t.Fatalf("expected unavailable, got %s", s.State())
	}
}

func TestNotesOverlap(t *testing.T) {
	s, dev := newOffline()
	s.SetVolume(1)
	first, err := s.Start(c4, 500*ms, Sine)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	dev.Advance(200 * ms)
	second, err := s.Start(theory.Pitch{Letter: theory.E, Octave: 4}, 500*ms, Sine)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if second.StartedAt() != 200*ms {
		t.Fatalf("second note should start at the current clock, got %s", second.StartedAt())
	}
	dev.Advance(301 * ms)
	if !isDone(first) {
		t.Fatalf("first note should finish on its own schedule")
	}
	if isDone(second) {
		t.Fatalf("second note finished early")
	}
	dev.Advance(201 * ms)
	if !isDone(second) {
		t.Fatalf("second note never finished")
	}
}

func TestVolumeAppliesToFutureNotes(t *testing.T) {
	s, dev := newOffline()
	s.SetVolume(0)
	if _, err := s.Start(c4, 300*ms, Piano); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.SetVolume(1)
	dev.Advance(300 * ms)
	if dev.Peak() != 0 {
		t.Fatalf("note started at volume 0 should stay silent, peak %f", dev.Peak())
	}

	if _, err := s.Start(c4, 300*ms, Sine); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.SetVolume(0)
	dev.Advance(300 * ms)
	if dev.Peak() < 0.5 {
		t.Fatalf("note started at volume 1 should stay loud, peak %f", dev.Peak())
	}
	if dev.Peak() > 1 {
		t.Fatalf("single voice clipped, peak %f", dev.Peak())
	}
}

func TestPianoStackStaysWithinFullScale(t *testing.T) {
	s, dev := newOffline()
	s.SetVolume(1)
	if _, err := s.Start(c4, 300*ms, Piano); err != nil {
		t.Fatalf("start: %v", err)
	}
	dev.Advance(300 * ms)
	if dev.Peak() > 1 {
		t.Fatalf("piano partials clipped, peak %f", dev.Peak())
	}
	if dev.Peak() < 0.3 {
		t.Fatalf("piano note unexpectedly quiet, peak %f", dev.Peak())
	}
}

func TestSetVolumeClamps(t *testing.T) {
	s, _ := newOffline()
	if s.Volume() != DefaultVolume {
		t.Fatalf("expected default volume %f, got %f", DefaultVolume, s.Volume())
	}
	s.SetVolume(3)
	if s.Volume() != 1 {
		t.Fatalf("expected clamp to 1, got %f", s.Volume())
	}
	s.SetVolume(-1)
	if s.Volume() != 0 {
		t.Fatalf("expected clamp to 0, got %f", s.Volume())
	}
}

func TestDispose(t *testing.T) {
	dev := &countingDevice{OfflineDevice: NewOfflineDevice()}
	s := New(dev)
	pb, err := s.Start(c4, time.Hour, Sine)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Dispose(); err != nil {
		t.Fatalf("dispose: %v", err)
	}
	if !isDone(pb) {
		t.Fatalf("dispose should release waiters")
	}
	if _, err := s.Start(c4, ms, Sine); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := s.Initialize(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Initialize, got %v", err)
	}
	if err := s.Dispose(); err != nil {
		t.Fatalf("second dispose: %v", err)
	}
	if dev.closes != 1 {
		t.Fatalf("expected one close, got %d", dev.closes)
	}
}

func TestPlayToneContextStopsWaitOnly(t *testing.T) {
	s, dev := newOffline()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.PlayTone(ctx, c4, 100*ms, Sine); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	dev.Advance(50 * ms)
	if dev.Peak() == 0 {
		t.Fatalf("note should keep sounding after the wait is canceled")
	}
}

func TestPlayToneWaits(t *testing.T) {
	s, dev := newOffline()
	errc := make(chan error, 1)
	go func() {
		errc <- s.PlayTone(context.Background(), c4, 100*ms, Sine)
	}()
	deadline := time.After(5 * time.Second)
	for {
		dev.Advance(10 * ms)
		select {
		case err := <-errc:
			if err != nil {
				t.Fatalf("play: %v", err)
			}
			if s.Now() < 100*ms {
				t.Fatalf("returned before the stop time: %s", s.Now())
			}
			return
		case <-deadline:
			t.Fatalf("PlayTone never returned")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestChordAndArpeggio(t *testing.T) {
	s, dev := newOffline()
	chord := []theory.Pitch{c4, {Letter: theory.E, Octave: 4}, {Letter: theory.G, Octave: 4}}

	pb, err := s.start([]note{{pitch: chord[0], duration: 200 * ms}, {pitch: chord[1], duration: 200 * ms}, {pitch: chord[2], duration: 200 * ms}}, Sine)
	if err != nil {
		t.Fatalf("chord: %v", err)
	}
	dev.Advance(199 * ms)
	if isDone(pb) {
		t.Fatalf("chord finished early")
	}
	dev.Advance(2 * ms)
	if !isDone(pb) {
		t.Fatalf("chord never finished")
	}

	arp := make([]note, 0, len(chord))
	for i, p := range chord {
		arp = append(arp, note{pitch: p, offset: time.Duration(i) * 150 * ms, duration: 100 * ms})
	}
	pb, err = s.start(arp, Piano)
	if err != nil {
		t.Fatalf("arpeggio: %v", err)
	}
	if pb.Length() != 400*ms {
		t.Fatalf("expected 400ms arpeggio, got %s", pb.Length())
	}
	dev.Advance(390 * ms)
	if isDone(pb) {
		t.Fatalf("arpeggio finished early")
	}
	dev.Advance(20 * ms)
	if !isDone(pb) {
		t.Fatalf("arpeggio never finished")
	}

	if err := s.PlayChord(context.Background(), nil, 100*ms, Sine); err != nil {
		t.Fatalf("empty chord: %v", err)
	}
}

func TestUnknownFrequencyFallsBack(t *testing.T) {
	s, dev := newOffline()
	var warned error
	s.SetWarn(func(err error) { warned = err })
	pb, err := s.Start(theory.Pitch{Letter: theory.C, Octave: 9}, 50*ms, Sine)
	if err != nil {
		t.Fatalf("unmapped pitch must still play: %v", err)
	}
	var lookup *theory.FrequencyLookupError
	if !errors.As(warned, &lookup) {
		t.Fatalf("expected FrequencyLookupError warning, got %v", warned)
	}
	dev.Advance(60 * ms)
	if !isDone(pb) {
		t.Fatalf("fallback note never finished")
	}
}
