package synth

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/wav"

	"github.com/verte-zerg/tuinote/internal/theory"
)

// Render returns a finite streamer for one note at the current master
// volume. It does not need an open device.
func (s *Synth) Render(p theory.Pitch, d time.Duration, timbre Timbre) beep.Streamer {
	freq, err := theory.FrequencyOrDefault(p)
	if err != nil {
		s.mu.Lock()
		warn := s.warn
		s.mu.Unlock()
		warn(err)
	}
	v := newVoice(s.sr, freq, timbre.Envelope().Schedule(d), timbre.Harmonics())
	return &effects.Gain{Streamer: v, Gain: s.Volume() - 1}
}

// RenderWAV writes one note as 16-bit stereo WAV.
func (s *Synth) RenderWAV(w io.WriteSeeker, p theory.Pitch, d time.Duration, timbre Timbre) error {
	format := beep.Format{SampleRate: s.sr, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, s.Render(p, d, timbre), format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}
