// Package audio holds captured PCM in memory and encodes it to WAV files.
package audio

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Capture format: 16 kHz mono 16-bit PCM, little-endian on the wire.
const (
	SampleRate  = 16000
	BitDepth    = 16
	NumChannels = 1
)

// Buffer accumulates PCM samples between flushes.
type Buffer struct {
	samples []int
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

// AppendPCM16 decodes little-endian 16-bit samples and appends them.
// A trailing odd byte is ignored.
func (b *Buffer) AppendPCM16(data []byte) {
	for i := 0; i+1 < len(data); i += 2 {
		b.samples = append(b.samples, int(int16(binary.LittleEndian.Uint16(data[i:]))))
	}
}

// Len returns the number of buffered samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Empty reports whether the buffer holds no samples.
func (b *Buffer) Empty() bool {
	return len(b.samples) == 0
}

// Duration returns the playback duration of the buffered audio.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(len(b.samples)) * time.Second / SampleRate
}

// Reset clears the buffer for the next interval.
func (b *Buffer) Reset() {
	b.samples = b.samples[:0]
}

// WriteWAV encodes the buffered samples to a WAV file, replacing any
// existing file at path.
func (b *Buffer) WriteWAV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating audio file: %w", err)
	}

	enc := wav.NewEncoder(f, SampleRate, BitDepth, NumChannels, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: NumChannels,
			SampleRate:  SampleRate,
		},
		Data:           b.samples,
		SourceBitDepth: BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return f.Close()
}
