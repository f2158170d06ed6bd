package spa

import (
	"encoding/binary"
	"math"

	"github.com/cbegin/spa-go/internal/render"
	"github.com/cbegin/spa-go/internal/sched"
)

// RenderSamples compiles a document and renders the whole schedule offline,
// returning interleaved stereo float32 frames. No audio device is touched.
func RenderSamples(doc *Document, sampleRate int, opts CompileOptions) ([]float32, error) {
	events, err := sched.Compile(doc, opts)
	if err != nil {
		return nil, err
	}
	return render.Render(events, sampleRate), nil
}

// RenderSchedule renders an already-compiled schedule offline.
func RenderSchedule(events []Event, sampleRate int) []float32 {
	return render.Render(events, sampleRate)
}

// EncodeWAVFloat32LE wraps interleaved stereo float32 samples in a WAV
// container (IEEE float format).
func EncodeWAVFloat32LE(samples []float32, sampleRate int) []byte {
	const (
		channels      = 2
		bitsPerSample = 32
	)
	dataSize := len(samples) * 4
	buf := make([]byte, 0, 44+dataSize)

	u32 := func(v uint32) {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v)
		buf = append(buf, b[:]...)
	}
	u16 := func(v uint16) {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], v)
		buf = append(buf, b[:]...)
	}

	buf = append(buf, "RIFF"...)
	u32(uint32(36 + dataSize))
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	u32(16)
	u16(3) // IEEE float
	u16(channels)
	u32(uint32(sampleRate))
	u32(uint32(sampleRate * channels * bitsPerSample / 8))
	u16(channels * bitsPerSample / 8)
	u16(bitsPerSample)

	buf = append(buf, "data"...)
	u32(uint32(dataSize))
	for _, s := range samples {
		u32(math.Float32bits(s))
	}
	return buf
}
