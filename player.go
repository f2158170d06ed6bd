package spa

import (
	"fmt"
	"sync"
	"time"

	"github.com/cbegin/spa-go/internal/audio"
	"github.com/cbegin/spa-go/internal/render"
	"github.com/cbegin/spa-go/internal/sched"
	"github.com/cbegin/spa-go/internal/sound"
)

// PlaybackEventKind tags the notifications a Player emits on its Watch
// channel.
type PlaybackEventKind int

const (
	// EventPlaybackEnded fires once when a non-looping document finishes
	// or the player is stopped.
	EventPlaybackEnded PlaybackEventKind = iota
	// EventLoopCompleted fires each time a looping document wraps around.
	EventLoopCompleted
)

type PlaybackEvent struct {
	Kind PlaybackEventKind
	Loop int // completed loop count, for EventLoopCompleted
}

// PlayerOption configures a Player.
type PlayerOption func(*playerConfig)

type playerConfig struct {
	sampleRate   int
	loop         bool
	noiseSeed    uint32
	seeded       bool
	masterVolume float64
	repeatWindow float64
}

// WithSampleRate sets the output sample rate. The audio device is opened
// once per process; every Player must agree on the rate.
func WithSampleRate(hz int) PlayerOption {
	return func(c *playerConfig) { c.sampleRate = hz }
}

// WithLoopPlayback restarts the document from the top when it finishes.
func WithLoopPlayback(loop bool) PlayerOption {
	return func(c *playerConfig) { c.loop = loop }
}

// WithNoiseSeed pins the noise seed base so noise content is identical on
// every play.
func WithNoiseSeed(seed uint32) PlayerOption {
	return func(c *playerConfig) { c.noiseSeed = seed; c.seeded = true }
}

// WithMasterVolume sets the initial output gain (1 is unity).
func WithMasterVolume(v float64) PlayerOption {
	return func(c *playerConfig) { c.masterVolume = v }
}

// WithRepeatWindow bounds how far infinite repeats are materialized per
// compilation, in seconds.
func WithRepeatWindow(seconds float64) PlayerOption {
	return func(c *playerConfig) { c.repeatWindow = seconds }
}

// Player plays compiled documents on the audio device. Pause and Resume
// work by remembering the device clock and recompiling the document from
// that offset; there is no hidden shared clock between the compiler and
// the backend.
type Player struct {
	mu  sync.Mutex
	cfg playerConfig

	doc     *Document
	loop    bool
	out     *audio.Player
	rend    *render.Renderer
	base    float64 // document time where the current segment started
	paused  bool
	pauseAt float64
	volume  float64
	loops   int
	stop    chan struct{} // closes to retire the current monitor
	done    chan struct{}
	events  chan PlaybackEvent
}

// NewPlayer creates a Player. The audio device is not opened until the
// first Play.
func NewPlayer(opts ...PlayerOption) *Player {
	cfg := playerConfig{
		sampleRate:   48000,
		masterVolume: 1,
		repeatWindow: sched.DefaultRepeatWindow,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.masterVolume < 0 {
		cfg.masterVolume = 0
	}
	return &Player{
		cfg:    cfg,
		volume: cfg.masterVolume,
		events: make(chan PlaybackEvent, 8),
	}
}

// PlayXML parses, validates and plays a document in one call.
func (p *Player) PlayXML(xmlText string) error {
	doc, err := Parse(xmlText)
	if err != nil {
		return err
	}
	return p.Play(doc)
}

// Play starts the document from the beginning, replacing any current
// playback. Looping is on when the player was configured for it or any
// top-level sequence asks for it.
func (p *Player) Play(doc *Document) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.haltLocked()
	p.doc = doc
	p.loop = p.cfg.loop || docLoops(doc)
	p.paused = false
	p.loops = 0
	p.done = make(chan struct{})
	return p.startLocked(0)
}

func docLoops(doc *Document) bool {
	for _, n := range doc.Sounds {
		if n.Kind == sound.KindSequence && n.Loop {
			return true
		}
	}
	return false
}

// startLocked compiles from offset and begins a playback segment. Caller
// holds p.mu.
func (p *Player) startLocked(offset float64) error {
	seed := p.cfg.noiseSeed
	if !p.cfg.seeded {
		seed = uint32(time.Now().UnixNano())
	}
	events, err := sched.Compile(p.doc, sched.Options{
		Offset:          offset,
		MaxRepeatWindow: p.cfg.repeatWindow,
		NoiseSeed:       seed,
	})
	if err != nil {
		return err
	}
	rend := render.New(events, p.cfg.sampleRate)
	rend.SetMasterGain(p.volume)
	out, err := audio.NewPlayer(p.cfg.sampleRate, rend)
	if err != nil {
		return err
	}
	p.rend = rend
	p.out = out
	p.base = offset
	p.stop = make(chan struct{})
	out.Play()
	go p.monitor(p.stop)
	return nil
}

// monitor watches one playback segment for completion.
func (p *Player) monitor(stop chan struct{}) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		p.mu.Lock()
		if p.stop != stop {
			p.mu.Unlock()
			return
		}
		if p.rend == nil || !p.rend.Finished() {
			p.mu.Unlock()
			continue
		}
		// Finished() flips as soon as the stream is fully buffered; let
		// the device drain before restarting.
		if p.out != nil && p.out.IsPlaying() && p.out.Position().Seconds() < p.rend.Duration() {
			p.mu.Unlock()
			continue
		}
		if p.loop {
			p.out.Stop()
			p.loops++
			loops := p.loops
			if err := p.startLocked(0); err != nil {
				p.finishLocked()
				p.mu.Unlock()
				return
			}
			p.mu.Unlock()
			p.emit(PlaybackEvent{Kind: EventLoopCompleted, Loop: loops})
			return // the new segment has its own monitor
		}
		p.out.Stop()
		p.finishLocked()
		p.mu.Unlock()
		p.emit(PlaybackEvent{Kind: EventPlaybackEnded})
		return
	}
}

func (p *Player) emit(ev PlaybackEvent) {
	select {
	case p.events <- ev:
	default:
	}
}

// finishLocked marks playback done. Caller holds p.mu.
func (p *Player) finishLocked() {
	p.out = nil
	p.rend = nil
	p.stop = nil
	if p.done != nil {
		close(p.done)
		p.done = nil
	}
}

// Pause halts playback, remembering how much of the document has been
// heard via the device clock.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out == nil || p.paused {
		return
	}
	p.pauseAt = p.base + p.out.Position().Seconds()
	p.haltSegmentLocked()
	p.paused = true
}

// Resume recompiles the document from the paused offset and continues.
func (p *Player) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused || p.doc == nil {
		return nil
	}
	p.paused = false
	return p.startLocked(p.pauseAt)
}

// Seek jumps to an offset in the document, in seconds. While paused it
// only moves the resume point; while playing it recompiles and continues
// from the new offset.
func (p *Player) Seek(offset float64) error {
	if offset < 0 {
		offset = 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.doc == nil {
		return nil
	}
	if p.paused {
		p.pauseAt = offset
		return nil
	}
	if p.out == nil {
		return nil
	}
	p.haltSegmentLocked()
	return p.startLocked(offset)
}

// Position reports the current document time in seconds.
func (p *Player) Position() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused {
		return p.pauseAt
	}
	if p.out == nil {
		return 0
	}
	return p.base + p.out.Position().Seconds()
}

// Stop ends playback entirely. Wait returns after Stop.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.haltLocked()
}

// haltSegmentLocked stops the device and monitor but keeps done open, so
// the player can resume. Caller holds p.mu.
func (p *Player) haltSegmentLocked() {
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	if p.out != nil {
		p.out.Stop()
		p.out = nil
	}
	p.rend = nil
}

// haltLocked tears the whole playback down. Caller holds p.mu.
func (p *Player) haltLocked() {
	wasActive := p.out != nil || p.paused
	p.haltSegmentLocked()
	p.paused = false
	if p.done != nil {
		close(p.done)
		p.done = nil
	}
	if wasActive {
		p.emit(PlaybackEvent{Kind: EventPlaybackEnded})
	}
}

// IsPlaying reports whether audio is currently being produced.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out != nil && !p.paused
}

// Wait blocks until the current playback finishes or is stopped. It
// returns immediately when nothing is playing.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Watch returns the channel playback notifications arrive on. Slow readers
// drop events rather than stall the audio path.
func (p *Player) Watch() <-chan PlaybackEvent {
	return p.events
}

// SetMasterVolume adjusts the output gain immediately. Negative values
// clamp to silence.
func (p *Player) SetMasterVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v < 0 {
		v = 0
	}
	p.volume = v
	if p.rend != nil {
		p.rend.SetMasterGain(v)
	}
}

// MasterVolume returns the current output gain.
func (p *Player) MasterVolume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// String describes the player state, for logging.
func (p *Player) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch {
	case p.paused:
		return fmt.Sprintf("paused at %.2fs", p.pauseAt)
	case p.out != nil:
		return fmt.Sprintf("playing at %.2fs", p.base+p.out.Position().Seconds())
	default:
		return "idle"
	}
}
