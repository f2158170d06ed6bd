// Package effects holds the stereo frame processors a voice runs its
// samples through: the RBJ biquad that backs the document model's filter
// types, and the Chain that composes processors in series.
package effects

// Effector processes stereo audio one frame at a time. State is carried
// between frames; Reset clears it without losing configuration.
type Effector interface {
	Process(l, r float32) (float32, float32)
	Reset()
}

// Chain runs a fixed sequence of effectors in order; each stage feeds the
// next. A voice's filter path is a Chain so cascaded filters compose
// without the caller caring how many stages there are.
type Chain struct {
	effects []Effector
}

func NewChain(effects ...Effector) *Chain {
	return &Chain{effects: effects}
}

func (c *Chain) Process(l, r float32) (float32, float32) {
	for _, e := range c.effects {
		l, r = e.Process(l, r)
	}
	return l, r
}

func (c *Chain) Reset() {
	for _, e := range c.effects {
		e.Reset()
	}
}

// Add appends a stage to the end of the chain.
func (c *Chain) Add(e Effector) {
	c.effects = append(c.effects, e)
}
