package safety

import "math/rand"

// ImageSignals is the four-field contract every signal source must satisfy.
// A real vision model adapter returns the same shape as the built-in
// simulation, so swapping providers never touches the analyzer.
type ImageSignals struct {
	Quality       float64 `json:"quality"`
	Discoloration bool    `json:"discoloration"`
	MoistureLevel float64 `json:"moisture_level"`
	TextureScore  float64 `json:"texture_score"`
}

// SignalProvider supplies visual-quality signals for a submitted food image.
type SignalProvider interface {
	Signals() (ImageSignals, error)
}

// RandomSignalProvider samples all four signal fields independently. It is
// intentionally low-fidelity and exists to keep the assessment pipeline
// exercisable until a vision model is plugged in.
type RandomSignalProvider struct {
	rng *rand.Rand
}

// NewRandomSignalProvider returns a provider backed by the shared
// math/rand source, which is safe for concurrent callers.
func NewRandomSignalProvider() *RandomSignalProvider {
	return &RandomSignalProvider{}
}

// NewSeededSignalProvider returns a provider with its own seeded source so
// tests can reproduce draws. Not safe for concurrent use.
func NewSeededSignalProvider(seed int64) *RandomSignalProvider {
	return &RandomSignalProvider{rng: rand.New(rand.NewSource(seed))}
}

func (p *RandomSignalProvider) Signals() (ImageSignals, error) {
	return ImageSignals{
		Quality:       p.float64() * 100,
		Discoloration: p.float64() < 0.3,
		MoistureLevel: p.float64() * 100,
		TextureScore:  p.float64() * 100,
	}, nil
}

func (p *RandomSignalProvider) float64() float64 {
	if p.rng != nil {
		return p.rng.Float64()
	}
	return rand.Float64()
}

// StaticSignalProvider always returns the same signals. Test double.
type StaticSignalProvider struct {
	Result ImageSignals
	Err    error
}

func (p *StaticSignalProvider) Signals() (ImageSignals, error) {
	return p.Result, p.Err
}
