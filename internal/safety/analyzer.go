package safety

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

var (
	ErrUnknownFoodType        = errors.New("unknown food type")
	ErrMissingPreparationTime = errors.New("preparation time is required")
)

// FoodType selects the safety rule profile applied during assessment.
type FoodType string

const (
	FoodTypeVeg    FoodType = "veg"
	FoodTypeNonVeg FoodType = "non-veg"
)

// Status is the assessment verdict shown to donors and NGOs.
type Status string

const (
	StatusSafe               Status = "Safe to Consume"
	StatusConsumeImmediately Status = "Consume Immediately"
	StatusNotSafe            Status = "Not Safe to Consume"
)

// ruleProfile holds per-food-type freshness thresholds, in whole hours.
// Beyond maxHours the time score collapses to zero; beyond
// immediateThreshold it decays linearly.
type ruleProfile struct {
	maxHours           int
	immediateThreshold int
}

var ruleProfiles = map[FoodType]ruleProfile{
	FoodTypeVeg:    {maxHours: 8, immediateThreshold: 6},
	FoodTypeNonVeg: {maxHours: 4, immediateThreshold: 2},
}

// storageMultipliers scale the image score by storage condition.
// Unlisted conditions fall back to 1.0.
var storageMultipliers = map[string]float64{
	"refrigerated":     1.2,
	"room temperature": 1.0,
	"covered":          1.1,
	"uncovered":        0.8,
}

// Input carries everything the analyzer needs for one assessment.
type Input struct {
	FoodType         FoodType
	PreparationTime  time.Time
	EvaluationTime   time.Time // zero value means "now"
	StorageCondition string
}

// Assessment is the safety verdict for a single donation.
type Assessment struct {
	Score       int          `json:"safety_score"`
	Status      Status       `json:"status"`
	Confidence  float64      `json:"confidence"`
	Explanation string       `json:"explanation"`
	Signals     ImageSignals `json:"image_analysis"`
}

// Analyzer combines elapsed time, storage condition and image signals into
// a safety verdict. It is pure given its provider, clock and RNG, and holds
// no mutable state, so one instance serves any number of concurrent callers.
type Analyzer struct {
	provider SignalProvider
	rng      *rand.Rand
	now      func() time.Time
}

func NewAnalyzer(provider SignalProvider) *Analyzer {
	return &Analyzer{provider: provider, now: time.Now}
}

// NewDeterministicAnalyzer pins the RNG and clock. Test constructor.
func NewDeterministicAnalyzer(provider SignalProvider, rng *rand.Rand, now func() time.Time) *Analyzer {
	return &Analyzer{provider: provider, rng: rng, now: now}
}

// Evaluate runs the scoring algorithm and classifies the result.
func (a *Analyzer) Evaluate(in Input) (*Assessment, error) {
	rules, ok := ruleProfiles[in.FoodType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFoodType, in.FoodType)
	}
	if in.PreparationTime.IsZero() {
		return nil, ErrMissingPreparationTime
	}

	evalAt := in.EvaluationTime
	if evalAt.IsZero() {
		evalAt = a.now()
	}

	signals, err := a.provider.Signals()
	if err != nil {
		return nil, fmt.Errorf("image signal provider: %w", err)
	}

	// Whole hours, truncated, to match the thresholds and the wording
	// of the explanation text.
	elapsedHours := int(evalAt.Sub(in.PreparationTime).Hours())

	// The step from 100 down to 50 at the immediate threshold is a
	// deliberate freshness cliff, not an interpolation bug.
	timeScore := 100.0
	if elapsedHours > rules.maxHours {
		timeScore = 0
	} else if elapsedHours > rules.immediateThreshold {
		timeScore = 50 - float64(elapsedHours-rules.immediateThreshold)*10
		if timeScore < 0 {
			timeScore = 0
		}
	}

	imageScore := 100.0
	if signals.Discoloration {
		imageScore -= 30
	}
	if signals.MoistureLevel > 80 {
		imageScore -= 20
	}
	if signals.TextureScore < 40 {
		imageScore -= 25
	}
	imageScore *= storageMultiplier(in.StorageCondition)

	final := (timeScore + imageScore) / 2
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	score := int(math.Round(final))

	var status Status
	var confLow, confHigh float64
	switch {
	case score >= 80:
		status, confLow, confHigh = StatusSafe, 0.85, 0.95
	case score >= 50:
		status, confLow, confHigh = StatusConsumeImmediately, 0.70, 0.85
	default:
		// Highest confidence band on the rejecting verdict.
		status, confLow, confHigh = StatusNotSafe, 0.90, 0.98
	}
	confidence := math.Round((confLow+a.float64()*(confHigh-confLow))*100) / 100

	var reasons []string
	if elapsedHours > rules.maxHours {
		reasons = append(reasons, fmt.Sprintf("Time exceeded for %s food (%d hours)", in.FoodType, elapsedHours))
	}
	if signals.Discoloration {
		reasons = append(reasons, "Visible discoloration detected")
	}
	if signals.MoistureLevel > 80 {
		reasons = append(reasons, "Excessive moisture visible")
	}
	if signals.TextureScore < 40 {
		reasons = append(reasons, "Texture degradation observed")
	}
	if score >= 80 {
		reasons = append(reasons, "No visible spoilage indicators")
	}

	return &Assessment{
		Score:       score,
		Status:      status,
		Confidence:  confidence,
		Explanation: strings.Join(reasons, "; "),
		Signals:     signals,
	}, nil
}

func (a *Analyzer) float64() float64 {
	if a.rng != nil {
		return a.rng.Float64()
	}
	return rand.Float64()
}

func storageMultiplier(condition string) float64 {
	if m, ok := storageMultipliers[strings.ToLower(condition)]; ok {
		return m
	}
	return 1.0
}
