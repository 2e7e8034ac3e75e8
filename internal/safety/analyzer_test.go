package safety

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestAnalyzer(signals ImageSignals) *Analyzer {
	return NewDeterministicAnalyzer(
		&StaticSignalProvider{Result: signals},
		rand.New(rand.NewSource(1)),
		func() time.Time { return evalAt },
	)
}

func cleanSignals() ImageSignals {
	return ImageSignals{Quality: 90, Discoloration: false, MoistureLevel: 20, TextureScore: 90}
}

func TestEvaluate_FreshRefrigeratedVeg(t *testing.T) {
	a := newTestAnalyzer(cleanSignals())

	got, err := a.Evaluate(Input{
		FoodType:         FoodTypeVeg,
		PreparationTime:  evalAt.Add(-1 * time.Hour),
		StorageCondition: "refrigerated",
	})
	require.NoError(t, err)

	// timeScore=100, imageScore=100*1.2=120, final clamped to 100.
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, StatusSafe, got.Status)
	assert.Equal(t, "No visible spoilage indicators", got.Explanation)
	assert.GreaterOrEqual(t, got.Confidence, 0.85)
	assert.Less(t, got.Confidence, 0.96)
}

func TestEvaluate_StaleNonVegNeverSafe(t *testing.T) {
	a := newTestAnalyzer(cleanSignals())

	got, err := a.Evaluate(Input{
		FoodType:         FoodTypeNonVeg,
		PreparationTime:  evalAt.Add(-5 * time.Hour),
		StorageCondition: "room temperature",
	})
	require.NoError(t, err)

	// timeScore=0 caps the average at 50 even with a perfect image.
	assert.LessOrEqual(t, got.Score, 50)
	assert.NotEqual(t, StatusSafe, got.Status)
	assert.Contains(t, got.Explanation, "Time exceeded for non-veg food (5 hours)")
}

func TestEvaluate_TimeScoreBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		foodType  FoodType
		hours     int
		storage   string
		wantScore int
	}{
		// imageScore stays at 100 with clean signals and room temperature,
		// so score = (timeScore+100)/2.
		{"veg at immediate threshold", FoodTypeVeg, 6, "room temperature", 100},
		{"veg one past threshold", FoodTypeVeg, 7, "room temperature", 70},
		{"veg at max hours", FoodTypeVeg, 8, "room temperature", 65},
		{"veg past max hours", FoodTypeVeg, 9, "room temperature", 50},
		{"non-veg at immediate threshold", FoodTypeNonVeg, 2, "room temperature", 100},
		{"non-veg one past threshold", FoodTypeNonVeg, 3, "room temperature", 70},
		{"non-veg past max hours", FoodTypeNonVeg, 5, "room temperature", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer(cleanSignals())
			got, err := a.Evaluate(Input{
				FoodType:         tt.foodType,
				PreparationTime:  evalAt.Add(-time.Duration(tt.hours) * time.Hour),
				StorageCondition: tt.storage,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, got.Score)
		})
	}
}

func TestEvaluate_FractionalHoursTruncate(t *testing.T) {
	a := newTestAnalyzer(cleanSignals())

	// 6h50m truncates to 6 whole hours, still inside the veg threshold.
	got, err := a.Evaluate(Input{
		FoodType:         FoodTypeVeg,
		PreparationTime:  evalAt.Add(-(6*time.Hour + 50*time.Minute)),
		StorageCondition: "room temperature",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, got.Score)
}

func TestEvaluate_ImageDeductions(t *testing.T) {
	tests := []struct {
		name      string
		signals   ImageSignals
		storage   string
		wantScore int
	}{
		{"discoloration", ImageSignals{Quality: 90, Discoloration: true, MoistureLevel: 20, TextureScore: 90}, "room temperature", 85},
		{"excess moisture", ImageSignals{Quality: 90, MoistureLevel: 85, TextureScore: 90}, "room temperature", 90},
		{"texture degradation", ImageSignals{Quality: 90, MoistureLevel: 20, TextureScore: 30}, "room temperature", 88},
		{"all three", ImageSignals{Quality: 10, Discoloration: true, MoistureLevel: 90, TextureScore: 10}, "room temperature", 63},
		{"uncovered penalty", ImageSignals{Quality: 90, MoistureLevel: 20, TextureScore: 90}, "uncovered", 90},
		{"unknown condition defaults to 1.0", ImageSignals{Quality: 90, MoistureLevel: 20, TextureScore: 90}, "frozen solid", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnalyzer(tt.signals)
			got, err := a.Evaluate(Input{
				FoodType:         FoodTypeVeg,
				PreparationTime:  evalAt.Add(-1 * time.Hour),
				StorageCondition: tt.storage,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, got.Score)
		})
	}
}

func TestEvaluate_ScoreAlwaysInRange(t *testing.T) {
	provider := NewSeededSignalProvider(42)
	a := NewDeterministicAnalyzer(provider, rand.New(rand.NewSource(42)), func() time.Time { return evalAt })

	for hours := 0; hours < 24; hours++ {
		for _, storage := range []string{"refrigerated", "room temperature", "covered", "uncovered", ""} {
			got, err := a.Evaluate(Input{
				FoodType:         FoodTypeNonVeg,
				PreparationTime:  evalAt.Add(-time.Duration(hours) * time.Hour),
				StorageCondition: storage,
			})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
			assert.GreaterOrEqual(t, got.Confidence, 0.70)
			assert.LessOrEqual(t, got.Confidence, 0.98)
		}
	}
}

func TestEvaluate_StatusBands(t *testing.T) {
	// Reproduce exact band edges via storage multipliers on degraded images:
	// score 80 -> Safe, 79/50 -> Consume Immediately, 49 -> Not Safe.
	tests := []struct {
		score int
		want  Status
	}{
		{80, StatusSafe},
		{79, StatusConsumeImmediately},
		{50, StatusConsumeImmediately},
		{49, StatusNotSafe},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("score %d", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.score))
		})
	}
}

func classify(score int) Status {
	switch {
	case score >= 80:
		return StatusSafe
	case score >= 50:
		return StatusConsumeImmediately
	default:
		return StatusNotSafe
	}
}

func TestEvaluate_ExplanationOrder(t *testing.T) {
	a := newTestAnalyzer(ImageSignals{Quality: 10, Discoloration: true, MoistureLevel: 90, TextureScore: 10})

	got, err := a.Evaluate(Input{
		FoodType:         FoodTypeNonVeg,
		PreparationTime:  evalAt.Add(-6 * time.Hour),
		StorageCondition: "uncovered",
	})
	require.NoError(t, err)

	parts := strings.Split(got.Explanation, "; ")
	require.Len(t, parts, 4)
	assert.Equal(t, "Time exceeded for non-veg food (6 hours)", parts[0])
	assert.Equal(t, "Visible discoloration detected", parts[1])
	assert.Equal(t, "Excessive moisture visible", parts[2])
	assert.Equal(t, "Texture degradation observed", parts[3])
	assert.NotContains(t, got.Explanation, "No visible spoilage indicators")
}

func TestEvaluate_UnknownFoodType(t *testing.T) {
	a := newTestAnalyzer(cleanSignals())

	_, err := a.Evaluate(Input{
		FoodType:        FoodType("frozen"),
		PreparationTime: evalAt.Add(-1 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrUnknownFoodType)
}

func TestEvaluate_MissingPreparationTime(t *testing.T) {
	a := newTestAnalyzer(cleanSignals())

	_, err := a.Evaluate(Input{FoodType: FoodTypeVeg})
	assert.ErrorIs(t, err, ErrMissingPreparationTime)
}

func TestEvaluate_ProviderFailure(t *testing.T) {
	providerErr := errors.New("camera offline")
	a := NewDeterministicAnalyzer(
		&StaticSignalProvider{Err: providerErr},
		rand.New(rand.NewSource(1)),
		func() time.Time { return evalAt },
	)

	_, err := a.Evaluate(Input{
		FoodType:        FoodTypeVeg,
		PreparationTime: evalAt.Add(-1 * time.Hour),
	})
	assert.ErrorIs(t, err, providerErr)
}

func TestEvaluate_Deterministic(t *testing.T) {
	in := Input{
		FoodType:         FoodTypeVeg,
		PreparationTime:  evalAt.Add(-7 * time.Hour),
		StorageCondition: "covered",
	}

	first, err := newTestAnalyzer(cleanSignals()).Evaluate(in)
	require.NoError(t, err)
	second, err := newTestAnalyzer(cleanSignals()).Evaluate(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRandomSignalProvider_Ranges(t *testing.T) {
	p := NewSeededSignalProvider(7)
	for i := 0; i < 1000; i++ {
		s, err := p.Signals()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.Quality, 0.0)
		assert.Less(t, s.Quality, 100.0)
		assert.GreaterOrEqual(t, s.MoistureLevel, 0.0)
		assert.Less(t, s.MoistureLevel, 100.0)
		assert.GreaterOrEqual(t, s.TextureScore, 0.0)
		assert.Less(t, s.TextureScore, 100.0)
	}
}
