package validation

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/aerobridge/internal/core/recommendation"
)

func rec(payload float64) recommendation.Recommendation {
	return recommendation.Recommendation{
		Name:          "COA-2 Safety-Buffered Rotary",
		SummaryGlobal: recommendation.SummaryGlobal{TotalPayloadDeliveredKg: payload},
	}
}

func TestSteps_FixedOrder(t *testing.T) {
	steps := Steps(rec(1500))
	require.Len(t, steps, TotalSteps)

	assert.Equal(t, "Initializing tactical simulation environment...", steps[0])
	assert.Equal(t, "Validating payload mass: 1500kg against density altitude...", steps[PayloadStep-1])
	assert.Equal(t, "Simulation Complete. Mission Green.", steps[TotalSteps-1])
}

func TestSteps_OnlyPayloadStepVaries(t *testing.T) {
	a := Steps(rec(1500))
	b := Steps(rec(1740))
	for i := range a {
		if i+1 == PayloadStep {
			assert.NotEqual(t, a[i], b[i])
			assert.Contains(t, b[i], "1740kg")
			continue
		}
		assert.Equal(t, a[i], b[i], "step %d", i+1)
	}
}

func TestFormatKg(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1500, "1500"},
		{712.5, "712.5"},
		{0, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatKg(tt.in))
		})
	}
}

func TestProgress_Sequence(t *testing.T) {
	prev := 0.0
	for k := 1; k <= TotalSteps; k++ {
		p := Progress(k, TotalSteps)
		assert.Greater(t, p, prev, "step %d", k)
		assert.InDelta(t, float64(k)/float64(TotalSteps)*100, p, 1e-9)
		prev = p
	}
	assert.Equal(t, 100.0, Progress(TotalSteps, TotalSteps))
	assert.Equal(t, 0.0, Progress(0, TotalSteps))
}

func TestProgress_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("progress is below 100 until the last step", prop.ForAll(
		func(total, k int) bool {
			if k >= total {
				return Progress(k, total) == 100
			}
			return Progress(k, total) < 100
		},
		gen.IntRange(1, 50),
		gen.IntRange(1, 50),
	))

	properties.Property("progress is strictly increasing in emitted steps", prop.ForAll(
		func(total int) bool {
			prev := Progress(0, total)
			for k := 1; k <= total; k++ {
				p := Progress(k, total)
				if p <= prev {
					return false
				}
				prev = p
			}
			return prev == 100
		},
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}

func TestSteps_NoTemplatePlaceholdersLeak(t *testing.T) {
	for i, s := range Steps(rec(1500)) {
		assert.False(t, strings.Contains(s, "%"), "step %d contains a verb: %q", i+1, s)
	}
}
