package compounding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/suppository-service/internal/domain/model"
)

func TestExplain(t *testing.T) {
	in := workedExample()
	in.OverageFraction = 0.05
	in.RoundingStepG = 0.05
	res, err := Calculate(in)
	require.NoError(t, err)

	lines := Explain(res)
	text := strings.Join(lines, "\n")

	assert.True(t, strings.HasPrefix(lines[0], "Step 1"))
	assert.Contains(t, text, "Density ratio (Drug A): 3.0000 / 1.0000 = 3.0000")
	assert.Contains(t, text, "Base displaced (Drug A): 0.2000 g / 3.0000 = 0.0667 g per unit")
	assert.Contains(t, text, "Required base: 2.0000 g - 0.0667 g = 1.9333 g")
	assert.Contains(t, text, "With 5.0000% overage")
	assert.Contains(t, text, "nearest 0.05 g: 2.0500 g")
	assert.NotContains(t, text, "Warning")
}

func TestExplain_CapacityWarnings(t *testing.T) {
	res, err := Calculate(model.BatchInputs{
		UnitCount: 1, BlankWeightPerUnitG: 0.5, BaseDensityGPerML: 1.0,
		Components: []model.APIComponent{{Name: "Heavy", AmountPerUnitG: 1.0, DensityGPerML: 0.5}},
	})
	require.NoError(t, err)

	lines := Explain(res)
	assert.Contains(t, lines, "Warning: the required base is negative; the mold cannot hold this API load.")
	assert.Contains(t, lines, "Warning: the API alone displaces more base than one blank holds.")
}

func TestExplain_DisplacementFactor(t *testing.T) {
	res, err := Calculate(model.BatchInputs{
		UnitCount: 2, BlankWeightPerUnitG: 2.0, BaseDensityGPerML: 1.0,
		Components: []model.APIComponent{{Name: "X", AmountPerUnitG: 0.3, DisplacementFactor: 1.5}},
	})
	require.NoError(t, err)

	text := strings.Join(Explain(res), "\n")
	assert.Contains(t, text, "Displacement factor (X): 1.5000")
	assert.Contains(t, text, "Base displaced (X): 0.3000 g / 1.5000 = 0.2000 g per unit")
	assert.NotContains(t, text, "Density ratio")
}

func TestCoachingNotes(t *testing.T) {
	tests := []struct {
		name   string
		report model.CoachingReport
		want   int
	}{
		{
			name: "both mistakes differ",
			report: model.CoachingReport{
				ReversedRatio:     &model.ReversedRatioMistake{Differs: true},
				DirectSubtraction: model.DirectSubtractionMistake{Differs: true},
			},
			want: 2,
		},
		{
			name: "nothing to say",
			report: model.CoachingReport{
				ReversedRatio: &model.ReversedRatioMistake{},
			},
			want: 0,
		},
		{
			name: "negative base only",
			report: model.CoachingReport{
				NegativeRequiredBase: true,
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, CoachingNotes(tt.report), tt.want)
		})
	}
}
