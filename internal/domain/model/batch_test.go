package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIComponent_Mode(t *testing.T) {
	tests := []struct {
		name      string
		component APIComponent
		wantMode  PotencyMode
		wantValue float64
	}{
		{
			name:      "density only",
			component: APIComponent{Name: "Drug A", AmountPerUnitG: 0.1, DensityGPerML: 2.0},
			wantMode:  ModeDensity,
			wantValue: 2.0,
		},
		{
			name:      "displacement factor only",
			component: APIComponent{Name: "Drug B", AmountPerUnitG: 0.1, DisplacementFactor: 1.5},
			wantMode:  ModeDisplacementFactor,
			wantValue: 1.5,
		},
		{
			name:      "neither set falls back to density",
			component: APIComponent{Name: "Drug C", AmountPerUnitG: 0.1},
			wantMode:  ModeDensity,
			wantValue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMode, tt.component.Mode())
			assert.Equal(t, tt.wantValue, tt.component.Potency())
		})
	}
}

func TestBatchInputs_Clone(t *testing.T) {
	in := BatchInputs{
		UnitCount:  10,
		Components: []APIComponent{{Name: "Drug A", AmountPerUnitG: 0.1, DensityGPerML: 2}},
	}

	out := in.Clone()
	out.Components[0].AmountPerUnitG = 9

	assert.Equal(t, 0.1, in.Components[0].AmountPerUnitG)
	assert.Equal(t, ModeDensity, in.Mode())
	assert.Equal(t, ModeDensity, BatchInputs{}.Mode())
}

func TestChatState_Missing(t *testing.T) {
	n := 12
	blank := 1.8

	state := ChatState{}
	assert.Equal(t, []string{FieldUnitCount, FieldBlankWeightPerUnit, FieldBaseDensity, FieldComponents}, state.Missing())
	assert.False(t, state.Complete())

	state.UnitCount = &n
	state.BlankWeightPerUnitG = &blank
	assert.Equal(t, []string{FieldBaseDensity, FieldComponents}, state.Missing())

	base := 0.95
	state.BaseDensityGPerML = &base
	state.Components = []APIComponent{{Name: "Drug A", AmountPerUnitG: 0.15, DensityGPerML: 1.2}}
	assert.Empty(t, state.Missing())
	assert.True(t, state.Complete())
}

func TestChatState_Clone(t *testing.T) {
	n := 3
	state := ChatState{UnitCount: &n, Components: []APIComponent{{Name: "X"}}}

	cloned := state.Clone()
	*cloned.UnitCount = 4
	cloned.Components[0].Name = "Y"

	require.NotNil(t, state.UnitCount)
	assert.Equal(t, 3, *state.UnitCount)
	assert.Equal(t, "X", state.Components[0].Name)
	assert.Nil(t, cloned.BaseDensityGPerML)
}

func TestCalculationResult_Steps(t *testing.T) {
	result := CalculationResult{
		Mode: ModeDensity,
		Components: []ComponentBreakdown{
			{DensityRatio: 2},
			{DensityRatio: 4},
		},
		TotalAPIPerUnitG:     0.15,
		TotalAPIBatchG:       1.5,
		RequiredBasePerUnitG: 1.9,
		RequiredBaseBatchG:   19,
	}

	steps := result.Steps()
	require.Len(t, steps, 5)
	assert.Equal(t, 1, steps[0].Number)
	assert.Equal(t, 1.5, steps[0].Batch)
	assert.Equal(t, 3.0, steps[2].PerUnit)
	assert.Equal(t, 19.0, steps[4].Batch)

	result.Mode = ModeDisplacementFactor
	assert.Zero(t, result.Steps()[2].PerUnit)
}

func TestCapacityCheck_Any(t *testing.T) {
	assert.False(t, CapacityCheck{}.Any())
	assert.True(t, CapacityCheck{ExceedsMoldCapacity: true}.Any())
	assert.True(t, CapacityCheck{APIVolumeExceedsBlank: true}.Any())
}
