package model

// ComponentBreakdown holds the per-component figures of steps 1, 3 and 4.
//
// @Description Per-component working of the displacement calculation
type ComponentBreakdown struct {
	Name               string  `json:"name" bson:"name"`
	AmountPerUnitG     float64 `json:"amount_per_unit_g" bson:"amount_per_unit_g"`
	AmountBatchG       float64 `json:"amount_batch_g" bson:"amount_batch_g"`
	DensityGPerML      float64 `json:"density_g_per_ml,omitempty" bson:"density_g_per_ml,omitempty"`
	DisplacementFactor float64 `json:"displacement_factor,omitempty" bson:"displacement_factor,omitempty"`
	// DensityRatio is ρ(API)/ρ(base); zero in displacement-factor mode
	DensityRatio      float64 `json:"density_ratio,omitempty" bson:"density_ratio,omitempty"`
	DisplacedPerUnitG float64 `json:"displaced_per_unit_g" bson:"displaced_per_unit_g"`
	DisplacedBatchG   float64 `json:"displaced_batch_g" bson:"displaced_batch_g"`
}

// CapacityCheck reports findings about the mold that are not errors.
type CapacityCheck struct {
	// ExceedsMoldCapacity is set when the pre-overage required base per unit is negative
	ExceedsMoldCapacity bool `json:"exceeds_mold_capacity" bson:"exceeds_mold_capacity"`
	// APIVolumeExceedsBlank is set when displaced base per unit exceeds the blank weight
	APIVolumeExceedsBlank bool `json:"api_volume_exceeds_blank" bson:"api_volume_exceeds_blank"`
}

// Any reports whether any capacity flag fired.
func (c CapacityCheck) Any() bool {
	return c.ExceedsMoldCapacity || c.APIVolumeExceedsBlank
}

// CalculationResult is the complete working of a displacement calculation.
// It is derived from a BatchInputs snapshot and never changes afterwards.
//
// @Description Five-step displacement calculation result
type CalculationResult struct {
	Inputs     BatchInputs          `json:"inputs" bson:"inputs"`
	Mode       PotencyMode          `json:"mode" bson:"mode"`
	Components []ComponentBreakdown `json:"components" bson:"components"`

	// Step 1
	TotalAPIPerUnitG float64 `json:"total_api_per_unit_g" bson:"total_api_per_unit_g"`
	TotalAPIBatchG   float64 `json:"total_api_batch_g" bson:"total_api_batch_g"`
	// Step 2
	EstimatedBlankPerUnitG float64 `json:"estimated_blank_per_unit_g" bson:"estimated_blank_per_unit_g"`
	EstimatedBlankBatchG   float64 `json:"estimated_blank_batch_g" bson:"estimated_blank_batch_g"`
	// Step 4 (step 3 lives on the components)
	DisplacedPerUnitG float64 `json:"displaced_per_unit_g" bson:"displaced_per_unit_g"`
	DisplacedBatchG   float64 `json:"displaced_batch_g" bson:"displaced_batch_g"`
	// Step 5
	RequiredBasePerUnitPreOverageG float64 `json:"required_base_per_unit_pre_overage_g" bson:"required_base_per_unit_pre_overage_g"`
	RequiredBaseBatchPreOverageG   float64 `json:"required_base_batch_pre_overage_g" bson:"required_base_batch_pre_overage_g"`
	RequiredBaseBatchG             float64 `json:"required_base_batch_g" bson:"required_base_batch_g"`
	RequiredBasePerUnitG           float64 `json:"required_base_per_unit_g" bson:"required_base_per_unit_g"`

	Capacity CapacityCheck `json:"capacity" bson:"capacity"`
}

// Step is one of the five numbered steps with its per-unit and batch figures.
type Step struct {
	Number  int     `json:"number"`
	Label   string  `json:"label"`
	PerUnit float64 `json:"per_unit_g"`
	Batch   float64 `json:"batch_g"`
}

// Steps lists the five steps in order. Step 3 is a ratio and has no batch
// figure, so it reports the mean ratio across components in both columns
// when in density mode and zero otherwise.
func (r CalculationResult) Steps() []Step {
	var ratio float64
	if r.Mode == ModeDensity && len(r.Components) > 0 {
		for _, c := range r.Components {
			ratio += c.DensityRatio
		}
		ratio /= float64(len(r.Components))
	}
	return []Step{
		{Number: 1, Label: "Total API amount", PerUnit: r.TotalAPIPerUnitG, Batch: r.TotalAPIBatchG},
		{Number: 2, Label: "Estimated blank base", PerUnit: r.EstimatedBlankPerUnitG, Batch: r.EstimatedBlankBatchG},
		{Number: 3, Label: "Density ratio", PerUnit: ratio, Batch: ratio},
		{Number: 4, Label: "Base displaced", PerUnit: r.DisplacedPerUnitG, Batch: r.DisplacedBatchG},
		{Number: 5, Label: "Required base", PerUnit: r.RequiredBasePerUnitG, Batch: r.RequiredBaseBatchG},
	}
}

// ReversedRatioMistake is the result of multiplying by the density ratio
// instead of dividing by it.
type ReversedRatioMistake struct {
	DisplacedBatchG    float64 `json:"displaced_batch_g"`
	RequiredBaseBatchG float64 `json:"required_base_batch_g"`
	AbsDifferenceG     float64 `json:"abs_difference_g"`
	Differs            bool    `json:"differs"`
}

// DirectSubtractionMistake is the result of subtracting API mass from the
// blank base directly, ignoring density.
type DirectSubtractionMistake struct {
	RequiredBaseBatchG float64 `json:"required_base_batch_g"`
	AbsDifferenceG     float64 `json:"abs_difference_g"`
	Differs            bool    `json:"differs"`
}

// CoachingReport compares the correct result with two common wrong formulas.
//
// @Description Common calculation mistakes for comparison with the correct answer
type CoachingReport struct {
	// ReversedRatio is nil in displacement-factor mode
	ReversedRatio        *ReversedRatioMistake    `json:"reversed_ratio,omitempty"`
	DirectSubtraction    DirectSubtractionMistake `json:"direct_subtraction"`
	NegativeRequiredBase bool                     `json:"negative_required_base"`
}

// ExportField is one name/value pair of the tabular export.
type ExportField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
