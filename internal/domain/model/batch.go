// Package model defines the core domain entities for the suppository service.
package model

// PotencyMode selects how an API's displacement of base is expressed.
type PotencyMode string

const (
	// ModeDensity uses the API density in g/mL against the base density.
	ModeDensity PotencyMode = "density"
	// ModeDisplacementFactor uses an empirical displacement factor (grams of API
	// that displace one gram of base).
	ModeDisplacementFactor PotencyMode = "displacement_factor"
)

// String returns the string representation of the mode.
func (m PotencyMode) String() string {
	return string(m)
}

// APIComponent is one active ingredient of a suppository formula.
//
// @Description Active ingredient amount per suppository and its potency value
// @Example {"name": "Drug A", "amount_per_unit_g": 0.15, "density_g_per_ml": 1.2}
type APIComponent struct {
	// Name identifies the component within a batch
	Name string `json:"name" bson:"name" example:"Drug A"`
	// AmountPerUnitG is the amount of API in one suppository, in grams
	AmountPerUnitG float64 `json:"amount_per_unit_g" bson:"amount_per_unit_g" example:"0.15"`
	// DensityGPerML is the API density; zero in displacement-factor mode
	DensityGPerML float64 `json:"density_g_per_ml,omitempty" bson:"density_g_per_ml,omitempty" example:"1.2"`
	// DisplacementFactor is the grams of API displacing one gram of base; zero in density mode
	DisplacementFactor float64 `json:"displacement_factor,omitempty" bson:"displacement_factor,omitempty"`
}

// Mode reports the potency mode this component is expressed in.
// A component carrying only a displacement factor is in displacement-factor
// mode; every other component is treated as density mode.
func (c APIComponent) Mode() PotencyMode {
	if c.DisplacementFactor != 0 && c.DensityGPerML == 0 {
		return ModeDisplacementFactor
	}
	return ModeDensity
}

// Potency returns the potency value of the active mode.
func (c APIComponent) Potency() float64 {
	if c.Mode() == ModeDisplacementFactor {
		return c.DisplacementFactor
	}
	return c.DensityGPerML
}

// BatchInputs is the full, validated request for one displacement calculation.
//
// @Description Batch parameters for a suppository base calculation
type BatchInputs struct {
	// UnitCount is the number of suppositories in the batch (N)
	UnitCount int `json:"unit_count" bson:"unit_count" example:"12"`
	// BlankWeightPerUnitG is the weight of one mold cavity filled with pure base
	BlankWeightPerUnitG float64 `json:"blank_weight_per_unit_g" bson:"blank_weight_per_unit_g" example:"1.8"`
	// BaseDensityGPerML is the density of the base
	BaseDensityGPerML float64 `json:"base_density_g_per_ml" bson:"base_density_g_per_ml" example:"0.95"`
	// Components lists the active ingredients in entry order
	Components []APIComponent `json:"components" bson:"components"`
	// OverageFraction is applied to the final batch requirement (0.05 = 5%)
	OverageFraction float64 `json:"overage_fraction,omitempty" bson:"overage_fraction,omitempty" example:"0.05"`
	// RoundingStepG rounds the final batch requirement; zero disables rounding
	RoundingStepG float64 `json:"rounding_step_g,omitempty" bson:"rounding_step_g,omitempty" example:"0.05"`
}

// Mode returns the potency mode of the first component.
// Mixed modes are rejected during validation, so the first component speaks
// for the whole batch.
func (b BatchInputs) Mode() PotencyMode {
	if len(b.Components) == 0 {
		return ModeDensity
	}
	return b.Components[0].Mode()
}

// Clone returns a deep copy so results never alias caller-owned slices.
func (b BatchInputs) Clone() BatchInputs {
	out := b
	if b.Components != nil {
		out.Components = make([]APIComponent, len(b.Components))
		copy(out.Components, b.Components)
	}
	return out
}

// RawComponent is an unnormalized component row as entered by a user.
// Density and DisplacementFactor are pointers so that absence can be told
// apart from an explicit zero.
type RawComponent struct {
	Name               string   `json:"name"`
	Amount             float64  `json:"amount"`
	Unit               string   `json:"unit"`
	Density            *float64 `json:"density,omitempty"`
	DisplacementFactor *float64 `json:"displacement_factor,omitempty"`
}

// RawBatchInput is the structured form before normalization.
type RawBatchInput struct {
	UnitCount           *int           `json:"unit_count"`
	BlankWeightPerUnitG *float64       `json:"blank_weight_per_unit_g"`
	BaseDensityGPerML   *float64       `json:"base_density_g_per_ml"`
	Components          []RawComponent `json:"components"`
	OverageFraction     *float64       `json:"overage_fraction,omitempty"`
	RoundingStepG       *float64       `json:"rounding_step_g,omitempty"`
}
