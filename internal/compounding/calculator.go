// Package compounding implements the density-ratio displacement method used
// to work out how much suppository base a batch needs.
//
// Everything here is pure: no I/O, no shared state. Functions are safe for
// concurrent use and return the same result for the same input.
package compounding

import (
	"github.com/shopspring/decimal"

	"github.com/guttosm/suppository-service/internal/domain/model"
)

// Calculate runs the five displacement steps on validated inputs.
//
//  1. total API = sum of per-unit amounts x N
//  2. estimated blank base = blank weight per unit x N
//  3. density ratio = API density / base density (density mode only)
//  4. displaced base = amount / ratio, or amount / DF, summed then x N
//  5. required base = blank batch - displaced batch, then overage, then rounding
//
// A negative required base is reported through the capacity flags, not as an error.
func Calculate(in model.BatchInputs) (model.CalculationResult, error) {
	if err := Validate(in); err != nil {
		return model.CalculationResult{}, err
	}

	inputs := in.Clone()
	n := float64(inputs.UnitCount)
	mode := inputs.Mode()

	res := model.CalculationResult{
		Inputs:     inputs,
		Mode:       mode,
		Components: make([]model.ComponentBreakdown, len(inputs.Components)),
	}

	for i, c := range inputs.Components {
		name := c.Name
		if name == "" {
			name = DefaultComponentName(i + 1)
		}
		b := model.ComponentBreakdown{
			Name:               name,
			AmountPerUnitG:     c.AmountPerUnitG,
			AmountBatchG:       c.AmountPerUnitG * n,
			DensityGPerML:      c.DensityGPerML,
			DisplacementFactor: c.DisplacementFactor,
		}
		if mode == model.ModeDisplacementFactor {
			b.DisplacedPerUnitG = c.AmountPerUnitG / c.DisplacementFactor
		} else {
			b.DensityRatio = c.DensityGPerML / inputs.BaseDensityGPerML
			b.DisplacedPerUnitG = c.AmountPerUnitG / b.DensityRatio
		}
		b.DisplacedBatchG = b.DisplacedPerUnitG * n

		res.TotalAPIPerUnitG += c.AmountPerUnitG
		res.DisplacedPerUnitG += b.DisplacedPerUnitG
		res.Components[i] = b
	}

	res.TotalAPIBatchG = res.TotalAPIPerUnitG * n
	res.EstimatedBlankPerUnitG = inputs.BlankWeightPerUnitG
	res.EstimatedBlankBatchG = inputs.BlankWeightPerUnitG * n
	res.DisplacedBatchG = res.DisplacedPerUnitG * n

	res.RequiredBaseBatchPreOverageG = res.EstimatedBlankBatchG - res.DisplacedBatchG
	res.RequiredBasePerUnitPreOverageG = res.RequiredBaseBatchPreOverageG / n

	required := res.RequiredBaseBatchPreOverageG
	if inputs.OverageFraction > 0 {
		required *= 1 + inputs.OverageFraction
	}
	if inputs.RoundingStepG > 0 {
		required = RoundToStep(required, inputs.RoundingStepG)
	}
	res.RequiredBaseBatchG = required
	res.RequiredBasePerUnitG = required / n

	res.Capacity = model.CapacityCheck{
		ExceedsMoldCapacity:   res.RequiredBasePerUnitPreOverageG < 0,
		APIVolumeExceedsBlank: res.DisplacedPerUnitG > inputs.BlankWeightPerUnitG,
	}

	return res, nil
}

// RoundToStep rounds v to the nearest multiple of step, with ties going away
// from zero. The arithmetic is decimal so steps like 0.05 g round exactly.
// A non-positive step returns v unchanged.
func RoundToStep(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	s := decimal.NewFromFloat(step)
	rounded, _ := decimal.NewFromFloat(v).Div(s).Round(0).Mul(s).Float64()
	return rounded
}
