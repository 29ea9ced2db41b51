package compounding

import (
	"math"

	"github.com/guttosm/suppository-service/internal/domain/model"
)

// differenceTolerance is the absolute difference, in grams, below which a
// mistaken figure counts as matching the correct one.
const differenceTolerance = 1e-9

// Coach recomputes the required base with the two classic wrong formulas.
// Both are compared against the correct required base before overage and
// rounding so the difference reflects the formula alone. The result passed in
// is read only.
func Coach(in model.BatchInputs, res model.CalculationResult) model.CoachingReport {
	n := float64(in.UnitCount)
	blankBatch := in.BlankWeightPerUnitG * n
	correct := res.RequiredBaseBatchPreOverageG

	report := model.CoachingReport{
		NegativeRequiredBase: correct < 0,
	}

	var apiPerUnit float64
	for _, c := range in.Components {
		apiPerUnit += c.AmountPerUnitG
	}
	direct := blankBatch - apiPerUnit*n
	report.DirectSubtraction = model.DirectSubtractionMistake{
		RequiredBaseBatchG: direct,
		AbsDifferenceG:     math.Abs(direct - correct),
	}
	report.DirectSubtraction.Differs = report.DirectSubtraction.AbsDifferenceG > differenceTolerance

	if in.Mode() == model.ModeDensity && in.BaseDensityGPerML > 0 {
		var displacedPerUnit float64
		for _, c := range in.Components {
			displacedPerUnit += c.AmountPerUnitG * (c.DensityGPerML / in.BaseDensityGPerML)
		}
		displaced := displacedPerUnit * n
		required := blankBatch - displaced
		diff := math.Abs(required - correct)
		report.ReversedRatio = &model.ReversedRatioMistake{
			DisplacedBatchG:    displaced,
			RequiredBaseBatchG: required,
			AbsDifferenceG:     diff,
			Differs:            diff > differenceTolerance,
		}
	}

	return report
}
