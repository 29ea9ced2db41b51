package compounding

import (
	"fmt"

	"github.com/guttosm/suppository-service/internal/domain/model"
)

// Explain writes the worked solution as one line per step, in the form a
// student would set it out by hand.
func Explain(res model.CalculationResult) []string {
	in := res.Inputs
	n := in.UnitCount
	lines := make([]string, 0, 8+2*len(res.Components))

	lines = append(lines,
		fmt.Sprintf("Step 1 - Total API: %s g per unit x %d = %s g", Fixed4(res.TotalAPIPerUnitG), n, Fixed4(res.TotalAPIBatchG)),
		fmt.Sprintf("Step 2 - Estimated blank base: %s g x %d = %s g", Fixed4(in.BlankWeightPerUnitG), n, Fixed4(res.EstimatedBlankBatchG)),
	)

	for _, c := range res.Components {
		if res.Mode == model.ModeDisplacementFactor {
			lines = append(lines, fmt.Sprintf("Step 3 - Displacement factor (%s): %s", c.Name, Fixed4(c.DisplacementFactor)))
			continue
		}
		lines = append(lines, fmt.Sprintf("Step 3 - Density ratio (%s): %s / %s = %s",
			c.Name, Fixed4(c.DensityGPerML), Fixed4(in.BaseDensityGPerML), Fixed4(c.DensityRatio)))
	}

	for _, c := range res.Components {
		divisor := c.DensityRatio
		if res.Mode == model.ModeDisplacementFactor {
			divisor = c.DisplacementFactor
		}
		lines = append(lines, fmt.Sprintf("Step 4 - Base displaced (%s): %s g / %s = %s g per unit",
			c.Name, Fixed4(c.AmountPerUnitG), Fixed4(divisor), Fixed4(c.DisplacedPerUnitG)))
	}
	lines = append(lines, fmt.Sprintf("Step 4 - Base displaced total: %s g per unit x %d = %s g",
		Fixed4(res.DisplacedPerUnitG), n, Fixed4(res.DisplacedBatchG)))

	lines = append(lines, fmt.Sprintf("Step 5 - Required base: %s g - %s g = %s g",
		Fixed4(res.EstimatedBlankBatchG), Fixed4(res.DisplacedBatchG), Fixed4(res.RequiredBaseBatchPreOverageG)))
	if in.OverageFraction > 0 {
		lines = append(lines, fmt.Sprintf("With %s%% overage: %s g",
			Fixed4(in.OverageFraction*100), Fixed4(res.RequiredBaseBatchPreOverageG*(1+in.OverageFraction))))
	}
	if in.RoundingStepG > 0 {
		lines = append(lines, fmt.Sprintf("Rounded to the nearest %s: %s g", RoundingLabel(in.RoundingStepG), Fixed4(res.RequiredBaseBatchG)))
	}
	lines = append(lines, fmt.Sprintf("Required base per unit: %s g / %d = %s g", Fixed4(res.RequiredBaseBatchG), n, Fixed4(res.RequiredBasePerUnitG)))

	if res.Capacity.ExceedsMoldCapacity {
		lines = append(lines, "Warning: the required base is negative; the mold cannot hold this API load.")
	}
	if res.Capacity.APIVolumeExceedsBlank {
		lines = append(lines, "Warning: the API alone displaces more base than one blank holds.")
	}
	return lines
}

// CoachingNotes describes each mistake whose figure differs from the correct
// one. Mistakes that happen to give the right answer are left out.
func CoachingNotes(report model.CoachingReport) []string {
	var notes []string
	if r := report.ReversedRatio; r != nil && r.Differs {
		notes = append(notes, fmt.Sprintf("Multiplying by the density ratio instead of dividing gives %s g of base, off by %s g.",
			Fixed4(r.RequiredBaseBatchG), Fixed4(r.AbsDifferenceG)))
	}
	if d := report.DirectSubtraction; d.Differs {
		notes = append(notes, fmt.Sprintf("Subtracting the API weight straight from the blank gives %s g of base, off by %s g.",
			Fixed4(d.RequiredBaseBatchG), Fixed4(d.AbsDifferenceG)))
	}
	if report.NegativeRequiredBase {
		notes = append(notes, "The required base is below zero: lower the API load per unit or use a larger mold.")
	}
	return notes
}
