package compounding

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/guttosm/suppository-service/internal/domain/model"
)

// Fixed export row names.
const (
	ExportUnitCount        = "N"
	ExportBlankPerUnit     = "Blank weight per unit (g)"
	ExportBaseDensity      = "Base density (g/mL)"
	ExportMode             = "Mode"
	ExportTotalAPIPerUnit  = "Total API per unit (g)"
	ExportTotalAPIBatch    = "Total API batch (g)"
	ExportBlankBatch       = "Estimated blank base batch (g)"
	ExportDisplacedPerUnit = "Displaced base per unit (g)"
	ExportDisplacedBatch   = "Displaced base batch (g)"
	ExportRequiredBatch    = "Required base batch (g)"
	ExportRequiredPerUnit  = "Required base per unit (g)"
	ExportOveragePercent   = "Overage (%)"
	ExportRoundingStep     = "Rounding step"
)

// Export lists every computed quantity as ordered name/value rows.
// Numbers carry four decimals; the rounding step reads "none" when unset.
func Export(res model.CalculationResult) []model.ExportField {
	in := res.Inputs
	rows := make([]model.ExportField, 0, 13+2*len(res.Components))

	add := func(name, value string) {
		rows = append(rows, model.ExportField{Name: name, Value: value})
	}

	add(ExportUnitCount, strconv.Itoa(in.UnitCount))
	add(ExportBlankPerUnit, Fixed4(in.BlankWeightPerUnitG))
	add(ExportBaseDensity, Fixed4(in.BaseDensityGPerML))
	add(ExportMode, res.Mode.String())

	for i, c := range res.Components {
		prefix := fmt.Sprintf("Component %d (%s)", i+1, c.Name)
		add(prefix+" amount per unit (g)", Fixed4(c.AmountPerUnitG))
		if res.Mode == model.ModeDisplacementFactor {
			add(prefix+" displacement factor", Fixed4(c.DisplacementFactor))
		} else {
			add(prefix+" density (g/mL)", Fixed4(c.DensityGPerML))
		}
	}

	add(ExportTotalAPIPerUnit, Fixed4(res.TotalAPIPerUnitG))
	add(ExportTotalAPIBatch, Fixed4(res.TotalAPIBatchG))
	add(ExportBlankBatch, Fixed4(res.EstimatedBlankBatchG))
	add(ExportDisplacedPerUnit, Fixed4(res.DisplacedPerUnitG))
	add(ExportDisplacedBatch, Fixed4(res.DisplacedBatchG))
	add(ExportRequiredBatch, Fixed4(res.RequiredBaseBatchG))
	add(ExportRequiredPerUnit, Fixed4(res.RequiredBasePerUnitG))
	add(ExportOveragePercent, Fixed4(in.OverageFraction*100))
	add(ExportRoundingStep, RoundingLabel(in.RoundingStepG))

	return rows
}

// Fixed4 formats v with exactly four decimals, rounding half away from zero.
func Fixed4(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

// RoundingLabel describes a rounding step for display.
func RoundingLabel(step float64) string {
	if step <= 0 {
		return "none"
	}
	return decimal.NewFromFloat(step).String() + " g"
}

// WriteCSV writes rows as a two-column CSV with a "field,value" header.
func WriteCSV(w io.Writer, rows []model.ExportField) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"field", "value"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Name, r.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
