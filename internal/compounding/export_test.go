package compounding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/suppository-service/internal/domain/model"
)

func TestExport_WorkedExample(t *testing.T) {
	res, err := Calculate(workedExample())
	require.NoError(t, err)

	want := []model.ExportField{
		{Name: ExportUnitCount, Value: "1"},
		{Name: ExportBlankPerUnit, Value: "2.0000"},
		{Name: ExportBaseDensity, Value: "1.0000"},
		{Name: ExportMode, Value: "density"},
		{Name: "Component 1 (Drug A) amount per unit (g)", Value: "0.2000"},
		{Name: "Component 1 (Drug A) density (g/mL)", Value: "3.0000"},
		{Name: ExportTotalAPIPerUnit, Value: "0.2000"},
		{Name: ExportTotalAPIBatch, Value: "0.2000"},
		{Name: ExportBlankBatch, Value: "2.0000"},
		{Name: ExportDisplacedPerUnit, Value: "0.0667"},
		{Name: ExportDisplacedBatch, Value: "0.0667"},
		{Name: ExportRequiredBatch, Value: "1.9333"},
		{Name: ExportRequiredPerUnit, Value: "1.9333"},
		{Name: ExportOveragePercent, Value: "0.0000"},
		{Name: ExportRoundingStep, Value: "none"},
	}
	assert.Equal(t, want, Export(res))
}

func TestExport_DisplacementFactorWithOverageAndRounding(t *testing.T) {
	res, err := Calculate(model.BatchInputs{
		UnitCount: 10, BlankWeightPerUnitG: 2.0, BaseDensityGPerML: 1.0,
		Components: []model.APIComponent{
			{Name: "A", AmountPerUnitG: 0.3, DisplacementFactor: 1.5},
			{Name: "B", AmountPerUnitG: 0.1, DisplacementFactor: 2},
		},
		OverageFraction: 0.05,
		RoundingStepG:   0.05,
	})
	require.NoError(t, err)

	rows := Export(res)
	byName := make(map[string]string, len(rows))
	for _, r := range rows {
		byName[r.Name] = r.Value
	}

	assert.Len(t, rows, 17)
	assert.Equal(t, "displacement_factor", byName[ExportMode])
	assert.Equal(t, "1.5000", byName["Component 1 (A) displacement factor"])
	assert.Equal(t, "2.0000", byName["Component 2 (B) displacement factor"])
	assert.Equal(t, "2.5000", byName[ExportDisplacedBatch])
	assert.Equal(t, "18.4000", byName[ExportRequiredBatch])
	assert.Equal(t, "1.8400", byName[ExportRequiredPerUnit])
	assert.Equal(t, "5.0000", byName[ExportOveragePercent])
	assert.Equal(t, "0.05 g", byName[ExportRoundingStep])
	assert.Equal(t, ExportRoundingStep, rows[len(rows)-1].Name)
}

func TestFixed4(t *testing.T) {
	assert.Equal(t, "1.9333", Fixed4(1.93333333))
	assert.Equal(t, "0.0667", Fixed4(0.0666666))
	assert.Equal(t, "-1.5000", Fixed4(-1.5))
	assert.Equal(t, "0.1235", Fixed4(0.12345))
}

func TestRoundingLabel(t *testing.T) {
	assert.Equal(t, "none", RoundingLabel(0))
	assert.Equal(t, "0.1 g", RoundingLabel(0.1))
	assert.Equal(t, "1 g", RoundingLabel(1))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []model.ExportField{
		{Name: ExportUnitCount, Value: "1"},
		{Name: "Component 1 (Drug, salt) amount per unit (g)", Value: "0.2000"},
	})
	require.NoError(t, err)

	want := "field,value\n" +
		"N,1\n" +
		"\"Component 1 (Drug, salt) amount per unit (g)\",0.2000\n"
	assert.Equal(t, want, buf.String())
}
