package compounding

import (
	"fmt"
	"math"
	"strings"

	"github.com/guttosm/suppository-service/internal/domain/model"
)

// Mass unit tags accepted on input.
const (
	UnitMilligram = "mg"
	UnitGram      = "g"
)

// ToGrams converts an amount tagged with a mass unit into grams.
// Unit tags are matched case-insensitively after trimming.
func ToGrams(amount float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case UnitMilligram:
		return amount / 1000, nil
	case UnitGram:
		return amount, nil
	default:
		return 0, fmt.Errorf("%w: unsupported mass unit %q", ErrInvalidValue, unit)
	}
}

// DefaultComponentName is the label given to the k-th component (1-based)
// when no name was entered.
func DefaultComponentName(k int) string {
	return fmt.Sprintf("API %d", k)
}

// Normalize turns structured raw input into validated BatchInputs.
// Component rows keep their order and duplicate names are left as separate rows.
func Normalize(raw model.RawBatchInput) (model.BatchInputs, error) {
	var p problems
	var in model.BatchInputs

	if raw.UnitCount == nil {
		p.add(KindIncompleteInput, model.FieldUnitCount, "required")
	} else {
		in.UnitCount = *raw.UnitCount
	}
	if raw.BlankWeightPerUnitG == nil {
		p.add(KindIncompleteInput, model.FieldBlankWeightPerUnit, "required")
	} else {
		in.BlankWeightPerUnitG = *raw.BlankWeightPerUnitG
	}
	if raw.BaseDensityGPerML == nil {
		p.add(KindIncompleteInput, model.FieldBaseDensity, "required")
	} else {
		in.BaseDensityGPerML = *raw.BaseDensityGPerML
	}
	if raw.OverageFraction != nil {
		in.OverageFraction = *raw.OverageFraction
	}
	if raw.RoundingStepG != nil {
		in.RoundingStepG = *raw.RoundingStepG
	}
	if len(raw.Components) == 0 {
		p.add(KindIncompleteInput, model.FieldComponents, "at least one component is required")
	}

	in.Components = make([]model.APIComponent, 0, len(raw.Components))
	for i, rc := range raw.Components {
		field := componentField(i)
		c := model.APIComponent{Name: strings.TrimSpace(rc.Name)}
		if c.Name == "" {
			c.Name = DefaultComponentName(i + 1)
		}

		grams, err := ToGrams(rc.Amount, rc.Unit)
		if err != nil {
			p.add(KindInvalidValue, field+".unit", fmt.Sprintf("must be %q or %q", UnitMilligram, UnitGram))
		}
		c.AmountPerUnitG = grams

		switch {
		case rc.Density != nil && rc.DisplacementFactor != nil:
			p.add(KindModeConflict, field, "set either density or displacement_factor, not both")
		case rc.Density != nil:
			if !finite(*rc.Density) || *rc.Density <= 0 {
				p.add(KindInvalidValue, field+".density", "must be greater than zero")
			}
			c.DensityGPerML = *rc.Density
		case rc.DisplacementFactor != nil:
			if !finite(*rc.DisplacementFactor) || *rc.DisplacementFactor <= 0 {
				p.add(KindInvalidValue, field+".displacement_factor", "must be greater than zero")
			}
			c.DisplacementFactor = *rc.DisplacementFactor
		default:
			p.add(KindIncompleteInput, field+".density", "density or displacement_factor is required")
		}
		in.Components = append(in.Components, c)
	}

	if err := p.err(); err != nil {
		return model.BatchInputs{}, err
	}
	if err := Validate(in); err != nil {
		return model.BatchInputs{}, err
	}
	return in, nil
}

// Validate checks BatchInputs against the calculation preconditions.
func Validate(in model.BatchInputs) error {
	var p problems

	if in.UnitCount < 1 {
		p.add(KindIncompleteInput, model.FieldUnitCount, "must be at least 1")
	}
	if len(in.Components) == 0 {
		p.add(KindIncompleteInput, model.FieldComponents, "at least one component is required")
	}
	if !finite(in.BlankWeightPerUnitG) || in.BlankWeightPerUnitG < 0 {
		p.add(KindInvalidValue, model.FieldBlankWeightPerUnit, "must be zero or greater")
	}
	if !finite(in.BaseDensityGPerML) || in.BaseDensityGPerML <= 0 {
		p.add(KindInvalidValue, model.FieldBaseDensity, "must be greater than zero")
	}
	if !finite(in.OverageFraction) || in.OverageFraction < 0 {
		p.add(KindInvalidValue, "overage_fraction", "must be zero or greater")
	}
	if !finite(in.RoundingStepG) || in.RoundingStepG < 0 {
		p.add(KindInvalidValue, "rounding_step_g", "must be greater than zero when set")
	}

	var first model.PotencyMode
	for i, c := range in.Components {
		field := componentField(i)
		if c.DensityGPerML != 0 && c.DisplacementFactor != 0 {
			p.add(KindModeConflict, field, "set either density or displacement_factor, not both")
			continue
		}
		if !finite(c.AmountPerUnitG) || c.AmountPerUnitG < 0 {
			p.add(KindInvalidValue, field+".amount", "must be zero or greater")
		}

		mode := c.Mode()
		if i == 0 {
			first = mode
		} else if mode != first {
			p.add(KindModeConflict, model.FieldComponents, "all components must use the same potency mode")
		}

		if v := c.Potency(); !finite(v) || v <= 0 {
			name := ".density"
			if mode == model.ModeDisplacementFactor {
				name = ".displacement_factor"
			}
			p.add(KindInvalidValue, field+name, "must be greater than zero")
		}
	}

	return p.err()
}

func componentField(i int) string {
	return fmt.Sprintf("components[%d]", i)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
