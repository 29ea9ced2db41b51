package model

import "time"

// Field names reported as missing by the conversational input path.
const (
	FieldUnitCount          = "unit_count"
	FieldBlankWeightPerUnit = "blank_weight_per_unit_g"
	FieldBaseDensity        = "base_density_g_per_ml"
	FieldComponents         = "components"
)

// ChatState accumulates inputs across chat messages. It is owned by the
// caller and passed into every parse call; the parser returns an updated copy.
type ChatState struct {
	UnitCount           *int           `json:"unit_count,omitempty" bson:"unit_count,omitempty"`
	BlankWeightPerUnitG *float64       `json:"blank_weight_per_unit_g,omitempty" bson:"blank_weight_per_unit_g,omitempty"`
	BaseDensityGPerML   *float64       `json:"base_density_g_per_ml,omitempty" bson:"base_density_g_per_ml,omitempty"`
	Components          []APIComponent `json:"components" bson:"components"`
}

// Clone returns a deep copy of the state.
func (s ChatState) Clone() ChatState {
	out := ChatState{}
	if s.UnitCount != nil {
		v := *s.UnitCount
		out.UnitCount = &v
	}
	if s.BlankWeightPerUnitG != nil {
		v := *s.BlankWeightPerUnitG
		out.BlankWeightPerUnitG = &v
	}
	if s.BaseDensityGPerML != nil {
		v := *s.BaseDensityGPerML
		out.BaseDensityGPerML = &v
	}
	if s.Components != nil {
		out.Components = make([]APIComponent, len(s.Components))
		copy(out.Components, s.Components)
	}
	return out
}

// Missing lists the required fields not yet provided, in a stable order.
func (s ChatState) Missing() []string {
	missing := make([]string, 0, 4)
	if s.UnitCount == nil {
		missing = append(missing, FieldUnitCount)
	}
	if s.BlankWeightPerUnitG == nil {
		missing = append(missing, FieldBlankWeightPerUnit)
	}
	if s.BaseDensityGPerML == nil {
		missing = append(missing, FieldBaseDensity)
	}
	if len(s.Components) == 0 {
		missing = append(missing, FieldComponents)
	}
	return missing
}

// Complete reports whether every required field is present.
func (s ChatState) Complete() bool {
	return len(s.Missing()) == 0
}

// ChatSession is a conversational calculation session.
type ChatSession struct {
	ID        string    `json:"id" bson:"_id"`
	State     ChatState `json:"state" bson:"state"`
	Messages  int       `json:"messages" bson:"messages"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
