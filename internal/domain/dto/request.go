// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model. Structural problems
// (malformed JSON, a component row without an amount) are reported here as
// 400s; missing or invalid batch values are left to the domain normalizer so
// they come back as 422s with per-field details.
package dto

import (
	"fmt"

	"github.com/guttosm/suppository-service/internal/domain/model"
)

// ComponentRequest is one API row of a calculation request.
//
// @Description Active ingredient row; set exactly one of density or displacement_factor
// @Example {"name": "Drug A", "amount": 150, "unit": "mg", "density": 1.2}
type ComponentRequest struct {
	// Name is optional; unnamed rows are called "API 1", "API 2", ...
	Name string `json:"name,omitempty" example:"Drug A"`
	// Amount per suppository in Unit
	Amount *float64 `json:"amount" example:"150"`
	// Unit is "mg" or "g"
	Unit string `json:"unit" example:"mg" enums:"mg,g"`
	// Density of the API in g/mL
	Density *float64 `json:"density,omitempty" example:"1.2"`
	// DisplacementFactor is the grams of API displacing one gram of base
	DisplacementFactor *float64 `json:"displacement_factor,omitempty"`
} // @name ComponentRequest

// CalculateRequest represents the JSON request body for the calculation endpoints.
//
// @Description Request to calculate the base required for a suppository batch
// @Example {"unit_count": 12, "blank_weight_per_unit_g": 1.8, "base_density_g_per_ml": 0.95, "components": [{"name": "Drug A", "amount": 150, "unit": "mg", "density": 1.2}]}
type CalculateRequest struct {
	// UnitCount is the number of suppositories (N)
	UnitCount *int `json:"unit_count" example:"12" minimum:"1"`
	// BlankWeightPerUnitG is the weight of one blank suppository in grams
	BlankWeightPerUnitG *float64 `json:"blank_weight_per_unit_g" example:"1.8"`
	// BaseDensityGPerML is the density of the base
	BaseDensityGPerML *float64 `json:"base_density_g_per_ml" example:"0.95"`
	// Components lists the active ingredients
	Components []ComponentRequest `json:"components"`
	// OverageFraction is added to the batch requirement (0.05 = 5%); server default when omitted
	OverageFraction *float64 `json:"overage_fraction,omitempty" example:"0.05"`
	// RoundingStepG rounds the batch requirement; 0 disables; server default when omitted
	RoundingStepG *float64 `json:"rounding_step_g,omitempty" example:"0.05"`
} // @name CalculateRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks that every component row carries an amount and a unit.
func (r *CalculateRequest) Validate() error {
	for i, c := range r.Components {
		if c.Amount == nil {
			return &ValidationError{Field: fmt.Sprintf("components[%d].amount", i), Message: "is required"}
		}
		if c.Unit == "" {
			return &ValidationError{Field: fmt.Sprintf("components[%d].unit", i), Message: "is required"}
		}
	}
	return nil
}

// ToRaw converts the request to the domain's raw input. Call Validate first.
func (r *CalculateRequest) ToRaw() model.RawBatchInput {
	raw := model.RawBatchInput{
		UnitCount:           r.UnitCount,
		BlankWeightPerUnitG: r.BlankWeightPerUnitG,
		BaseDensityGPerML:   r.BaseDensityGPerML,
		OverageFraction:     r.OverageFraction,
		RoundingStepG:       r.RoundingStepG,
		Components:          make([]model.RawComponent, len(r.Components)),
	}
	for i, c := range r.Components {
		rc := model.RawComponent{
			Name:               c.Name,
			Unit:               c.Unit,
			Density:            c.Density,
			DisplacementFactor: c.DisplacementFactor,
		}
		if c.Amount != nil {
			rc.Amount = *c.Amount
		}
		raw.Components[i] = rc
	}
	return raw
}

// ChatMessageRequest is one user message to a chat session.
//
// @Description Chat message; "compute", "reset" and "example" are commands
// @Example {"text": "N=12; blank 1.8 g; base 0.95; API: Drug A 150 mg, rho 1.2"}
type ChatMessageRequest struct {
	Text string `json:"text" binding:"required" example:"N=12; blank 1.8 g; base 0.95; API: Drug A 150 mg, rho 1.2"`
} // @name ChatMessageRequest

// HistoryQuery holds the query parameters of the history listing.
type HistoryQuery struct {
	Source    string `form:"source" binding:"omitempty,oneof=api chat cli"`
	SessionID string `form:"session_id"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Skip      int    `form:"skip" binding:"omitempty,min=0"`
}

// Options converts the query to repository options, defaulting Limit to 50.
func (q HistoryQuery) Options() model.CalculationQueryOptions {
	limit := q.Limit
	if limit == 0 {
		limit = 50
	}
	return model.CalculationQueryOptions{
		Source:    q.Source,
		SessionID: q.SessionID,
		Limit:     limit,
		Skip:      q.Skip,
	}
}
