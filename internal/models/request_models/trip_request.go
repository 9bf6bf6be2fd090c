package request_models

import (
	"github.com/go-playground/validator/v10"
)

var tripValidator = validator.New()

type TripRequest struct {
	OperatorID string   `json:"operator_id" validate:"required"`
	Days       int      `json:"days" validate:"min=1"`
	Cities     []string `json:"cities" validate:"required,min=1,dive,required"`
	TourType   string   `json:"tour_type"`
	Pax        int      `json:"pax" validate:"min=1"`
	Interests  []string `json:"interests"`
	StartDate  string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	Budget     string   `json:"budget"`
	// Prompt, when set, is an instruction built upstream and is sent to the
	// model unchanged.
	Prompt *string `json:"prompt"`
}

// WithDefaults returns a copy with the optional fields filled the same way
// the public API documents them.
func (r TripRequest) WithDefaults() TripRequest {
	if r.TourType == "" {
		r.TourType = "Private"
	}
	if r.Pax == 0 {
		r.Pax = 2
	}
	if len(r.Interests) == 0 {
		r.Interests = []string{"history", "culture"}
	}
	if r.Budget == "" {
		r.Budget = "moderate"
	}
	r.Cities = append([]string(nil), r.Cities...)
	r.Interests = append([]string(nil), r.Interests...)
	return r
}

func (r TripRequest) Validate() error {
	return tripValidator.Struct(r)
}

// HasPrompt reports whether an upstream instruction overrides compilation.
func (r TripRequest) HasPrompt() bool {
	return r.Prompt != nil && *r.Prompt != ""
}
