package response_models

import (
	"errors"
	"fmt"

	"github.com/fatihtunali/travelquotebot/internal/models/db_models"
)

// ExpenseCategory is the closed set of line-item kinds the model may emit.
type ExpenseCategory string

const (
	ExpenseAccommodation ExpenseCategory = "accommodation"
	ExpenseActivity      ExpenseCategory = "activity"
	ExpenseMeal          ExpenseCategory = "meal"
	ExpenseTransport     ExpenseCategory = "transport"
)

type CostBreakdown struct {
	Accommodations float64 `json:"accommodations"`
	Activities     float64 `json:"activities"`
	Meals          float64 `json:"meals"`
	Transportation float64 `json:"transportation"`
}

type EstimatedCost struct {
	Breakdown CostBreakdown `json:"breakdown"`
	Subtotal  float64       `json:"subtotal"`
	Total     float64       `json:"total"`
	PerPerson float64       `json:"perPerson"`
	Currency  string        `json:"currency"`
}

type Expense struct {
	Category          ExpenseCategory `json:"category"`
	ServiceID         *string         `json:"serviceId"`
	ServiceType       string          `json:"serviceType,omitempty"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Time              string          `json:"time,omitempty"`
	MealType          string          `json:"mealType,omitempty"`
	PricePerPerson    *float64        `json:"pricePerPerson,omitempty"`
	BasePricePerNight *float64        `json:"basePricePerNight,omitempty"`
	Quantity          float64         `json:"quantity"`
	TotalPrice        float64         `json:"totalPrice"`

	src members
}

type plainExpense Expense

// UnmarshalJSON never fails on shape. A serviceId that is not a string is
// dropped; resolution rewrites it anyway.
func (e *Expense) UnmarshalJSON(data []byte) error {
	typed, src, err := decodeMembers[plainExpense](data)
	if err != nil {
		return err
	}
	delete(src.mistyped, "serviceId")
	*e = Expense(typed)
	e.src = src
	return nil
}

func (e Expense) MarshalJSON() ([]byte, error) {
	return encodeMembers(plainExpense(e), e.src, "serviceId")
}

type Day struct {
	Day        int       `json:"day"`
	Date       string    `json:"date"`
	Title      string    `json:"title"`
	City       string    `json:"city"`
	MealCode   string    `json:"mealCode,omitempty"`
	Highlights []string  `json:"highlights,omitempty"`
	FreeTime   string    `json:"freeTime,omitempty"`
	Expenses   []Expense `json:"expenses"`

	src members
}

type plainDay Day

func (d *Day) UnmarshalJSON(data []byte) error {
	typed, src, err := decodeMembers[plainDay](data)
	if err != nil {
		return err
	}
	*d = Day(typed)
	d.src = src
	return nil
}

func (d Day) MarshalJSON() ([]byte, error) {
	return encodeMembers(plainDay(d), d.src)
}

type Itinerary struct {
	Title              string            `json:"title"`
	Summary            string            `json:"summary"`
	Highlights         []string          `json:"highlights,omitempty"`
	TotalEstimatedCost *EstimatedCost    `json:"totalEstimatedCost,omitempty"`
	WhatIsIncluded     []string          `json:"whatIsIncluded,omitempty"`
	WhatIsNotIncluded  []string          `json:"whatIsNotIncluded,omitempty"`
	Days               []Day             `json:"days"`
	PackingList        []string          `json:"packingList,omitempty"`
	ImportantNotes     []string          `json:"importantNotes,omitempty"`
	EmergencyContacts  map[string]string `json:"emergencyContacts,omitempty"`

	src members
}

type plainItinerary Itinerary

var ErrNotAnObject = errors.New("itinerary payload is not a JSON object")

// UnmarshalJSON keeps every member of the model's object. The typed fields
// are a view for the pipeline; members that do not fit them, and members
// with no typed field, are written back unchanged.
func (it *Itinerary) UnmarshalJSON(data []byte) error {
	typed, src, err := decodeMembers[plainItinerary](data)
	if err != nil {
		return err
	}
	if src.verbatim != nil {
		return ErrNotAnObject
	}
	*it = Itinerary(typed)
	it.src = src
	return nil
}

func (it Itinerary) MarshalJSON() ([]byte, error) {
	return encodeMembers(plainItinerary(it), it.src, "days")
}

// MistypedFields lists the top-level members whose value did not fit the
// typed view and were kept as sent.
func (it *Itinerary) MistypedFields() []string {
	return it.src.mistypedKeys()
}

// FallbackItinerary is returned whenever the model output cannot be used.
func FallbackItinerary(days int) *Itinerary {
	return &Itinerary{
		Title:   fmt.Sprintf("%d-Day Turkey Tour", days),
		Summary: "Custom itinerary",
		Days:    []Day{},
	}
}

type GenerateItineraryResponse struct {
	Success   bool       `json:"success"`
	Itinerary *Itinerary `json:"itinerary"`
}

type CatalogResponse struct {
	OperatorID     string                    `json:"operator_id"`
	Cities         []string                  `json:"cities"`
	Counts         map[string]int            `json:"counts"`
	Accommodations []db_models.Accommodation `json:"accommodations"`
	Activities     []db_models.Activity      `json:"activities"`
	Restaurants    []db_models.Restaurant    `json:"restaurants"`
	Transport      []db_models.Transport     `json:"transport"`
	Guides         []db_models.Guide         `json:"guides"`
}
