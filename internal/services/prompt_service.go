package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatihtunali/travelquotebot/internal/models/db_models"
	"github.com/fatihtunali/travelquotebot/internal/models/request_models"
)

// Excerpt sizes keep the instruction within the model's context window.
const (
	maxPromptAccommodations = 10
	maxPromptActivities     = 15
	maxPromptRestaurants    = 10
)

const noneAvailable = "None available"

type PromptServiceInterface interface {
	Compile(req request_models.TripRequest, accs []db_models.Accommodation, acts []db_models.Activity, rests []db_models.Restaurant) string
}

type PromptService struct{}

func NewPromptService() PromptServiceInterface {
	return &PromptService{}
}

// Compile returns the upstream prompt untouched when the request carries one.
// Otherwise it renders the trip, the catalog excerpts and the output contract.
func (p *PromptService) Compile(req request_models.TripRequest, accs []db_models.Accommodation, acts []db_models.Activity, rests []db_models.Restaurant) string {
	if req.HasPrompt() {
		return *req.Prompt
	}

	days := req.Days
	nights := days - 1
	pax := req.Pax
	startDate := req.StartDate
	if startDate == "" {
		startDate = "2025-06-01"
	}
	budget := req.Budget
	if budget == "" {
		budget = "moderate"
	}

	var prompt strings.Builder

	fmt.Fprintf(&prompt, "Create a %d-day Turkey itinerary as JSON.\n\n", days)

	prompt.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&prompt, "- Travelers: %d people\n", pax)
	fmt.Fprintf(&prompt, "- Duration: %d days (%d nights)\n", days, nights)
	fmt.Fprintf(&prompt, "- Cities: %s\n", strings.Join(req.Cities, ", "))
	fmt.Fprintf(&prompt, "- Tour type: %s\n", req.TourType)
	if len(req.Interests) > 0 {
		fmt.Fprintf(&prompt, "- Interests: %s\n", strings.Join(req.Interests, ", "))
	}
	fmt.Fprintf(&prompt, "- Start: %s\n", startDate)
	fmt.Fprintf(&prompt, "- Budget: %s\n\n", budget)

	prompt.WriteString("AVAILABLE SERVICES:\n")
	fmt.Fprintf(&prompt, "Hotels (%d available):\n%s\n\n", len(accs), accommodationExcerpt(accs))
	fmt.Fprintf(&prompt, "Activities (%d available):\n%s\n\n", len(acts), activityExcerpt(acts))
	fmt.Fprintf(&prompt, "Restaurants (%d available):\n%s\n\n", len(rests), restaurantExcerpt(rests))

	prompt.WriteString("PACKAGE STRUCTURE (REQUIRED):\n")
	prompt.WriteString("Every full package MUST include these 3 components:\n")
	fmt.Fprintf(&prompt, "1. ACCOMMODATION - Hotel for %d nights (days - 1)\n", nights)
	prompt.WriteString("2. TRANSFERS - IN (arrival) + OUT (departure) transfers\n")
	prompt.WriteString("3. SIGHTSEEING - Daily tours/activities\n\n")

	prompt.WriteString("CRITICAL RULES:\n")
	prompt.WriteString("1. Use ONLY services listed above (use exact names)\n")
	fmt.Fprintf(&prompt, "2. %d days = %d nights accommodation (NOT %d nights!)\n", days, nights, days)
	prompt.WriteString("3. ALWAYS include transfers (in & out) in Day 1 and final day\n")
	prompt.WriteString("4. Return ONLY valid JSON (no markdown, no extra text)\n")
	prompt.WriteString("5. Every price must be a number\n")
	fmt.Fprintf(&prompt, "6. Create exactly %d days\n\n", days)

	prompt.WriteString("JSON FORMAT:\n")
	prompt.WriteString(jsonExample(days, nights, pax, startDate))
	prompt.WriteString("\n\nRESPOND WITH JSON ONLY - NO MARKDOWN, NO COMMENTS, NO EXTRA TEXT.")

	return prompt.String()
}

func accommodationExcerpt(accs []db_models.Accommodation) string {
	if len(accs) == 0 {
		return noneAvailable
	}
	lines := make([]string, 0, maxPromptAccommodations)
	for _, a := range accs[:min(len(accs), maxPromptAccommodations)] {
		stars := "unrated"
		if a.StarRating != nil {
			stars = strconv.Itoa(*a.StarRating) + "⭐"
		}
		lines = append(lines, fmt.Sprintf("- %s (%s) - %s | $%.0f/night",
			a.Name, a.City, stars, floatOr(a.BasePricePerNight, 0)))
	}
	return strings.Join(lines, "\n")
}

func activityExcerpt(acts []db_models.Activity) string {
	if len(acts) == 0 {
		return noneAvailable
	}
	lines := make([]string, 0, maxPromptActivities)
	for _, a := range acts[:min(len(acts), maxPromptActivities)] {
		lines = append(lines, fmt.Sprintf("- %s (%s) | $%.0f/person | %shrs",
			a.Name, a.City, floatOr(a.BasePrice, 0),
			strconv.FormatFloat(floatOr(a.DurationHours, 3), 'f', -1, 64)))
	}
	return strings.Join(lines, "\n")
}

func restaurantExcerpt(rests []db_models.Restaurant) string {
	if len(rests) == 0 {
		return noneAvailable
	}
	lines := make([]string, 0, maxPromptRestaurants)
	for _, r := range rests[:min(len(rests), maxPromptRestaurants)] {
		cuisine := "Turkish"
		if r.CuisineType != nil && *r.CuisineType != "" {
			cuisine = *r.CuisineType
		}
		lines = append(lines, fmt.Sprintf("- %s (%s) - %s | L:$%.0f D:$%.0f",
			r.Name, r.City, cuisine, floatOr(r.LunchPrice, 20), floatOr(r.DinnerPrice, 30)))
	}
	return strings.Join(lines, "\n")
}

// floatOr treats NULL and zero prices alike, as missing.
func floatOr(v *float64, fallback float64) float64 {
	if v == nil || *v == 0 {
		return fallback
	}
	return *v
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func jsonExample(days, nights, pax int, startDate string) string {
	p := float64(pax)
	return fmt.Sprintf(`{
  "title": "Trip title",
  "summary": "Brief description",
  "highlights": ["Day 1: highlight", "Day 2: highlight"],
  "totalEstimatedCost": {
    "breakdown": {"accommodations": 200, "activities": 300, "meals": 150, "transportation": 0},
    "subtotal": 650,
    "total": 650,
    "perPerson": 325,
    "currency": "USD"
  },
  "whatIsIncluded": ["Item 1", "Item 2"],
  "whatIsNotIncluded": ["Item 1", "Item 2"],
  "days": [
    {
      "day": 1,
      "date": "%[4]s",
      "title": "Arrival in Istanbul",
      "city": "Istanbul",
      "mealCode": "B,L,D",
      "highlights": ["Visit Hagia Sophia", "Blue Mosque tour"],
      "freeTime": "15:00-18:00 - Free time to explore",
      "expenses": [
        {
          "category": "transport",
          "serviceId": null,
          "serviceType": "transport",
          "name": "Airport to Hotel Transfer (IN)",
          "description": "Private arrival transfer",
          "time": "Arrival time",
          "pricePerPerson": 30.00,
          "quantity": %[3]d,
          "totalPrice": %[5]s
        },
        {
          "category": "accommodation",
          "serviceId": null,
          "serviceType": "accommodation",
          "name": "Hotel Name From List",
          "description": "Comfortable hotel",
          "basePricePerNight": 100.00,
          "quantity": %[2]d,
          "totalPrice": %[6]s
        },
        {
          "category": "activity",
          "serviceId": null,
          "serviceType": "activity",
          "name": "Activity Name From List",
          "description": "Sightseeing tour",
          "time": "09:00",
          "pricePerPerson": 50.00,
          "quantity": %[3]d,
          "totalPrice": %[7]s
        },
        {
          "category": "meal",
          "serviceId": null,
          "serviceType": "restaurant",
          "name": "Restaurant Name From List",
          "mealType": "lunch",
          "time": "12:30",
          "pricePerPerson": 20.00,
          "quantity": %[3]d,
          "totalPrice": %[8]s
        }
      ]
    },
    {
      "day": %[1]d,
      "date": "Calculate final day date",
      "title": "Departure",
      "city": "Istanbul",
      "mealCode": "B",
      "highlights": ["Hotel checkout", "Departure transfer"],
      "freeTime": "Morning free time before departure",
      "expenses": [
        {
          "category": "transport",
          "serviceId": null,
          "serviceType": "transport",
          "name": "Hotel to Airport Transfer (OUT)",
          "description": "Private departure transfer",
          "time": "Departure time",
          "pricePerPerson": 30.00,
          "quantity": %[3]d,
          "totalPrice": %[5]s
        }
      ]
    }
  ],
  "packingList": ["Item 1", "Item 2"],
  "importantNotes": ["Note 1", "Note 2"],
  "emergencyContacts": {"tourOperator": "Contact info", "emergencyServices": "112"}
}`, days, nights, pax, startDate,
		money(p*30), money(float64(nights)*100), money(p*50), money(p*20))
}
