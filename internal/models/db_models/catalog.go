package db_models

// CatalogCategory is the closed set of bookable service kinds an operator
// publishes.
type CatalogCategory string

const (
	CategoryAccommodation CatalogCategory = "acc"
	CategoryActivity      CatalogCategory = "act"
	CategoryRestaurant    CatalogCategory = "rest"
	CategoryTransport     CatalogCategory = "trans"
	CategoryGuide         CatalogCategory = "guides"
)

type Accommodation struct {
	ID                string   `gorm:"column:id" json:"id"`
	Name              string   `gorm:"column:name" json:"name"`
	City              string   `gorm:"column:city" json:"city"`
	Category          string   `gorm:"column:category" json:"category"`
	StarRating        *int     `gorm:"column:star_rating" json:"star_rating"`
	BasePricePerNight *float64 `gorm:"column:base_price_per_night" json:"base_price_per_night"`
	Description       *string  `gorm:"column:description" json:"description"`
	Amenities         *string  `gorm:"column:amenities" json:"amenities"`
	Address           *string  `gorm:"column:address" json:"address"`
	Phone             *string  `gorm:"column:phone" json:"phone"`
	CheckInTime       *string  `gorm:"column:check_in_time" json:"check_in_time"`
	CheckOutTime      *string  `gorm:"column:check_out_time" json:"check_out_time"`
}

type Activity struct {
	ID              string   `gorm:"column:id" json:"id"`
	Name            string   `gorm:"column:name" json:"name"`
	City            string   `gorm:"column:city" json:"city"`
	Category        string   `gorm:"column:category" json:"category"`
	DurationHours   *float64 `gorm:"column:duration_hours" json:"duration_hours"`
	BasePrice       *float64 `gorm:"column:base_price" json:"base_price"`
	Description     *string  `gorm:"column:description" json:"description"`
	Highlights      *string  `gorm:"column:highlights" json:"highlights"`
	MeetingPoint    *string  `gorm:"column:meeting_point" json:"meeting_point"`
	Phone           *string  `gorm:"column:phone" json:"phone"`
	DifficultyLevel *string  `gorm:"column:difficulty_level" json:"difficulty_level"`
	IncludedItems   *string  `gorm:"column:included_items" json:"included_items"`
	ExcludedItems   *string  `gorm:"column:excluded_items" json:"excluded_items"`
	MinParticipants *int     `gorm:"column:min_participants" json:"min_participants"`
}

type Restaurant struct {
	ID                  string   `gorm:"column:id" json:"id"`
	Name                string   `gorm:"column:name" json:"name"`
	City                string   `gorm:"column:city" json:"city"`
	CuisineType         *string  `gorm:"column:cuisine_type" json:"cuisine_type"`
	BreakfastPrice      *float64 `gorm:"column:breakfast_price" json:"breakfast_price"`
	LunchPrice          *float64 `gorm:"column:lunch_price" json:"lunch_price"`
	DinnerPrice         *float64 `gorm:"column:dinner_price" json:"dinner_price"`
	Address             *string  `gorm:"column:address" json:"address"`
	Phone               *string  `gorm:"column:phone" json:"phone"`
	OperatingHours      *string  `gorm:"column:operating_hours" json:"operating_hours"`
	ReservationRequired *bool    `gorm:"column:reservation_required" json:"reservation_required"`
	RecommendedDishes   *string  `gorm:"column:recommended_dishes" json:"recommended_dishes"`
	Specialties         *string  `gorm:"column:specialties" json:"specialties"`
}

type Transport struct {
	ID              string   `gorm:"column:id" json:"id"`
	Name            string   `gorm:"column:name" json:"name"`
	Type            string   `gorm:"column:type" json:"type"`
	FromLocation    *string  `gorm:"column:from_location" json:"from_location"`
	ToLocation      *string  `gorm:"column:to_location" json:"to_location"`
	VehicleType     *string  `gorm:"column:vehicle_type" json:"vehicle_type"`
	MaxPassengers   *int     `gorm:"column:max_passengers" json:"max_passengers"`
	BasePrice       *float64 `gorm:"column:base_price" json:"base_price"`
	DistanceKm      *float64 `gorm:"column:distance_km" json:"distance_km"`
	DurationMinutes *int     `gorm:"column:duration_minutes" json:"duration_minutes"`
	PickupLocation  *string  `gorm:"column:pickup_location" json:"pickup_location"`
	ContactPhone    *string  `gorm:"column:contact_phone" json:"contact_phone"`
}

type Guide struct {
	ID             string   `gorm:"column:id" json:"id"`
	Name           string   `gorm:"column:name" json:"name"`
	GuideType      string   `gorm:"column:guide_type" json:"guide_type"`
	Specialization *string  `gorm:"column:specialization" json:"specialization"`
	Languages      *string  `gorm:"column:languages" json:"languages"`
	PricePerDay    *float64 `gorm:"column:price_per_day" json:"price_per_day"`
	PriceHalfDay   *float64 `gorm:"column:price_half_day" json:"price_half_day"`
}
