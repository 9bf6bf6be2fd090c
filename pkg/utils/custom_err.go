package utils

import "errors"

var (
	ErrInvalidTripRequest  = errors.New("invalid trip request")
	ErrOperatorForbidden   = errors.New("operator not allowed for this token")
	ErrDatabaseError       = errors.New("database error")
	ErrGenerationTimeout   = errors.New("generation endpoint timed out")
	ErrGenerationTransport = errors.New("generation endpoint unreachable")
	ErrItineraryPipeline   = errors.New("itinerary pipeline failed")
)
