package services

import (
	"github.com/fatihtunali/travelquotebot/internal/models/db_models"
	"github.com/fatihtunali/travelquotebot/internal/models/response_models"
)

type ServiceResolverInterface interface {
	Resolve(itinerary *response_models.Itinerary, accs []db_models.Accommodation, acts []db_models.Activity, rests []db_models.Restaurant) *response_models.Itinerary
}

type ServiceResolver struct{}

func NewServiceResolver() ServiceResolverInterface {
	return &ServiceResolver{}
}

// nameIndex maps a catalog display name to its identifier. When an operator
// lists two services under one name, the later row wins.
type nameIndex map[string]string

func (idx nameIndex) lookup(name string) *string {
	if id, ok := idx[name]; ok {
		return &id
	}
	return nil
}

func indexByName[T any](items []T, key func(T) (name, id string)) nameIndex {
	idx := make(nameIndex, len(items))
	for _, item := range items {
		name, id := key(item)
		idx[name] = id
	}
	return idx
}

// Resolve rewrites every expense's serviceId from its name, per category,
// using only the catalog fetched for this request. Anything without an exact
// match, transport included, ends up with a null serviceId.
func (r *ServiceResolver) Resolve(itinerary *response_models.Itinerary, accs []db_models.Accommodation, acts []db_models.Activity, rests []db_models.Restaurant) *response_models.Itinerary {
	if itinerary == nil {
		return nil
	}

	tables := map[response_models.ExpenseCategory]nameIndex{
		response_models.ExpenseAccommodation: indexByName(accs, func(a db_models.Accommodation) (string, string) { return a.Name, a.ID }),
		response_models.ExpenseActivity:      indexByName(acts, func(a db_models.Activity) (string, string) { return a.Name, a.ID }),
		response_models.ExpenseMeal:          indexByName(rests, func(r db_models.Restaurant) (string, string) { return r.Name, r.ID }),
		response_models.ExpenseTransport:     nil,
	}

	for d := range itinerary.Days {
		expenses := itinerary.Days[d].Expenses
		for e := range expenses {
			// unknown categories and transport have no table; nil lookup is a miss
			expenses[e].ServiceID = tables[expenses[e].Category].lookup(expenses[e].Name)
		}
	}

	return itinerary
}
