package cargo

import (
	"errors"
	"time"

	"github.com/bes-slim/shipping/location"
	"github.com/bes-slim/shipping/voyage"
)

// ErrInvalidLeg is returned when a leg starts and ends at the same location.
var ErrInvalidLeg = errors.New("leg load and unload locations must differ")

// ErrBrokenItinerary is returned when the legs of an itinerary do not form a
// continuous, temporally ordered path.
var ErrBrokenItinerary = errors.New("itinerary legs are not continuous")

// Leg describes the transportation between two locations on a voyage
type Leg struct {
	VoyageNumber   voyage.Number    `json:"voyage_number"`
	LoadLocation   location.UNLcode `json:"from"`
	UnLoadLocation location.UNLcode `json:"to"`
	LoadTime       time.Time        `json:"load_time"`
	UnLoadTime     time.Time        `json:"unload_time"`
}

// NewLeg creates a new itinerary leg
func NewLeg(voyageNumber voyage.Number, loadLocation, unloadLocation location.UNLcode, loadTime, unloadTime time.Time) (Leg, error) {
	if loadLocation == unloadLocation {
		return Leg{}, ErrInvalidLeg
	}
	return Leg{
		VoyageNumber:   voyageNumber,
		LoadLocation:   loadLocation,
		UnLoadLocation: unloadLocation,
		LoadTime:       loadTime,
		UnLoadTime:     unloadTime,
	}, nil
}

// DeriveLeg derives a leg for the stretch of the voyage between the given
// load and unload locations, taking the times from the voyage schedule.
func DeriveLeg(v *voyage.Voyage, loadLocation, unloadLocation location.UNLcode) (Leg, error) {
	if v == nil {
		return Leg{}, voyage.ErrUnknown
	}
	var loadTime, unloadTime time.Time
	for _, m := range v.Schedule.CarrierMovements {
		if m.DepartureLocation == loadLocation {
			loadTime = m.DepartureTime
		}
		if m.ArrivalLocation == unloadLocation {
			unloadTime = m.ArrivalTime
		}
	}
	return NewLeg(v.Number, loadLocation, unloadLocation, loadTime, unloadTime)
}

// Itinerary specifies steps required to transport a cargo from its origin to
// destination.
type Itinerary struct {
	Legs []Leg `json:"legs"`
}

// NewItinerary creates an itinerary from the given legs, rejecting sequences
// that break the continuity or temporal ordering invariants.
func NewItinerary(legs ...Leg) (Itinerary, error) {
	if len(legs) == 0 {
		return Itinerary{}, ErrBrokenItinerary
	}
	for i := 0; i < len(legs)-1; i++ {
		if legs[i].UnLoadLocation != legs[i+1].LoadLocation {
			return Itinerary{}, ErrBrokenItinerary
		}
		if legs[i+1].LoadTime.Before(legs[i].UnLoadTime) {
			return Itinerary{}, ErrBrokenItinerary
		}
	}
	return Itinerary{Legs: legs}, nil
}

// IsEmpty checks if the itinerary contains at least one leg
func (i Itinerary) IsEmpty() bool {
	return len(i.Legs) == 0
}

// InitialDepartureLocation returns the start of the itinerary
func (i Itinerary) InitialDepartureLocation() location.UNLcode {
	if i.IsEmpty() {
		return location.UNLcode("")
	}
	return i.Legs[0].LoadLocation
}

// FinalArrivalLocation returns the end of the itinerary
func (i Itinerary) FinalArrivalLocation() location.UNLcode {
	if i.IsEmpty() {
		return location.UNLcode("")
	}
	return i.Legs[len(i.Legs)-1].UnLoadLocation
}

// FinalArrivalTime returns the expected arrival time at final destination
func (i Itinerary) FinalArrivalTime() time.Time {
	if i.IsEmpty() {
		return time.Time{}
	}
	return i.Legs[len(i.Legs)-1].UnLoadTime
}

// IsExpected checks if the given handling event is expected when executing
// this itinerary.
func (i Itinerary) IsExpected(event HandlingEvent) bool {
	if i.IsEmpty() {
		return true
	}
	switch event.Activity.Type {
	case Receive:
		return i.InitialDepartureLocation() == event.Activity.Location
	case Load:
		for _, l := range i.Legs {
			if l.LoadLocation == event.Activity.Location && l.VoyageNumber == event.Activity.VoyageNumber {
				return true
			}
		}
		return false
	case Unload:
		for _, l := range i.Legs {
			if l.UnLoadLocation == event.Activity.Location && l.VoyageNumber == event.Activity.VoyageNumber {
				return true
			}
		}
		return false
	case Customs, Claim:
		return i.FinalArrivalLocation() == event.Activity.Location
	}
	return true
}

// LegsAfter returns the remainder of the itinerary from the given location:
// every leg loading at or after it.
func (i Itinerary) LegsAfter(l location.UNLcode) Itinerary {
	for n, leg := range i.Legs {
		if leg.LoadLocation == l {
			return Itinerary{Legs: i.Legs[n:]}
		}
	}
	return Itinerary{}
}

// TruncatedAfter returns the realized part of the itinerary: every leg up to
// and including the one ending at the given location. A leg interrupted by
// the last handling event before its planned unload location is re-derived to
// end where the cargo actually came off, keeping the result continuous with a
// replacement itinerary starting at that location.
func (i Itinerary) TruncatedAfter(l location.UNLcode, last HandlingEvent) Itinerary {
	var legs []Leg
	for _, leg := range i.Legs {
		if leg.LoadLocation == l {
			return Itinerary{Legs: legs}
		}
		if leg.UnLoadLocation == l {
			return Itinerary{Legs: append(legs, leg)}
		}
		if last.Activity.Type == Unload && last.Activity.VoyageNumber == leg.VoyageNumber && last.Activity.Location == l {
			return Itinerary{Legs: append(legs, Leg{
				VoyageNumber:   leg.VoyageNumber,
				LoadLocation:   leg.LoadLocation,
				UnLoadLocation: l,
				LoadTime:       leg.LoadTime,
				UnLoadTime:     last.CompletionTime,
			})}
		}
		legs = append(legs, leg)
	}
	// The location is not on the plan at all: nothing can be counted as
	// realized relative to it.
	return Itinerary{}
}

// Appended returns this itinerary followed by the legs of the other.
func (i Itinerary) Appended(other Itinerary) Itinerary {
	legs := make([]Leg, 0, len(i.Legs)+len(other.Legs))
	legs = append(legs, i.Legs...)
	legs = append(legs, other.Legs...)
	return Itinerary{Legs: legs}
}
