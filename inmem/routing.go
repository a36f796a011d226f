package inmem

import (
	"github.com/bes-slim/shipping/cargo"
	"github.com/bes-slim/shipping/location"
	"github.com/bes-slim/shipping/routing"
	"github.com/bes-slim/shipping/voyage"
)

type routingService struct {
	voyages []*voyage.Voyage
}

// NewRoutingService returns a routing service that chains legs over the given
// voyages. It is a stand-in for the external route finder: good enough to
// route the sample network, with no pretense of optimality.
func NewRoutingService(voyages []*voyage.Voyage) routing.Service {
	return &routingService{voyages: voyages}
}

const maxLegs = 4

func (s *routingService) FetchRoutesForSpecification(rs cargo.RouteSpecification) []cargo.Itinerary {
	var itineraries []cargo.Itinerary
	s.search(rs.Origin, rs.Destination, nil, &itineraries)
	return itineraries
}

func (s *routingService) search(from, to location.UNLcode, legs []cargo.Leg, out *[]cargo.Itinerary) {
	if len(legs) >= maxLegs {
		return
	}
	for _, l := range s.candidateLegs(from) {
		if onPath(legs, l.UnLoadLocation) {
			continue
		}
		if len(legs) > 0 && l.LoadTime.Before(legs[len(legs)-1].UnLoadTime) {
			continue
		}
		next := append(append([]cargo.Leg{}, legs...), l)
		if l.UnLoadLocation == to {
			*out = append(*out, cargo.Itinerary{Legs: next})
			continue
		}
		s.search(l.UnLoadLocation, to, next, out)
	}
}

// candidateLegs derives every leg departing from the given location: each
// voyage calling there can carry the cargo to any of its later call points.
func (s *routingService) candidateLegs(from location.UNLcode) []cargo.Leg {
	var legs []cargo.Leg
	for _, v := range s.voyages {
		departed := false
		var loadTime = v.Schedule.CarrierMovements[0].DepartureTime
		for _, m := range v.Schedule.CarrierMovements {
			if departed {
				legs = append(legs, cargo.Leg{
					VoyageNumber:   v.Number,
					LoadLocation:   from,
					UnLoadLocation: m.ArrivalLocation,
					LoadTime:       loadTime,
					UnLoadTime:     m.ArrivalTime,
				})
				continue
			}
			if m.DepartureLocation == from {
				departed = true
				loadTime = m.DepartureTime
				legs = append(legs, cargo.Leg{
					VoyageNumber:   v.Number,
					LoadLocation:   from,
					UnLoadLocation: m.ArrivalLocation,
					LoadTime:       loadTime,
					UnLoadTime:     m.ArrivalTime,
				})
			}
		}
	}
	return legs
}

func onPath(legs []cargo.Leg, l location.UNLcode) bool {
	for _, leg := range legs {
		if leg.LoadLocation == l || leg.UnLoadLocation == l {
			return true
		}
	}
	return false
}
