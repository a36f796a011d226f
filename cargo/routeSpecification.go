package cargo

import (
	"errors"
	"time"

	"github.com/bes-slim/shipping/location"
)

// ErrInvalidRouteSpecification is returned when a route specification names
// the same origin and destination.
var ErrInvalidRouteSpecification = errors.New("origin and destination must differ")

// RouteSpecification gives details about the movement of a cargo
type RouteSpecification struct {
	Origin      location.UNLcode
	Destination location.UNLcode
	Deadline    time.Time
}

// NewRouteSpecification creates a route specification, rejecting one whose
// origin and destination coincide.
func NewRouteSpecification(origin, destination location.UNLcode, deadline time.Time) (RouteSpecification, error) {
	if origin == destination {
		return RouteSpecification{}, ErrInvalidRouteSpecification
	}
	return RouteSpecification{Origin: origin, Destination: destination, Deadline: deadline}, nil
}

// WithOrigin returns a copy of this specification with a new origin, used
// when rerouting a cargo from somewhere along the way.
func (s RouteSpecification) WithOrigin(origin location.UNLcode) RouteSpecification {
	s.Origin = origin
	return s
}

// WithDestination returns a copy of this specification with a new destination.
func (s RouteSpecification) WithDestination(destination location.UNLcode) RouteSpecification {
	s.Destination = destination
	return s
}

// IsSatisfiedBy checks whether itinerary satisfies this specification. The
// arrival deadline is advisory and never part of the check.
func (s RouteSpecification) IsSatisfiedBy(itinerary Itinerary) bool {
	return itinerary.Legs != nil && s.Origin == itinerary.InitialDepartureLocation() && s.Destination == itinerary.FinalArrivalLocation()
}

// RoutingStatus describes the status of a cargo routing
type RoutingStatus int

// valid routing statuses
const (
	NotRouted RoutingStatus = iota
	MisRouted
	Routed
)

func (s RoutingStatus) String() string {
	switch s {
	case NotRouted:
		return "Not routed"
	case MisRouted:
		return "Misrouted"
	case Routed:
		return "Routed"
	}
	return ""
}

// TransportStatus describes the status of a cargo transportation
type TransportStatus int

// Valid transport statuses
const (
	NotReceived TransportStatus = iota
	InPort
	OnboardCarrier
	Claimed
	Unknown
)

func (s TransportStatus) String() string {
	switch s {
	case NotReceived:
		return "Not Received"
	case InPort:
		return "In Port"
	case OnboardCarrier:
		return "Onboard Carrier"
	case Claimed:
		return "Claimed"
	case Unknown:
		return "Unknown"
	}
	return ""
}
