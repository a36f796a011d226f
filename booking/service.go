// Package booking provides the use-case of booking a cargo and routing it
// towards its destination.
package booking

import (
	"errors"
	"time"

	"github.com/bes-slim/shipping/cargo"
	"github.com/bes-slim/shipping/location"
	"github.com/bes-slim/shipping/routing"
)

// ErrInvalidArgument is returned when one or more arguments are invalid.
var ErrInvalidArgument = errors.New("invalid argument")

// Service is the interface that provides booking methods.
type Service interface {
	// BookNewCargo registers a new cargo in the tracking system, not yet
	// routed.
	BookNewCargo(origin, destination location.UNLcode, deadline time.Time) (cargo.TrackingID, error)

	// LoadCargo returns a read model of a cargo.
	LoadCargo(id cargo.TrackingID) (Cargo, error)

	// RequestPossibleRoutesForCargo requests a list of itineraries describing
	// possible routes for this cargo. A cargo already underway is routed from
	// where it can realistically be picked up.
	RequestPossibleRoutesForCargo(id cargo.TrackingID) []cargo.Itinerary

	// AssignCargoToRoute assigns a cargo to the route specified by the
	// itinerary, splicing in the part of the journey already realized.
	AssignCargoToRoute(id cargo.TrackingID, itinerary cargo.Itinerary) error

	// ChangeDestination changes the destination of a cargo. The cargo becomes
	// misrouted until a new satisfying itinerary is assigned.
	ChangeDestination(id cargo.TrackingID, destination location.UNLcode) error

	// Cargos returns a list of all cargos that have been booked.
	Cargos() []Cargo

	// Locations returns a list of registered locations.
	Locations() []Location
}

type service struct {
	cargos         cargo.Repository
	locations      location.Repository
	handlingEvents cargo.HandlingEventRepository
	routingService routing.Service
}

func (s *service) BookNewCargo(origin, destination location.UNLcode, deadline time.Time) (cargo.TrackingID, error) {
	if origin == "" || destination == "" || deadline.IsZero() {
		return "", ErrInvalidArgument
	}

	rs, err := cargo.NewRouteSpecification(origin, destination, deadline)
	if err != nil {
		return "", err
	}

	id := cargo.NextTrackingID()
	c := cargo.New(id, rs)

	if err := s.cargos.Store(c); err != nil {
		return "", err
	}

	return c.TrackingID, nil
}

func (s *service) LoadCargo(id cargo.TrackingID) (Cargo, error) {
	if id == "" {
		return Cargo{}, ErrInvalidArgument
	}

	c, err := s.cargos.Find(id)
	if err != nil {
		return Cargo{}, err
	}

	return assemble(c), nil
}

func (s *service) RequestPossibleRoutesForCargo(id cargo.TrackingID) []cargo.Itinerary {
	if id == "" {
		return nil
	}

	c, err := s.cargos.Find(id)
	if err != nil {
		return []cargo.Itinerary{}
	}

	rs := c.RouteSpecification
	if c.Delivery.LastEvent.Activity.Type != cargo.NotHandled {
		rs = rs.WithOrigin(c.EarliestReroutingLocation())
	}

	return s.routingService.FetchRoutesForSpecification(rs)
}

func (s *service) AssignCargoToRoute(id cargo.TrackingID, itinerary cargo.Itinerary) error {
	if id == "" || itinerary.IsEmpty() {
		return ErrInvalidArgument
	}

	c, err := s.cargos.Find(id)
	if err != nil {
		return err
	}

	if err := c.AssignToRoute(c.ItineraryMergedWith(itinerary)); err != nil {
		return err
	}

	return s.cargos.Store(c)
}

func (s *service) ChangeDestination(id cargo.TrackingID, destination location.UNLcode) error {
	if id == "" || destination == "" {
		return ErrInvalidArgument
	}

	c, err := s.cargos.Find(id)
	if err != nil {
		return err
	}

	rs := c.RouteSpecification.WithDestination(destination)
	if rs.Origin == rs.Destination {
		return cargo.ErrInvalidRouteSpecification
	}

	c.SpecifyNewRoute(rs)

	return s.cargos.Store(c)
}

func (s *service) Cargos() []Cargo {
	var result []Cargo
	for _, c := range s.cargos.FindAll() {
		result = append(result, assemble(c))
	}
	return result
}

func (s *service) Locations() []Location {
	var result []Location
	for _, v := range s.locations.FindAll() {
		result = append(result, Location{
			UNLcode: string(v.UNLcode),
			Name:    v.Name,
		})
	}
	return result
}

// NewService creates a booking service with necessary dependencies.
func NewService(cargos cargo.Repository, locations location.Repository, events cargo.HandlingEventRepository, rs routing.Service) Service {
	return &service{
		cargos:         cargos,
		locations:      locations,
		handlingEvents: events,
		routingService: rs,
	}
}

// Location is a read model for booking views.
type Location struct {
	UNLcode string `json:"locode"`
	Name    string `json:"name"`
}

// Cargo is a read model for booking views.
type Cargo struct {
	ArrivalDeadline time.Time   `json:"arrival_deadline"`
	Destination     string      `json:"destination"`
	Legs            []cargo.Leg `json:"legs,omitempty"`
	Misrouted       bool        `json:"misrouted"`
	Misdirected     bool        `json:"misdirected"`
	Origin          string      `json:"origin"`
	Routed          bool        `json:"routed"`
	ETA             time.Time   `json:"eta,omitempty"`
	TrackingID      string      `json:"tracking_id"`
}

func assemble(c *cargo.Cargo) Cargo {
	return Cargo{
		TrackingID:      string(c.TrackingID),
		Origin:          string(c.Origin),
		Destination:     string(c.RouteSpecification.Destination),
		ArrivalDeadline: c.RouteSpecification.Deadline,
		Misrouted:       c.Delivery.RoutingStatus == cargo.MisRouted,
		Misdirected:     c.Delivery.IsMisdirected,
		Routed:          !c.Itinerary.IsEmpty(),
		ETA:             c.Delivery.ETA,
		Legs:            c.Itinerary.Legs,
	}
}
