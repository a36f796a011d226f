// Package inspection provides means to inspect cargos: after each registered
// handling event the cargo's delivery snapshot is re-derived from its full
// handling history.
package inspection

import (
	"github.com/bes-slim/shipping/cargo"
)

// EventHandler provides means of subscribing to inspection events.
type EventHandler interface {
	CargoWasMisdirected(*cargo.Cargo)
	CargoHasArrived(*cargo.Cargo)
}

// Service provides cargo inspection operations.
type Service interface {
	// InspectCargo inspects cargo and internally derives its delivery
	// progress from the ordered handling history.
	InspectCargo(id cargo.TrackingID)
}

type service struct {
	cargos  cargo.Repository
	events  cargo.HandlingEventRepository
	handler EventHandler
}

// TODO: this is a candidate for a async inspection. How to handle errors?
func (s *service) InspectCargo(id cargo.TrackingID) {
	c, err := s.cargos.Find(id)
	if err != nil {
		return
	}

	h := s.events.QueryHandlingHistory(id)

	c.DeriveDeliveryProgress(h)

	if c.Delivery.IsMisdirected {
		s.handler.CargoWasMisdirected(c)
	}

	if c.Delivery.IsReadyToClaim {
		s.handler.CargoHasArrived(c)
	}

	s.cargos.Store(c)
}

// NewService creates an inspection service with necessary dependencies.
func NewService(cargos cargo.Repository, events cargo.HandlingEventRepository, handler EventHandler) Service {
	return &service{cargos: cargos, events: events, handler: handler}
}
