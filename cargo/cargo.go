package cargo

import (
	"errors"
	"strings"

	"github.com/bes-slim/shipping/location"
	"github.com/pborman/uuid"
)

// TrackingID uniquely identifies a cargo
type TrackingID string

// Cargo contains info about a cargo
type Cargo struct {
	TrackingID         TrackingID
	Origin             location.UNLcode
	RouteSpecification RouteSpecification
	Itinerary          Itinerary
	Delivery           Delivery
}

// ErrUnsatisfiedRoute is returned when an itinerary assigned to a cargo does
// not satisfy its active route specification. Callers are expected to merge
// and validate candidate routes before assigning them.
var ErrUnsatisfiedRoute = errors.New("itinerary does not satisfy route specification")

// SpecifyNewRoute specifies a new route for this cargo. If the current
// itinerary no longer satisfies the new specification the cargo becomes
// misrouted until a satisfying itinerary is assigned; the handling history is
// untouched.
func (c *Cargo) SpecifyNewRoute(rs RouteSpecification) {
	c.RouteSpecification = rs
	c.Delivery = c.Delivery.UpdateOnRouting(c.RouteSpecification, c.Itinerary)
}

// AssignToRoute attaches a new itinerary to the cargo. The itinerary must
// satisfy the active route specification.
func (c *Cargo) AssignToRoute(itinerary Itinerary) error {
	if !c.RouteSpecification.IsSatisfiedBy(itinerary) {
		return ErrUnsatisfiedRoute
	}
	c.Itinerary = itinerary
	c.Delivery = c.Delivery.UpdateOnRouting(c.RouteSpecification, c.Itinerary)
	return nil
}

// DeriveDeliveryProgress updates all aspects of the cargo aggregate status
// based on the current route specification, itinerary and handling of the cargo
func (c *Cargo) DeriveDeliveryProgress(history HandlingHistory) {
	c.Delivery = DeriveDeliveryFrom(c.RouteSpecification, c.Itinerary, history)
}

// EarliestReroutingLocation is the origin to use when requesting a
// replacement itinerary. A misdirected cargo must be rerouted from where it
// actually is; otherwise from the end of the last completed leg, or the
// origin if the cargo has not been received yet.
func (c *Cargo) EarliestReroutingLocation() location.UNLcode {
	if c.Delivery.LastEvent.Activity.Type == NotHandled {
		if c.Itinerary.IsEmpty() {
			return c.RouteSpecification.Origin
		}
		return c.Itinerary.InitialDepartureLocation()
	}
	return c.Delivery.LastKnownLocation
}

// ItineraryMergedWith splices the realized part of the current itinerary with
// the legs of a replacement itinerary starting at the earliest rerouting
// location. The result is continuous and can be assigned to the cargo.
func (c *Cargo) ItineraryMergedWith(other Itinerary) Itinerary {
	if c.Itinerary.IsEmpty() || c.Delivery.LastEvent.Activity.Type == NotHandled {
		return other
	}
	realized := c.Itinerary.TruncatedAfter(c.EarliestReroutingLocation(), c.Delivery.LastEvent)
	return realized.Appended(other)
}

// New creates a new, unrouted cargo
func New(id TrackingID, rs RouteSpecification) *Cargo {
	itinerary := Itinerary{}
	history := HandlingHistory{make([]HandlingEvent, 0)}

	return &Cargo{
		TrackingID:         id,
		Origin:             rs.Origin,
		RouteSpecification: rs,
		Delivery:           DeriveDeliveryFrom(rs, itinerary, history),
	}
}

// Repository provides access to cargo store
type Repository interface {
	Store(cargo *Cargo) error
	Find(id TrackingID) (*Cargo, error)
	FindAll() []*Cargo
}

// ErrUnknown is used when a cargo can't be found
var ErrUnknown = errors.New("unknown cargo")

// NextTrackingID generates a new tracking ID.
func NextTrackingID() TrackingID {
	return TrackingID(strings.Split(strings.ToUpper(uuid.New()), "-")[0])
}
