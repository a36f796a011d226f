package cargo

import (
	"time"

	"github.com/bes-slim/shipping/location"
	"github.com/bes-slim/shipping/voyage"
)

// Delivery is the actual transportation of the cargo, as opposed to the
// customer requirement (RouteSpecification) and the plan (Itinerary). Every
// field is derived from the itinerary, the route specification and the
// handling history; a delivery is never patched, only recomputed.
type Delivery struct {
	Itinerary             Itinerary
	RouteSpecification    RouteSpecification
	RoutingStatus         RoutingStatus
	TransportStatus       TransportStatus
	NextExpectedActivity  HandlingActivity
	LastEvent             HandlingEvent
	LastKnownLocation     location.UNLcode
	CurrentVoyage         voyage.Number
	ETA                   time.Time
	CustomsClearancePoint location.UNLcode
	IsMisdirected         bool
	IsReadyToClaim        bool
}

// UpdateOnRouting creates a new delivery snapshot to reflect changes in
// routing, i.e. when the route specification or the itinerary has changed but
// no additional handling of the cargo has been performed.
func (d Delivery) UpdateOnRouting(rs RouteSpecification, itinerary Itinerary) Delivery {
	return newDelivery(d.LastEvent, itinerary, rs)
}

// IsOnTrack reports whether the cargo is routed and following its plan.
func (d Delivery) IsOnTrack() bool {
	return d.RoutingStatus == Routed && !d.IsMisdirected
}

// DeriveDeliveryFrom creates a new delivery snapshot based on the complete
// handling history of a cargo, as well as its route specification and
// itinerary.
func DeriveDeliveryFrom(rs RouteSpecification, itinerary Itinerary, history HandlingHistory) Delivery {
	lastEvent, _ := history.MostRecentlyCompletedEvent()
	return newDelivery(lastEvent, itinerary, rs)
}

// newDelivery creates a up-to-date delivery based on an handling event,
// itinerary and route specification.
func newDelivery(lastEvent HandlingEvent, itinerary Itinerary, rs RouteSpecification) Delivery {
	var (
		routingStatus         = calculateRoutingStatus(itinerary, rs)
		transportStatus       = calculateTransportStatus(lastEvent)
		lastKnownLocation     = lastEvent.Activity.Location
		isMisdirected         = calculateMisdirectedStatus(lastEvent, itinerary)
		isReadyToClaim        = calculateReadyToClaim(lastEvent, itinerary)
		currentVoyage         = calculateCurrentVoyage(transportStatus, lastEvent)
		customsClearancePoint = calculateCustomsClearancePoint(routingStatus, itinerary)
	)

	d := Delivery{
		LastEvent:             lastEvent,
		Itinerary:             itinerary,
		RouteSpecification:    rs,
		RoutingStatus:         routingStatus,
		TransportStatus:       transportStatus,
		LastKnownLocation:     lastKnownLocation,
		IsMisdirected:         isMisdirected,
		IsReadyToClaim:        isReadyToClaim,
		CurrentVoyage:         currentVoyage,
		CustomsClearancePoint: customsClearancePoint,
	}

	d.NextExpectedActivity = calculateNextExpectedActivity(d)
	d.ETA = calculateETA(d)

	return d
}

func calculateRoutingStatus(itinerary Itinerary, rs RouteSpecification) RoutingStatus {
	if itinerary.IsEmpty() {
		return NotRouted
	}
	if rs.IsSatisfiedBy(itinerary) {
		return Routed
	}
	return MisRouted
}

func calculateMisdirectedStatus(event HandlingEvent, itinerary Itinerary) bool {
	if event.Activity.Type == NotHandled {
		return false
	}
	return !itinerary.IsExpected(event)
}

func calculateTransportStatus(event HandlingEvent) TransportStatus {
	switch event.Activity.Type {
	case NotHandled:
		return NotReceived
	case Load:
		return OnboardCarrier
	case Unload, Receive, Customs:
		return InPort
	case Claim:
		return Claimed
	}
	return Unknown
}

func calculateCurrentVoyage(transportStatus TransportStatus, event HandlingEvent) voyage.Number {
	if transportStatus == OnboardCarrier && event.Activity.Type == Load {
		return event.Activity.VoyageNumber
	}
	return voyage.Number("")
}

func calculateReadyToClaim(event HandlingEvent, itinerary Itinerary) bool {
	if itinerary.IsEmpty() {
		return false
	}
	return event.Activity.SameValueAs(CustomsIn(itinerary.FinalArrivalLocation()))
}

func calculateCustomsClearancePoint(routingStatus RoutingStatus, itinerary Itinerary) location.UNLcode {
	if routingStatus != Routed {
		return location.UNLcode("")
	}
	return itinerary.FinalArrivalLocation()
}

// calculateNextExpectedActivity walks the itinerary legs against the last
// handling event. No expectation can be derived for a cargo that is not
// routed or has strayed from its plan.
func calculateNextExpectedActivity(d Delivery) HandlingActivity {
	if !d.IsOnTrack() {
		return HandlingActivity{}
	}

	if d.LastEvent.Activity.Type == NotHandled {
		return ReceiveIn(d.RouteSpecification.Origin)
	}

	switch d.LastEvent.Activity.Type {
	case Receive:
		if d.Itinerary.IsEmpty() {
			break
		}
		first := d.Itinerary.Legs[0]
		return LoadOnto(first.VoyageNumber).In(first.LoadLocation)
	case Load:
		for _, l := range d.Itinerary.Legs {
			if l.LoadLocation == d.LastEvent.Activity.Location && l.VoyageNumber == d.LastEvent.Activity.VoyageNumber {
				return UnloadOff(l.VoyageNumber).In(l.UnLoadLocation)
			}
		}
	case Unload:
		for n, l := range d.Itinerary.Legs {
			if l.UnLoadLocation != d.LastEvent.Activity.Location || l.VoyageNumber != d.LastEvent.Activity.VoyageNumber {
				continue
			}
			if n == len(d.Itinerary.Legs)-1 {
				return CustomsIn(l.UnLoadLocation)
			}
			next := d.Itinerary.Legs[n+1]
			return LoadOnto(next.VoyageNumber).In(next.LoadLocation)
		}
	case Customs:
		if d.LastEvent.Activity.Location == d.Itinerary.FinalArrivalLocation() {
			return ClaimIn(d.LastEvent.Activity.Location)
		}
	case Claim:
		// Journey complete.
	}

	return HandlingActivity{}
}

func calculateETA(d Delivery) time.Time {
	if !d.IsOnTrack() {
		return time.Time{}
	}
	return d.Itinerary.FinalArrivalTime()
}
