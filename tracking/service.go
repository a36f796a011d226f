// Package tracking provides the use-case of tracking a cargo. Used by views
// facing the end customer.
package tracking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bes-slim/shipping/cargo"
)

// ErrInvalidArgument is returned when one or more arguments are invalid.
var ErrInvalidArgument = errors.New("invalid argument")

// Service is the interface that provides the basic Track method.
type Service interface {
	// Track returns a cargo matching a tracking ID.
	Track(id string) (Cargo, error)
}

type service struct {
	cargos         cargo.Repository
	handlingEvents cargo.HandlingEventRepository
}

func (s *service) Track(id string) (Cargo, error) {
	if id == "" {
		return Cargo{}, ErrInvalidArgument
	}
	c, err := s.cargos.Find(cargo.TrackingID(id))
	if err != nil {
		return Cargo{}, err
	}
	return assemble(c, s.handlingEvents), nil
}

// NewService returns a new instance of the default Service.
func NewService(cargos cargo.Repository, events cargo.HandlingEventRepository) Service {
	return &service{
		cargos:         cargos,
		handlingEvents: events,
	}
}

// Cargo is a read model for tracking views.
type Cargo struct {
	TrackingID           string    `json:"tracking_id"`
	StatusText           string    `json:"status_text"`
	Origin               string    `json:"origin"`
	Destination          string    `json:"destination"`
	ETA                  time.Time `json:"eta,omitempty"`
	NextExpectedActivity string    `json:"next_expected_activity"`
	Misdirected          bool      `json:"misdirected"`
	ReadyToClaim         bool      `json:"ready_to_claim"`
	ArrivalDeadline      time.Time `json:"arrival_deadline"`
	Events               []Event   `json:"events"`
}

// Event is a read model of a handling event in a tracking view.
type Event struct {
	Description string `json:"description"`
	Expected    bool   `json:"expected"`
}

func assemble(c *cargo.Cargo, events cargo.HandlingEventRepository) Cargo {
	return Cargo{
		TrackingID:           string(c.TrackingID),
		Origin:               string(c.Origin),
		Destination:          string(c.RouteSpecification.Destination),
		ETA:                  c.Delivery.ETA,
		NextExpectedActivity: assembleNextExpectedActivity(c.Delivery.NextExpectedActivity),
		Misdirected:          c.Delivery.IsMisdirected,
		ReadyToClaim:         c.Delivery.IsReadyToClaim,
		ArrivalDeadline:      c.RouteSpecification.Deadline,
		StatusText:           assembleStatusText(c),
		Events:               assembleEvents(c, events),
	}
}

func assembleStatusText(c *cargo.Cargo) string {
	d := c.Delivery
	switch d.TransportStatus {
	case cargo.NotReceived:
		return "Not received"
	case cargo.InPort:
		return fmt.Sprintf("In port %s", d.LastKnownLocation)
	case cargo.OnboardCarrier:
		return fmt.Sprintf("Onboard voyage %s", d.CurrentVoyage)
	case cargo.Claimed:
		return "Claimed"
	default:
		return "Unknown"
	}
}

func assembleNextExpectedActivity(a cargo.HandlingActivity) string {
	if a.IsEmpty() {
		return ""
	}

	prefix := "Next expected activity is to"

	switch a.Type {
	case cargo.Load:
		return fmt.Sprintf("%s load cargo onto voyage %s in %s", prefix, a.VoyageNumber, a.Location)
	case cargo.Unload:
		return fmt.Sprintf("%s unload cargo off of voyage %s in %s", prefix, a.VoyageNumber, a.Location)
	case cargo.Receive, cargo.Customs, cargo.Claim:
		return fmt.Sprintf("%s %s cargo in %s", prefix, strings.ToLower(a.Type.String()), a.Location)
	}

	return ""
}

func assembleEvents(c *cargo.Cargo, r cargo.HandlingEventRepository) []Event {
	h := r.QueryHandlingHistory(c.TrackingID)

	var events []Event
	for _, e := range h.InOrder() {
		var description string

		switch e.Activity.Type {
		case cargo.NotHandled:
			description = "Cargo has not yet been handled"
		case cargo.Receive:
			description = fmt.Sprintf("Received in %s, at %s", e.Activity.Location, e.CompletionTime.Format(time.RFC3339))
		case cargo.Load:
			description = fmt.Sprintf("Loaded onto voyage %s in %s, at %s", e.Activity.VoyageNumber, e.Activity.Location, e.CompletionTime.Format(time.RFC3339))
		case cargo.Unload:
			description = fmt.Sprintf("Unloaded off voyage %s in %s, at %s", e.Activity.VoyageNumber, e.Activity.Location, e.CompletionTime.Format(time.RFC3339))
		case cargo.Claim:
			description = fmt.Sprintf("Claimed in %s, at %s", e.Activity.Location, e.CompletionTime.Format(time.RFC3339))
		case cargo.Customs:
			description = fmt.Sprintf("Cleared customs in %s, at %s", e.Activity.Location, e.CompletionTime.Format(time.RFC3339))
		default:
			description = "[Unknown status]"
		}

		events = append(events, Event{
			Description: description,
			Expected:    c.Itinerary.IsExpected(e),
		})
	}

	return events
}
