package cargo

import (
	"errors"
	"sort"
	"sync/atomic"
	"time"

	"github.com/bes-slim/shipping/location"
	"github.com/bes-slim/shipping/voyage"
)

// HandlingEventType describes the type of a handling event
type HandlingEventType int

// valid handling event types
const (
	NotHandled HandlingEventType = iota
	Load
	Unload
	Receive
	Claim
	Customs
)

func (t HandlingEventType) String() string {
	switch t {
	case NotHandled:
		return "Not Handled"
	case Load:
		return "Load"
	case Unload:
		return "Unload"
	case Receive:
		return "Receive"
	case Claim:
		return "Claim"
	case Customs:
		return "Customs"
	}
	return ""
}

// ErrInvalidActivity is returned when an activity carries a voyage it must
// not, or lacks the voyage it requires. Only loads and unloads happen on a
// voyage.
var ErrInvalidActivity = errors.New("invalid handling activity")

// HandlingActivity represents how and where a cargo can be handled, and can
// be used to express predictions about what is expected to happen to a cargo
// in the future.
type HandlingActivity struct {
	Type         HandlingEventType
	Location     location.UNLcode
	VoyageNumber voyage.Number
}

// ReceiveIn creates a receipt activity at the given location.
func ReceiveIn(l location.UNLcode) HandlingActivity {
	return HandlingActivity{Type: Receive, Location: l}
}

// LoadOnto creates a load activity onto the given voyage. Complete it with In.
func LoadOnto(v voyage.Number) HandlingActivity {
	return HandlingActivity{Type: Load, VoyageNumber: v}
}

// UnloadOff creates an unload activity off the given voyage. Complete it with In.
func UnloadOff(v voyage.Number) HandlingActivity {
	return HandlingActivity{Type: Unload, VoyageNumber: v}
}

// CustomsIn creates a customs clearance activity at the given location.
func CustomsIn(l location.UNLcode) HandlingActivity {
	return HandlingActivity{Type: Customs, Location: l}
}

// ClaimIn creates a claim activity at the given location.
func ClaimIn(l location.UNLcode) HandlingActivity {
	return HandlingActivity{Type: Claim, Location: l}
}

// In places the activity at the given location.
func (a HandlingActivity) In(l location.UNLcode) HandlingActivity {
	a.Location = l
	return a
}

// IsEmpty reports whether no activity is expressed.
func (a HandlingActivity) IsEmpty() bool {
	return a == HandlingActivity{}
}

// SameValueAs compares two activities field by field.
func (a HandlingActivity) SameValueAs(other HandlingActivity) bool {
	return a == other
}

// Validate rejects activities whose voyage is missing when required or
// present when disallowed.
func (a HandlingActivity) Validate() error {
	switch a.Type {
	case Load, Unload:
		if a.VoyageNumber == "" {
			return ErrInvalidActivity
		}
	case Receive, Claim, Customs:
		if a.VoyageNumber != "" {
			return ErrInvalidActivity
		}
	default:
		return ErrInvalidActivity
	}
	if a.Location == "" {
		return ErrInvalidActivity
	}
	return nil
}

// HandlingEvent is used to register the event when, for instance, a cargo is
// unloaded from a carrier at a some location at a given time. Events are
// immutable facts: the completion time is when the event happened in the
// world, the registration time when it was recorded, and the sequence number
// breaks ties between events completed at the same instant.
type HandlingEvent struct {
	TrackingID       TrackingID
	Activity         HandlingActivity
	CompletionTime   time.Time
	RegistrationTime time.Time
	Sequence         int64
}

// Before orders events by completion time, falling back to the sequence
// number for events completed at the same instant.
func (e HandlingEvent) Before(other HandlingEvent) bool {
	if e.CompletionTime.Equal(other.CompletionTime) {
		return e.Sequence < other.Sequence
	}
	return e.CompletionTime.Before(other.CompletionTime)
}

// HandlingHistory is the handling history of a cargo
type HandlingHistory struct {
	HandlingEvents []HandlingEvent
}

// InOrder returns the events ordered by (completion time, sequence number),
// the order in which they occurred rather than the order they were received.
func (h HandlingHistory) InOrder() []HandlingEvent {
	events := make([]HandlingEvent, len(h.HandlingEvents))
	copy(events, h.HandlingEvents)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Before(events[j])
	})
	return events
}

// MostRecentlyCompletedEvent returns the most recently completed handling event
func (h HandlingHistory) MostRecentlyCompletedEvent() (HandlingEvent, error) {
	if len(h.HandlingEvents) == 0 {
		return HandlingEvent{}, errors.New("delivery history is empty")
	}
	events := h.InOrder()
	return events[len(events)-1], nil
}

// HandlingEventRepository provides access to the handling event store
type HandlingEventRepository interface {
	Store(e HandlingEvent)
	QueryHandlingHistory(TrackingID) HandlingHistory
}

// EventSequencer issues the sequence numbers carried by handling events. An
// implementation must hand out each number exactly once, never zero, across
// all goroutines creating events.
type EventSequencer interface {
	Next() int64
}

type eventSequencer struct {
	n int64
}

// NewEventSequencer returns a process-wide atomic event sequencer.
func NewEventSequencer() EventSequencer {
	return &eventSequencer{}
}

func (s *eventSequencer) Next() int64 {
	return atomic.AddInt64(&s.n, 1)
}

// HandlingEventFactory creates handling events
type HandlingEventFactory struct {
	CargoRepository    Repository
	VoyageRepository   voyage.Repository
	LocationRepository location.Repository
	Sequencer          EventSequencer
}

// CreateHandlingEvent creates a validated handling event
func (f *HandlingEventFactory) CreateHandlingEvent(registered time.Time, completed time.Time, id TrackingID, voyageNumber voyage.Number, unlCode location.UNLcode, eventType HandlingEventType) (HandlingEvent, error) {
	if _, err := f.CargoRepository.Find(id); err != nil {
		return HandlingEvent{}, err
	}

	if len(voyageNumber) > 0 {
		if _, err := f.VoyageRepository.Find(voyageNumber); err != nil {
			return HandlingEvent{}, err
		}
	}

	if _, err := f.LocationRepository.Find(unlCode); err != nil {
		return HandlingEvent{}, err
	}

	activity := HandlingActivity{
		Type:         eventType,
		Location:     unlCode,
		VoyageNumber: voyageNumber,
	}
	if err := activity.Validate(); err != nil {
		return HandlingEvent{}, err
	}

	return HandlingEvent{
		TrackingID:       id,
		Activity:         activity,
		CompletionTime:   completed,
		RegistrationTime: registered,
		Sequence:         f.Sequencer.Next(),
	}, nil
}
