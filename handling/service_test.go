package handling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bes-slim/shipping/cargo"
	"github.com/bes-slim/shipping/handling"
	"github.com/bes-slim/shipping/inmem"
	"github.com/bes-slim/shipping/inspection"
	"github.com/bes-slim/shipping/location"
	"github.com/bes-slim/shipping/voyage"
)

type spyEventHandler struct {
	handled []cargo.HandlingEvent
}

func (h *spyEventHandler) CargoWasHandled(e cargo.HandlingEvent) {
	h.handled = append(h.handled, e)
}

type fixture struct {
	service handling.Service
	handler *spyEventHandler
	cargos  cargo.Repository
	events  cargo.HandlingEventRepository
}

func setup(t *testing.T) fixture {
	t.Helper()

	cargos := inmem.NewCargoRepository()
	events := inmem.NewHandlingEventRepository()

	rs, err := cargo.NewRouteSpecification(location.CNHKG, location.SESTO, time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, cargos.Store(cargo.New("HND123", rs)))

	factory := cargo.HandlingEventFactory{
		CargoRepository:    cargos,
		VoyageRepository:   inmem.NewVoyageRepository(),
		LocationRepository: inmem.NewLocationRepository(),
		Sequencer:          cargo.NewEventSequencer(),
	}

	handler := &spyEventHandler{}
	return fixture{
		service: handling.NewService(events, factory, handler),
		handler: handler,
		cargos:  cargos,
		events:  events,
	}
}

func TestRegisterHandlingEvent(t *testing.T) {
	f := setup(t)
	completed := time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC)

	err := f.service.RegisterHandlingEvent(completed, "HND123", "", location.CNHKG, cargo.Receive)
	require.NoError(t, err)

	history := f.events.QueryHandlingHistory("HND123")
	require.Len(t, history.HandlingEvents, 1)
	stored := history.HandlingEvents[0]
	assert.Equal(t, cargo.ReceiveIn(location.CNHKG), stored.Activity)
	assert.Equal(t, completed, stored.CompletionTime)
	assert.NotZero(t, stored.Sequence)
	assert.False(t, stored.RegistrationTime.IsZero())

	require.Len(t, f.handler.handled, 1)
	assert.Equal(t, stored, f.handler.handled[0])

	err = f.service.RegisterHandlingEvent(completed.Add(24*time.Hour), "HND123", voyage.Pacific1.Number, location.CNHKG, cargo.Load)
	require.NoError(t, err)
	assert.Len(t, f.events.QueryHandlingHistory("HND123").HandlingEvents, 2)
}

func TestRegisterHandlingEventValidation(t *testing.T) {
	f := setup(t)
	completed := time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		completed time.Time
		id        cargo.TrackingID
		voyage    voyage.Number
		loc       location.UNLcode
		eventType cargo.HandlingEventType
		wantErr   error
	}{
		{"zero completion time", time.Time{}, "HND123", "", location.CNHKG, cargo.Receive, handling.ErrInvalidArgument},
		{"missing tracking ID", completed, "", "", location.CNHKG, cargo.Receive, handling.ErrInvalidArgument},
		{"missing location", completed, "HND123", "", "", cargo.Receive, handling.ErrInvalidArgument},
		{"missing event type", completed, "HND123", "", location.CNHKG, cargo.NotHandled, handling.ErrInvalidArgument},
		{"unknown cargo", completed, "MISSING", "", location.CNHKG, cargo.Receive, cargo.ErrUnknown},
		{"unknown voyage", completed, "HND123", "BOGUS", location.CNHKG, cargo.Load, voyage.ErrUnknown},
		{"unknown location", completed, "HND123", "", "XXXXX", cargo.Receive, location.ErrUnknown},
		{"load without voyage", completed, "HND123", "", location.CNHKG, cargo.Load, cargo.ErrInvalidActivity},
		{"receipt with voyage", completed, "HND123", "PAC1", location.CNHKG, cargo.Receive, cargo.ErrInvalidActivity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := f.service.RegisterHandlingEvent(tc.completed, tc.id, tc.voyage, tc.loc, tc.eventType)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Empty(t, f.events.QueryHandlingHistory("HND123").HandlingEvents)
	assert.Empty(t, f.handler.handled)
}

type spyInspectionHandler struct {
	misdirected []cargo.TrackingID
	arrived     []cargo.TrackingID
}

func (h *spyInspectionHandler) CargoWasMisdirected(c *cargo.Cargo) {
	h.misdirected = append(h.misdirected, c.TrackingID)
}

func (h *spyInspectionHandler) CargoHasArrived(c *cargo.Cargo) {
	h.arrived = append(h.arrived, c.TrackingID)
}

// Registering events through the real event handler chain keeps the cargo's
// delivery snapshot current and raises inspection notifications.
func TestRegisterHandlingEventUpdatesDelivery(t *testing.T) {
	cargos := inmem.NewCargoRepository()
	events := inmem.NewHandlingEventRepository()

	rs, err := cargo.NewRouteSpecification(location.CNHKG, location.SESTO, time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	c := cargo.New("INS123", rs)
	leg1, err := cargo.DeriveLeg(voyage.Pacific1, location.CNHKG, location.USLGB)
	require.NoError(t, err)
	leg2, err := cargo.DeriveLeg(voyage.Continental1, location.USLGB, location.USNYC)
	require.NoError(t, err)
	leg3, err := cargo.DeriveLeg(voyage.Atlantic2, location.USNYC, location.SESTO)
	require.NoError(t, err)
	itinerary, err := cargo.NewItinerary(leg1, leg2, leg3)
	require.NoError(t, err)
	require.NoError(t, c.AssignToRoute(itinerary))
	require.NoError(t, cargos.Store(c))

	factory := cargo.HandlingEventFactory{
		CargoRepository:    cargos,
		VoyageRepository:   inmem.NewVoyageRepository(),
		LocationRepository: inmem.NewLocationRepository(),
		Sequencer:          cargo.NewEventSequencer(),
	}

	spy := &spyInspectionHandler{}
	service := handling.NewService(events, factory,
		handling.NewEventHandler(inspection.NewService(cargos, events, spy)))

	clock := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	register := func(v voyage.Number, l location.UNLcode, et cargo.HandlingEventType) {
		t.Helper()
		clock = clock.Add(24 * time.Hour)
		require.NoError(t, service.RegisterHandlingEvent(clock, "INS123", v, l, et))
	}

	register("", location.CNHKG, cargo.Receive)

	c, err = cargos.Find("INS123")
	require.NoError(t, err)
	assert.Equal(t, cargo.InPort, c.Delivery.TransportStatus)
	assert.Equal(t, location.CNHKG, c.Delivery.LastKnownLocation)
	assert.Empty(t, spy.misdirected)

	register(voyage.Pacific1.Number, location.CNHKG, cargo.Load)

	// Unloaded in Seattle instead of Long Beach.
	register(voyage.Pacific1.Number, location.USSEA, cargo.Unload)

	c, err = cargos.Find("INS123")
	require.NoError(t, err)
	assert.True(t, c.Delivery.IsMisdirected)
	assert.Equal(t, []cargo.TrackingID{"INS123"}, spy.misdirected)
	assert.Empty(t, spy.arrived)
}
