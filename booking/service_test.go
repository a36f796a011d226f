package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bes-slim/shipping/booking"
	"github.com/bes-slim/shipping/cargo"
	"github.com/bes-slim/shipping/inmem"
	"github.com/bes-slim/shipping/location"
)

type testFixture struct {
	service booking.Service
	cargos  cargo.Repository
	events  cargo.HandlingEventRepository
}

func setup() testFixture {
	cargos := inmem.NewCargoRepository()
	locations := inmem.NewLocationRepository()
	events := inmem.NewHandlingEventRepository()
	rs := inmem.NewRoutingService(inmem.SampleVoyages())

	return testFixture{
		service: booking.NewService(cargos, locations, events, rs),
		cargos:  cargos,
		events:  events,
	}
}

func deadline() time.Time {
	return time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC)
}

func TestBookNewCargo(t *testing.T) {
	f := setup()

	t.Run("books an unrouted cargo", func(t *testing.T) {
		id, err := f.service.BookNewCargo(location.CNHKG, location.SESTO, deadline())
		require.NoError(t, err)
		require.NotEmpty(t, id)

		c, err := f.service.LoadCargo(id)
		require.NoError(t, err)
		assert.Equal(t, string(id), c.TrackingID)
		assert.Equal(t, string(location.CNHKG), c.Origin)
		assert.Equal(t, string(location.SESTO), c.Destination)
		assert.False(t, c.Routed)
		assert.False(t, c.Misrouted)
		assert.Empty(t, c.Legs)
	})

	t.Run("rejects missing arguments", func(t *testing.T) {
		_, err := f.service.BookNewCargo("", location.SESTO, deadline())
		assert.ErrorIs(t, err, booking.ErrInvalidArgument)

		_, err = f.service.BookNewCargo(location.CNHKG, "", deadline())
		assert.ErrorIs(t, err, booking.ErrInvalidArgument)

		_, err = f.service.BookNewCargo(location.CNHKG, location.SESTO, time.Time{})
		assert.ErrorIs(t, err, booking.ErrInvalidArgument)
	})

	t.Run("rejects a route going nowhere", func(t *testing.T) {
		_, err := f.service.BookNewCargo(location.CNHKG, location.CNHKG, deadline())
		assert.ErrorIs(t, err, cargo.ErrInvalidRouteSpecification)
	})
}

func TestRequestPossibleRoutesForCargo(t *testing.T) {
	f := setup()

	id, err := f.service.BookNewCargo(location.CNHKG, location.SESTO, deadline())
	require.NoError(t, err)

	routes := f.service.RequestPossibleRoutesForCargo(id)
	require.NotEmpty(t, routes)

	for _, itinerary := range routes {
		assert.Equal(t, location.CNHKG, itinerary.InitialDepartureLocation())
		assert.Equal(t, location.SESTO, itinerary.FinalArrivalLocation())
	}

	t.Run("no routes for an unknown cargo", func(t *testing.T) {
		assert.Empty(t, f.service.RequestPossibleRoutesForCargo("MISSING"))
	})

	t.Run("no routes without a tracking ID", func(t *testing.T) {
		assert.Empty(t, f.service.RequestPossibleRoutesForCargo(""))
	})
}

func TestAssignCargoToRoute(t *testing.T) {
	f := setup()

	id, err := f.service.BookNewCargo(location.CNHKG, location.SESTO, deadline())
	require.NoError(t, err)

	routes := f.service.RequestPossibleRoutesForCargo(id)
	require.NotEmpty(t, routes)

	require.NoError(t, f.service.AssignCargoToRoute(id, routes[0]))

	c, err := f.service.LoadCargo(id)
	require.NoError(t, err)
	assert.True(t, c.Routed)
	assert.False(t, c.Misrouted)
	assert.False(t, c.ETA.IsZero())
	assert.NotEmpty(t, c.Legs)

	t.Run("rejects an empty itinerary", func(t *testing.T) {
		err := f.service.AssignCargoToRoute(id, cargo.Itinerary{})
		assert.ErrorIs(t, err, booking.ErrInvalidArgument)
	})

	t.Run("rejects an unknown cargo", func(t *testing.T) {
		err := f.service.AssignCargoToRoute("MISSING", routes[0])
		assert.ErrorIs(t, err, cargo.ErrUnknown)
	})

	t.Run("rejects an itinerary missing the destination", func(t *testing.T) {
		stray := cargo.Itinerary{Legs: []cargo.Leg{{
			VoyageNumber:   "PAC1",
			LoadLocation:   location.CNHKG,
			UnLoadLocation: location.USSEA,
		}}}
		err := f.service.AssignCargoToRoute(id, stray)
		assert.ErrorIs(t, err, cargo.ErrUnsatisfiedRoute)
	})
}

func TestChangeDestination(t *testing.T) {
	f := setup()

	id, err := f.service.BookNewCargo(location.CNHKG, location.SESTO, deadline())
	require.NoError(t, err)

	routes := f.service.RequestPossibleRoutesForCargo(id)
	require.NotEmpty(t, routes)
	require.NoError(t, f.service.AssignCargoToRoute(id, routes[0]))

	require.NoError(t, f.service.ChangeDestination(id, location.NLRTM))

	c, err := f.service.LoadCargo(id)
	require.NoError(t, err)
	assert.Equal(t, string(location.NLRTM), c.Destination)
	assert.True(t, c.Misrouted)

	// A fresh set of routes targets the new destination.
	rerouted := f.service.RequestPossibleRoutesForCargo(id)
	require.NotEmpty(t, rerouted)
	for _, itinerary := range rerouted {
		assert.Equal(t, location.NLRTM, itinerary.FinalArrivalLocation())
	}

	t.Run("rejects the cargo's own origin", func(t *testing.T) {
		err := f.service.ChangeDestination(id, location.CNHKG)
		assert.ErrorIs(t, err, cargo.ErrInvalidRouteSpecification)
	})

	t.Run("rejects missing arguments", func(t *testing.T) {
		assert.ErrorIs(t, f.service.ChangeDestination("", location.NLRTM), booking.ErrInvalidArgument)
		assert.ErrorIs(t, f.service.ChangeDestination(id, ""), booking.ErrInvalidArgument)
	})

	t.Run("rejects an unknown cargo", func(t *testing.T) {
		assert.ErrorIs(t, f.service.ChangeDestination("MISSING", location.NLRTM), cargo.ErrUnknown)
	})
}

func TestRequestRoutesForHandledCargo(t *testing.T) {
	f := setup()

	id, err := f.service.BookNewCargo(location.CNHKG, location.SESTO, deadline())
	require.NoError(t, err)

	routes := f.service.RequestPossibleRoutesForCargo(id)
	require.NotEmpty(t, routes)
	require.NoError(t, f.service.AssignCargoToRoute(id, routes[0]))

	// The cargo strays off its plan and ends up in Seattle.
	c, err := f.cargos.Find(id)
	require.NoError(t, err)
	history := cargo.HandlingHistory{HandlingEvents: []cargo.HandlingEvent{
		{
			TrackingID:     id,
			Activity:       cargo.UnloadOff("PAC1").In(location.USSEA),
			CompletionTime: time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC),
			Sequence:       1,
		},
	}}
	c.DeriveDeliveryProgress(history)
	require.NoError(t, f.cargos.Store(c))
	require.True(t, c.Delivery.IsMisdirected)

	// Replacement routes start from where the cargo actually is.
	rerouted := f.service.RequestPossibleRoutesForCargo(id)
	require.NotEmpty(t, rerouted)
	for _, itinerary := range rerouted {
		assert.Equal(t, location.USSEA, itinerary.InitialDepartureLocation())
		assert.Equal(t, location.SESTO, itinerary.FinalArrivalLocation())
	}

	// Assigning a replacement splices it onto the realized part of the
	// journey and puts the cargo back on track.
	require.NoError(t, f.service.AssignCargoToRoute(id, rerouted[0]))

	view, err := f.service.LoadCargo(id)
	require.NoError(t, err)
	assert.True(t, view.Routed)
	assert.False(t, view.Misrouted)
	assert.False(t, view.Misdirected)
	assert.Equal(t, string(location.CNHKG), view.Origin)
}

func TestCargosAndLocations(t *testing.T) {
	f := setup()

	assert.Empty(t, f.service.Cargos())

	_, err := f.service.BookNewCargo(location.CNHKG, location.SESTO, deadline())
	require.NoError(t, err)
	_, err = f.service.BookNewCargo(location.AUMEL, location.DEHAM, deadline())
	require.NoError(t, err)

	assert.Len(t, f.service.Cargos(), 2)

	locations := f.service.Locations()
	require.NotEmpty(t, locations)
	seen := make(map[string]bool)
	for _, l := range locations {
		seen[l.UNLcode] = true
		assert.NotEmpty(t, l.Name)
	}
	assert.True(t, seen[string(location.CNHKG)])
	assert.True(t, seen[string(location.SESTO)])
}
