package inspection_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bes-slim/shipping/cargo"
	"github.com/bes-slim/shipping/inmem"
	"github.com/bes-slim/shipping/inspection"
	"github.com/bes-slim/shipping/location"
	"github.com/bes-slim/shipping/voyage"
)

type spyHandler struct {
	misdirected int
	arrived     int
}

func (h *spyHandler) CargoWasMisdirected(*cargo.Cargo) { h.misdirected++ }
func (h *spyHandler) CargoHasArrived(*cargo.Cargo)     { h.arrived++ }

func routedCargo(t *testing.T, id cargo.TrackingID) *cargo.Cargo {
	t.Helper()

	rs, err := cargo.NewRouteSpecification(location.CNHKG, location.SESTO, time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	leg1, err := cargo.DeriveLeg(voyage.Pacific1, location.CNHKG, location.USLGB)
	require.NoError(t, err)
	leg2, err := cargo.DeriveLeg(voyage.Continental1, location.USLGB, location.USNYC)
	require.NoError(t, err)
	leg3, err := cargo.DeriveLeg(voyage.Atlantic2, location.USNYC, location.SESTO)
	require.NoError(t, err)
	itinerary, err := cargo.NewItinerary(leg1, leg2, leg3)
	require.NoError(t, err)

	c := cargo.New(id, rs)
	require.NoError(t, c.AssignToRoute(itinerary))
	return c
}

func TestInspectCargo(t *testing.T) {
	t.Run("re-derives the delivery snapshot", func(t *testing.T) {
		cargos := inmem.NewCargoRepository()
		events := inmem.NewHandlingEventRepository()
		spy := &spyHandler{}
		s := inspection.NewService(cargos, events, spy)

		require.NoError(t, cargos.Store(routedCargo(t, "INS001")))
		events.Store(cargo.HandlingEvent{
			TrackingID:     "INS001",
			Activity:       cargo.ReceiveIn(location.CNHKG),
			CompletionTime: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
			Sequence:       1,
		})

		s.InspectCargo("INS001")

		c, err := cargos.Find("INS001")
		require.NoError(t, err)
		assert.Equal(t, cargo.InPort, c.Delivery.TransportStatus)
		assert.Equal(t, location.CNHKG, c.Delivery.LastKnownLocation)
		assert.Zero(t, spy.misdirected)
		assert.Zero(t, spy.arrived)
	})

	t.Run("notifies on misdirection", func(t *testing.T) {
		cargos := inmem.NewCargoRepository()
		events := inmem.NewHandlingEventRepository()
		spy := &spyHandler{}
		s := inspection.NewService(cargos, events, spy)

		require.NoError(t, cargos.Store(routedCargo(t, "INS002")))
		events.Store(cargo.HandlingEvent{
			TrackingID:     "INS002",
			Activity:       cargo.UnloadOff(voyage.Pacific1.Number).In(location.USSEA),
			CompletionTime: time.Date(2024, time.March, 14, 12, 0, 0, 0, time.UTC),
			Sequence:       1,
		})

		s.InspectCargo("INS002")

		assert.Equal(t, 1, spy.misdirected)
		assert.Zero(t, spy.arrived)
	})

	t.Run("notifies on arrival", func(t *testing.T) {
		cargos := inmem.NewCargoRepository()
		events := inmem.NewHandlingEventRepository()
		spy := &spyHandler{}
		s := inspection.NewService(cargos, events, spy)

		require.NoError(t, cargos.Store(routedCargo(t, "INS003")))
		events.Store(cargo.HandlingEvent{
			TrackingID:     "INS003",
			Activity:       cargo.CustomsIn(location.SESTO),
			CompletionTime: time.Date(2024, time.March, 29, 12, 0, 0, 0, time.UTC),
			Sequence:       1,
		})

		s.InspectCargo("INS003")

		assert.Equal(t, 1, spy.arrived)
		assert.Zero(t, spy.misdirected)
	})

	t.Run("ignores an unknown cargo", func(t *testing.T) {
		cargos := inmem.NewCargoRepository()
		events := inmem.NewHandlingEventRepository()
		spy := &spyHandler{}
		s := inspection.NewService(cargos, events, spy)

		s.InspectCargo("MISSING")

		assert.Zero(t, spy.misdirected)
		assert.Zero(t, spy.arrived)
	})
}
