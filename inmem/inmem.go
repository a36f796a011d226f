// Package inmem provides in-memory implementations of the repositories. A
// RWMutex per store keeps mutating operations on an aggregate serialized, as
// the delivery derivation requires.
package inmem

import (
	"sync"

	"github.com/bes-slim/shipping/cargo"
	"github.com/bes-slim/shipping/location"
	"github.com/bes-slim/shipping/voyage"
)

type cargoRepository struct {
	mtx    sync.RWMutex
	cargos map[cargo.TrackingID]*cargo.Cargo
}

func (r *cargoRepository) Store(c *cargo.Cargo) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.cargos[c.TrackingID] = c
	return nil
}

func (r *cargoRepository) Find(id cargo.TrackingID) (*cargo.Cargo, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if val, ok := r.cargos[id]; ok {
		return val, nil
	}
	return nil, cargo.ErrUnknown
}

func (r *cargoRepository) FindAll() []*cargo.Cargo {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	c := make([]*cargo.Cargo, 0, len(r.cargos))
	for _, val := range r.cargos {
		c = append(c, val)
	}
	return c
}

// NewCargoRepository returns a new instance of an in-memory cargo repository.
func NewCargoRepository() cargo.Repository {
	return &cargoRepository{
		cargos: make(map[cargo.TrackingID]*cargo.Cargo),
	}
}

type locationRepository struct {
	locations map[location.UNLcode]*location.Location
}

func (r *locationRepository) Find(c location.UNLcode) (*location.Location, error) {
	if l, ok := r.locations[c]; ok {
		return l, nil
	}
	return nil, location.ErrUnknown
}

func (r *locationRepository) FindAll() []*location.Location {
	l := make([]*location.Location, 0, len(r.locations))
	for _, val := range r.locations {
		l = append(l, val)
	}
	return l
}

// NewLocationRepository returns a new instance of an in-memory location
// repository preloaded with the sample locations.
func NewLocationRepository() location.Repository {
	r := &locationRepository{
		locations: make(map[location.UNLcode]*location.Location),
	}

	for _, l := range []*location.Location{
		location.Stockholm,
		location.Melbourne,
		location.Hongkong,
		location.NewYork,
		location.Chicago,
		location.LongBeach,
		location.Seattle,
		location.Tokyo,
		location.Hamburg,
		location.Rotterdam,
		location.Helsinki,
	} {
		r.locations[l.UNLcode] = l
	}

	return r
}

type voyageRepository struct {
	voyages map[voyage.Number]*voyage.Voyage
}

func (r *voyageRepository) Find(n voyage.Number) (*voyage.Voyage, error) {
	if v, ok := r.voyages[n]; ok {
		return v, nil
	}
	return nil, voyage.ErrUnknown
}

// NewVoyageRepository returns a new instance of an in-memory voyage
// repository preloaded with the sample voyages.
func NewVoyageRepository() voyage.Repository {
	r := &voyageRepository{
		voyages: make(map[voyage.Number]*voyage.Voyage),
	}

	for _, v := range SampleVoyages() {
		r.voyages[v.Number] = v
	}

	return r
}

// SampleVoyages lists the demo voyage network.
func SampleVoyages() []*voyage.Voyage {
	return []*voyage.Voyage{
		voyage.Pacific1,
		voyage.Pacific2,
		voyage.Continental1,
		voyage.Continental2,
		voyage.Continental3,
		voyage.Atlantic1,
		voyage.Atlantic2,
	}
}

type handlingEventRepository struct {
	mtx    sync.RWMutex
	events map[cargo.TrackingID][]cargo.HandlingEvent
}

func (r *handlingEventRepository) Store(e cargo.HandlingEvent) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.events[e.TrackingID] = append(r.events[e.TrackingID], e)
}

func (r *handlingEventRepository) QueryHandlingHistory(id cargo.TrackingID) cargo.HandlingHistory {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	events := make([]cargo.HandlingEvent, len(r.events[id]))
	copy(events, r.events[id])
	return cargo.HandlingHistory{HandlingEvents: events}
}

// NewHandlingEventRepository returns a new instance of an in-memory handling
// event repository.
func NewHandlingEventRepository() cargo.HandlingEventRepository {
	return &handlingEventRepository{
		events: make(map[cargo.TrackingID][]cargo.HandlingEvent),
	}
}
