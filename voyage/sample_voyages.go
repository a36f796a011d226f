package voyage

import (
	"time"

	"github.com/bes-slim/shipping/location"
)

// Sample voyages for the demo network between the sample locations.
var (
	Pacific1 = New("PAC1", Schedule{[]CarrierMovement{
		{DepartureLocation: location.CNHKG, ArrivalLocation: location.JNTKO, DepartureTime: ts(2024, 3, 2), ArrivalTime: ts(2024, 3, 5)},
		{DepartureLocation: location.JNTKO, ArrivalLocation: location.USLGB, DepartureTime: ts(2024, 3, 6), ArrivalTime: ts(2024, 3, 12)},
		{DepartureLocation: location.USLGB, ArrivalLocation: location.USSEA, DepartureTime: ts(2024, 3, 13), ArrivalTime: ts(2024, 3, 14)},
	}})

	Pacific2 = New("PAC2", Schedule{[]CarrierMovement{
		{DepartureLocation: location.JNTKO, ArrivalLocation: location.USLGB, DepartureTime: ts(2024, 3, 7), ArrivalTime: ts(2024, 3, 13)},
		{DepartureLocation: location.USLGB, ArrivalLocation: location.USSEA, DepartureTime: ts(2024, 3, 14), ArrivalTime: ts(2024, 3, 15)},
	}})

	Continental1 = New("CNT1", Schedule{[]CarrierMovement{
		{DepartureLocation: location.USLGB, ArrivalLocation: location.USCHI, DepartureTime: ts(2024, 3, 13), ArrivalTime: ts(2024, 3, 15)},
		{DepartureLocation: location.USCHI, ArrivalLocation: location.USNYC, DepartureTime: ts(2024, 3, 16), ArrivalTime: ts(2024, 3, 18)},
	}})

	Continental2 = New("CNT2", Schedule{[]CarrierMovement{
		{DepartureLocation: location.USLGB, ArrivalLocation: location.USNYC, DepartureTime: ts(2024, 3, 15), ArrivalTime: ts(2024, 3, 19)},
	}})

	Continental3 = New("CNT3", Schedule{[]CarrierMovement{
		{DepartureLocation: location.USSEA, ArrivalLocation: location.USCHI, DepartureTime: ts(2024, 3, 16), ArrivalTime: ts(2024, 3, 18)},
		{DepartureLocation: location.USCHI, ArrivalLocation: location.USNYC, DepartureTime: ts(2024, 3, 19), ArrivalTime: ts(2024, 3, 20)},
	}})

	Atlantic1 = New("ATL1", Schedule{[]CarrierMovement{
		{DepartureLocation: location.USNYC, ArrivalLocation: location.NLRTM, DepartureTime: ts(2024, 3, 21), ArrivalTime: ts(2024, 3, 27)},
		{DepartureLocation: location.NLRTM, ArrivalLocation: location.DEHAM, DepartureTime: ts(2024, 3, 28), ArrivalTime: ts(2024, 3, 29)},
	}})

	Atlantic2 = New("ATL2", Schedule{[]CarrierMovement{
		{DepartureLocation: location.USNYC, ArrivalLocation: location.SESTO, DepartureTime: ts(2024, 3, 22), ArrivalTime: ts(2024, 3, 28)},
		{DepartureLocation: location.SESTO, ArrivalLocation: location.FIHEL, DepartureTime: ts(2024, 3, 29), ArrivalTime: ts(2024, 3, 30)},
	}})
)

func ts(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}
