package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func TestSummarizePortfolio(t *testing.T) {
	s := SummarizePortfolio([]Property{
		{Type: "office", City: "Jakarta", TotalArea: 1000, OccupancyRate: 90, MarketValue: 100, Status: PropertyStatusActive},
		{Type: "warehouse", City: "Surabaya", TotalArea: 500, OccupancyRate: 75, MarketValue: 50, Status: PropertyStatusActive},
		{Type: "office", City: "Jakarta", TotalArea: 9999, OccupancyRate: 0, MarketValue: 999, Status: PropertyStatusDisposed},
	})

	assert.Equal(t, 2, s.TotalProperties)
	assert.Equal(t, 1500.0, s.TotalArea)
	assert.Equal(t, int64(150), s.TotalMarketValue)
	assert.Equal(t, 82.5, s.AverageOccupancyRate)
	assert.Equal(t, map[string]int{"office": 1, "warehouse": 1}, s.ByType)
}

func TestSummarizePortfolio_Empty(t *testing.T) {
	s := SummarizePortfolio(nil)
	assert.Zero(t, s.TotalProperties)
	assert.NotNil(t, s.ByCity)
}

func TestLeases(t *testing.T) {
	leases := []Lease{
		{ID: "L1", Type: LeaseTypeLessor, EndDate: "2024-08-01", MonthlyRent: 100, Status: LeaseStatusExpiring},
		{ID: "L2", Type: LeaseTypeLessee, EndDate: "2024-06-15", MonthlyRent: 40, Status: LeaseStatusExpiring},
		{ID: "L3", Type: LeaseTypeLessor, EndDate: "2026-01-01", MonthlyRent: 10, Status: LeaseStatusActive},
		{ID: "L4", Type: LeaseTypeLessor, EndDate: "2024-01-01", MonthlyRent: 500, Status: LeaseStatusExpired},
	}

	t.Run("summary", func(t *testing.T) {
		s := SummarizeLeases(leases, refNow)
		assert.Equal(t, 4, s.TotalLeases)
		assert.Equal(t, 3, s.ActiveLeases)
		assert.Equal(t, 2, s.ExpiringIn90Days)
		assert.Equal(t, int64(110), s.MonthlyRentIncome)
		assert.Equal(t, int64(40), s.MonthlyRentCost)
	})

	t.Run("expiring sorted soonest first", func(t *testing.T) {
		got := ExpiringWithin(leases, 90, refNow)
		require.Len(t, got, 2)
		assert.Equal(t, "L2", got[0].ID)
		assert.Equal(t, "L1", got[1].ID)
	})

	t.Run("expiring never nil", func(t *testing.T) {
		assert.NotNil(t, ExpiringWithin(nil, 30, refNow))
	})

	t.Run("unparseable end date", func(t *testing.T) {
		_, ok := Lease{EndDate: "soon"}.DaysUntilEnd(refNow)
		assert.False(t, ok)
	})
}

func TestSummarizeOccupancy(t *testing.T) {
	s := SummarizeOccupancy("BLD-001",
		[]Floor{{ID: "F1"}, {ID: "F2"}},
		[]Space{
			{Type: "desk", Capacity: 10, Occupied: 7},
			{Type: "meeting", Capacity: 6, Occupied: 1},
		})

	assert.Equal(t, 2, s.Floors)
	assert.Equal(t, 16, s.TotalCapacity)
	assert.Equal(t, 50.0, s.Utilization)
}

func TestSummarizeWorkOrders(t *testing.T) {
	s := SummarizeWorkOrders([]WorkOrder{
		{Status: WorkOrderStatusOpen, Priority: PriorityCritical},
		{Status: WorkOrderStatusInProgress, Priority: PriorityHigh},
		{Status: WorkOrderStatusCompleted, Priority: PriorityHigh},
		{Status: WorkOrderStatusCompleted, Priority: PriorityLow},
	})

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Open)
	assert.Equal(t, 50.0, s.CompletionRate)
	assert.Equal(t, map[string]int{PriorityCritical: 1, PriorityHigh: 1}, s.ByPriority)
}

func TestSummarizeEmissions(t *testing.T) {
	s := SummarizeEmissions("BLD-001", []EnergyData{
		{Month: "2024-04", ElectricityKWh: 100, EmissionsKgCO2e: 2000},
		{Month: "2024-05", ElectricityKWh: 120, EmissionsKgCO2e: 1800},
	})

	assert.Equal(t, 2, s.Months)
	assert.Equal(t, 220.0, s.TotalElectricityKWh)
	assert.Equal(t, 3.8, s.TotalEmissionsTCO2e)
	assert.Equal(t, -10.0, s.ChangePercent)
}

func TestSummarizeFeedback(t *testing.T) {
	s := SummarizeFeedback([]Feedback{
		{Category: "cleanliness", Rating: 5},
		{Category: "cleanliness", Rating: 4},
		{Category: "hvac", Rating: 2},
		{Category: "hvac", Rating: 9},
	})

	assert.Equal(t, 3, s.Responses)
	assert.Equal(t, 3.7, s.AverageRating)
	assert.Equal(t, 66.7, s.PromoterPercent)
	assert.Equal(t, 4.5, s.ByCategory["cleanliness"])
	assert.Equal(t, 2.0, s.ByCategory["hvac"])
}

func TestProgressOf(t *testing.T) {
	p := ProgressOf(Certification{
		ID: "CERT-1", Scheme: "GREENSHIP", Score: 60, MaxScore: 101,
		Categories: []CertificationCategory{
			{Code: "EEC", Achieved: 20, Available: 26},
			{Code: "WAC", Achieved: 5, Available: 21},
		},
	})

	assert.Equal(t, 59.4, p.Percent)
	assert.Equal(t, []string{"WAC"}, p.Gap)
}
