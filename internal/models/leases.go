// internal/models/leases.go
package models

import "time"

// Lease is a lease agreement on a property, either as lessor or lessee.
type Lease struct {
	ID          string `json:"id"`
	PropertyID  string `json:"propertyId"`
	Tenant      string `json:"tenant"`
	Type        string `json:"type"`
	StartDate   string `json:"startDate"` // YYYY-MM-DD
	EndDate     string `json:"endDate"`   // YYYY-MM-DD
	MonthlyRent int64  `json:"monthlyRent"` // IDR
	Status      string `json:"status"`
}

const (
	LeaseTypeLessor = "lessor"
	LeaseTypeLessee = "lessee"

	LeaseStatusActive   = "active"
	LeaseStatusExpiring = "expiring"
	LeaseStatusExpired  = "expired"

	DateLayout = "2006-01-02"
)

// DaysUntilEnd returns the whole days from now until EndDate, negative once
// expired. ok is false when EndDate does not parse.
func (l Lease) DaysUntilEnd(now time.Time) (days int, ok bool) {
	end, err := time.Parse(DateLayout, l.EndDate)
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(today).Hours() / 24), true
}

// LeaseSummary aggregates the lease list.
type LeaseSummary struct {
	TotalLeases       int            `json:"totalLeases"`
	ActiveLeases      int            `json:"activeLeases"`
	ExpiringIn90Days  int            `json:"expiringIn90Days"`
	MonthlyRentIncome int64          `json:"monthlyRentIncome"`
	MonthlyRentCost   int64          `json:"monthlyRentCost"`
	ByStatus          map[string]int `json:"byStatus"`
}

// SummarizeLeases computes a LeaseSummary relative to now.
func SummarizeLeases(leases []Lease, now time.Time) LeaseSummary {
	s := LeaseSummary{TotalLeases: len(leases), ByStatus: map[string]int{}}
	for _, l := range leases {
		s.ByStatus[l.Status]++
		if l.Status == LeaseStatusExpired {
			continue
		}
		s.ActiveLeases++
		if days, ok := l.DaysUntilEnd(now); ok && days >= 0 && days <= 90 {
			s.ExpiringIn90Days++
		}
		switch l.Type {
		case LeaseTypeLessor:
			s.MonthlyRentIncome += l.MonthlyRent
		case LeaseTypeLessee:
			s.MonthlyRentCost += l.MonthlyRent
		}
	}
	return s
}

// ExpiringWithin returns the non-expired leases ending within days of now,
// soonest first.
func ExpiringWithin(leases []Lease, days int, now time.Time) []Lease {
	out := make([]Lease, 0)
	for _, l := range leases {
		if l.Status == LeaseStatusExpired {
			continue
		}
		if d, ok := l.DaysUntilEnd(now); ok && d >= 0 && d <= days {
			out = append(out, l)
		}
	}
	sortBy(out, func(a, b Lease) bool { return a.EndDate < b.EndDate })
	return out
}
