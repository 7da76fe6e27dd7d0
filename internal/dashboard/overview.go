package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/models"
)

type metric struct {
	Label string
	Value string
}

// card is one domain summary on the overview. Err is set instead of Metrics
// when the summary failed to load.
type card struct {
	Title   string
	URL     string
	Err     string
	Metrics []metric
}

type overviewView struct {
	*View
	Cards []card
}

type cardFunc func(ctx context.Context, v *View) card

// overview loads one summary per enabled domain concurrently. Summaries are
// wrapped calls, so a failing one only turns its own card into an error card.
func (d *Dashboard) overview(ctx context.Context, _ Request) (interface{}, error) {
	v := newView(ctx)
	funcs := d.cardFuncs()
	cards := make([]card, len(funcs))

	g, gctx := errgroup.WithContext(ctx)
	for i, fn := range funcs {
		i, fn := i, fn
		g.Go(func() error {
			cards[i] = fn(gctx, v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &overviewView{View: v, Cards: cards}, nil
}

func (d *Dashboard) cardFuncs() []cardFunc {
	s := d.svcs
	var out []cardFunc
	if s.RealEstate != nil {
		out = append(out, d.portfolioCard)
	}
	if s.Leases != nil {
		out = append(out, d.leasesCard)
	}
	if s.Spaces != nil {
		out = append(out, d.occupancyCard)
	}
	if s.Maintenance != nil {
		out = append(out, d.maintenanceCard)
	}
	if s.Environmental != nil {
		out = append(out, d.emissionsCard)
	}
	if s.Workplace != nil {
		out = append(out, d.satisfactionCard)
	}
	if s.Certification != nil {
		out = append(out, d.certificationCard)
	}
	return out
}

// newCard fills a card from r using metrics on success.
func newCard[T any](v *View, d *Dashboard, pageID string, r result.Result[T], metrics func(T) []metric) card {
	c := card{Title: pageID, URL: "/pages/" + pageID}
	if p, ok := d.pages[pageID]; ok {
		c.Title = p.def.TitleFor(v.Locale())
		c.URL = p.def.Path
	}
	data, ok := r.Data()
	if !ok {
		c.Err = r.ErrorMessage()
		return c
	}
	c.Metrics = metrics(data)
	return c
}

func (d *Dashboard) portfolioCard(ctx context.Context, v *View) card {
	return newCard(v, d, "realestate", d.svcs.RealEstate.GetPortfolioSummary(ctx), func(s models.PortfolioSummary) []metric {
		return []metric{
			{v.T("realestate.properties"), v.Num(s.TotalProperties)},
			{v.T("realestate.total_area"), v.Num(s.TotalArea) + " m²"},
			{v.T("realestate.occupancy"), v.Pct(s.AverageOccupancyRate)},
		}
	})
}

func (d *Dashboard) leasesCard(ctx context.Context, v *View) card {
	return newCard(v, d, "leases", d.svcs.Leases.GetLeaseSummary(ctx), func(s models.LeaseSummary) []metric {
		return []metric{
			{v.T("leases.active"), v.Num(s.ActiveLeases)},
			{v.T("leases.expiring_90"), v.Num(s.ExpiringIn90Days)},
			{v.T("leases.income"), v.Money(s.MonthlyRentIncome)},
		}
	})
}

func (d *Dashboard) occupancyCard(ctx context.Context, v *View) card {
	return newCard(v, d, "spaces", d.svcs.Spaces.GetOccupancySummary(ctx, d.opts.BuildingID), func(s models.OccupancySummary) []metric {
		return []metric{
			{v.T("spaces.capacity"), v.Num(s.TotalCapacity)},
			{v.T("spaces.occupied"), v.Num(s.TotalOccupied)},
			{v.T("spaces.utilization"), v.Pct(s.Utilization)},
		}
	})
}

func (d *Dashboard) maintenanceCard(ctx context.Context, v *View) card {
	return newCard(v, d, "maintenance", d.svcs.Maintenance.GetMaintenanceSummary(ctx), func(s models.MaintenanceSummary) []metric {
		return []metric{
			{v.Label("status", models.WorkOrderStatusOpen), v.Num(s.Open)},
			{v.Label("status", models.WorkOrderStatusInProgress), v.Num(s.InProgress)},
			{v.T("maintenance.completion_rate"), v.Pct(s.CompletionRate)},
		}
	})
}

func (d *Dashboard) emissionsCard(ctx context.Context, v *View) card {
	return newCard(v, d, "environmental", d.svcs.Environmental.GetEmissionsSummary(ctx, d.opts.BuildingID), func(s models.EmissionsSummary) []metric {
		return []metric{
			{v.T("environmental.emissions"), v.Num(s.TotalEmissionsTCO2e) + " tCO₂e"},
			{v.T("environmental.change"), v.Pct(s.ChangePercent)},
		}
	})
}

func (d *Dashboard) satisfactionCard(ctx context.Context, v *View) card {
	return newCard(v, d, "workplace", d.svcs.Workplace.GetSatisfactionSummary(ctx), func(s models.SatisfactionSummary) []metric {
		return []metric{
			{v.T("workplace.responses"), v.Num(s.Responses)},
			{v.T("workplace.average_rating"), v.Num(s.AverageRating) + " / 5"},
			{v.T("workplace.promoters"), v.Pct(s.PromoterPercent)},
		}
	})
}

func (d *Dashboard) certificationCard(ctx context.Context, v *View) card {
	return newCard(v, d, "certification", d.svcs.Certification.ListCertifications(ctx), func(certs []models.Certification) []metric {
		certified := 0
		for _, c := range certs {
			if c.Status == models.CertificationStatusCertified {
				certified++
			}
		}
		return []metric{
			{v.T("certification.total"), v.Num(len(certs))},
			{v.Label("status", models.CertificationStatusCertified), v.Num(certified)},
		}
	})
}
