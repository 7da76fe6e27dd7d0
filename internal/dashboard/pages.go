package dashboard

import (
	"context"
	"fmt"
	"strings"

	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/models"
)

// tabsFor returns the tab builders of a page, or nil when the page's service
// is disabled or unknown. Pages without tabs register a single "" builder.
func (d *Dashboard) tabsFor(pageID string) map[string]tabFunc {
	s := d.svcs
	switch pageID {
	case OverviewPage:
		return map[string]tabFunc{"": d.overview}
	case "realestate":
		if s.RealEstate == nil {
			return nil
		}
		return map[string]tabFunc{"portfolio": d.portfolioTab, "search": d.searchTab}
	case "leases":
		if s.Leases == nil {
			return nil
		}
		return map[string]tabFunc{"all": d.leasesTab, "expiring": d.expiringTab}
	case "spaces":
		if s.Spaces == nil {
			return nil
		}
		return map[string]tabFunc{"occupancy": d.occupancyTab, "floors": d.floorsTab}
	case "maintenance":
		if s.Maintenance == nil {
			return nil
		}
		return map[string]tabFunc{"work-orders": d.workOrdersTab, "summary": d.maintenanceSummaryTab}
	case "environmental":
		if s.Environmental == nil {
			return nil
		}
		return map[string]tabFunc{"energy": d.energyTab, "emissions": d.emissionsTab}
	case "workplace":
		if s.Workplace == nil {
			return nil
		}
		return map[string]tabFunc{"amenities": d.amenitiesTab, "feedback": d.feedbackTab}
	case "certification":
		if s.Certification == nil {
			return nil
		}
		return map[string]tabFunc{"certifications": d.certificationsTab}
	}
	return nil
}

// ==========================
// Real estate
// ==========================

type portfolioView struct {
	*View
	Summary    result.Result[models.PortfolioSummary]
	Properties result.Result[[]models.Property]
}

func (d *Dashboard) portfolioTab(ctx context.Context, _ Request) (interface{}, error) {
	svc := d.svcs.RealEstate
	return &portfolioView{
		View:       newView(ctx),
		Summary:    svc.GetPortfolioSummary(ctx),
		Properties: svc.ListProperties(ctx),
	}, nil
}

type searchView struct {
	*View
	Query   string
	Results *result.Result[[]models.Property]
}

func (d *Dashboard) searchTab(ctx context.Context, req Request) (interface{}, error) {
	v := &searchView{View: newView(ctx), Query: strings.TrimSpace(req.Query.Get("q"))}
	if v.Query != "" {
		r := d.svcs.RealEstate.SearchProperties(ctx, v.Query)
		v.Results = &r
	}
	return v, nil
}

// ==========================
// Leases
// ==========================

type leasesView struct {
	*View
	Status   string
	Statuses []string
	Summary  result.Result[models.LeaseSummary]
	Leases   result.Result[[]models.Lease]
}

func (d *Dashboard) leasesTab(ctx context.Context, req Request) (interface{}, error) {
	svc := d.svcs.Leases
	status := req.Query.Get("status")
	return &leasesView{
		View:     newView(ctx),
		Status:   status,
		Statuses: []string{models.LeaseStatusActive, models.LeaseStatusExpiring, models.LeaseStatusExpired},
		Summary:  svc.GetLeaseSummary(ctx),
		Leases:   svc.ListLeases(ctx, status),
	}, nil
}

type expiringRow struct {
	models.Lease
	DaysLeft int
}

type expiringView struct {
	*View
	Within int
	Rows   result.Result[[]expiringRow]
}

// expiringTab fails to render when a lease carries an unparseable end date.
func (d *Dashboard) expiringTab(ctx context.Context, _ Request) (interface{}, error) {
	now := d.opts.Now()
	within := d.opts.ExpiringWithinDays
	rows, err := mapResult(d.svcs.Leases.ListExpiringLeases(ctx, within), func(leases []models.Lease) ([]expiringRow, error) {
		out := make([]expiringRow, 0, len(leases))
		for _, l := range leases {
			days, ok := l.DaysUntilEnd(now)
			if !ok {
				return nil, fmt.Errorf("lease %s has invalid end date %q", l.ID, l.EndDate)
			}
			out = append(out, expiringRow{Lease: l, DaysLeft: days})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &expiringView{View: newView(ctx), Within: within, Rows: rows}, nil
}

// ==========================
// Spaces
// ==========================

type occupancyView struct {
	*View
	BuildingID string
	Summary    result.Result[models.OccupancySummary]
}

func (d *Dashboard) occupancyTab(ctx context.Context, _ Request) (interface{}, error) {
	return &occupancyView{
		View:       newView(ctx),
		BuildingID: d.opts.BuildingID,
		Summary:    d.svcs.Spaces.GetOccupancySummary(ctx, d.opts.BuildingID),
	}, nil
}

type floorRow struct {
	models.Floor
	Spaces result.Result[[]models.Space]
}

type floorsView struct {
	*View
	BuildingID string
	Floors     result.Result[[]floorRow]
}

// floorsTab loads each floor's spaces separately; one failing floor shows an
// inline error while the others render.
func (d *Dashboard) floorsTab(ctx context.Context, _ Request) (interface{}, error) {
	svc := d.svcs.Spaces
	floors, err := mapResult(svc.ListFloors(ctx, d.opts.BuildingID), func(floors []models.Floor) ([]floorRow, error) {
		out := make([]floorRow, 0, len(floors))
		for _, f := range floors {
			out = append(out, floorRow{Floor: f, Spaces: svc.ListSpaces(ctx, f.ID)})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &floorsView{View: newView(ctx), BuildingID: d.opts.BuildingID, Floors: floors}, nil
}

// ==========================
// Maintenance
// ==========================

var priorities = []string{models.PriorityCritical, models.PriorityHigh, models.PriorityMedium, models.PriorityLow}

type workOrdersView struct {
	*View
	Status   string
	Statuses []string
	Orders   result.Result[[]models.WorkOrder]
}

func (d *Dashboard) workOrdersTab(ctx context.Context, req Request) (interface{}, error) {
	status := req.Query.Get("status")
	return &workOrdersView{
		View:     newView(ctx),
		Status:   status,
		Statuses: []string{models.WorkOrderStatusOpen, models.WorkOrderStatusInProgress, models.WorkOrderStatusCompleted},
		Orders:   d.svcs.Maintenance.ListWorkOrders(ctx, status),
	}, nil
}

type maintenanceSummaryView struct {
	*View
	Priorities []string
	Summary    result.Result[models.MaintenanceSummary]
}

func (d *Dashboard) maintenanceSummaryTab(ctx context.Context, _ Request) (interface{}, error) {
	return &maintenanceSummaryView{
		View:       newView(ctx),
		Priorities: priorities,
		Summary:    d.svcs.Maintenance.GetMaintenanceSummary(ctx),
	}, nil
}

// ==========================
// Environmental
// ==========================

type energyRow struct {
	models.EnergyData
	Label string
}

type energyView struct {
	*View
	BuildingID string
	Rows       result.Result[[]energyRow]
}

// energyTab fails to render when a reading carries a malformed month.
func (d *Dashboard) energyTab(ctx context.Context, _ Request) (interface{}, error) {
	v := newView(ctx)
	rows, err := mapResult(d.svcs.Environmental.ListEnergyData(ctx, d.opts.BuildingID), func(data []models.EnergyData) ([]energyRow, error) {
		out := make([]energyRow, 0, len(data))
		for _, e := range data {
			label, err := v.Month(e.Month)
			if err != nil {
				return nil, err
			}
			out = append(out, energyRow{EnergyData: e, Label: label})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &energyView{View: v, BuildingID: d.opts.BuildingID, Rows: rows}, nil
}

type emissionsView struct {
	*View
	BuildingID string
	Summary    result.Result[models.EmissionsSummary]
}

func (d *Dashboard) emissionsTab(ctx context.Context, _ Request) (interface{}, error) {
	return &emissionsView{
		View:       newView(ctx),
		BuildingID: d.opts.BuildingID,
		Summary:    d.svcs.Environmental.GetEmissionsSummary(ctx, d.opts.BuildingID),
	}, nil
}

// ==========================
// Workplace
// ==========================

type amenitiesView struct {
	*View
	Amenities result.Result[[]models.Amenity]
}

func (d *Dashboard) amenitiesTab(ctx context.Context, _ Request) (interface{}, error) {
	return &amenitiesView{View: newView(ctx), Amenities: d.svcs.Workplace.ListAmenities(ctx)}, nil
}

type feedbackView struct {
	*View
	Summary  result.Result[models.SatisfactionSummary]
	Feedback result.Result[[]models.Feedback]
}

func (d *Dashboard) feedbackTab(ctx context.Context, _ Request) (interface{}, error) {
	svc := d.svcs.Workplace
	return &feedbackView{
		View:     newView(ctx),
		Summary:  svc.GetSatisfactionSummary(ctx),
		Feedback: svc.ListFeedback(ctx),
	}, nil
}

// ==========================
// Certification
// ==========================

type certificationRow struct {
	models.Certification
	Progress result.Result[models.CertificationProgress]
}

type certificationsView struct {
	*View
	Certifications result.Result[[]certificationRow]
}

func (d *Dashboard) certificationsTab(ctx context.Context, _ Request) (interface{}, error) {
	svc := d.svcs.Certification
	rows, err := mapResult(svc.ListCertifications(ctx), func(certs []models.Certification) ([]certificationRow, error) {
		out := make([]certificationRow, 0, len(certs))
		for _, c := range certs {
			out = append(out, certificationRow{Certification: c, Progress: svc.GetCertificationProgress(ctx, c.ID)})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &certificationsView{View: newView(ctx), Certifications: rows}, nil
}
