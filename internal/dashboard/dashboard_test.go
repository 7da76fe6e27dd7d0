package dashboard

import (
	"bytes"
	"context"
	"errors"
	"html"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iwms-dashboard/internal/common/boundary"
	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/i18n"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/models"
	"iwms-dashboard/internal/services"
	"iwms-dashboard/internal/services/environmental"
	"iwms-dashboard/internal/services/workplace"
	"iwms-dashboard/pkg/registry"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func createTestServices(t *testing.T) *services.Services {
	cfg := &config.Config{App: config.AppConfig{Name: "iwms-test"}, Services: map[string]config.ServiceConfig{}}
	for _, name := range config.ServiceNames {
		cfg.Services[name] = config.ServiceConfig{Enabled: true, Source: config.SourceFixtures, Timeout: 1000}
	}
	s, err := services.New(cfg, services.Dependencies{}, logger.NewTestLogger(t))
	require.NoError(t, err)
	return s
}

func createTestRegistry(t *testing.T) *registry.PageRegistry {
	reg, err := registry.LoadRegistry("../../configs/page-registry.json")
	require.NoError(t, err)
	return reg
}

func createTestDashboard(t *testing.T, svcs *services.Services, opts ...func(*Options)) *Dashboard {
	o := Options{BuildingID: "BLD-001", Logger: logger.NewTestLogger(t), Now: func() time.Time { return testNow }}
	for _, fn := range opts {
		fn(&o)
	}
	d, err := New(createTestRegistry(t), svcs, o)
	require.NoError(t, err)
	return d
}

func render(t *testing.T, d *Dashboard, ctx context.Context, req Request) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, d.Render(ctx, &buf, req))
	return buf.String()
}

// energyStub serves readings whose month can be corrupted.
type energyStub struct {
	mu    sync.Mutex
	month string
}

func (s *energyStub) setMonth(m string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.month = m
}

func (s *energyStub) ListEnergyData(_ context.Context, buildingID string) ([]models.EnergyData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []models.EnergyData{{BuildingID: buildingID, Month: s.month, ElectricityKWh: 1000, EmissionsKgCO2e: 800}}, nil
}

type failingWorkplace struct{}

func (failingWorkplace) ListAmenities(context.Context) ([]models.Amenity, error) {
	return nil, errors.New("connection refused")
}

func (failingWorkplace) ListFeedback(context.Context) ([]models.Feedback, error) {
	return nil, errors.New("")
}

type transitions struct {
	mu   sync.Mutex
	seen []string
}

func (r *transitions) RecordTransition(name string, to boundary.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, name+":"+to.String())
}

// ==========================
// Pages
// ==========================

func TestDashboard_RendersEveryPageAndTab(t *testing.T) {
	d := createTestDashboard(t, createTestServices(t))
	reg := createTestRegistry(t)

	for _, p := range reg.Visible() {
		tabs := []string{""}
		for _, tab := range p.Tabs {
			tabs = append(tabs, tab.ID)
		}
		for _, tab := range tabs {
			t.Run(p.ID+"/"+tab, func(t *testing.T) {
				out := render(t, d, context.Background(), Request{Page: p.ID, Tab: tab})
				assert.Contains(t, out, html.EscapeString(p.TitleFor("id")))
				assert.NotContains(t, out, `class="error-boundary"`)
				assert.NotContains(t, out, `class="error-card"`)
			})
		}
	}
	for id, state := range d.States() {
		assert.Equal(t, boundary.Clean, state, id)
	}
}

func TestDashboard_LeasesTab(t *testing.T) {
	d := createTestDashboard(t, createTestServices(t))

	out := render(t, d, context.Background(), Request{Page: "leases", Tab: "expiring"})
	assert.Contains(t, out, "90 hari")
	assert.NotContains(t, out, "LSE-005", "expired leases are never listed")
	assert.NotContains(t, out, `class="error-card"`)
}

func TestDashboard_InvalidFilterIsInlineError(t *testing.T) {
	d := createTestDashboard(t, createTestServices(t))

	out := render(t, d, context.Background(), Request{Page: "leases", Tab: "all", Query: url.Values{"status": {"bogus"}}})
	assert.Contains(t, out, `class="error-card"`)
	assert.Contains(t, out, "Kontrak aktif", "summary still renders next to the failed list")
	assert.NotContains(t, out, `class="error-boundary"`)
}

func TestDashboard_Search(t *testing.T) {
	d := createTestDashboard(t, createTestServices(t))

	out := render(t, d, context.Background(), Request{Page: "realestate", Tab: "search", Query: url.Values{"q": {"jakarta"}}})
	assert.Contains(t, out, "PRP-001")
	assert.Contains(t, out, `value="jakarta"`)
}

func TestDashboard_EnglishLocale(t *testing.T) {
	d := createTestDashboard(t, createTestServices(t))
	ctx := i18n.NewContext(context.Background(), i18n.English)

	out := render(t, d, ctx, Request{Page: "leases"})
	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, "Lease Administration")
	assert.Contains(t, out, "Tenant")
}

func TestDashboard_UnknownPage(t *testing.T) {
	d := createTestDashboard(t, createTestServices(t))

	var buf bytes.Buffer
	assert.ErrorIs(t, d.Render(context.Background(), &buf, Request{Page: "payroll"}), ErrPageNotFound)
	assert.ErrorIs(t, d.Retry("payroll", ""), ErrPageNotFound)
	assert.ErrorIs(t, d.Retry("leases", "payroll"), ErrPageNotFound)
}

func TestDashboard_DisabledServiceHidesPage(t *testing.T) {
	svcs := createTestServices(t)
	svcs.Certification = nil
	d := createTestDashboard(t, svcs)

	_, ok := d.Path("certification", "")
	assert.False(t, ok)

	out := render(t, d, context.Background(), Request{Page: OverviewPage})
	assert.NotContains(t, out, "/pages/certification")
}

// ==========================
// Overview
// ==========================

func TestDashboard_OverviewCards(t *testing.T) {
	d := createTestDashboard(t, createTestServices(t))

	out := render(t, d, context.Background(), Request{Page: OverviewPage})
	assert.Contains(t, out, "Portofolio Properti")
	assert.Contains(t, out, "82,3%")
	assert.Contains(t, out, "2.356,3 tCO₂e")
	assert.Contains(t, out, "Rp 5.688.000.000")
}

// Scenario: one summary fails; only its card turns into an error card.
func TestDashboard_OverviewFailingSummaryIsIsolated(t *testing.T) {
	svcs := createTestServices(t)
	svcs.Workplace = workplace.NewService(&workplace.Config{}, failingWorkplace{}, nil, logger.NewTestLogger(t))
	d := createTestDashboard(t, svcs)

	out := render(t, d, context.Background(), Request{Page: OverviewPage})

	assert.Contains(t, out, `class="error-card"`)
	assert.Contains(t, out, i18n.NewTranslator(i18n.Indonesian).T(i18n.KeyLoadFailed))
	assert.Contains(t, out, "82,3%", "sibling cards still render")
	assert.Equal(t, boundary.Clean, d.States()[OverviewPage])
}

// ==========================
// Render boundary
// ==========================

// Scenario: a tab fails while rendering; that tab shows the fallback panel,
// sibling tabs and pages are unaffected, and retry re-renders once the cause
// is fixed.
func TestDashboard_RenderFailureAndRetry(t *testing.T) {
	stub := &energyStub{month: "2026/09"}
	svcs := createTestServices(t)
	svcs.Environmental = environmental.NewService(&environmental.Config{}, stub, nil, logger.NewTestLogger(t))
	rec := &transitions{}
	d := createTestDashboard(t, svcs, func(o *Options) { o.Recorder = rec })
	ctx := context.Background()

	out := render(t, d, ctx, Request{Page: "environmental", Tab: "energy"})
	assert.Contains(t, out, `class="error-boundary"`)
	assert.Contains(t, out, "invalid month")
	assert.Contains(t, out, `action="/pages/environmental/retry?tab=energy"`)
	assert.Contains(t, out, `name="redirect" value="/pages/environmental?tab=energy"`)
	assert.Contains(t, out, "Energi &amp; Emisi", "layout around the boundary still renders")
	assert.Equal(t, boundary.Errored, d.States()["environmental/energy"])
	assert.Equal(t, boundary.Clean, d.States()["environmental/emissions"])

	sibling := render(t, d, ctx, Request{Page: "environmental", Tab: "emissions"})
	assert.NotContains(t, sibling, `class="error-boundary"`, "sibling tab renders while energy is errored")
	assert.Contains(t, sibling, "tCO₂e")

	other := render(t, d, ctx, Request{Page: "leases"})
	assert.NotContains(t, other, `class="error-boundary"`)

	stub.setMonth("2026-09")
	out = render(t, d, ctx, Request{Page: "environmental", Tab: "energy"})
	assert.Contains(t, out, `class="error-boundary"`, "errored until retried")

	require.NoError(t, d.Retry("environmental", "energy"))
	out = render(t, d, ctx, Request{Page: "environmental", Tab: "energy"})
	assert.NotContains(t, out, `class="error-boundary"`)
	assert.Contains(t, out, "Sep 2026")

	assert.Equal(t, []string{"environmental/energy:errored", "environmental/energy:clean"}, rec.seen)
}

func TestDashboard_RetryDefaultTab(t *testing.T) {
	stub := &energyStub{month: "bad"}
	svcs := createTestServices(t)
	svcs.Environmental = environmental.NewService(&environmental.Config{}, stub, nil, logger.NewTestLogger(t))
	d := createTestDashboard(t, svcs)
	ctx := context.Background()

	out := render(t, d, ctx, Request{Page: "environmental"})
	require.Contains(t, out, `class="error-boundary"`)

	require.NoError(t, d.Retry("environmental", ""))
	assert.Equal(t, boundary.Clean, d.States()["environmental/energy"])

	path, ok := d.Path("environmental", "emissions")
	assert.True(t, ok)
	assert.Equal(t, "/pages/environmental?tab=emissions", path)
}

// ==========================
// View helpers
// ==========================

func TestView_Formatting(t *testing.T) {
	id := newView(i18n.NewContext(context.Background(), i18n.Indonesian))
	en := newView(i18n.NewContext(context.Background(), i18n.English))

	assert.Equal(t, "Rp 5.688.000.000", id.Money(5688000000))
	assert.Equal(t, "Rp 5,688,000,000", en.Money(5688000000))
	assert.Equal(t, "82,3%", id.Pct(82.3))
	assert.Equal(t, "178.400", id.Num(178400.0))
	assert.Equal(t, "3,8", id.Num(3.8))
	assert.Equal(t, "7", en.Num(7))

	m, err := id.Month("2026-05")
	require.NoError(t, err)
	assert.Equal(t, "Mei 2026", m)
	_, err = en.Month("May 2026")
	assert.Error(t, err)

	assert.Equal(t, "Aktif", id.Label("status", "active"))
	assert.Equal(t, "mystery", id.Label("status", "mystery"))
}
