// Package dashboard renders the server-side IWMS pages. Every tab of a page
// renders through its own error boundary, so a failing tab shows a fallback
// panel while the navigation, sibling tabs and other pages keep working.
package dashboard

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/url"
	"time"

	"iwms-dashboard/internal/common/boundary"
	"iwms-dashboard/internal/common/logger"
	"iwms-dashboard/internal/services"
	"iwms-dashboard/pkg/registry"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrPageNotFound is returned for page IDs that are unknown, hidden or whose
// service is disabled.
var ErrPageNotFound = errors.New("page not found")

const OverviewPage = "overview"

// Request selects what to render.
type Request struct {
	Page  string
	Tab   string
	Query url.Values
}

type tabFunc func(ctx context.Context, req Request) (interface{}, error)

type page struct {
	def        registry.Page
	tabs       map[string]tabFunc
	boundaries map[string]*boundary.Boundary // keyed by tab ID, "" for pages without tabs
}

// defaultTab is the first registered tab, or "" for pages without tabs.
func (p *page) tab(id string) string {
	if _, ok := p.tabs[id]; ok {
		return id
	}
	if len(p.def.Tabs) > 0 {
		return p.def.Tabs[0].ID
	}
	return ""
}

type Options struct {
	// BuildingID is the building shown on space and energy tabs.
	BuildingID string
	// ExpiringWithinDays bounds the expiring-leases tab.
	ExpiringWithinDays int
	Logger             logger.Logger
	Recorder           boundary.Recorder
	Now                func() time.Time
}

type Dashboard struct {
	svcs      *services.Services
	opts      Options
	templates *template.Template
	pages     map[string]*page
	order     []string
	logger    logger.Logger
}

// New builds a page, and one boundary per tab, for every visible registry
// entry whose service is enabled.
func New(reg *registry.PageRegistry, svcs *services.Services, opts Options) (*Dashboard, error) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExpiringWithinDays <= 0 {
		opts.ExpiringWithinDays = 90
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		svcs:      svcs,
		opts:      opts,
		templates: tmpl,
		pages:     make(map[string]*page),
		logger:    opts.Logger.WithFields(map[string]interface{}{"component": "dashboard"}),
	}

	for _, def := range reg.Visible() {
		tabs := d.tabsFor(def.ID)
		if tabs == nil {
			d.logger.Info("page skipped", map[string]interface{}{"page": def.ID})
			continue
		}
		p := &page{def: def, tabs: tabs, boundaries: make(map[string]*boundary.Boundary, len(tabs))}
		for tab := range tabs {
			p.boundaries[tab] = d.newBoundary(p, tab)
		}
		d.pages[def.ID] = p
		d.order = append(d.order, def.ID)
	}
	if _, ok := d.pages[OverviewPage]; !ok {
		return nil, errors.New("page registry has no overview page")
	}
	return d, nil
}

// Render writes the full HTML document for req.
func (d *Dashboard) Render(ctx context.Context, w io.Writer, req Request) error {
	p, ok := d.pages[req.Page]
	if !ok {
		return ErrPageNotFound
	}
	req.Tab = p.tab(req.Tab)
	if req.Query == nil {
		req.Query = url.Values{}
	}

	current := requestURL(p.def.Path, req)
	bctx := boundary.WithReturnURL(withRequest(ctx, req), current)

	b, ok := p.boundaries[req.Tab]
	if !ok {
		return ErrPageNotFound
	}
	var content bytes.Buffer
	if err := b.Render(bctx, &content); err != nil {
		return err
	}

	v := newView(ctx)
	return d.templates.ExecuteTemplate(w, "layout", layoutView{
		View:    v,
		Title:   p.def.TitleFor(v.Locale()),
		Current: current,
		Nav:     d.nav(v, req.Page),
		Tabs:    tabLinks(v, p, req.Tab),
		Content: template.HTML(content.String()),
	})
}

// Retry resets the boundary of one tab; "" selects the page's default tab.
func (d *Dashboard) Retry(pageID, tab string) error {
	p, ok := d.pages[pageID]
	if !ok {
		return ErrPageNotFound
	}
	if tab != "" {
		if _, ok := p.tabs[tab]; !ok {
			return ErrPageNotFound
		}
	}
	b, ok := p.boundaries[p.tab(tab)]
	if !ok {
		return ErrPageNotFound
	}
	b.Retry()
	return nil
}

// Path returns the URL of a page, or of one of its tabs.
func (d *Dashboard) Path(pageID, tab string) (string, bool) {
	p, ok := d.pages[pageID]
	if !ok {
		return "", false
	}
	if _, ok := p.tabs[tab]; ok && tab != "" {
		return p.def.Path + "?tab=" + url.QueryEscape(tab), true
	}
	return p.def.Path, true
}

// States reports the state of every boundary, keyed by "page" or "page/tab".
func (d *Dashboard) States() map[string]boundary.State {
	out := make(map[string]boundary.State)
	for _, p := range d.pages {
		for tab, b := range p.boundaries {
			out[boundaryName(p.def.ID, tab)] = b.State()
		}
	}
	return out
}

func boundaryName(pageID, tab string) string {
	if tab == "" {
		return pageID
	}
	return pageID + "/" + tab
}

func (d *Dashboard) newBoundary(p *page, tab string) *boundary.Boundary {
	retryURL := "/pages/" + p.def.ID + "/retry"
	if tab != "" {
		retryURL += "?tab=" + url.QueryEscape(tab)
	}
	bopts := []boundary.Option{
		boundary.WithLogger(d.opts.Logger),
		boundary.WithRetryURL(retryURL),
	}
	if d.opts.Recorder != nil {
		bopts = append(bopts, boundary.WithRecorder(d.opts.Recorder))
	}
	return boundary.New(boundaryName(p.def.ID, tab), d.renderTab(p, tab), bopts...)
}

// renderTab builds the tab's view and executes its template, named "page/tab"
// or just "page".
func (d *Dashboard) renderTab(p *page, tab string) boundary.RenderFunc {
	build := p.tabs[tab]
	name := boundaryName(p.def.ID, tab)
	return func(ctx context.Context, w io.Writer) error {
		data, err := build(ctx, requestFrom(ctx))
		if err != nil {
			return err
		}
		return d.templates.ExecuteTemplate(w, name, data)
	}
}

type requestKey struct{}

func withRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

func requestFrom(ctx context.Context) Request {
	req, _ := ctx.Value(requestKey{}).(Request)
	return req
}

// ==========================
// Layout
// ==========================

type link struct {
	Title  string
	URL    string
	Active bool
}

type layoutView struct {
	*View
	Title   string
	Current string
	Nav     []link
	Tabs    []link
	Content template.HTML
}

func (d *Dashboard) nav(v *View, active string) []link {
	out := make([]link, 0, len(d.order))
	for _, id := range d.order {
		p := d.pages[id]
		out = append(out, link{Title: p.def.TitleFor(v.Locale()), URL: p.def.Path, Active: id == active})
	}
	return out
}

func tabLinks(v *View, p *page, active string) []link {
	out := make([]link, 0, len(p.def.Tabs))
	for _, t := range p.def.Tabs {
		if _, ok := p.tabs[t.ID]; !ok {
			continue
		}
		out = append(out, link{
			Title:  t.TitleFor(v.Locale()),
			URL:    p.def.Path + "?tab=" + url.QueryEscape(t.ID),
			Active: t.ID == active,
		})
	}
	return out
}

func requestURL(path string, req Request) string {
	q := url.Values{}
	for k, vs := range req.Query {
		if k == "lang" {
			continue
		}
		q[k] = vs
	}
	if req.Tab != "" {
		q.Set("tab", req.Tab)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
