package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/i18n"
	"iwms-dashboard/internal/dashboard"
)

const langCookieMaxAge = 365 * 24 * 60 * 60

func (s *Server) overviewPage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, dashboard.Request{Page: dashboard.OverviewPage, Query: r.URL.Query()})
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.renderPage(w, r, dashboard.Request{Page: chi.URLParam(r, "page"), Tab: q.Get("tab"), Query: q})
}

// renderPage buffers the document so a failure can still become a clean 500.
// Failures inside a page are handled by its boundary and never reach here.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, req dashboard.Request) {
	var buf bytes.Buffer
	err := s.dash.Render(r.Context(), &buf, req)
	switch {
	case errors.Is(err, dashboard.ErrPageNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		stdErr := apperrors.NewRenderFailedError(req.Page, err)
		s.logger.Error("page render failed", map[string]interface{}{
			"requestId": requestIDFrom(r.Context()),
			"page":      req.Page,
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
		})
		http.Error(w, i18n.TranslatorFromContext(r.Context()).T(i18n.KeyRenderFailed), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// retry resets the boundary of one tab and sends the browser back to the view
// named by the "redirect" form value, or to the tab itself.
func (s *Server) retry(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "page")
	tab := r.URL.Query().Get("tab")
	if err := s.dash.Retry(pageID, tab); err != nil {
		http.NotFound(w, r)
		return
	}
	s.logger.Info("page retried", map[string]interface{}{
		"requestId": requestIDFrom(r.Context()),
		"page":      pageID,
		"tab":       tab,
	})
	path, _ := s.dash.Path(pageID, tab)
	http.Redirect(w, r, localRedirect(r.FormValue("redirect"), path), http.StatusSeeOther)
}

// setLanguage stores an explicit locale choice in a cookie.
func (s *Server) setLanguage(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("lang")
	locale := i18n.Parse(raw, "")
	if locale == "" {
		s.badParam(w, r, "lang", "supported languages are id and en")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.CookieName,
		Value:    string(locale),
		Path:     "/",
		MaxAge:   langCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, localRedirect(r.FormValue("redirect"), "/"), http.StatusSeeOther)
}

// localRedirect returns target when it is a path on this site, else fallback.
func localRedirect(target, fallback string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") && !strings.HasPrefix(target, "/\\") {
		return target
	}
	return fallback
}
