package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "iwms-dashboard/internal/common/errors"
	"iwms-dashboard/internal/common/result"
	"iwms-dashboard/internal/services/leases"
	"iwms-dashboard/internal/services/maintenance"
)

// writeResult writes the Result envelope. Err results are still 200: the
// envelope, not the status code, carries the outcome.
func writeResult[T any](w http.ResponseWriter, r result.Result[T]) {
	writeJSON(w, http.StatusOK, r)
}

func (s *Server) badParam(w http.ResponseWriter, r *http.Request, param, details string) {
	s.errors.HandleHTTPError(w, r, apperrors.NewInvalidParameterError(param, details))
}

// apiRoutes mounts the routes of every enabled service; a disabled service's
// routes fall through to 404.
func (s *Server) apiRoutes(r chi.Router) {
	if svc := s.svcs.RealEstate; svc != nil {
		r.Route("/realestate", func(r chi.Router) {
			r.Get("/properties", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.ListProperties(req.Context()))
			})
			r.Get("/properties/search", func(w http.ResponseWriter, req *http.Request) {
				q := strings.TrimSpace(req.URL.Query().Get("q"))
				if q == "" {
					s.badParam(w, req, "q", "search query is required")
					return
				}
				writeResult(w, svc.SearchProperties(req.Context(), q))
			})
			r.Get("/properties/{id}", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.GetProperty(req.Context(), chi.URLParam(req, "id")))
			})
			r.Get("/summary", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.GetPortfolioSummary(req.Context()))
			})
		})
	}

	if svc := s.svcs.Leases; svc != nil {
		r.Route("/leases", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				status := req.URL.Query().Get("status")
				if !leases.ValidStatus(status) {
					s.badParam(w, req, "status", fmt.Sprintf("unknown lease status %q", status))
					return
				}
				writeResult(w, svc.ListLeases(req.Context(), status))
			})
			r.Get("/expiring", func(w http.ResponseWriter, req *http.Request) {
				within := 90
				if raw := req.URL.Query().Get("within"); raw != "" {
					n, err := strconv.Atoi(raw)
					if err != nil || n <= 0 {
						s.badParam(w, req, "within", "within must be a positive number of days")
						return
					}
					within = n
				}
				writeResult(w, svc.ListExpiringLeases(req.Context(), within))
			})
			r.Get("/summary", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.GetLeaseSummary(req.Context()))
			})
			r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.GetLease(req.Context(), chi.URLParam(req, "id")))
			})
		})
	}

	if svc := s.svcs.Spaces; svc != nil {
		r.Route("/spaces", func(r chi.Router) {
			r.Get("/buildings/{buildingId}/floors", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.ListFloors(req.Context(), chi.URLParam(req, "buildingId")))
			})
			r.Get("/buildings/{buildingId}/occupancy", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.GetOccupancySummary(req.Context(), chi.URLParam(req, "buildingId")))
			})
			r.Get("/floors/{floorId}/spaces", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.ListSpaces(req.Context(), chi.URLParam(req, "floorId")))
			})
		})
	}

	if svc := s.svcs.Maintenance; svc != nil {
		r.Route("/maintenance", func(r chi.Router) {
			r.Get("/work-orders", func(w http.ResponseWriter, req *http.Request) {
				status := req.URL.Query().Get("status")
				if !maintenance.ValidStatus(status) {
					s.badParam(w, req, "status", fmt.Sprintf("unknown work order status %q", status))
					return
				}
				writeResult(w, svc.ListWorkOrders(req.Context(), status))
			})
			r.Get("/work-orders/{id}", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.GetWorkOrder(req.Context(), chi.URLParam(req, "id")))
			})
			r.Get("/summary", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.GetMaintenanceSummary(req.Context()))
			})
		})
	}

	if svc := s.svcs.Environmental; svc != nil {
		r.Route("/environmental", func(r chi.Router) {
			r.Get("/buildings/{buildingId}/energy", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.ListEnergyData(req.Context(), chi.URLParam(req, "buildingId")))
			})
			r.Get("/buildings/{buildingId}/emissions", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.GetEmissionsSummary(req.Context(), chi.URLParam(req, "buildingId")))
			})
		})
	}

	if svc := s.svcs.Workplace; svc != nil {
		r.Route("/workplace", func(r chi.Router) {
			r.Get("/amenities", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.ListAmenities(req.Context()))
			})
			r.Get("/feedback", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.ListFeedback(req.Context()))
			})
			r.Get("/satisfaction", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.GetSatisfactionSummary(req.Context()))
			})
		})
	}

	if svc := s.svcs.Certification; svc != nil {
		r.Route("/certification", func(r chi.Router) {
			r.Get("/certifications", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.ListCertifications(req.Context()))
			})
			r.Get("/certifications/{id}/progress", func(w http.ResponseWriter, req *http.Request) {
				writeResult(w, svc.GetCertificationProgress(req.Context(), chi.URLParam(req, "id")))
			})
		})
	}
}
