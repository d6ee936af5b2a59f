package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"andinabi/internal/dataprocessing"
	apierrors "andinabi/internal/errors"
	"andinabi/internal/services"
	"andinabi/pkg/contracts/domain"
)

// ReportExporter renders an assembled report to a download format.
type ReportExporter interface {
	Write(out io.Writer, report *services.DashboardReport) error
}

// DashboardHandler handles the dashboard API requests.
type DashboardHandler struct {
	service      DashboardServiceInterface
	exporter     ReportExporter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, exporter ReportExporter, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		exporter:     exporter,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/monthly", h.GetMonthly)
	r.Get("/regions", h.GetRegionSegments)
	r.Get("/cities", h.GetCities)
	r.Get("/top-customers", h.GetTopCustomers)
	r.Get("/top-products", h.GetTopProducts)
	r.Get("/inventory", h.GetInventory)
	r.Get("/imports", h.GetImports)
	r.Get("/filters", h.GetFilters)
	r.Get("/export", h.Export)
	r.Post("/cache/refresh", h.RefreshCache)

	return r
}

// filterRequest carries the raw filter query parameters prior to
// validation.
type filterRequest struct {
	DateFrom string `validate:"omitempty,datetime=2006-01-02"`
	DateTo   string `validate:"omitempty,datetime=2006-01-02"`
	Region   string `validate:"omitempty,max=100"`
	Segment  string `validate:"omitempty,max=100"`
}

// parseFilter builds a filter spec from query parameters. Absent
// parameters leave the corresponding dimension unconstrained; the
// service fills missing date bounds from the data envelope.
func (h *DashboardHandler) parseFilter(r *http.Request) (domain.FilterSpec, error) {
	q := r.URL.Query()
	req := filterRequest{
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
		Region:   q.Get("region"),
		Segment:  q.Get("segment"),
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].Field()
			return domain.FilterSpec{}, apierrors.ErrValidation(field,
				fmt.Sprintf("invalid value for %s", field))
		}
		return domain.FilterSpec{}, apierrors.ErrInvalidRequest
	}

	var spec domain.FilterSpec
	if req.DateFrom != "" {
		t, err := time.Parse(domain.DateLayout, req.DateFrom)
		if err != nil {
			return domain.FilterSpec{}, apierrors.ErrValidation("date_from", "expected YYYY-MM-DD")
		}
		spec.From = t
	}
	if req.DateTo != "" {
		t, err := time.Parse(domain.DateLayout, req.DateTo)
		if err != nil {
			return domain.FilterSpec{}, apierrors.ErrValidation("date_to", "expected YYYY-MM-DD")
		}
		spec.To = t
	}
	if req.Region != "" {
		spec = spec.WithRegion(req.Region)
	}
	if req.Segment != "" {
		spec = spec.WithSegment(req.Segment)
	}
	return spec, nil
}

// handleServiceError maps service failures to problem responses. Source
// data failures surface as 503 so callers can distinguish bad data from
// bad requests.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var loadErr *dataprocessing.LoadError
	var schemaErr *dataprocessing.SchemaError
	if errors.As(err, &loadErr) || errors.As(err, &schemaErr) {
		h.errorHandler.HandleError(w, r, apierrors.ErrDatasetLoad(err))
		return
	}
	h.errorHandler.HandleError(w, r, err)
}

// respondFiltered runs one filtered aggregate query and renders the
// result.
func (h *DashboardHandler) respondFiltered(w http.ResponseWriter, r *http.Request,
	query func(domain.FilterSpec) (interface{}, error)) {
	spec, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	result, err := query(spec)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetSummary handles GET /api/dashboard/summary.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.respondFiltered(w, r, func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.Summary(r.Context(), spec)
	})
}

// GetMonthly handles GET /api/dashboard/monthly.
func (h *DashboardHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	h.respondFiltered(w, r, func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.Monthly(r.Context(), spec)
	})
}

// GetRegionSegments handles GET /api/dashboard/regions.
func (h *DashboardHandler) GetRegionSegments(w http.ResponseWriter, r *http.Request) {
	h.respondFiltered(w, r, func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.RegionSegments(r.Context(), spec)
	})
}

// GetCities handles GET /api/dashboard/cities.
func (h *DashboardHandler) GetCities(w http.ResponseWriter, r *http.Request) {
	h.respondFiltered(w, r, func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.Cities(r.Context(), spec)
	})
}

// GetTopCustomers handles GET /api/dashboard/top-customers.
func (h *DashboardHandler) GetTopCustomers(w http.ResponseWriter, r *http.Request) {
	h.respondFiltered(w, r, func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.TopCustomers(r.Context(), spec)
	})
}

// GetTopProducts handles GET /api/dashboard/top-products.
func (h *DashboardHandler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	h.respondFiltered(w, r, func(spec domain.FilterSpec) (interface{}, error) {
		return h.service.TopProducts(r.Context(), spec)
	})
}

// GetInventory handles GET /api/dashboard/inventory. Inventory is a
// point-in-time snapshot, not subject to the sales filter.
func (h *DashboardHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Inventory(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetImports handles GET /api/dashboard/imports.
func (h *DashboardHandler) GetImports(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Imports(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, result)
}

// GetFilters handles GET /api/dashboard/filters.
func (h *DashboardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Filters(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

// Export handles GET /api/dashboard/export: the full dashboard as an
// xlsx workbook for the active filter. The workbook is buffered before
// any byte reaches the client so failures still produce a clean problem
// response.
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	spec, err := h.parseFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.service.Report(r.Context(), spec)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.exporter.Write(&buf, report); err != nil {
		h.logger.ErrorContext(r.Context(), "workbook export failed",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrExportFailed(err))
		return
	}

	filename := fmt.Sprintf("dashboard_%s.xlsx", report.GeneratedAt.Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))

	if _, err := io.Copy(w, &buf); err != nil {
		h.logger.WarnContext(r.Context(), "export download interrupted",
			slog.String("error", err.Error()))
	}
}

// RefreshCache handles POST /api/dashboard/cache/refresh: drops the
// cached dataset and eagerly loads a fresh one.
func (h *DashboardHandler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	ds, err := h.service.Reload(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dataset cache refreshed",
		slog.Int("sales", len(ds.Tables.Sales)),
		slog.Time("loaded_at", ds.LoadedAt))

	render.JSON(w, r, map[string]interface{}{
		"status":    "refreshed",
		"loaded_at": ds.LoadedAt,
		"rows": map[string]int{
			"customers":   len(ds.Tables.Customers),
			"products":    len(ds.Tables.Products),
			"sales":       len(ds.Tables.Sales),
			"inventory":   len(ds.Tables.Inventory),
			"imports":     len(ds.Tables.Imports),
			"receivables": len(ds.Tables.Receivables),
			"enriched":    len(ds.Enriched),
		},
	})
}
