package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/reports"
)

// ReportsHandler serves report results.
type ReportsHandler struct {
	deps ReportRunner
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(deps ReportRunner) *ReportsHandler {
	return &ReportsHandler{deps: deps}
}

// HandleReport handles GET /reports/{name}?season=&min_balls= requests.
func (h *ReportsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/reports/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, errors.Wrapf(ErrBadRequest, "report name %q", name))
		return
	}
	p, err := parseParams(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.deps.Run(r.Context(), name, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleRunAll handles GET /reports requests by running every report.
func (h *ReportsHandler) HandleRunAll(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	p, err := parseParams(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	batch, err := h.deps.RunAll(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// parseParams reads season and min_balls. Absent values stay zero so the
// service applies its defaults.
func parseParams(q url.Values) (reports.Params, error) {
	var p reports.Params
	if v := q.Get("season"); v != "" {
		season, err := strconv.Atoi(v)
		if err != nil || season < 1 {
			return p, errors.Wrapf(reports.ErrInvalidParams, "season %q", v)
		}
		p.Season = season
	}
	if v := q.Get("min_balls"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, errors.Wrapf(reports.ErrInvalidParams, "min_balls %q", v)
		}
		p.MinBalls = n
	}
	return p, nil
}
