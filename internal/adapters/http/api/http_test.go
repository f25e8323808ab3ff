package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/adapters/http/api"
	"github.com/okian/crease/internal/adapters/repository"
	service "github.com/okian/crease/internal/app"
	"github.com/okian/crease/internal/domain/model/modeltest"
	"github.com/okian/crease/internal/domain/reports"
	"github.com/okian/crease/internal/domain/types"
	"github.com/okian/crease/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type mockDeps struct {
	lastName   string
	lastParams reports.Params
	lastQuery  string
	lastLimit  int
	runErr     error
	reloadErr  error
	reloads    int
}

func (m *mockDeps) Run(_ context.Context, name string, p reports.Params) (types.ReportResult, error) {
	m.lastName, m.lastParams = name, p
	if m.runErr != nil {
		return types.ReportResult{}, m.runErr
	}
	return types.ReportResult{
		Report:  name,
		Season:  p.Season,
		Backend: "memory",
		Rows:    []types.TeamWins{{Rank: 1, TeamName: "Lions", TotalWins: 2}},
	}, nil
}

func (m *mockDeps) RunAll(_ context.Context, p reports.Params) (types.ReportBatch, error) {
	m.lastParams = p
	if m.runErr != nil {
		return types.ReportBatch{}, m.runErr
	}
	return types.ReportBatch{RunID: "run-1", Results: []types.ReportResult{{Report: "top-run-scorers"}}}, nil
}

func (m *mockDeps) FindPlayers(_ context.Context, q string, limit int) ([]types.NamedEntity, error) {
	m.lastQuery, m.lastLimit = q, limit
	return []types.NamedEntity{{ID: 10, Name: "Asha", Detail: "batsman"}}, nil
}

func (m *mockDeps) FindTeams(_ context.Context, q string, limit int) ([]types.NamedEntity, error) {
	m.lastQuery, m.lastLimit = q, limit
	if strings.TrimSpace(q) == "" {
		return nil, errors.Wrap(service.ErrInvalidQuery, "empty query")
	}
	return []types.NamedEntity{{ID: 1, Name: "Lions", Detail: "Mumbai"}}, nil
}

func (m *mockDeps) Reload(context.Context) (types.DatasetInfo, error) {
	m.reloads++
	if m.reloadErr != nil {
		return types.DatasetInfo{}, m.reloadErr
	}
	return types.DatasetInfo{Version: 2, Source: "csv:data", Counts: map[string]int{"matches": 7}}, nil
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true, "backend": "memory"}
}

func newMux(deps api.Dependencies, opts ...api.Option) http.Handler {
	mux := http.NewServeMux()
	srv := api.NewServer(deps, opts...)
	srv.Register(context.Background(), mux)
	return srv.Handler(mux)
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body
}

func TestReportsEndpoints(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockDeps{}
		h := newMux(deps)

		Convey("GET /reports/{name} passes name and parameters through", func() {
			w := do(h, http.MethodGet, "/reports/season-win-leaders?season=2020&min_balls=50")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
			So(deps.lastName, ShouldEqual, "season-win-leaders")
			So(deps.lastParams, ShouldResemble, reports.Params{Season: 2020, MinBalls: 50})

			var res struct {
				Report string           `json:"report"`
				Season int              `json:"season"`
				Rows   []types.TeamWins `json:"rows"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
			So(res.Report, ShouldEqual, "season-win-leaders")
			So(res.Season, ShouldEqual, 2020)
			So(res.Rows, ShouldResemble, []types.TeamWins{{Rank: 1, TeamName: "Lions", TotalWins: 2}})
		})

		Convey("Omitted parameters stay zero", func() {
			w := do(h, http.MethodGet, "/reports/top-run-scorers")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastParams, ShouldResemble, reports.Params{})
		})

		Convey("A non-numeric season is a bad request", func() {
			w := do(h, http.MethodGet, "/reports/season-win-leaders?season=last")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeError(w)["code"], ShouldEqual, "bad_request")
		})

		Convey("min_balls below one is a bad request", func() {
			w := do(h, http.MethodGet, "/reports/top-strike-rates?min_balls=0")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Unknown reports are 404", func() {
			deps.runErr = errors.Wrapf(reports.ErrUnknownReport, "%q", "most-sixes")
			w := do(h, http.MethodGet, "/reports/most-sixes")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeError(w)["code"], ShouldEqual, "unknown_report")
		})

		Convey("An unloaded dataset is 503", func() {
			deps.runErr = repository.ErrNotLoaded
			w := do(h, http.MethodGet, "/reports/top-run-scorers")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("Nested paths are rejected", func() {
			w := do(h, http.MethodGet, "/reports/a/b")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("POST is not allowed", func() {
			w := do(h, http.MethodPost, "/reports/top-run-scorers")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(w.Header().Get("Allow"), ShouldEqual, http.MethodGet)
		})

		Convey("GET /reports runs everything", func() {
			w := do(h, http.MethodGet, "/reports?season=2021")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastParams.Season, ShouldEqual, 2021)
			var batch types.ReportBatch
			So(json.Unmarshal(w.Body.Bytes(), &batch), ShouldBeNil)
			So(batch.RunID, ShouldEqual, "run-1")
			So(batch.Results, ShouldHaveLength, 1)
		})
	})
}

func TestLookupEndpoints(t *testing.T) {
	Convey("Given an API server with a lookup cap of 20", t, func() {
		deps := &mockDeps{}
		h := newMux(deps, api.WithMaxLookupLimit(20))

		Convey("The default limit is used when none is given", func() {
			w := do(h, http.MethodGet, "/players?q=asha")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastQuery, ShouldEqual, "asha")
			So(deps.lastLimit, ShouldEqual, 10)

			var hits []types.NamedEntity
			So(json.Unmarshal(w.Body.Bytes(), &hits), ShouldBeNil)
			So(hits, ShouldResemble, []types.NamedEntity{{ID: 10, Name: "Asha", Detail: "batsman"}})
		})

		Convey("Large limits are clamped", func() {
			w := do(h, http.MethodGet, "/teams?q=li&limit=500")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.lastLimit, ShouldEqual, 20)
		})

		Convey("Bad limits are rejected", func() {
			w := do(h, http.MethodGet, "/teams?q=li&limit=-3")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Empty queries surface as bad requests", func() {
			w := do(h, http.MethodGet, "/teams?q=")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatusEndpoints(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockDeps{}
		h := newMux(deps)

		Convey("GET /stats returns the provider's stats", func() {
			w := do(h, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]interface{}
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["started"], ShouldEqual, true)
			So(stats["backend"], ShouldEqual, "memory")
		})

		Convey("GET /healthz serves Prometheus metrics", func() {
			do(h, http.MethodGet, "/stats")
			w := do(h, http.MethodGet, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "crease_analytics_http_requests_total")
		})

		Convey("POST /reload reloads the dataset", func() {
			w := do(h, http.MethodPost, "/reload")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(deps.reloads, ShouldEqual, 1)
			var info types.DatasetInfo
			So(json.Unmarshal(w.Body.Bytes(), &info), ShouldBeNil)
			So(info.Version, ShouldEqual, uint64(2))
		})

		Convey("GET /reload is not allowed", func() {
			w := do(h, http.MethodGet, "/reload")
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(deps.reloads, ShouldEqual, 0)
		})

		Convey("A failing source maps to 502", func() {
			deps.reloadErr = errors.Mark(errors.New("connection refused"), repository.ErrSource)
			w := do(h, http.MethodPost, "/reload")
			So(w.Code, ShouldEqual, http.StatusBadGateway)
			So(decodeError(w)["code"], ShouldEqual, "source_error")
		})
	})
}

func TestRateLimit(t *testing.T) {
	Convey("Given a server allowing a burst of two requests", t, func() {
		deps := &mockDeps{}
		h := newMux(deps, api.WithRateLimit(0.001, 2))

		Convey("The third request is rejected with 429", func() {
			So(do(h, http.MethodGet, "/stats").Code, ShouldEqual, http.StatusOK)
			So(do(h, http.MethodGet, "/stats").Code, ShouldEqual, http.StatusOK)
			w := do(h, http.MethodGet, "/stats")
			So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			So(w.Header().Get("Retry-After"), ShouldEqual, "1")
			So(decodeError(w)["code"], ShouldEqual, "rate_limited")
		})

		Convey("/healthz is not limited", func() {
			for i := 0; i < 5; i++ {
				So(do(h, http.MethodGet, "/healthz").Code, ShouldEqual, http.StatusOK)
			}
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("An incoming request id is echoed back", t, func() {
		h := newMux(&mockDeps{})
		req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
		req.Header.Set(api.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
	})
}

func TestWithService(t *testing.T) {
	Convey("Given the API over a real service with the sample dataset", t, func() {
		svc := service.New()
		_, err := svc.Publish(context.Background(), modeltest.Sample(), "sample")
		So(err, ShouldBeNil)
		h := newMux(svc)

		Convey("The high-wicket report lists match 5", func() {
			w := do(h, http.MethodGet, "/reports/high-wicket-matches")
			So(w.Code, ShouldEqual, http.StatusOK)
			var res struct {
				Rows []types.MatchWickets `json:"rows"`
			}
			So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
			So(res.Rows, ShouldHaveLength, 1)
			So(res.Rows[0].MatchID, ShouldEqual, int64(5))
			So(res.Rows[0].TotalWickets, ShouldEqual, 11)
		})

		Convey("Unknown report names are 404", func() {
			w := do(h, http.MethodGet, "/reports/most-sixes")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Reload without a source is a server error", func() {
			w := do(h, http.MethodPost, "/reload")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}
