package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/types"
)

const defaultLookupLimit = 10

// LookupHandler serves player and team name lookups.
type LookupHandler struct {
	deps     Finder
	maxLimit int
}

// NewLookupHandler creates a new lookup handler. Requested limits above
// maxLimit are clamped.
func NewLookupHandler(deps Finder, maxLimit int) *LookupHandler {
	if maxLimit < 1 {
		maxLimit = defaultMaxLookupLimit
	}
	return &LookupHandler{deps: deps, maxLimit: maxLimit}
}

// HandlePlayers handles GET /players?q=&limit= requests.
func (h *LookupHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.deps.FindPlayers)
}

// HandleTeams handles GET /teams?q=&limit= requests.
func (h *LookupHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.deps.FindTeams)
}

type findFunc func(ctx context.Context, query string, limit int) ([]types.NamedEntity, error)

func (h *LookupHandler) serve(w http.ResponseWriter, r *http.Request, find findFunc) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	q := r.URL.Query()
	limit := min(defaultLookupLimit, h.maxLimit)
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, errors.Wrapf(ErrBadRequest, "limit %q", v))
			return
		}
		limit = min(n, h.maxLimit)
	}

	hits, err := find(r.Context(), q.Get("q"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hits)
}
