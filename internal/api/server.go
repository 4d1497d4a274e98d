package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"gold-goblin/internal/catalog"
	"gold-goblin/internal/config"
	"gold-goblin/internal/db"
	"gold-goblin/internal/engine"
	"gold-goblin/internal/market"
)

// Server is the HTTP API over the statistics and cost-resolution engines.
type Server struct {
	cfg *config.Config
	db  *db.DB

	mu       sync.RWMutex
	catalog  *catalog.Catalog
	store    *market.Store
	resolver *engine.Resolver
	ready    bool
}

// NewServer creates a Server with the given config and database.
func NewServer(cfg *config.Config, database *db.DB) *Server {
	return &Server{cfg: cfg, db: database}
}

// SetData is called when the catalog and market data finish loading.
func (s *Server) SetData(cat *catalog.Catalog, store *market.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = cat
	s.store = store
	s.resolver = engine.NewResolver(cat, store)
	s.ready = true
}

// Handler returns the HTTP handler with all API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("POST /api/config", s.handleSetConfig)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/items/{itemID}/stats", s.handleItemStats)
	mux.HandleFunc("GET /api/opportunities", s.handleOpportunities)
	mux.HandleFunc("GET /api/crafts", s.handleCrafts)
	mux.HandleFunc("GET /api/crafts/{recipeID}", s.handleCraftByID)
	mux.HandleFunc("GET /api/professions", s.handleProfessions)
	return mux
}

func (s *Server) snapshot() (*market.Store, *engine.Resolver, *catalog.Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store, s.resolver, s.catalog, s.ready
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	store, _, cat, ready := s.snapshot()
	resp := map[string]interface{}{"ready": ready, "realm": s.cfg.Realm}
	if ready {
		resp["items"] = store.Len()
		resp["recipes"] = len(cat.Recipes)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg)
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid config payload")
		return
	}
	*s.cfg = cfg
	if s.db != nil {
		if err := s.db.SaveConfig(s.cfg); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to persist config")
			return
		}
	}
	writeJSON(w, http.StatusOK, s.cfg)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	store, _, _, ready := s.snapshot()
	if !ready {
		writeError(w, http.StatusServiceUnavailable, "market data still loading")
		return
	}

	summary := make([]market.ItemStats, 0, store.Len())
	for _, itemID := range store.ItemIDs() {
		series, _ := store.Series(itemID)
		if stats, ok := series.Stats(); ok {
			summary = append(summary, stats)
		}
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleItemStats(w http.ResponseWriter, r *http.Request) {
	store, _, _, ready := s.snapshot()
	if !ready {
		writeError(w, http.StatusServiceUnavailable, "market data still loading")
		return
	}

	itemID, err := strconv.ParseInt(r.PathValue("itemID"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	series, ok := store.Series(int32(itemID))
	if !ok {
		writeError(w, http.StatusNotFound, "no market data for item")
		return
	}
	stats, ok := series.Stats()
	if !ok {
		writeError(w, http.StatusNotFound, "no market data for item")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	store, _, _, ready := s.snapshot()
	if !ready {
		writeError(w, http.StatusServiceUnavailable, "market data still loading")
		return
	}

	threshold := s.cfg.SignalThresholdPct
	if v := r.URL.Query().Get("threshold"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid threshold")
			return
		}
		threshold = parsed
	}

	buys, sells := store.Opportunities(threshold)
	writeJSON(w, http.StatusOK, map[string][]market.Opportunity{
		"buy":  buys,
		"sell": sells,
	})
}

func (s *Server) handleCrafts(w http.ResponseWriter, r *http.Request) {
	_, resolver, _, ready := s.snapshot()
	if !ready {
		writeError(w, http.StatusServiceUnavailable, "market data still loading")
		return
	}

	minProfit := s.cfg.MinProfitPct
	if v := r.URL.Query().Get("min_profit"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid min_profit")
			return
		}
		minProfit = parsed
	}

	ranked := resolver.RankProfitable(minProfit)
	if ranked == nil {
		ranked = []*engine.CraftAnalysis{}
	}
	writeJSON(w, http.StatusOK, ranked)
}

func (s *Server) handleCraftByID(w http.ResponseWriter, r *http.Request) {
	_, resolver, cat, ready := s.snapshot()
	if !ready {
		writeError(w, http.StatusServiceUnavailable, "market data still loading")
		return
	}

	recipeID, err := strconv.ParseInt(r.PathValue("recipeID"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid recipe id")
		return
	}
	recipe, ok := cat.RecipeFor(int32(recipeID))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown recipe")
		return
	}
	writeJSON(w, http.StatusOK, resolver.Resolve(recipe))
}

func (s *Server) handleProfessions(w http.ResponseWriter, r *http.Request) {
	_, resolver, _, ready := s.snapshot()
	if !ready {
		writeError(w, http.StatusServiceUnavailable, "market data still loading")
		return
	}
	writeJSON(w, http.StatusOK, resolver.GroupByProfession())
}
