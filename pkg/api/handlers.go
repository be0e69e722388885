package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Tehiaohiao/wst/pkg/workingset"
)

// Server holds the API server state. The working-set tree is not
// reentrant, so every handler that touches it takes mu first; this is the
// one place in the module where the core's single-threaded non-goal is
// bridged to a concurrent caller.
type Server struct {
	mu      sync.Mutex
	tree    *workingset.WorkingSetTree[string]
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server wrapping tree.
func NewServer(tree *workingset.WorkingSetTree[string], config ServerConfig, metrics *Metrics) *Server {
	return &Server{tree: tree, config: config, metrics: metrics}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handlePut godoc
//
//	@Summary		Insert a key
//	@Description	Insert a key into the working-set tree as the new MRU element
//	@Tags			keys
//	@Produce		json
//	@Param			key	path		string	true	"Key"
//	@Success		200	{object}	keyResponse
//	@Failure		400	{object}	APIResponse
//	@Router			/api/v1/keys/{key} [put]
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key := chi.URLParam(r, "key")
	if key == "" {
		s.recordOp(r, "insert", start, false)
		sendError(w, "key is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.tree.Insert(key)
	size, tiers := s.tree.Size(), s.tree.NumTrees()
	s.mu.Unlock()

	s.recordOp(r, "insert", start, true)
	s.metrics.UpdateTreeStats(size, tiers)
	sendSuccess(w, keyResponse{Key: key, Found: true})
}

// handleGet godoc
//
//	@Summary		Search for a key
//	@Description	Search for a key, promoting it to a shallower cascade tier on a hit
//	@Tags			keys
//	@Produce		json
//	@Param			key	path		string	true	"Key"
//	@Success		200	{object}	keyResponse
//	@Failure		400	{object}	APIResponse
//	@Router			/api/v1/keys/{key} [get]
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key := chi.URLParam(r, "key")
	if key == "" {
		s.recordOp(r, "search", start, false)
		sendError(w, "key is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	found := s.tree.Search(key)
	s.mu.Unlock()

	s.recordOp(r, "search", start, true)
	sendSuccess(w, keyResponse{Key: key, Found: found})
}

// handleDelete godoc
//
//	@Summary		Remove a key
//	@Description	Permanently remove a key from the working-set tree
//	@Tags			keys
//	@Produce		json
//	@Param			key	path		string	true	"Key"
//	@Success		200	{object}	keyResponse
//	@Failure		400	{object}	APIResponse
//	@Router			/api/v1/keys/{key} [delete]
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	key := chi.URLParam(r, "key")
	if key == "" {
		s.recordOp(r, "remove", start, false)
		sendError(w, "key is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	found := s.tree.Remove(key)
	size, tiers := s.tree.Size(), s.tree.NumTrees()
	s.mu.Unlock()

	s.recordOp(r, "remove", start, found)
	s.metrics.UpdateTreeStats(size, tiers)
	sendSuccess(w, keyResponse{Key: key, Found: found})
}

// handleTree godoc
//
//	@Summary		Dump the cascade
//	@Description	Render every cascade tier breadth-first
//	@Tags			diagnostics
//	@Produce		json
//	@Success		200	{object}	treeResponse
//	@Router			/api/v1/tree [get]
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	dump := s.tree.String()
	s.mu.Unlock()
	sendSuccess(w, treeResponse{Dump: dump})
}

// handleStats godoc
//
//	@Summary		Report cascade statistics
//	@Description	Report the total key count and tier count of the cascade
//	@Tags			diagnostics
//	@Produce		json
//	@Success		200	{object}	statsResponse
//	@Router			/api/v1/stats [get]
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	size, tiers := s.tree.Size(), s.tree.NumTrees()
	s.mu.Unlock()
	sendSuccess(w, statsResponse{Size: size, NumTiers: tiers})
}

func (s *Server) recordOp(r *http.Request, operation string, start time.Time, success bool) {
	log.Printf("trace=%s op=%s success=%t duration=%s", traceIDFromContext(r.Context()), operation, success, time.Since(start))
	if s.metrics == nil {
		return
	}
	s.metrics.RecordTreeOperation(operation, success, time.Since(start))
}

// startMetricsUpdater periodically refreshes the tree-shape gauges so
// they stay current even between write requests.
func (s *Server) startMetricsUpdater() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		size, tiers := s.tree.Size(), s.tree.NumTrees()
		s.mu.Unlock()
		s.metrics.UpdateTreeStats(size, tiers)
	}
}
