package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/asharavesh/Hashing-Techniques/internal/engine"
	"github.com/asharavesh/Hashing-Techniques/shared/ds/hashtable"
	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/mux"
)

const (
	maxBodySize = 64 * 1024

	msgInvalidMethod = "Invalid hashing method"
	msgResetOK       = "Hash tables reset successfully"
)

var errInvalidKey = errors.New("value must be an integer")

type resetRequest struct {
	Size *int `json:"size"`
}

type insertRequest struct {
	Value interface{} `json:"value"`
}

// handleReset recreates every table. A missing body or size uses the
// default capacity.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeBody(w, r, &req); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	size := engine.DefaultCapacity
	if req.Size != nil {
		size = *req.Size
	}

	if err := s.registry.Reset(size); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"message": msgResetOK})
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	method := mux.Vars(r)["method"]
	if !validMethod(method) {
		sendError(w, http.StatusBadRequest, msgInvalidMethod)
		return
	}

	var req insertRequest
	if err := decodeBody(w, r, &req); err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}
	key, err := parseKey(req.Value)
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.registry.Insert(method, key)
	if err != nil {
		s.sendEngineError(w, err, res.Steps)
		return
	}
	sendJSON(w, http.StatusOK, models.ToInsertView(res))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	method := vars["method"]
	if !validMethod(method) {
		sendError(w, http.StatusBadRequest, msgInvalidMethod)
		return
	}

	key, err := parseKey(vars["value"])
	if err != nil {
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.registry.Search(method, key)
	if err != nil {
		s.sendEngineError(w, err, nil)
		return
	}
	sendJSON(w, http.StatusOK, models.ToSearchView(res))
}

// handleTable serves the table state with an ETag so the front end can poll
// cheaply.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	method := mux.Vars(r)["method"]
	if !validMethod(method) {
		sendError(w, http.StatusBadRequest, msgInvalidMethod)
		return
	}

	st, err := s.registry.State(method)
	if err != nil {
		s.sendEngineError(w, err, nil)
		return
	}

	body, err := json.Marshal(models.ToStateView(st))
	if err != nil {
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(body))
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]models.StatsView, 4)
	for name, st := range s.registry.Compare() {
		out[name] = models.ToStatsView(st)
	}
	sendJSON(w, http.StatusOK, out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	method := mux.Vars(r)["method"]
	if !validMethod(method) {
		sendError(w, http.StatusBadRequest, msgInvalidMethod)
		return
	}
	if s.history == nil {
		sendError(w, http.StatusNotFound, "history is disabled")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			sendError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	recs, err := s.history.Recent(r.Context(), method, limit)
	if err != nil {
		log.Errorf("[HISTORY] %s: %v", method, err)
		sendError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sendJSON(w, http.StatusOK, recs)
}

func (s *Server) sendEngineError(w http.ResponseWriter, err error, steps []hashtable.Step) {
	switch {
	case errors.Is(err, hashtable.ErrInvalidStrategy):
		sendError(w, http.StatusBadRequest, msgInvalidMethod)
	case errors.Is(err, hashtable.ErrTableFull):
		resp := errorResponse{Error: err.Error()}
		if len(steps) > 0 {
			resp.Steps = models.ToStepViews(steps)
		}
		sendJSON(w, http.StatusBadRequest, resp)
	default:
		sendError(w, http.StatusBadRequest, err.Error())
	}
}

func validMethod(name string) bool {
	_, err := hashtable.ParseStrategy(name)
	return err == nil
}

// decodeBody reads an optional JSON body. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("read body failed or too large")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %v", err)
	}
	return nil
}

// parseKey accepts a JSON number or a numeric string in the int range, which
// the journal stores as BIGINT. Fractions are truncated toward zero.
func parseKey(v interface{}) (int, error) {
	var raw string
	switch t := v.(type) {
	case json.Number:
		raw = t.String()
	case string:
		raw = strings.TrimSpace(t)
	default:
		return 0, errInvalidKey
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f < float64(math.MinInt) || f >= -float64(math.MinInt) {
		return 0, errInvalidKey
	}
	return int(f), nil
}
