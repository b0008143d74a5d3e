// Package server exposes the batch trace and discretization engines
// over a JSON HTTP API.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fusiondiag/go-los-tracer/pkg/quadrature"
	"github.com/fusiondiag/go-los-tracer/pkg/scene"
)

// Server handles web requests for the LOS tracer
type Server struct {
	port   int
	router *mux.Router
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{port: port, router: mux.NewRouter()}
	s.router.HandleFunc("/api/trace", s.handleTrace).Methods(http.MethodPost)
	s.router.HandleFunc("/api/sample", s.handleSample).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return s
}

// Router returns the HTTP handler, for tests and embedding
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the server until it fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("LOS tracer API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// TraceResponse is the result of a batch trace. Rays that never enter
// the vessel have Hit false and zero coefficients.
type TraceResponse struct {
	Hit   []bool       `json:"hit"`
	KIn   []float64    `json:"kin"`
	KOut  []float64    `json:"kout"`
	VPerp [][3]float64 `json:"vperp"`
	Index [][3]int     `json:"index"`
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	var sc scene.Scene
	if err := json.NewDecoder(r.Body).Decode(&sc); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	tr, err := sc.BuildTracer()
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid scene: %v", err), http.StatusBadRequest)
		return
	}

	origins, dirs := sc.BuildRays()
	res, err := tr.TraceBatch(origins, dirs)
	if err != nil {
		http.Error(w, fmt.Sprintf("trace failed: %v", err), http.StatusBadRequest)
		return
	}

	resp := TraceResponse{
		Hit:   make([]bool, res.N()),
		KIn:   res.KIn,
		KOut:  res.KOut,
		VPerp: make([][3]float64, res.N()),
		Index: make([][3]int, res.N()),
	}
	for i := 0; i < res.N(); i++ {
		resp.Hit[i] = res.Hit(i)
		if !resp.Hit[i] {
			resp.KIn[i], resp.KOut[i] = 0, 0
			continue
		}
		resp.VPerp[i] = [3]float64{res.VPerp[i].X, res.VPerp[i].Y, res.VPerp[i].Z}
		resp.Index[i] = [3]int{res.Index[i].Struct, res.Index[i].Instance, res.Index[i].Edge}
	}
	writeJSON(w, resp)
}

// SampleRequest discretizes one segment
type SampleRequest struct {
	KMin float64 `json:"kmin"`
	KMax float64 `json:"kmax"`
	Step float64 `json:"step"`
	Mode string  `json:"mode"` // "abs" or "rel"
	Rule string  `json:"rule"` // "sum", "simps" or "romb"
}

// SampleResponse is the discretized segment
type SampleResponse struct {
	K          []float64 `json:"k"`
	Resolution float64   `json:"resolution"`
	Cells      int       `json:"cells"`
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	var req SampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	mode, rule, err := parseModeRule(req.Mode, req.Rule)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	seg, err := quadrature.SampleSegment(req.KMin, req.KMax, req.Step, mode, rule)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, SampleResponse{K: seg.K, Resolution: seg.Resolution, Cells: seg.Cells})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func parseModeRule(mode, rule string) (quadrature.StepMode, quadrature.Rule, error) {
	var m quadrature.StepMode
	switch mode {
	case "abs", "":
		m = quadrature.StepAbsolute
	case "rel":
		m = quadrature.StepRelative
	default:
		return 0, 0, fmt.Errorf("mode must be \"abs\" or \"rel\", got %q", mode)
	}

	var q quadrature.Rule
	switch rule {
	case "sum", "":
		q = quadrature.RuleSum
	case "simps":
		q = quadrature.RuleSimps
	case "romb":
		q = quadrature.RuleRomb
	default:
		return 0, 0, fmt.Errorf("rule must be \"sum\", \"simps\" or \"romb\", got %q", rule)
	}
	return m, q, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
