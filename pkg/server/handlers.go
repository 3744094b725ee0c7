package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"esfpc/fpcheck/pkg/flightplan"
	"esfpc/fpcheck/pkg/rules/engine"
	"esfpc/fpcheck/pkg/rules/manager"
	"esfpc/fpcheck/pkg/server/middleware"
	"esfpc/fpcheck/pkg/telemetry/logging"
)

// RulesResponse is the body of GET /v1/rules.
type RulesResponse struct {
	Status  manager.Status     `json:"status"`
	History []manager.Revision `json:"history,omitempty"`
	Rules   []RuleInfo         `json:"rules"`
}

// RuleInfo describes one active rule.
type RuleInfo struct {
	Ref       string `json:"ref"`
	Line      int    `json:"line,omitempty"`
	Condition string `json:"condition"`
	Kind      string `json:"kind"`
	Msg       string `json:"msg"`
}

// handleCheck checks the flight plan in the request body. ?explain=true adds
// the evaluated rules to the response.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	explain, _ := strconv.ParseBool(r.URL.Query().Get("explain"))

	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodySize)
	fp, err := flightplan.Decode(body, flightplan.FormatJSON)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteError(w, http.StatusRequestEntityTooLarge, "body_too_large", err.Error())
			return
		}
		middleware.WriteError(w, http.StatusBadRequest, "invalid_flightplan", err.Error())
		return
	}

	rep, status := s.check(r, fp, explain)
	writeJSON(w, status, rep)
}

// check runs fp through the engine and maps the outcome to a status code.
func (s *Server) check(r *http.Request, fp *flightplan.FlightPlan, explain bool) (engine.Report, int) {
	x, err := s.engine.Explain(r.Context(), fp)
	rep := engine.NewReport(fp.Name(), x, err, explain)
	if rep.CheckID != "" {
		s.logger.DebugContext(logging.WithCheckID(r.Context(), rep.CheckID), "check served",
			"flightplan", rep.FlightPlan,
			"msg", rep.Msg,
		)
	}
	switch {
	case errors.Is(err, engine.ErrNoRuleSet):
		return rep, http.StatusServiceUnavailable
	case err != nil:
		return rep, http.StatusUnprocessableEntity
	}
	return rep, http.StatusOK
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	resp := RulesResponse{Rules: []RuleInfo{}}
	if s.manager != nil {
		resp.Status = s.manager.Status()
		resp.History = s.manager.Registry().History()
	} else if rs := s.engine.RuleSet(); rs != nil {
		resp.Status = manager.Status{Version: rs.Version(), Rules: rs.Len(), LoadedAt: rs.LoadedAt()}
	}
	if rs := s.engine.RuleSet(); rs != nil {
		for _, rule := range rs.Rules() {
			resp.Rules = append(resp.Rules, RuleInfo{
				Ref:       rule.Ref(),
				Line:      rule.Line,
				Condition: rule.Text,
				Kind:      rule.Action.Kind.String(),
				Msg:       rule.Action.Msg,
			})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleReload reloads the rule source. A failed reload keeps the active set
// and answers 422 with the load error.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.manager == nil {
		middleware.WriteError(w, http.StatusNotFound, "no_manager", "rule reloading is not available")
		return
	}
	if err := s.manager.Reload(r.Context()); err != nil {
		middleware.WriteError(w, http.StatusUnprocessableEntity, "reload_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.manager.Status())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
