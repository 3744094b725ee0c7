package engine

import "time"

// Report is the host-facing view of a check: what to display and why.
// The server and the CLI both render it.
type Report struct {
	CheckID        string        `json:"check_id,omitempty"`
	FlightPlan     string        `json:"flightplan"`
	Matched        bool          `json:"matched"`
	Kind           string        `json:"kind,omitempty"`
	Msg            string        `json:"msg"`
	Tag            string        `json:"tag"`
	Rule           string        `json:"rule,omitempty"`
	RuleSetVersion string        `json:"ruleset_version,omitempty"`
	Duration       time.Duration `json:"duration_ns"`
	Error          string        `json:"error,omitempty"`
	Steps          []StepReport  `json:"steps,omitempty"`
}

// StepReport is one evaluated rule in an explained Report.
type StepReport struct {
	Rule      string `json:"rule"`
	Line      int    `json:"line,omitempty"`
	Condition string `json:"condition"`
	Matched   bool   `json:"matched"`
	Error     string `json:"error,omitempty"`
}

// Failed reports whether the check aborted on an evaluation error.
func (r *Report) Failed() bool { return r.Error != "" }

// NewReport builds the report for a check of the named flight plan. x and
// err are the results of Explain (or a Check result wrapped with
// &Explanation{Result: res}). A failed check is shown as FailedMsg with the
// emergency tag. Steps are kept only when withSteps is set.
func NewReport(name string, x *Explanation, err error, withSteps bool) Report {
	rep := Report{FlightPlan: name}
	if x != nil && x.Result != nil {
		rep.CheckID = x.CheckID
		rep.RuleSetVersion = x.RuleSetVersion
		rep.Duration = x.Duration
		if withSteps {
			for _, s := range x.Steps {
				step := StepReport{
					Rule:      s.Rule.Ref(),
					Line:      s.Rule.Line,
					Condition: conditionText(s.Rule),
					Matched:   s.Matched,
				}
				if s.Err != nil {
					step.Error = s.Err.Error()
				}
				rep.Steps = append(rep.Steps, step)
			}
		}
	}

	if err != nil {
		rep.Msg = FailedMsg
		rep.Tag = TagEmergency
		rep.Error = err.Error()
		return rep
	}

	rep.Kind = x.Action.Kind.String()
	rep.Msg = x.Action.Msg
	rep.Tag = x.Action.Kind.Tag()
	if x.Rule != nil {
		rep.Matched = true
		rep.Rule = x.Rule.Ref()
	}
	return rep
}

func conditionText(r *Rule) string {
	if r.Text != "" {
		return r.Text
	}
	if r.Condition != nil {
		return r.Condition.String()
	}
	return ""
}
