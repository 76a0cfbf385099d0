package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// EvaluationError is the failure branch of an evaluation or match call. It
// carries a human-readable message and renders as {"error": "..."}.
type EvaluationError struct {
	Message string `json:"error"`
}

func (e *EvaluationError) Error() string {
	return e.Message
}

func NewEvaluationError(message string) *EvaluationError {
	return &EvaluationError{Message: message}
}

type Scores struct {
	Skills     Number `json:"skills"`
	Experience Number `json:"experience"`
	Education  Number `json:"education"`
	Total      Number `json:"total"`
}

// UnmarshalJSON decodes a scores object. Any other JSON value leaves every
// score at zero.
func (s *Scores) UnmarshalJSON(data []byte) error {
	type plain Scores

	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		v = plain{}
	}

	*s = Scores(v)
	return nil
}

// EvaluationResult is the fixed-rubric assessment of one CV. Field values are
// whatever the model returned; nothing is range-checked or backfilled.
type EvaluationResult struct {
	CandidateName   Text       `json:"candidate_name,omitempty"`
	ContactEmail    Text       `json:"contact_email,omitempty"`
	ExperienceYears Number     `json:"experience_years"`
	EducationLevel  Text       `json:"education_level,omitempty"`
	SkillsFound     StringList `json:"skills_found"`
	Summary         Text       `json:"summary,omitempty"`
	Scores          Scores     `json:"scores"`
}

// MatchResult is the role-specific suitability of one CV. Both fields are
// optional in the model reply.
type MatchResult struct {
	MatchScore *Number `json:"match_score,omitempty"`
	Reasoning  *Text   `json:"reasoning,omitempty"`
}

// Number decodes JSON numbers, numeric strings and null. Anything else that
// is valid JSON decodes to zero, so only malformed documents fail to parse.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = Number(v)
			return nil
		}
	}

	*n = 0
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("0"), nil
	}
	if f == math.Trunc(f) {
		return []byte(strconv.FormatInt(int64(f), 10)), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

func (n Number) Int() int {
	return int(math.Round(float64(n)))
}

// Text decodes a JSON string as is. Null decodes to "" and any other value
// is kept as its compact JSON text.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*t = Text(buf.String())
	return nil
}

func (t Text) String() string {
	return string(t)
}

// StringList accepts either a JSON array of strings or a single
// comma-separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []any
	if err := json.Unmarshal(data, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			switch v := item.(type) {
			case string:
				out = append(out, v)
			case nil:
			default:
				b, _ := json.Marshal(v)
				out = append(out, string(b))
			}
		}
		*l = out
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*l = out
		return nil
	}

	*l = nil
	return nil
}

// CandidateProfile merges one document's evaluation with its match result.
// It only lives for the duration of a ranking request.
type CandidateProfile struct {
	Filename   string            `json:"filename"`
	Evaluation *EvaluationResult `json:"evaluation"`
	MatchScore int               `json:"match_score"`
	Reasoning  string            `json:"reasoning"`
}

type CandidateStatus string

const (
	CandidateRanked  CandidateStatus = "ranked"
	CandidateSkipped CandidateStatus = "skipped"
)

// CandidateOutcome records what happened to every listed document during a
// ranking run, in listing order.
type CandidateOutcome struct {
	Filename string          `json:"filename"`
	Status   CandidateStatus `json:"status"`
	Reason   string          `json:"reason,omitempty"`
}

type RankingReport struct {
	RunID      string             `json:"run_id"`
	Query      string             `json:"query"`
	Candidates []CandidateProfile `json:"candidates"`
	Outcomes   []CandidateOutcome `json:"outcomes"`
}

func (r *RankingReport) SkippedCount() int {
	count := 0
	for _, o := range r.Outcomes {
		if o.Status == CandidateSkipped {
			count++
		}
	}
	return count
}
