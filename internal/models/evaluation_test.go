package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluationResult_LenientDecoding(t *testing.T) {
	raw := `{
		"candidate_name": "Ada Lovelace",
		"contact_email": "ada@example.com",
		"experience_years": "N/A",
		"education_level": "PhD",
		"skills_found": "Go, SQL , Kafka",
		"summary": "Mathematician.",
		"scores": {"skills": 42.5, "experience": "25", "education": 20, "total": null}
	}`

	var res EvaluationResult
	require.NoError(t, json.Unmarshal([]byte(raw), &res))

	assert.Equal(t, Text("Ada Lovelace"), res.CandidateName)
	assert.Equal(t, Number(0), res.ExperienceYears)
	assert.Equal(t, StringList{"Go", "SQL", "Kafka"}, res.SkillsFound)
	assert.Equal(t, Number(42.5), res.Scores.Skills)
	assert.Equal(t, Number(25), res.Scores.Experience)
	assert.Equal(t, Number(0), res.Scores.Total)
}

func TestEvaluationResult_PassesThroughOutOfRangeScores(t *testing.T) {
	raw := `{"scores": {"skills": 80, "experience": 30, "education": 20, "total": 10}}`

	var res EvaluationResult
	require.NoError(t, json.Unmarshal([]byte(raw), &res))

	assert.Equal(t, 80, res.Scores.Skills.Int())
	assert.Equal(t, 10, res.Scores.Total.Int())
}

func TestEvaluationResult_WrongTypesPassThrough(t *testing.T) {
	raw := `{
		"candidate_name": 123,
		"contact_email": null,
		"education_level": true,
		"summary": {"text": "x"},
		"scores": "N/A"
	}`

	var res EvaluationResult
	require.NoError(t, json.Unmarshal([]byte(raw), &res))

	assert.Equal(t, Text("123"), res.CandidateName)
	assert.Equal(t, Text(""), res.ContactEmail)
	assert.Equal(t, Text("true"), res.EducationLevel)
	assert.Equal(t, Text(`{"text":"x"}`), res.Summary)
	assert.Equal(t, Scores{}, res.Scores)
}

func TestScores_NonObjectValues(t *testing.T) {
	for _, raw := range []string{`"N/A"`, `[1, 2]`, `42`, `null`} {
		var s Scores
		require.NoError(t, json.Unmarshal([]byte(raw), &s), raw)
		assert.Equal(t, Scores{}, s, raw)
	}
}

func TestMatchResult_ReasoningKeepsJSONText(t *testing.T) {
	var res MatchResult
	require.NoError(t, json.Unmarshal([]byte(`{"match_score": 80, "reasoning": ["a", "b"]}`), &res))

	require.NotNil(t, res.Reasoning)
	assert.Equal(t, `["a","b"]`, res.Reasoning.String())
	assert.Equal(t, 80, res.MatchScore.Int())
}

func TestMatchResult_MissingFieldsStayNil(t *testing.T) {
	var res MatchResult
	require.NoError(t, json.Unmarshal([]byte(`{"unexpected": true}`), &res))

	assert.Nil(t, res.MatchScore)
	assert.Nil(t, res.Reasoning)
}

func TestNumber_MarshalsWholeValuesAsIntegers(t *testing.T) {
	b, err := json.Marshal(Scores{Skills: 40, Experience: 12.5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"skills":40,"experience":12.5,"education":0,"total":0}`, string(b))
}

func TestEvaluationError_RendersAsErrorField(t *testing.T) {
	b, err := json.Marshal(NewEvaluationError("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"boom"}`, string(b))
}

func TestRankingReport_SkippedCount(t *testing.T) {
	r := &RankingReport{Outcomes: []CandidateOutcome{
		{Filename: "a.pdf", Status: CandidateSkipped, Reason: "x"},
		{Filename: "b.pdf", Status: CandidateRanked},
		{Filename: "c.pdf", Status: CandidateSkipped, Reason: "y"},
	}}
	assert.Equal(t, 2, r.SkippedCount())
}
