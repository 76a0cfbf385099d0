package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvscreen/dreamteam/internal/models"
)

const sampleEvaluation = "```json\n" + `{
  "candidate_name": "Grace Hopper",
  "contact_email": "grace@example.com",
  "experience_years": 7,
  "education_level": "PhD",
  "skills_found": ["COBOL", "Compilers"],
  "summary": "Pioneer.",
  "scores": {"skills": 45, "experience": 28, "education": 20, "total": 93}
}` + "\n```"

func requireEvaluationError(t *testing.T, err error) *models.EvaluationError {
	t.Helper()
	var evalErr *models.EvaluationError
	require.True(t, errors.As(err, &evalErr), "expected *models.EvaluationError, got %T", err)
	return evalErr
}

func TestEvaluator_ParsesFencedJSON(t *testing.T) {
	llm := &stubLLM{response: sampleEvaluation}

	res, err := NewEvaluatorService(llm).Evaluate(context.Background(), "CV TEXT")
	require.NoError(t, err)

	assert.Equal(t, "Grace Hopper", res.CandidateName.String())
	assert.Equal(t, models.StringList{"COBOL", "Compilers"}, res.SkillsFound)
	assert.Equal(t, 93, res.Scores.Total.Int())

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0].User, "CV TEXT")
	assert.Contains(t, llm.prompts[0].User, "Max 50 points")
	assert.NotEmpty(t, llm.prompts[0].System)
}

func TestEvaluators_UnavailableClient(t *testing.T) {
	_, err := NewEvaluatorService(nil).Evaluate(context.Background(), "cv")
	assert.Equal(t, llmUnavailableMessage, requireEvaluationError(t, err).Message)

	_, err = NewMatcherService(nil).MatchScore(context.Background(), "cv", "role")
	assert.Equal(t, llmUnavailableMessage, requireEvaluationError(t, err).Message)
}

func TestEvaluators_MalformedJSON(t *testing.T) {
	for _, reply := range []string{"not json at all", `{"match_score": 90,`, ""} {
		llm := &stubLLM{response: reply}

		_, err := NewEvaluatorService(llm).Evaluate(context.Background(), "cv")
		evalErr := requireEvaluationError(t, err)
		assert.Contains(t, evalErr.Message, "An error occurred while processing the CV")

		_, err = NewMatcherService(llm).MatchScore(context.Background(), "cv", "role")
		evalErr = requireEvaluationError(t, err)
		assert.Contains(t, evalErr.Message, "An error occurred while getting the match score")
	}
}

func TestEvaluators_WrongTypesAreNotErrors(t *testing.T) {
	replies := map[string]func(t *testing.T, res *models.EvaluationResult){
		`{"candidate_name": 123, "scores": {"total": 50}}`: func(t *testing.T, res *models.EvaluationResult) {
			assert.Equal(t, "123", res.CandidateName.String())
			assert.Equal(t, 50, res.Scores.Total.Int())
		},
		`{"candidate_name": "Ada", "scores": "N/A"}`: func(t *testing.T, res *models.EvaluationResult) {
			assert.Equal(t, "Ada", res.CandidateName.String())
			assert.Equal(t, models.Scores{}, res.Scores)
		},
		`{"summary": {"text": "x"}}`: func(t *testing.T, res *models.EvaluationResult) {
			assert.Equal(t, `{"text":"x"}`, res.Summary.String())
		},
	}

	for reply, check := range replies {
		res, err := NewEvaluatorService(&stubLLM{response: reply}).Evaluate(context.Background(), "cv")
		require.NoError(t, err, reply)
		check(t, res)
	}

	match, err := NewMatcherService(&stubLLM{response: `{"match_score": 80, "reasoning": ["a", "b"]}`}).
		MatchScore(context.Background(), "cv", "role")
	require.NoError(t, err)
	assert.Equal(t, 80, match.MatchScore.Int())
	assert.Equal(t, `["a","b"]`, match.Reasoning.String())
}

func TestEvaluators_CallFailureIsNotRetried(t *testing.T) {
	llm := &stubLLM{err: errors.New("quota exceeded")}

	_, err := NewEvaluatorService(llm).Evaluate(context.Background(), "cv")
	assert.Contains(t, requireEvaluationError(t, err).Message, "quota exceeded")

	_, err = NewMatcherService(llm).MatchScore(context.Background(), "cv", "role")
	assert.Contains(t, requireEvaluationError(t, err).Message, "quota exceeded")

	assert.Equal(t, 2, llm.calls())
}

func TestMatcher_ParsesScoreAndReasoning(t *testing.T) {
	llm := &stubLLM{response: `{"match_score": 82, "reasoning": "Strong Go background."}`}

	res, err := NewMatcherService(llm).MatchScore(context.Background(), "CV TEXT", "Backend role in Go")
	require.NoError(t, err)
	require.NotNil(t, res.MatchScore)
	require.NotNil(t, res.Reasoning)
	assert.Equal(t, 82, res.MatchScore.Int())
	assert.Equal(t, "Strong Go background.", res.Reasoning.String())

	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0].User, "Backend role in Go")
	assert.Contains(t, llm.prompts[0].User, "CV TEXT")
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("Sure! Here it is:\n```json\n{\"a\":1}\n```"))
	assert.Equal(t, "plain", extractJSON("  plain  "))
}
