package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cvscreen/dreamteam/internal/logger"
	"cvscreen/dreamteam/internal/models"
)

const llmUnavailableMessage = "LLM client could not be initialized."

// EvaluatorService scores one CV against the fixed rubric. Every failure is
// returned as a *models.EvaluationError.
type EvaluatorService interface {
	Evaluate(ctx context.Context, cvText string) (*models.EvaluationResult, error)
}

// MatcherService scores one CV against a role description. Every failure is
// returned as a *models.EvaluationError.
type MatcherService interface {
	MatchScore(ctx context.Context, cvText, roleDescription string) (*models.MatchResult, error)
}

type evaluatorService struct {
	llm           LLMClient
	promptBuilder *PromptBuilder
}

// NewEvaluatorService accepts a nil client; evaluations then fail fast.
func NewEvaluatorService(llm LLMClient) EvaluatorService {
	return &evaluatorService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
	}
}

func (e *evaluatorService) Evaluate(ctx context.Context, cvText string) (*models.EvaluationResult, error) {
	prompt := e.promptBuilder.BuildCVEvaluationPrompt(cvText)

	var result models.EvaluationResult
	if evalErr := callJSON(ctx, e.llm, "evaluate", prompt, &result,
		"An error occurred while processing the CV"); evalErr != nil {
		return nil, evalErr
	}

	return &result, nil
}

type matcherService struct {
	llm           LLMClient
	promptBuilder *PromptBuilder
}

// NewMatcherService accepts a nil client; match scoring then fails fast.
func NewMatcherService(llm LLMClient) MatcherService {
	return &matcherService{
		llm:           llm,
		promptBuilder: NewPromptBuilder(),
	}
}

func (m *matcherService) MatchScore(ctx context.Context, cvText, roleDescription string) (*models.MatchResult, error) {
	prompt := m.promptBuilder.BuildRoleMatchPrompt(cvText, roleDescription)

	var result models.MatchResult
	if evalErr := callJSON(ctx, m.llm, "match", prompt, &result,
		"An error occurred while getting the match score"); evalErr != nil {
		return nil, evalErr
	}

	return &result, nil
}

// callJSON sends prompt once and decodes the reply into target. There is no
// retry and no validation beyond the reply being a JSON document.
func callJSON(ctx context.Context, llm LLMClient, operation string, prompt Prompt, target any, failurePrefix string) *models.EvaluationError {
	if llm == nil {
		LLMRequestsTotal.WithLabelValues("none", operation, "unavailable").Inc()
		return models.NewEvaluationError(llmUnavailableMessage)
	}

	log := logger.Log.WithField("provider", llm.Name()).WithField("operation", operation)
	log.Debugf("📝 Prompt length: %d characters", len(prompt.User))

	response, err := llm.GenerateJSON(ctx, prompt)
	if err != nil {
		LLMRequestsTotal.WithLabelValues(llm.Name(), operation, "error").Inc()
		log.WithError(err).Error("❌ LLM call failed")
		return models.NewEvaluationError(fmt.Sprintf("%s: %v", failurePrefix, err))
	}

	if err := parseJSONResponse(response, target); err != nil {
		LLMRequestsTotal.WithLabelValues(llm.Name(), operation, "invalid_json").Inc()
		log.WithError(err).Error("❌ LLM returned invalid JSON")
		return models.NewEvaluationError(fmt.Sprintf("%s: %v", failurePrefix, err))
	}

	LLMRequestsTotal.WithLabelValues(llm.Name(), operation, "success").Inc()
	log.Debugf("✅ LLM response received: %d characters", len(response))
	return nil
}

func parseJSONResponse(response string, target any) error {
	jsonStr := extractJSON(response)
	if strings.TrimSpace(jsonStr) == "" {
		return fmt.Errorf("empty response")
	}

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}

	return nil
}

// extractJSON strips markdown fences and surrounding prose from a reply that
// should contain a single JSON object.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}
