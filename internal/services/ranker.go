package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"cvscreen/dreamteam/internal/logger"
	"cvscreen/dreamteam/internal/models"
)

var ErrEmptyRoleDescription = errors.New("role description is required")

const noReasoningPlaceholder = "No reasoning provided."

// RankerService ranks every stored CV against one role description.
type RankerService interface {
	Rank(ctx context.Context, roleDescription string) (*models.RankingReport, error)
}

type rankerService struct {
	store     DocumentStore
	pdfParser PDFParserService
	evaluator EvaluatorService
	matcher   MatcherService
	worker    Worker
}

func NewRankerService(
	store DocumentStore,
	pdfParser PDFParserService,
	evaluator EvaluatorService,
	matcher MatcherService,
	worker Worker,
) RankerService {
	return &rankerService{
		store:     store,
		pdfParser: pdfParser,
		evaluator: evaluator,
		matcher:   matcher,
		worker:    worker,
	}
}

type candidateResult struct {
	done    bool
	profile *models.CandidateProfile
	reason  string
}

// Rank evaluates and match-scores each stored document, drops candidates
// whose extraction or either LLM call failed, and returns the rest ordered by
// match score descending. Equal scores keep listing order. Every document
// gets an entry in the report's outcomes, skipped ones with a reason.
func (r *rankerService) Rank(ctx context.Context, roleDescription string) (*models.RankingReport, error) {
	if strings.TrimSpace(roleDescription) == "" {
		return nil, ErrEmptyRoleDescription
	}

	filenames, err := r.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	runID := uuid.New().String()
	log := logger.Log.WithFields(logrus.Fields{
		"run_id":     runID,
		"candidates": len(filenames),
	})
	log.Info("🏆 Ranking candidates")

	results := make([]candidateResult, len(filenames))
	r.worker.Run(ctx, len(filenames), func(ctx context.Context, idx int) {
		results[idx] = r.processCandidate(ctx, filenames[idx], roleDescription)
	})

	report := &models.RankingReport{
		RunID:      runID,
		Query:      roleDescription,
		Candidates: []models.CandidateProfile{},
		Outcomes:   make([]models.CandidateOutcome, 0, len(filenames)),
	}

	for idx, res := range results {
		outcome := models.CandidateOutcome{Filename: filenames[idx]}

		switch {
		case !res.done:
			outcome.Status = models.CandidateSkipped
			outcome.Reason = fmt.Sprintf("ranking cancelled: %v", ctx.Err())
		case res.profile == nil:
			outcome.Status = models.CandidateSkipped
			outcome.Reason = res.reason
		default:
			outcome.Status = models.CandidateRanked
			report.Candidates = append(report.Candidates, *res.profile)
		}

		if outcome.Status == models.CandidateSkipped {
			log.WithField("filename", outcome.Filename).Warnf("⚠️ Candidate skipped: %s", outcome.Reason)
		}
		RankingCandidatesTotal.WithLabelValues(string(outcome.Status)).Inc()
		report.Outcomes = append(report.Outcomes, outcome)
	}

	sort.SliceStable(report.Candidates, func(i, j int) bool {
		return report.Candidates[i].MatchScore > report.Candidates[j].MatchScore
	})

	log.WithField("ranked", len(report.Candidates)).
		WithField("skipped", report.SkippedCount()).
		Info("✅ Ranking completed")

	return report, nil
}

func (r *rankerService) processCandidate(ctx context.Context, filename, roleDescription string) candidateResult {
	cvText, err := r.pdfParser.ExtractText(ctx, filename)
	if err != nil {
		return candidateResult{done: true, reason: "text extraction failed: " + err.Error()}
	}

	evaluation, err := r.evaluator.Evaluate(ctx, cvText)
	if err != nil {
		return candidateResult{done: true, reason: "evaluation failed: " + err.Error()}
	}

	match, err := r.matcher.MatchScore(ctx, cvText, roleDescription)
	if err != nil {
		return candidateResult{done: true, reason: "match scoring failed: " + err.Error()}
	}

	profile := &models.CandidateProfile{
		Filename:   filename,
		Evaluation: evaluation,
		MatchScore: 0,
		Reasoning:  noReasoningPlaceholder,
	}
	if match.MatchScore != nil {
		profile.MatchScore = match.MatchScore.Int()
	}
	if match.Reasoning != nil && *match.Reasoning != "" {
		profile.Reasoning = match.Reasoning.String()
	}

	return candidateResult{done: true, profile: profile}
}
