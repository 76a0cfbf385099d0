package services

import (
	"fmt"
)

const (
	evaluationSystemPrompt = `You are an expert HR analyst specializing in CV analysis. The CV text may be in any language, but your output MUST be in English. Your response must ONLY be the required JSON object, with no other explanations or text.`

	matchSystemPrompt = `You are an expert hiring manager. Your response must ONLY be the required JSON object, with no other explanations or text.`

	defaultTemperature = 0.2
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildCVEvaluationPrompt creates the fixed-rubric prompt: skills 50,
// experience 30, education 20, total as their sum.
func (pb *PromptBuilder) BuildCVEvaluationPrompt(cvText string) Prompt {
	user := fmt.Sprintf(`Analyze the following CV text and provide a structured evaluation. Your response MUST ONLY be a JSON object. If a field cannot be found, use "N/A" or 0.

Follow these scoring rules precisely:
1. Extract candidate_name, contact_email, experience_years, education_level and a list of skills_found.
2. Calculate a score for each category:
   - skills (Max 50 points): based on the quantity and relevance of the skills found.
   - experience (Max 30 points): based on total years of professional experience (0-2 years: 5-10 pts, 3-5 years: 15-20 pts, 6+ years: 25-30 pts). Treat "Present" as the current year.
   - education (Max 20 points): based on the highest degree (Bachelor's: 10, Master's: 15, PhD: 20).
3. total MUST be the sum of the three category scores.
4. education_level must be one of "Bachelor's", "Master's", "PhD" or "N/A".

Required JSON Structure:
{
  "candidate_name": "Full Name",
  "contact_email": "email@example.com",
  "experience_years": 5,
  "education_level": "Master's",
  "skills_found": ["Python", "SQL", "TensorFlow"],
  "summary": "A 2-3 sentence summary of the candidate's profile.",
  "scores": {
    "skills": 40,
    "experience": 20,
    "education": 15,
    "total": 75
  }
}

CV Text to Analyze:
---
%s
---`, cvText)

	return Prompt{
		System:      evaluationSystemPrompt,
		User:        user,
		Temperature: defaultTemperature,
	}
}

// BuildRoleMatchPrompt creates the prompt scoring one CV against a role or
// project description.
func (pb *PromptBuilder) BuildRoleMatchPrompt(cvText, roleDescription string) Prompt {
	user := fmt.Sprintf(`Evaluate how well a single candidate's CV matches a job description.
Your response MUST ONLY be a JSON object with exactly two keys: "match_score" (an integer from 0 to 100) and "reasoning" (a concise, one or two-sentence explanation for the score).

Job Description:
---
%s
---

Candidate's CV Text:
---
%s
---`, roleDescription, cvText)

	return Prompt{
		System:      matchSystemPrompt,
		User:        user,
		Temperature: defaultTemperature,
	}
}
