package workplans

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"production-schedule/internal/storage"
)

// resolveSteps turns a plan's job code into its standard-time breakdown.
// Resolution failures are display degradation, not request failures: the
// plan just renders as a plain bar.
func (s *Service) resolveSteps(ctx context.Context, row *storage.WorkPlanRow) (bool, []storage.ProcessStep) {
	const op = "service.workplans.resolveSteps"

	templates, err := s.lookupTemplates(ctx, row.JobCode)
	if err != nil {
		s.log.Warn("step resolution failed",
			slog.String("op", op),
			slog.String("job_code", row.JobCode),
			slog.String("error", err.Error()),
		)
		return false, []storage.ProcessStep{}
	}

	if !templatesComplete(templates) {
		return false, []storage.ProcessStep{}
	}

	return true, stepPercentages(templates)
}

// lookupTemplates resolves a job code to template rows, in fixed priority:
// exact code match, then product-catalog substring candidates, then
// keyword-split search for Thai-script codes. The first candidate whose
// code yields templates wins; there is no disambiguation beyond that.
func (s *Service) lookupTemplates(ctx context.Context, jobCode string) ([]*storage.TemplateRow, error) {
	templates, err := s.storage.ActiveTemplates(ctx, jobCode)
	if err != nil {
		return nil, err
	}
	if len(templates) > 0 {
		return templates, nil
	}

	// The job code may actually be a product name. Search the catalog for
	// candidates and retry the direct lookup per candidate.
	candidates, err := s.searchCandidates(ctx, jobCode)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		templates, err = s.storage.ActiveTemplates(ctx, candidate.ProductCode)
		if err != nil {
			return nil, err
		}
		if len(templates) > 0 {
			return templates, nil
		}
	}

	return nil, nil
}

func (s *Service) searchCandidates(ctx context.Context, jobCode string) ([]*storage.ProductRow, error) {
	candidates, err := s.storage.SearchProducts(ctx, "%"+jobCode+"%")
	if err != nil {
		return nil, err
	}

	if !containsThai(jobCode) {
		return candidates, nil
	}

	// Thai codes often carry extra words or spacing the catalog doesn't.
	// Loosen the match with wildcarded spaces, then word by word.
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		seen[candidate.ProductCode] = true
	}

	if strings.Contains(jobCode, " ") {
		spaced, err := s.storage.SearchProducts(ctx, "%"+strings.ReplaceAll(jobCode, " ", "%")+"%")
		if err != nil {
			return nil, err
		}
		for _, candidate := range spaced {
			if !seen[candidate.ProductCode] {
				seen[candidate.ProductCode] = true
				candidates = append(candidates, candidate)
			}
		}
	}

	if len(candidates) == 0 {
		for _, keyword := range splitKeywords(jobCode) {
			found, err := s.storage.SearchProducts(ctx, "%"+keyword+"%")
			if err != nil {
				return nil, err
			}
			for _, candidate := range found {
				if !seen[candidate.ProductCode] {
					seen[candidate.ProductCode] = true
					candidates = append(candidates, candidate)
				}
			}
		}
	}

	return candidates, nil
}

// templatesComplete requires at least one row and a positive duration on
// every row. A single missing duration discards the whole set rather than
// rendering a misleading partial breakdown.
func templatesComplete(templates []*storage.TemplateRow) bool {
	if len(templates) == 0 {
		return false
	}
	for _, template := range templates {
		if template.EstimatedDurationMinutes <= 0 {
			return false
		}
	}
	return true
}

// stepPercentages computes each step's share of the total standard time,
// rounded to two decimals.
func stepPercentages(templates []*storage.TemplateRow) []storage.ProcessStep {
	total := 0
	for _, template := range templates {
		total += template.EstimatedDurationMinutes
	}

	steps := make([]storage.ProcessStep, len(templates))
	for i, template := range templates {
		percentage := 0.0
		if total > 0 {
			percentage = math.Round(float64(template.EstimatedDurationMinutes)/float64(total)*10000) / 100
		}

		steps[i] = storage.ProcessStep{
			ProcessNumber:            template.ProcessNumber,
			ProcessDescription:       template.ProcessDescription,
			EstimatedDurationMinutes: template.EstimatedDurationMinutes,
			StandardWorkerCount:      template.StandardWorkerCount,
			Percentage:               percentage,
		}
	}

	return steps
}

func containsThai(s string) bool {
	for _, r := range s {
		if r >= 'ก' && r <= '๙' {
			return true
		}
	}
	return false
}

// splitKeywords breaks a job name on whitespace and punctuation, dropping
// single-rune fragments.
func splitKeywords(s string) []string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '(' || r == ')' || r == '-'
	})

	keywords := words[:0]
	for _, word := range words {
		if utf8.RuneCountInString(word) > 1 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}
