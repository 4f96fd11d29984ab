package matching

import (
	"math"
	"sort"

	"mentor-collab/internal/domain"
)

type ratingKey struct {
	mentorshipID string
	category     string
}

type ratingSum struct {
	total int
	count int
}

// ExtractTraits agrupa las evaluaciones por (mentoria, categoria), promedia con
// dos decimales y clasifica segun los umbrales. Solo cuenta evaluaciones del
// tipo indicado (vacio = todas) y con rating dentro de 1-5.
//
// Una categoria sin evaluaciones no produce rasgo: la ausencia no es Neutral.
func ExtractTraits(ratings []domain.EvaluationRating, evaluationType string, thresholds Thresholds) map[string][]domain.Trait {
	sums := make(map[ratingKey]*ratingSum)
	for _, r := range ratings {
		if evaluationType != "" && r.EvaluationType != evaluationType {
			continue
		}
		if r.Rating < domain.MinRating || r.Rating > domain.MaxRating {
			continue
		}
		if r.MentorshipID == "" || r.Category == "" {
			continue
		}
		key := ratingKey{mentorshipID: r.MentorshipID, category: r.Category}
		acc, ok := sums[key]
		if !ok {
			acc = &ratingSum{}
			sums[key] = acc
		}
		acc.total += r.Rating
		acc.count++
	}

	traits := make(map[string][]domain.Trait)
	for key, acc := range sums {
		avg := roundAverage(float64(acc.total) / float64(acc.count))
		traits[key.mentorshipID] = append(traits[key.mentorshipID], domain.Trait{
			MentorshipID: key.mentorshipID,
			Category:     key.category,
			Average:      avg,
			Ratings:      acc.count,
			Polarity:     thresholds.Classify(avg),
		})
	}
	for id := range traits {
		list := traits[id]
		sort.Slice(list, func(i, j int) bool { return list[i].Category < list[j].Category })
	}
	return traits
}

// Summarize separa los rasgos de una mentoria por polaridad.
func Summarize(mentorshipID string, traits []domain.Trait) domain.TraitSummary {
	summary := domain.TraitSummary{
		MentorshipID: mentorshipID,
		Strengths:    []string{},
		Weaknesses:   []string{},
		Neutral:      []string{},
		Traits:       traits,
	}
	if summary.Traits == nil {
		summary.Traits = []domain.Trait{}
	}
	for _, t := range traits {
		switch t.Polarity {
		case domain.PolarityStrength:
			summary.Strengths = append(summary.Strengths, t.Category)
		case domain.PolarityWeakness:
			summary.Weaknesses = append(summary.Weaknesses, t.Category)
		default:
			summary.Neutral = append(summary.Neutral, t.Category)
		}
	}
	return summary
}

func roundAverage(v float64) float64 {
	return math.Round(v*100) / 100
}
