package matching

import (
	"sort"

	"mentor-collab/internal/domain"
)

// Fallback devuelve como tier 4 las contrapartes elegibles que no salieron en
// los tiers 1-3, ordenadas por nombre de mentor. limit <= 0 no recorta.
func Fallback(requesterID string, eligible []domain.Mentorship, selected []domain.CandidateMatch, limit int) []domain.CandidateMatch {
	taken := make(map[string]bool, len(selected))
	for _, c := range selected {
		taken[c.CounterpartID] = true
	}

	rest := make([]domain.Mentorship, 0, len(eligible))
	for _, m := range eligible {
		if !taken[m.ID] {
			rest = append(rest, m)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return counterpartLess(rest[i], rest[j], rest[i].ID, rest[j].ID)
	})
	if limit > 0 && len(rest) > limit {
		rest = rest[:limit]
	}

	out := make([]domain.CandidateMatch, 0, len(rest))
	for _, m := range rest {
		out = append(out, domain.CandidateMatch{
			MentorshipID:      requesterID,
			CounterpartID:     m.ID,
			Tier:              domain.TierFallback,
			MatchCount:        0,
			MatchedCategories: []string{},
		})
	}
	return out
}
