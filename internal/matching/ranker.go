package matching

import (
	"sort"
	"strings"

	"mentor-collab/internal/domain"
)

// RankCandidates devuelve una copia ordenada por cantidad de coincidencias
// (desc), nombre del mentor de la contraparte (asc) e id de mentoria (asc).
func RankCandidates(candidates []domain.CandidateMatch, directory map[string]domain.Mentorship) []domain.CandidateMatch {
	ranked := make([]domain.CandidateMatch, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.MatchCount != b.MatchCount {
			return a.MatchCount > b.MatchCount
		}
		return counterpartLess(directory[a.CounterpartID], directory[b.CounterpartID], a.CounterpartID, b.CounterpartID)
	})
	return ranked
}

// SelectTop elige el primer candidato de cada tier. Una contraparte aparece solo
// en su mejor tier; si ya salio en un tier anterior se usa el siguiente del ranking.
func SelectTop(byTier map[domain.Tier][]domain.CandidateMatch, directory map[string]domain.Mentorship) []domain.CandidateMatch {
	taken := make(map[string]bool)
	var selected []domain.CandidateMatch
	for _, tier := range domain.RankedTiers {
		for _, c := range RankCandidates(byTier[tier], directory) {
			if taken[c.CounterpartID] {
				continue
			}
			taken[c.CounterpartID] = true
			selected = append(selected, c)
			break
		}
	}
	return selected
}

func counterpartLess(a, b domain.Mentorship, idA, idB string) bool {
	la, lb := strings.ToLower(a.MentorName), strings.ToLower(b.MentorName)
	if la != lb {
		return la < lb
	}
	if a.MentorName != b.MentorName {
		return a.MentorName < b.MentorName
	}
	return idA < idB
}
