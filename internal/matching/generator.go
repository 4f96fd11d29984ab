package matching

import "mentor-collab/internal/domain"

// MatchPair calcula los tiers 1-3 de a frente a b, desde la perspectiva de a.
// Solo devuelve tiers con al menos una categoria en comun.
func (x *TraitIndex) MatchPair(a, b string) []domain.CandidateMatch {
	sa, sb := x.set(a), x.set(b)
	var matches []domain.CandidateMatch
	for _, tier := range domain.RankedTiers {
		var categories []string
		switch tier {
		case domain.TierComplementary:
			categories = intersect(sa.weaknessList, sb.strengths)
		case domain.TierSharedStrength:
			categories = intersect(sa.strengthList, sb.strengths)
		case domain.TierSharedWeakness:
			categories = intersect(sa.weaknessList, sb.weaknesses)
		}
		if len(categories) == 0 {
			continue
		}
		matches = append(matches, domain.CandidateMatch{
			MentorshipID:      a,
			CounterpartID:     b,
			Tier:              tier,
			MatchCount:        len(categories),
			MatchedCategories: categories,
		})
	}
	return matches
}

// Eligible filtra las contrapartes que el solicitante podria llegar a aceptar:
// otra mentoria, de otro mentor y sin colaboracion activa. Si el solicitante ya
// colabora no hay contrapartes legales.
func Eligible(requester domain.Mentorship, all []domain.Mentorship, busy map[string]bool) []domain.Mentorship {
	if busy[requester.ID] {
		return nil
	}
	var out []domain.Mentorship
	for _, m := range all {
		if m.ID == requester.ID || requester.SharesMentorWith(m) || busy[m.ID] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// GenerateCandidates produce los candidatos de tiers 1-3 del solicitante contra
// cada contraparte ya filtrada por Eligible.
func GenerateCandidates(idx *TraitIndex, requesterID string, counterparts []domain.Mentorship) map[domain.Tier][]domain.CandidateMatch {
	byTier := make(map[domain.Tier][]domain.CandidateMatch, len(domain.RankedTiers))
	for _, m := range counterparts {
		for _, match := range idx.MatchPair(requesterID, m.ID) {
			byTier[match.Tier] = append(byTier[match.Tier], match)
		}
	}
	return byTier
}
