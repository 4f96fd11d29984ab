package domain

import "fmt"

// Tier es la clase de prioridad de un candidato de colaboracion.
type Tier int

const (
	TierComplementary  Tier = 1
	TierSharedStrength Tier = 2
	TierSharedWeakness Tier = 3
	TierFallback       Tier = 4
)

// RankedTiers son los tiers calculados a partir de rasgos, en orden de prioridad.
var RankedTiers = []Tier{TierComplementary, TierSharedStrength, TierSharedWeakness}

func (t Tier) Valid() bool {
	return t >= TierComplementary && t <= TierFallback
}

func (t Tier) String() string {
	switch t {
	case TierComplementary:
		return "complementary"
	case TierSharedStrength:
		return "shared_strength"
	case TierSharedWeakness:
		return "shared_weakness"
	case TierFallback:
		return "fallback"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// CandidateMatch es un emparejamiento efimero calculado por el motor.
type CandidateMatch struct {
	MentorshipID      string   `json:"mentorship_id"`
	CounterpartID     string   `json:"counterpart_id"`
	Tier              Tier     `json:"tier"`
	MatchCount        int      `json:"match_count"`
	MatchedCategories []string `json:"matched_categories"`
}

// Suggestion es lo que ve el mentor solicitante.
type Suggestion struct {
	Tier                    Tier     `json:"tier"`
	TierName                string   `json:"tier_name"`
	CounterpartMentorshipID string   `json:"counterpart_mentorship_id"`
	CounterpartName         string   `json:"counterpart_name"`
	CounterpartEnterprise   string   `json:"counterpart_enterprise,omitempty"`
	MatchedCategories       []string `json:"matched_categories"`
	MatchCount              int      `json:"match_count"`
}
