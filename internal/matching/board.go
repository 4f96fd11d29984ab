package matching

import (
	"sort"

	"mentor-collab/internal/domain"
)

// Config agrupa los parametros del motor de recomendaciones.
type Config struct {
	Thresholds     Thresholds
	EvaluationType string
	FallbackLimit  int
}

func DefaultConfig() Config {
	return Config{
		Thresholds:     DefaultThresholds(),
		EvaluationType: domain.EvaluationTypeSocialEnterprise,
	}
}

// Dataset es la foto de los datos upstream sobre la que se calcula todo.
type Dataset struct {
	Mentorships    []domain.Mentorship
	Ratings        []domain.EvaluationRating
	Collaborations []domain.Collaboration
}

// Board es la vista inmutable de un Dataset ya procesado. Es segura para
// lecturas concurrentes desde varios solicitantes.
type Board struct {
	cfg         Config
	directory   map[string]domain.Mentorship
	mentorships []domain.Mentorship
	traits      map[string][]domain.Trait
	index       *TraitIndex
	busy        map[string]bool
}

// Evaluation es la foto de un par (iniciador, destino) para un tier dado.
type Evaluation struct {
	Tier                domain.Tier
	Subtier             int
	MatchedCategories   []string
	InitiatorStrengths  []string
	InitiatorWeaknesses []string
	TargetStrengths     []string
	TargetWeaknesses    []string
}

func NewBoard(cfg Config, ds Dataset) *Board {
	directory := make(map[string]domain.Mentorship, len(ds.Mentorships))
	for _, m := range ds.Mentorships {
		directory[m.ID] = m
	}
	mentorships := make([]domain.Mentorship, 0, len(directory))
	for _, m := range directory {
		mentorships = append(mentorships, m)
	}
	sort.Slice(mentorships, func(i, j int) bool { return mentorships[i].ID < mentorships[j].ID })

	busy := make(map[string]bool)
	for _, c := range ds.Collaborations {
		if !c.Active() {
			continue
		}
		busy[c.MentorshipAID] = true
		busy[c.MentorshipBID] = true
	}

	traits := ExtractTraits(ds.Ratings, cfg.EvaluationType, cfg.Thresholds)
	return &Board{
		cfg:         cfg,
		directory:   directory,
		mentorships: mentorships,
		traits:      traits,
		index:       NewTraitIndex(traits),
		busy:        busy,
	}
}

func (b *Board) Mentorship(id string) (domain.Mentorship, bool) {
	m, ok := b.directory[id]
	return m, ok
}

// Busy indica si la mentoria participa en una colaboracion activa.
func (b *Board) Busy(id string) bool {
	return b.busy[id]
}

func (b *Board) Traits(id string) (domain.TraitSummary, error) {
	if _, ok := b.directory[id]; !ok {
		return domain.TraitSummary{}, domain.ErrMentorshipNotFound
	}
	return Summarize(id, b.traits[id]), nil
}

// Candidates devuelve todos los candidatos de tiers 1-3 del solicitante, ya
// ordenados por ranking dentro de cada tier.
func (b *Board) Candidates(id string) (map[domain.Tier][]domain.CandidateMatch, error) {
	requester, ok := b.directory[id]
	if !ok {
		return nil, domain.ErrMentorshipNotFound
	}
	eligible := Eligible(requester, b.mentorships, b.busy)
	byTier := GenerateCandidates(b.index, id, eligible)
	for tier, list := range byTier {
		byTier[tier] = RankCandidates(list, b.directory)
	}
	return byTier, nil
}

// Suggest arma la lista de sugerencias: a lo sumo una por tier 1-3 y luego el fallback.
func (b *Board) Suggest(id string) ([]domain.Suggestion, error) {
	requester, ok := b.directory[id]
	if !ok {
		return nil, domain.ErrMentorshipNotFound
	}
	eligible := Eligible(requester, b.mentorships, b.busy)
	top := SelectTop(GenerateCandidates(b.index, id, eligible), b.directory)
	fallback := Fallback(id, eligible, top, b.cfg.FallbackLimit)

	suggestions := make([]domain.Suggestion, 0, len(top)+len(fallback))
	for _, c := range append(top, fallback...) {
		counterpart := b.directory[c.CounterpartID]
		suggestions = append(suggestions, domain.Suggestion{
			Tier:                    c.Tier,
			TierName:                c.Tier.String(),
			CounterpartMentorshipID: c.CounterpartID,
			CounterpartName:         counterpart.MentorName,
			CounterpartEnterprise:   counterpart.SocialEnterpriseName,
			MatchedCategories:       c.MatchedCategories,
			MatchCount:              c.MatchCount,
		})
	}
	return suggestions, nil
}

// Evaluate calcula la foto que se guarda con una solicitud. No valida
// existencia ni disponibilidad de las mentorias; eso lo hace el llamador.
func (b *Board) Evaluate(initiatorID, targetID string, tier domain.Tier) (Evaluation, error) {
	if !tier.Valid() {
		return Evaluation{}, domain.ErrInvalidTier
	}
	eval := Evaluation{
		Tier:                tier,
		MatchedCategories:   []string{},
		InitiatorStrengths:  b.index.Strengths(initiatorID),
		InitiatorWeaknesses: b.index.Weaknesses(initiatorID),
		TargetStrengths:     b.index.Strengths(targetID),
		TargetWeaknesses:    b.index.Weaknesses(targetID),
	}
	if tier == domain.TierFallback {
		return eval, nil
	}

	match, ok := b.pairTier(initiatorID, targetID, tier)
	if !ok {
		return Evaluation{}, domain.ErrTierNotQualified
	}
	eval.MatchedCategories = match.MatchedCategories

	if byTier, err := b.Candidates(initiatorID); err == nil {
		for i, c := range byTier[tier] {
			if c.CounterpartID == targetID {
				eval.Subtier = i + 1
				break
			}
		}
	}
	return eval, nil
}

// Qualifies indica si el par sigue calificando para el tier con los rasgos actuales.
func (b *Board) Qualifies(initiatorID, targetID string, tier domain.Tier) bool {
	if tier == domain.TierFallback {
		return true
	}
	_, ok := b.pairTier(initiatorID, targetID, tier)
	return ok
}

func (b *Board) pairTier(initiatorID, targetID string, tier domain.Tier) (domain.CandidateMatch, bool) {
	for _, m := range b.index.MatchPair(initiatorID, targetID) {
		if m.Tier == tier {
			return m, true
		}
	}
	return domain.CandidateMatch{}, false
}
