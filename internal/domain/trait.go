package domain

import "fmt"

// Polarity clasifica el desempeno de una mentoria en una categoria.
type Polarity int

const (
	PolarityNeutral Polarity = iota
	PolarityStrength
	PolarityWeakness
)

func (p Polarity) String() string {
	switch p {
	case PolarityStrength:
		return "strength"
	case PolarityWeakness:
		return "weakness"
	default:
		return "neutral"
	}
}

func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Polarity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "strength":
		*p = PolarityStrength
	case "weakness":
		*p = PolarityWeakness
	case "neutral":
		*p = PolarityNeutral
	default:
		return fmt.Errorf("unknown polarity %q", string(text))
	}
	return nil
}

// Trait es un rasgo derivado de las evaluaciones; nunca se persiste.
type Trait struct {
	MentorshipID string   `json:"mentorship_id"`
	Category     string   `json:"category"`
	Average      float64  `json:"average"`
	Ratings      int      `json:"ratings"`
	Polarity     Polarity `json:"polarity"`
}

// TraitSummary agrupa los rasgos de una mentoria por polaridad.
type TraitSummary struct {
	MentorshipID string   `json:"mentorship_id"`
	Strengths    []string `json:"strengths"`
	Weaknesses   []string `json:"weaknesses"`
	Neutral      []string `json:"neutral"`
	Traits       []Trait  `json:"traits"`
}
