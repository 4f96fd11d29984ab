package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"mentor-collab/internal/domain"
	"mentor-collab/internal/repository"
)

// SeedData es el formato del archivo de carga inicial de directorio y evaluaciones.
type SeedData struct {
	Mentorships []domain.Mentorship `json:"mentorships"`
	Ratings     []SeedRating        `json:"ratings"`
}

type SeedRating struct {
	MentorshipID   string    `json:"mentorship_id"`
	Category       string    `json:"category"`
	Rating         int       `json:"rating"`
	EvaluationType string    `json:"evaluation_type"`
	EvaluatedAt    time.Time `json:"evaluated_at"`
}

// Seeder carga datos upstream; el directorio real lo mantiene otro subsistema.
type Seeder interface {
	Seed(ctx context.Context, data SeedData) error
}

func LoadSeedFile(path string) (SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedData{}, fmt.Errorf("read seed file: %w", err)
	}
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SeedData{}, fmt.Errorf("decode seed file: %w", err)
	}
	return data, nil
}

func (r SeedRating) toDomain() domain.EvaluationRating {
	evaluationType := r.EvaluationType
	if evaluationType == "" {
		evaluationType = domain.EvaluationTypeSocialEnterprise
	}
	evaluatedAt := r.EvaluatedAt
	if evaluatedAt.IsZero() {
		evaluatedAt = time.Now().UTC()
	}
	return domain.EvaluationRating{
		MentorshipID:   r.MentorshipID,
		Category:       r.Category,
		Rating:         r.Rating,
		EvaluationType: evaluationType,
		EvaluatedAt:    evaluatedAt,
	}
}

// Seed carga data en el almacenamiento configurado.
func (a *App) Seed(ctx context.Context, data SeedData) error {
	return a.seeder.Seed(ctx, data)
}

type memorySeeder struct {
	store *repository.MemoryStore
}

func (s memorySeeder) Seed(_ context.Context, data SeedData) error {
	for _, m := range data.Mentorships {
		s.store.AddMentorship(m)
	}
	for _, r := range data.Ratings {
		s.store.AddRatings(r.toDomain())
	}
	return nil
}

type pgSeeder struct {
	mentorships *repository.PgMentorshipRepository
	ratings     *repository.PgEvaluationRepository
}

func (s pgSeeder) Seed(ctx context.Context, data SeedData) error {
	for _, m := range data.Mentorships {
		if err := s.mentorships.UpsertMentorship(ctx, m); err != nil {
			return fmt.Errorf("upsert mentorship %s: %w", m.ID, err)
		}
	}
	for _, r := range data.Ratings {
		if err := s.ratings.InsertRating(ctx, r.toDomain()); err != nil {
			return fmt.Errorf("insert rating for %s: %w", r.MentorshipID, err)
		}
	}
	return nil
}
