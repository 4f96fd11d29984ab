package matching

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentor-collab/internal/domain"
)

func mentorship(id, mentorID, mentorName string) domain.Mentorship {
	return domain.Mentorship{
		ID:                   id,
		MentorID:             mentorID,
		MentorName:           mentorName,
		SocialEnterpriseID:   "se-" + id,
		SocialEnterpriseName: "Enterprise " + id,
	}
}

func counterparts(suggestions []domain.Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.CounterpartMentorshipID)
	}
	return out
}

func TestBoardSuggest_ComplementaryExample(t *testing.T) {
	board := NewBoard(DefaultConfig(), Dataset{
		Mentorships: []domain.Mentorship{
			mentorship("A", "u1", "Alice"),
			mentorship("B", "u2", "Bruno"),
		},
		Ratings: concat(
			ratings("A", "Finance", 2),
			ratings("A", "Marketing", 4),
			ratings("B", "Finance", 4),
			ratings("B", "Marketing", 2),
		),
	})

	got, err := board.Suggest("A")
	require.NoError(t, err)

	want := []domain.Suggestion{{
		Tier:                    domain.TierComplementary,
		TierName:                "complementary",
		CounterpartMentorshipID: "B",
		CounterpartName:         "Bruno",
		CounterpartEnterprise:   "Enterprise B",
		MatchedCategories:       []string{"Finance"},
		MatchCount:              1,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected suggestions (-want +got):\n%s", diff)
	}
}

func TestBoardSuggest_TieBreakByMentorName(t *testing.T) {
	board := NewBoard(DefaultConfig(), Dataset{
		Mentorships: []domain.Mentorship{
			mentorship("R", "u1", "Rita"),
			mentorship("C1", "u2", "Zoe"),
			mentorship("C2", "u3", "Maria"),
		},
		Ratings: concat(
			ratings("R", "Finance", 5),
			ratings("R", "Sales", 5),
			ratings("C1", "Finance", 4),
			ratings("C1", "Sales", 4),
			ratings("C2", "Finance", 5),
			ratings("C2", "Sales", 4),
		),
	})

	got, err := board.Suggest("R")
	require.NoError(t, err)
	require.NotEmpty(t, got)

	assert.Equal(t, domain.TierSharedStrength, got[0].Tier)
	assert.Equal(t, "C2", got[0].CounterpartMentorshipID)
	assert.Equal(t, 2, got[0].MatchCount)
	assert.Equal(t, []string{"Finance", "Sales"}, got[0].MatchedCategories)

	// C1 pierde el desempate y solo queda como fallback.
	require.Len(t, got, 2)
	assert.Equal(t, domain.TierFallback, got[1].Tier)
	assert.Equal(t, "C1", got[1].CounterpartMentorshipID)
}

func TestBoardSuggest_HigherMatchCountWins(t *testing.T) {
	board := NewBoard(DefaultConfig(), Dataset{
		Mentorships: []domain.Mentorship{
			mentorship("R", "u1", "Rita"),
			mentorship("C1", "u2", "Ana"),
			mentorship("C2", "u3", "Zoe"),
		},
		Ratings: concat(
			ratings("R", "Finance", 1),
			ratings("R", "Legal", 1),
			ratings("C1", "Finance", 5),
			ratings("C2", "Finance", 5),
			ratings("C2", "Legal", 5),
		),
	})

	byTier, err := board.Candidates("R")
	require.NoError(t, err)
	require.Len(t, byTier[domain.TierComplementary], 2)
	assert.Equal(t, "C2", byTier[domain.TierComplementary][0].CounterpartID)
	assert.Equal(t, "C1", byTier[domain.TierComplementary][1].CounterpartID)
}

func TestBoardSuggest_CounterpartOnlyInBestTier(t *testing.T) {
	board := NewBoard(DefaultConfig(), Dataset{
		Mentorships: []domain.Mentorship{
			mentorship("R", "u1", "Rita"),
			mentorship("C", "u2", "Carla"),
			mentorship("D", "u3", "Diego"),
		},
		Ratings: concat(
			ratings("R", "Finance", 1),
			ratings("R", "Marketing", 5),
			ratings("C", "Finance", 5),
			ratings("C", "Marketing", 5),
			ratings("D", "Marketing", 5),
		),
	})

	got, err := board.Suggest("R")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, domain.TierComplementary, got[0].Tier)
	assert.Equal(t, "C", got[0].CounterpartMentorshipID)
	assert.Equal(t, domain.TierSharedStrength, got[1].Tier)
	assert.Equal(t, "D", got[1].CounterpartMentorshipID)
}

func TestBoardSuggest_ExcludesSelfAndSameMentor(t *testing.T) {
	board := NewBoard(DefaultConfig(), Dataset{
		Mentorships: []domain.Mentorship{
			mentorship("R", "u1", "Rita"),
			mentorship("S", "u1", "Rita"),
			mentorship("T", "u2", "Tomas"),
		},
		Ratings: concat(
			ratings("R", "Finance", 1),
			ratings("S", "Finance", 5),
			ratings("T", "Finance", 1),
		),
	})

	for _, id := range []string{"R", "S", "T"} {
		got, err := board.Suggest(id)
		require.NoError(t, err)
		requester, _ := board.Mentorship(id)
		for _, s := range got {
			counterpart, _ := board.Mentorship(s.CounterpartMentorshipID)
			if s.CounterpartMentorshipID == id {
				t.Fatalf("%s received itself as suggestion", id)
			}
			if counterpart.MentorID == requester.MentorID {
				t.Fatalf("%s received same-mentor suggestion %s", id, s.CounterpartMentorshipID)
			}
		}
	}

	got, err := board.Suggest("R")
	require.NoError(t, err)
	assert.Equal(t, []string{"T"}, counterparts(got))
	assert.Equal(t, domain.TierSharedWeakness, got[0].Tier)
}

func TestBoardSuggest_ExclusionInvariant(t *testing.T) {
	board := NewBoard(DefaultConfig(), Dataset{
		Mentorships: []domain.Mentorship{
			mentorship("X", "u1", "Xavier"),
			mentorship("Y", "u2", "Yolanda"),
			mentorship("Z", "u3", "Zoe"),
			mentorship("W", "u4", "Walter"),
		},
		Ratings: concat(
			ratings("X", "Finance", 5),
			ratings("Y", "Finance", 5),
			ratings("Z", "Finance", 1),
			ratings("W", "Finance", 2),
		),
		Collaborations: []domain.Collaboration{
			{ID: "c1", MentorshipAID: "X", MentorshipBID: "Y", Status: domain.CollaborationActive},
		},
	})

	for _, id := range []string{"X", "Y"} {
		got, err := board.Suggest(id)
		require.NoError(t, err)
		assert.Empty(t, got, "collaborating mentorship %s must not receive suggestions", id)
	}

	got, err := board.Suggest("Z")
	require.NoError(t, err)
	assert.NotContains(t, counterparts(got), "X")
	assert.NotContains(t, counterparts(got), "Y")
	assert.Equal(t, []string{"W"}, counterparts(got))
}

func TestBoardSuggest_EndedCollaborationFreesMentorships(t *testing.T) {
	board := NewBoard(DefaultConfig(), Dataset{
		Mentorships: []domain.Mentorship{
			mentorship("X", "u1", "Xavier"),
			mentorship("Y", "u2", "Yolanda"),
		},
		Collaborations: []domain.Collaboration{
			{ID: "c1", MentorshipAID: "X", MentorshipBID: "Y", Status: domain.CollaborationEnded},
		},
	})

	got, err := board.Suggest("X")
	require.NoError(t, err)
	assert.Equal(t, []string{"Y"}, counterparts(got))
	assert.False(t, board.Busy("X"))
}

func TestBoardSuggest_FallbackCompleteness(t *testing.T) {
	board := NewBoard(DefaultConfig(), Dataset{
		Mentorships: []domain.Mentorship{
			mentorship("N", "u1", "Nadia"),
			mentorship("B", "u2", "Bruno"),
			mentorship("A", "u3", "Alba"),
		},
		Ratings: concat(
			ratings("N", "Finance", 3),
			ratings("B", "Finance", 5),
		),
	})

	got, err := board.Suggest("N")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.Equal(t, domain.TierFallback, s.Tier)
		assert.Zero(t, s.MatchCount)
		assert.Empty(t, s.MatchedCategories)
	}
	assert.Equal(t, []string{"A", "B"}, counterparts(got))
}

func TestBoardSuggest_FallbackLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FallbackLimit = 1
	board := NewBoard(cfg, Dataset{
		Mentorships: []domain.Mentorship{
			mentorship("N", "u1", "Nadia"),
			mentorship("B", "u2", "Bruno"),
			mentorship("A", "u3", "Alba"),
		},
	})

	got, err := board.Suggest("N")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, counterparts(got))
}

func TestBoardSuggest_Deterministic(t *testing.T) {
	ms := []domain.Mentorship{
		mentorship("A", "u1", "Alice"),
		mentorship("B", "u2", "Bruno"),
		mentorship("C", "u3", "Bruno"),
		mentorship("D", "u4", "Dora"),
	}
	rs := concat(
		ratings("A", "Finance", 1),
		ratings("A", "Sales", 5),
		ratings("B", "Finance", 5),
		ratings("C", "Finance", 5),
		ratings("C", "Sales", 5),
		ratings("D", "Sales", 1),
	)
	reversed := make([]domain.Mentorship, len(ms))
	for i := range ms {
		reversed[len(ms)-1-i] = ms[i]
	}

	first := NewBoard(DefaultConfig(), Dataset{Mentorships: ms, Ratings: rs})
	second := NewBoard(DefaultConfig(), Dataset{Mentorships: reversed, Ratings: rs})

	base, err := first.Suggest("A")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := first.Suggest("A")
		require.NoError(t, err)
		if diff := cmp.Diff(base, again); diff != "" {
			t.Fatalf("repeated call differs (-first +again):\n%s", diff)
		}
	}
	other, err := second.Suggest("A")
	require.NoError(t, err)
	if diff := cmp.Diff(base, other); diff != "" {
		t.Fatalf("input order changed result (-first +other):\n%s", diff)
	}
}

func TestBoardSuggest_UnknownMentorship(t *testing.T) {
	board := NewBoard(DefaultConfig(), Dataset{})
	_, err := board.Suggest("missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = board.Traits("missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBoardEvaluate(t *testing.T) {
	board := NewBoard(DefaultConfig(), Dataset{
		Mentorships: []domain.Mentorship{
			mentorship("R", "u1", "Rita"),
			mentorship("C1", "u2", "Ana"),
			mentorship("C2", "u3", "Zoe"),
		},
		Ratings: concat(
			ratings("R", "Finance", 1),
			ratings("R", "Sales", 5),
			ratings("C1", "Finance", 5),
			ratings("C2", "Finance", 5),
		),
	})

	eval, err := board.Evaluate("R", "C2", domain.TierComplementary)
	require.NoError(t, err)
	assert.Equal(t, 2, eval.Subtier)
	assert.Equal(t, []string{"Finance"}, eval.MatchedCategories)
	assert.Equal(t, []string{"Sales"}, eval.InitiatorStrengths)
	assert.Equal(t, []string{"Finance"}, eval.InitiatorWeaknesses)
	assert.Equal(t, []string{"Finance"}, eval.TargetStrengths)
	assert.Empty(t, eval.TargetWeaknesses)

	_, err = board.Evaluate("R", "C2", domain.TierSharedWeakness)
	assert.ErrorIs(t, err, domain.ErrTierNotQualified)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = board.Evaluate("R", "C2", domain.Tier(9))
	assert.ErrorIs(t, err, domain.ErrInvalidTier)

	fallback, err := board.Evaluate("R", "C2", domain.TierFallback)
	require.NoError(t, err)
	assert.Zero(t, fallback.Subtier)
	assert.Empty(t, fallback.MatchedCategories)

	assert.True(t, board.Qualifies("R", "C1", domain.TierComplementary))
	assert.False(t, board.Qualifies("R", "C1", domain.TierSharedStrength))
	assert.True(t, board.Qualifies("R", "C1", domain.TierFallback))
}
