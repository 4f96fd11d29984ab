package service

import (
	"context"

	"mentor-collab/internal/repository"
)

// mentorParticipates indica si alguna de las mentorias pertenece al mentor.
func mentorParticipates(ctx context.Context, mentorships repository.MentorshipRepository, mentorID string, mentorshipIDs ...string) (bool, error) {
	for _, id := range mentorshipIDs {
		m, err := mentorships.GetMentorship(ctx, id)
		if err != nil {
			return false, err
		}
		if m.MentorID == mentorID {
			return true, nil
		}
	}
	return false, nil
}
