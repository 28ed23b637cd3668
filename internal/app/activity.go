package app

import (
	"context"
	"log"
	"time"

	"gamehaven/internal/model"
	"gamehaven/internal/repository"
)

// ActivityPublisher enqueues activity records for asynchronous persistence.
type ActivityPublisher interface {
	Publish(ctx context.Context, activity model.Activity) error
}

// recordActivity is fire-and-forget: an unreachable broker must not fail
// the request that triggered the event.
func recordActivity(publisher ActivityPublisher, userID uint, verb, subject string, subjectID uint) {
	if publisher == nil {
		return
	}
	activity := model.Activity{
		UserID:    userID,
		Verb:      verb,
		Subject:   subject,
		SubjectID: subjectID,
		CreatedAt: time.Now(),
	}
	if err := publisher.Publish(context.Background(), activity); err != nil {
		log.Printf("publish activity failed: %v", err)
	}
}

type ActivityService struct {
	activityRepo *repository.ActivityRepository
}

func NewActivityService(activityRepo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

func (s *ActivityService) RecentForUser(userID uint, limit int) ([]model.Activity, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = 10
	}
	return s.activityRepo.ListRecentByUser(userID, limit)
}
