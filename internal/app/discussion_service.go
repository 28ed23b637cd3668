package app

import (
	"time"

	"gamehaven/internal/model"
	"gamehaven/internal/pkg/sanitize"
	"gamehaven/internal/repository"
)

type DiscussionService struct {
	discussionRepo *repository.DiscussionRepository
	publisher      ActivityPublisher
}

// DiscussionView is a discussion with its replies nested, built per request
// from flat join rows and never persisted.
type DiscussionView struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	AuthorID  uint          `json:"author_id"`
	CreatedAt time.Time     `json:"created_at"`
	Replies   []model.Reply `json:"replies"`
}

func NewDiscussionService(discussionRepo *repository.DiscussionRepository, publisher ActivityPublisher) *DiscussionService {
	return &DiscussionService{
		discussionRepo: discussionRepo,
		publisher:      publisher,
	}
}

// AggregateDiscussions groups left-join rows into nested views in a single
// pass. Each discussion appears exactly once, in the order its first row
// appeared; replies keep their input order; a discussion whose only row has
// no reply columns gets an empty, non-nil reply slice.
func AggregateDiscussions(rows []repository.DiscussionReplyRow) []DiscussionView {
	views := make([]DiscussionView, 0, len(rows))
	index := make(map[uint]int, len(rows))

	for _, row := range rows {
		at, seen := index[row.DiscussionID]
		if !seen {
			at = len(views)
			index[row.DiscussionID] = at
			views = append(views, DiscussionView{
				ID:        row.DiscussionID,
				Title:     row.Title,
				AuthorID:  row.AuthorID,
				CreatedAt: row.CreatedAt,
				Replies:   []model.Reply{},
			})
		}

		if row.ReplyID == nil {
			continue
		}
		reply := model.Reply{
			ID:           *row.ReplyID,
			DiscussionID: row.DiscussionID,
		}
		if row.ReplyUserID != nil {
			reply.UserID = *row.ReplyUserID
		}
		if row.ReplyText != nil {
			reply.Text = *row.ReplyText
		}
		if row.RepliedAt != nil {
			reply.CreatedAt = *row.RepliedAt
		}
		views[at].Replies = append(views[at].Replies, reply)
	}

	return views
}

func (s *DiscussionService) ListByAuthor(userID uint) ([]DiscussionView, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	rows, err := s.discussionRepo.ListRowsByAuthor(userID)
	if err != nil {
		return nil, err
	}
	return AggregateDiscussions(rows), nil
}

// Create takes the author from the verified session, never from the URL.
func (s *DiscussionService) Create(userID uint, title string) (*model.Discussion, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	title = sanitize.PlainText(title)
	if title == "" {
		return nil, validationFailed([]string{"Discussion title cannot be empty."})
	}

	discussion := &model.Discussion{
		Title:    title,
		AuthorID: userID,
	}
	if err := s.discussionRepo.Create(discussion); err != nil {
		return nil, err
	}

	recordActivity(s.publisher, userID, "created", "discussion", discussion.ID)
	return discussion, nil
}

// Detail returns the discussion and its replies oldest-first. ErrNotFound
// here surfaces as an explicit 404, unlike the other resource pages.
func (s *DiscussionService) Detail(id uint) (*model.Discussion, []model.Reply, error) {
	if id == 0 {
		return nil, nil, ErrInvalidInput
	}
	discussion, err := s.discussionRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if discussion == nil {
		return nil, nil, ErrNotFound
	}
	replies, err := s.discussionRepo.ListReplies(id)
	if err != nil {
		return nil, nil, err
	}
	return discussion, replies, nil
}

func (s *DiscussionService) AddReply(userID, discussionID uint, text string) (*model.Reply, error) {
	if userID == 0 || discussionID == 0 {
		return nil, ErrInvalidInput
	}

	text = sanitize.PlainText(text)
	if text == "" {
		return nil, validationFailed([]string{"Reply text cannot be empty."})
	}

	discussion, err := s.discussionRepo.GetByID(discussionID)
	if err != nil {
		return nil, err
	}
	if discussion == nil {
		return nil, ErrNotFound
	}

	reply := &model.Reply{
		DiscussionID: discussionID,
		UserID:       userID,
		Text:         text,
	}
	if err := s.discussionRepo.CreateReply(reply); err != nil {
		return nil, err
	}

	recordActivity(s.publisher, userID, "replied", "discussion", discussionID)
	return reply, nil
}

func (s *DiscussionService) Latest(limit int) ([]repository.DiscussionSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.discussionRepo.ListLatest(limit)
}
