package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gamehaven/internal/model"
)

type DiscussionRepository struct {
	db *gorm.DB
}

// DiscussionReplyRow is one flat row of the discussions-to-replies left
// join. Reply columns are nil for a discussion without replies.
type DiscussionReplyRow struct {
	DiscussionID uint       `gorm:"column:discussion_id"`
	Title        string     `gorm:"column:title"`
	AuthorID     uint       `gorm:"column:author_id"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	ReplyID      *uint      `gorm:"column:reply_id"`
	ReplyUserID  *uint      `gorm:"column:reply_user_id"`
	ReplyText    *string    `gorm:"column:reply_text"`
	RepliedAt    *time.Time `gorm:"column:replied_at"`
}

// DiscussionSummary is a homepage row: a discussion with the timestamp of
// its newest reply, if any.
type DiscussionSummary struct {
	ID          uint       `gorm:"column:id"`
	Title       string     `gorm:"column:title"`
	AuthorID    uint       `gorm:"column:author_id"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	LatestReply *time.Time `gorm:"column:latest_reply"`
}

func NewDiscussionRepository(db *gorm.DB) *DiscussionRepository {
	return &DiscussionRepository{db: db}
}

func (r *DiscussionRepository) Create(discussion *model.Discussion) error {
	if err := r.db.Create(discussion).Error; err != nil {
		return fmt.Errorf("create discussion failed: %w", err)
	}
	return nil
}

func (r *DiscussionRepository) GetByID(id uint) (*model.Discussion, error) {
	var discussion model.Discussion
	if err := r.db.First(&discussion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query discussion by id failed: %w", err)
	}
	return &discussion, nil
}

// ListRowsByAuthor returns the join rows in the order the aggregator
// expects: discussion id descending, reply creation ascending.
func (r *DiscussionRepository) ListRowsByAuthor(authorID uint) ([]DiscussionReplyRow, error) {
	var rows []DiscussionReplyRow
	err := r.db.Raw(`
		SELECT d.id AS discussion_id, d.title, d.author_id, d.created_at,
		       r.id AS reply_id, r.user_id AS reply_user_id,
		       r.text AS reply_text, r.created_at AS replied_at
		FROM discussions d
		LEFT JOIN replies r ON d.id = r.discussion_id
		WHERE d.author_id = ?
		ORDER BY d.id DESC, r.created_at ASC`, authorID).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list discussion rows failed: %w", err)
	}
	return rows, nil
}

func (r *DiscussionRepository) ListReplies(discussionID uint) ([]model.Reply, error) {
	var replies []model.Reply
	err := r.db.Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, fmt.Errorf("list replies failed: %w", err)
	}
	return replies, nil
}

func (r *DiscussionRepository) CreateReply(reply *model.Reply) error {
	if err := r.db.Create(reply).Error; err != nil {
		return fmt.Errorf("create reply failed: %w", err)
	}
	return nil
}

// ListLatest returns discussions ranked by most recent reply activity, for
// the homepage.
func (r *DiscussionRepository) ListLatest(limit int) ([]DiscussionSummary, error) {
	var rows []DiscussionSummary
	err := r.db.Raw(`
		SELECT d.id, d.title, d.author_id, d.created_at,
		       MAX(r.created_at) AS latest_reply
		FROM discussions d
		LEFT JOIN replies r ON d.id = r.discussion_id
		GROUP BY d.id, d.title, d.author_id, d.created_at
		ORDER BY latest_reply DESC, d.created_at DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list latest discussions failed: %w", err)
	}
	return rows, nil
}
