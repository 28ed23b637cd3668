package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gamehaven/internal/repository"
)

func uptr(v uint) *uint { return &v }

func sptr(v string) *string { return &v }

func tptr(v time.Time) *time.Time { return &v }

func newDiscussionService(t *testing.T) *DiscussionService {
	t.Helper()
	db := setupDB(t)
	seedUser(t, db, "alice01")
	seedUser(t, db, "bob02")
	return NewDiscussionService(repository.NewDiscussionRepository(db), &capturePublisher{})
}

func TestAggregateDiscussions(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []repository.DiscussionReplyRow{
		{DiscussionID: 1, Title: "A", AuthorID: 7, CreatedAt: base},
		{DiscussionID: 2, Title: "B", AuthorID: 7, CreatedAt: base, ReplyID: uptr(10), ReplyUserID: uptr(3), ReplyText: sptr("hi"), RepliedAt: tptr(base.Add(time.Minute))},
		{DiscussionID: 2, Title: "B", AuthorID: 7, CreatedAt: base, ReplyID: uptr(11), ReplyUserID: uptr(4), ReplyText: sptr("there"), RepliedAt: tptr(base.Add(2 * time.Minute))},
	}

	views := AggregateDiscussions(rows)
	require.Len(t, views, 2)

	require.Equal(t, uint(1), views[0].ID)
	require.Equal(t, "A", views[0].Title)
	require.NotNil(t, views[0].Replies)
	require.Empty(t, views[0].Replies)

	require.Equal(t, uint(2), views[1].ID)
	require.Len(t, views[1].Replies, 2)
	require.Equal(t, uint(10), views[1].Replies[0].ID)
	require.Equal(t, "hi", views[1].Replies[0].Text)
	require.Equal(t, uint(11), views[1].Replies[1].ID)
	require.Equal(t, "there", views[1].Replies[1].Text)
}

func TestAggregatePreservesRowOrder(t *testing.T) {
	rows := []repository.DiscussionReplyRow{
		{DiscussionID: 5, Title: "newest"},
		{DiscussionID: 3, Title: "middle", ReplyID: uptr(1), ReplyText: sptr("first")},
		{DiscussionID: 3, Title: "middle", ReplyID: uptr(2), ReplyText: sptr("second")},
		{DiscussionID: 1, Title: "oldest"},
	}

	views := AggregateDiscussions(rows)
	require.Len(t, views, 3)
	require.Equal(t, []uint{5, 3, 1}, []uint{views[0].ID, views[1].ID, views[2].ID})
	require.Equal(t, "first", views[1].Replies[0].Text)
	require.Equal(t, "second", views[1].Replies[1].Text)
}

func TestAggregateEmptyInput(t *testing.T) {
	views := AggregateDiscussions(nil)
	require.NotNil(t, views)
	require.Empty(t, views)
}

func TestAggregateIsPure(t *testing.T) {
	rows := []repository.DiscussionReplyRow{
		{DiscussionID: 1, Title: "A", ReplyID: uptr(1), ReplyText: sptr("x")},
		{DiscussionID: 1, Title: "A", ReplyID: uptr(2), ReplyText: sptr("y")},
	}
	first := AggregateDiscussions(rows)
	second := AggregateDiscussions(rows)
	require.Equal(t, first, second)
}

func TestDiscussionCreateAndList(t *testing.T) {
	svc := newDiscussionService(t)

	older, err := svc.Create(1, "Best co-op games?")
	require.NoError(t, err)
	newer, err := svc.Create(1, "Patch notes discussion")
	require.NoError(t, err)

	_, err = svc.AddReply(2, older.ID, "Try overcooked")
	require.NoError(t, err)
	_, err = svc.AddReply(1, older.ID, "Already did!")
	require.NoError(t, err)

	views, err := svc.ListByAuthor(1)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// Newest discussion first; its reply slice is empty but present.
	require.Equal(t, newer.ID, views[0].ID)
	require.NotNil(t, views[0].Replies)
	require.Empty(t, views[0].Replies)

	require.Equal(t, older.ID, views[1].ID)
	require.Len(t, views[1].Replies, 2)
	require.Equal(t, "Try overcooked", views[1].Replies[0].Text)
	require.Equal(t, uint(2), views[1].Replies[0].UserID)
	require.Equal(t, "Already did!", views[1].Replies[1].Text)
}

func TestDiscussionCreateValidation(t *testing.T) {
	svc := newDiscussionService(t)

	for _, title := range []string{"", "   ", "<b></b>"} {
		_, err := svc.Create(1, title)
		require.Error(t, err)
		require.Equal(t, []string{"Discussion title cannot be empty."}, ValidationMessages(err))
	}
}

func TestDiscussionDetail(t *testing.T) {
	svc := newDiscussionService(t)

	created, err := svc.Create(1, "Speedrun routes")
	require.NoError(t, err)
	_, err = svc.AddReply(2, created.ID, "Skip the intro cave")
	require.NoError(t, err)

	discussion, replies, err := svc.Detail(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Speedrun routes", discussion.Title)
	require.Len(t, replies, 1)

	_, _, err = svc.Detail(999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReplyValidation(t *testing.T) {
	svc := newDiscussionService(t)

	created, err := svc.Create(1, "A thread")
	require.NoError(t, err)

	_, err = svc.AddReply(2, created.ID, "  ")
	require.Error(t, err)
	require.Equal(t, []string{"Reply text cannot be empty."}, ValidationMessages(err))

	_, err = svc.AddReply(2, 999, "hello")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLatestRanksByReplyActivity(t *testing.T) {
	svc := newDiscussionService(t)

	first, err := svc.Create(1, "First thread")
	require.NoError(t, err)
	second, err := svc.Create(1, "Second thread")
	require.NoError(t, err)

	_, err = svc.AddReply(2, first.ID, "bump")
	require.NoError(t, err)

	summaries, err := svc.Latest(10)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, first.ID, summaries[0].ID)
	require.NotNil(t, summaries[0].LatestReply)
	require.Equal(t, second.ID, summaries[1].ID)
	require.Nil(t, summaries[1].LatestReply)
}
