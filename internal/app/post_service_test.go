package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gamehaven/internal/model"
	"gamehaven/internal/repository"
)

func newPostService(t *testing.T) (*PostService, *gorm.DB) {
	t.Helper()
	db := setupDB(t)
	seedUser(t, db, "alice01")
	seedUser(t, db, "bob02")
	svc := NewPostService(repository.NewPostRepository(db), &capturePublisher{})
	return svc, db
}

func TestPostCreate(t *testing.T) {
	svc, _ := newPostService(t)

	post, err := svc.Create(1, PostInput{Title: "First post", Body: "Hello everyone."})
	require.NoError(t, err)
	require.NotZero(t, post.ID)
	require.Equal(t, uint(1), post.AuthorID)

	got, err := svc.Get(post.ID)
	require.NoError(t, err)
	require.Equal(t, "First post", got.Title)
}

func TestPostCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input PostInput
		want  []string
	}{
		{"missing title", PostInput{Body: "content"}, []string{"You must provide a title."}},
		{"missing content", PostInput{Title: "title"}, []string{"You must provide content."}},
		{"missing both", PostInput{}, []string{"You must provide a title.", "You must provide content."}},
		{"markup-only title", PostInput{Title: "<script>x()</script>", Body: "content"}, []string{"You must provide a title."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, db := newPostService(t)
			_, err := svc.Create(1, tt.input)
			require.Error(t, err)
			require.Equal(t, tt.want, ValidationMessages(err))

			var count int64
			require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
			require.Zero(t, count)
		})
	}
}

func TestPostCreateStripsMarkup(t *testing.T) {
	svc, _ := newPostService(t)

	post, err := svc.Create(1, PostInput{
		Title: "  <b>Weekend plans</b>  ",
		Body:  "Meet at <i>noon</i>.",
	})
	require.NoError(t, err)
	require.Equal(t, "Weekend plans", post.Title)
	require.Equal(t, "Meet at noon.", post.Body)
}

func TestPostOwnershipGate(t *testing.T) {
	svc, _ := newPostService(t)

	post, err := svc.Create(1, PostInput{Title: "Mine", Body: "Original body."})
	require.NoError(t, err)

	_, err = svc.Update(2, post.ID, PostInput{Title: "Stolen", Body: "Changed."})
	require.ErrorIs(t, err, ErrNotOwner)

	err = svc.Delete(2, post.ID)
	require.ErrorIs(t, err, ErrNotOwner)

	got, err := svc.Get(post.ID)
	require.NoError(t, err)
	require.Equal(t, "Mine", got.Title)
	require.Equal(t, "Original body.", got.Body)
}

func TestPostUpdateAndDelete(t *testing.T) {
	svc, _ := newPostService(t)

	post, err := svc.Create(1, PostInput{Title: "Draft", Body: "v1"})
	require.NoError(t, err)

	updated, err := svc.Update(1, post.ID, PostInput{Title: "Final", Body: "v2"})
	require.NoError(t, err)
	require.Equal(t, "Final", updated.Title)

	require.NoError(t, svc.Delete(1, post.ID))

	_, err = svc.Get(post.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostMutateMissing(t *testing.T) {
	svc, _ := newPostService(t)

	_, err := svc.Update(1, 999, PostInput{Title: "t", Body: "b"})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(1, 999), ErrNotFound)
}

func TestPostListByAuthor(t *testing.T) {
	svc, _ := newPostService(t)

	_, err := svc.Create(1, PostInput{Title: "One", Body: "b"})
	require.NoError(t, err)
	_, err = svc.Create(1, PostInput{Title: "Two", Body: "b"})
	require.NoError(t, err)
	_, err = svc.Create(2, PostInput{Title: "Other", Body: "b"})
	require.NoError(t, err)

	posts, err := svc.ListByAuthor(1)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		require.Equal(t, uint(1), p.AuthorID)
	}
}
