package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/repository/memory"
	"github.com/plumablog/backend/internal/worker"
)

func newCommentFixture(t *testing.T) (*CommentService, *memory.Comments, *memory.AuditLogs, *worker.Pool) {
	t.Helper()
	comments := memory.NewComments()
	logs := memory.NewAuditLogs()
	wp := worker.NewPool(1)
	return NewCommentService(comments, logs, wp), comments, logs, wp
}

func TestCreateCommentRequiresSelf(t *testing.T) {
	svc, _, _, wp := newCommentFixture(t)
	defer wp.Stop()

	_, err := svc.Create(context.Background(), auth.Identity{ID: "me"}, "hi", "post-1", "someone-else")
	wantStatus(t, err, 401)

	c, err := svc.Create(context.Background(), auth.Identity{ID: "me"}, "hi", "post-1", "me")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.UserID != "me" || c.PostID != "post-1" || c.NumberOfLikes != 0 {
		t.Fatalf("comment = %+v", c)
	}
}

func TestLikeToggleRoundtrip(t *testing.T) {
	svc, _, _, wp := newCommentFixture(t)
	defer wp.Stop()
	ctx := context.Background()
	author := auth.Identity{ID: "author"}
	c, _ := svc.Create(ctx, author, "nice", "post-1", "author")

	liker := auth.Identity{ID: "liker"}
	liked, err := svc.ToggleLike(ctx, liker, c.ID)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if liked.NumberOfLikes != 1 || !reflect.DeepEqual(liked.Likes, []string{"liker"}) {
		t.Fatalf("after like: %+v", liked)
	}

	unliked, err := svc.ToggleLike(ctx, liker, c.ID)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if unliked.NumberOfLikes != 0 || len(unliked.Likes) != 0 {
		t.Fatalf("after unlike: %+v", unliked)
	}
}

func TestLikeCounterStaysConsistent(t *testing.T) {
	svc, _, _, wp := newCommentFixture(t)
	defer wp.Stop()
	ctx := context.Background()
	author := auth.Identity{ID: "author"}
	c, _ := svc.Create(ctx, author, "nice", "post-1", "author")

	for _, id := range []string{"u1", "u2", "u3"} {
		got, err := svc.ToggleLike(ctx, auth.Identity{ID: id}, c.ID)
		if err != nil {
			t.Fatalf("ToggleLike %s: %v", id, err)
		}
		if got.NumberOfLikes != len(got.Likes) {
			t.Fatalf("counter %d != set size %d", got.NumberOfLikes, len(got.Likes))
		}
	}
}

func TestLikeMissingComment(t *testing.T) {
	svc, _, _, wp := newCommentFixture(t)
	defer wp.Stop()
	_, err := svc.ToggleLike(context.Background(), auth.Identity{ID: "u"}, "missing")
	wantStatus(t, err, 404)
}

func TestDeleteCommentExistenceBeforeOwnership(t *testing.T) {
	svc, _, _, wp := newCommentFixture(t)
	defer wp.Stop()
	// a stranger deleting a missing comment gets 404, not 401
	wantStatus(t, svc.Delete(context.Background(), auth.Identity{ID: "stranger"}, "missing"), 404)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	svc, comments, logs, wp := newCommentFixture(t)
	ctx := context.Background()
	author := auth.Identity{ID: "author"}
	c, _ := svc.Create(ctx, author, "bye", "post-1", "author")

	wantStatus(t, svc.Delete(ctx, auth.Identity{ID: "stranger"}, c.ID), 401)

	if err := svc.Delete(ctx, author, c.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if n, _ := comments.Count(ctx); n != 0 {
		t.Fatalf("comment count = %d", n)
	}

	c2, _ := svc.Create(ctx, author, "again", "post-1", "author")
	if err := svc.Delete(ctx, auth.Identity{ID: "mod", IsAdmin: true}, c2.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	wp.Stop()
	if entries := logs.Entries(); len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(entries))
	}
}

func TestListForPostNewestFirst(t *testing.T) {
	svc, _, _, wp := newCommentFixture(t)
	defer wp.Stop()
	ctx := context.Background()
	author := auth.Identity{ID: "author"}
	svc.Create(ctx, author, "first", "post-1", "author")
	time.Sleep(time.Millisecond)
	svc.Create(ctx, author, "second", "post-1", "author")
	svc.Create(ctx, author, "elsewhere", "post-2", "author")

	got, err := svc.ListForPost(ctx, "post-1")
	if err != nil {
		t.Fatalf("ListForPost: %v", err)
	}
	if len(got) != 2 || got[0].Content != "second" || got[1].Content != "first" {
		t.Fatalf("order = %+v", got)
	}
}

func TestListCommentsFilterAndTotals(t *testing.T) {
	svc, _, _, wp := newCommentFixture(t)
	defer wp.Stop()
	ctx := context.Background()
	a := auth.Identity{ID: "a"}
	b := auth.Identity{ID: "b"}
	svc.Create(ctx, a, "one", "p", "a")
	svc.Create(ctx, b, "two", "p", "b")

	res, err := svc.List(ctx, "a", pageOf(10, 0))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(res.Comments) != 1 || res.Comments[0].UserID != "a" {
		t.Fatalf("filtered = %+v", res.Comments)
	}
	if res.TotalComments != 2 || res.LastMonth != 2 {
		t.Fatalf("totals = %d/%d", res.TotalComments, res.LastMonth)
	}
}
