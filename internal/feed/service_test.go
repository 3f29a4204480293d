package feed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"diary-service/internal/feed"
	"diary-service/internal/post"
)

type fakeSource struct {
	posts []post.Post
	err   error
}

func (f *fakeSource) ListByOwner(_ context.Context, _ string) ([]post.Post, error) {
	return f.posts, f.err
}

type fakePresigner struct {
	failKeys map[string]bool
	lastTTL  time.Duration
}

func (f *fakePresigner) PresignGet(_ context.Context, key string, ttl time.Duration) (string, error) {
	f.lastTTL = ttl
	if f.failKeys[key] {
		return "", errors.New("presign failed")
	}
	return "https://store.example/" + key + "?signed", nil
}

func strptr(s string) *string { return &s }

func TestList_SignsImages(t *testing.T) {
	src := &fakeSource{posts: []post.Post{
		{ID: "p2", UserID: "u1", Content: "with image", ImagePath: strptr("u1/2.png")},
		{ID: "p1", UserID: "u1", Content: "text only"},
	}}
	pres := &fakePresigner{}
	svc := feed.NewService(src, pres)

	items, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ImageURL == nil || *items[0].ImageURL != "https://store.example/u1/2.png?signed" {
		t.Errorf("items[0].ImageURL = %v", items[0].ImageURL)
	}
	if items[1].ImageURL != nil {
		t.Errorf("text-only post got an image URL: %v", *items[1].ImageURL)
	}
	if pres.lastTTL != feed.SignedURLTTL {
		t.Errorf("presign ttl = %v, want %v", pres.lastTTL, feed.SignedURLTTL)
	}
}

func TestList_PreservesSourceOrder(t *testing.T) {
	src := &fakeSource{posts: []post.Post{
		{ID: "p3", UserID: "u1"},
		{ID: "p2", UserID: "u1"},
		{ID: "p1", UserID: "u1"},
	}}
	svc := feed.NewService(src, &fakePresigner{})

	items, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for i, want := range []string{"p3", "p2", "p1"} {
		if items[i].ID != want {
			t.Errorf("items[%d] = %s, want %s", i, items[i].ID, want)
		}
	}
}

func TestList_PresignFailureDegrades(t *testing.T) {
	src := &fakeSource{posts: []post.Post{
		{ID: "p1", UserID: "u1", ImagePath: strptr("u1/1.png")},
		{ID: "p2", UserID: "u1", ImagePath: strptr("u1/2.png")},
	}}
	pres := &fakePresigner{failKeys: map[string]bool{"u1/1.png": true}}
	svc := feed.NewService(src, pres)

	items, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ImageURL != nil {
		t.Error("failed presign still produced a URL")
	}
	if items[0].ImagePath == nil || *items[0].ImagePath != "u1/1.png" {
		t.Error("image path lost on presign failure")
	}
	if items[1].ImageURL == nil {
		t.Error("unaffected post lost its URL")
	}
}

func TestList_SourceErrorMeansEmptyFeed(t *testing.T) {
	src := &fakeSource{err: errors.New("db down")}
	svc := feed.NewService(src, &fakePresigner{})

	items, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("items = %v, want empty non-nil slice", items)
	}
}
