package reddit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const subredditPage1 = `{"kind":"Listing","data":{"after":"t3_b","children":[
 {"kind":"t3","data":{"id":"a","name":"t3_a","title":"First","author":"alice","subreddit":"golang","score":10,"num_comments":2,"domain":"go.dev","url":"https://go.dev","created_utc":1770000000}},
 {"kind":"t3","data":{"id":"b","name":"t3_b","title":"Second","author":"bob","subreddit":"golang","score":3,"is_self":true,"selftext":"hello","created_utc":1770000100.5}}
]}}`

const subredditPage2 = `{"kind":"Listing","data":{"after":null,"children":[
 {"kind":"t3","data":{"id":"c","name":"t3_c","title":"Third","author":"carol","subreddit":"golang","created_utc":1770000200}}
]}}`

func TestSubreddit_SendsUserAgentAndParsesAbout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/r/golang/about.json" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("User-Agent"); got != "resh-test" {
			t.Fatalf("unexpected user agent: %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("anonymous client must not send authorization, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"t5","data":{"display_name":"golang","title":"The Go Programming Language","subscribers":250000,"public_description":"Ask questions and post articles about the Go programming language.","created_utc":1257000000}}`))
	}))
	defer ts.Close()

	c := NewClient(Options{BaseURL: ts.URL, UserAgent: "resh-test", HTTPClient: ts.Client()})
	sub, err := c.Subreddit(context.Background(), "r/golang")
	if err != nil {
		t.Fatalf("Subreddit returned error: %v", err)
	}
	if sub.DisplayName != "golang" || sub.Subscribers != 250000 {
		t.Fatalf("unexpected subreddit: %+v", sub)
	}
	if sub.Created.Year() != 2009 {
		t.Fatalf("expected created_utc to be decoded, got %v", sub.Created)
	}
}

func TestSubreddit_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	c := NewClient(Options{BaseURL: ts.URL, HTTPClient: ts.Client()})
	_, err := c.Subreddit(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIterator_FollowsCursorLazily(t *testing.T) {
	var requests atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/r/golang/new.json" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "100" {
			t.Fatalf("unexpected limit query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("after") {
		case "":
			_, _ = w.Write([]byte(subredditPage1))
		case "t3_b":
			_, _ = w.Write([]byte(subredditPage2))
		default:
			t.Fatalf("unexpected cursor: %s", r.URL.RawQuery)
		}
	}))
	defer ts.Close()

	c := NewClient(Options{BaseURL: ts.URL, HTTPClient: ts.Client()})
	it := c.SubredditPosts("golang", "new")
	if requests.Load() != 0 {
		t.Fatal("expected no request before the first Next")
	}

	var titles []string
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		sub, isSub := item.(*Submission)
		if !isSub {
			t.Fatalf("expected submission, got %T", item)
		}
		titles = append(titles, sub.Title)
	}
	if it.Err() != nil {
		t.Fatalf("unexpected iterator error: %v", it.Err())
	}
	if strings.Join(titles, ",") != "First,Second,Third" {
		t.Fatalf("unexpected titles: %v", titles)
	}
	if got := requests.Load(); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
	if _, ok := it.Next(); ok {
		t.Fatal("expected exhausted iterator to stay exhausted")
	}
	if got := requests.Load(); got != 2 {
		t.Fatalf("expected no request after exhaustion, got %d", got)
	}
}

func TestIterator_StopsOnServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer ts.Close()

	c := NewClient(Options{BaseURL: ts.URL, HTTPClient: ts.Client()})
	it := c.Frontpage("hot")
	if _, ok := it.Next(); ok {
		t.Fatal("expected no item")
	}
	if it.Err() == nil || !strings.Contains(it.Err().Error(), "status 500") {
		t.Fatalf("expected status error, got %v", it.Err())
	}
	if _, ok := it.Next(); ok || it.Batches() != 1 {
		t.Fatalf("expected failed iterator to stay stopped, batches=%d", it.Batches())
	}
}

func TestInbox_RequiresLogin(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://127.0.0.1:1"})
	it := c.Inbox()
	if _, ok := it.Next(); ok {
		t.Fatal("expected no item without login")
	}
	if !errors.Is(it.Err(), ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", it.Err())
	}
}

func TestInbox_SendsBearerToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "bearer tok" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		_, _ = w.Write([]byte(`{"kind":"Listing","data":{"after":null,"children":[{"kind":"t4","data":{"id":"m1","author":"mod","subject":"Welcome","body":"hi","new":true,"created_utc":1770000000}}]}}`))
	}))
	defer ts.Close()

	c := NewClient(Options{BaseURL: ts.URL, AccessToken: "tok", HTTPClient: ts.Client()})
	item, ok := c.Inbox().Next()
	if !ok {
		t.Fatal("expected a message")
	}
	msg, isMsg := item.(*Message)
	if !isMsg || msg.Subject != "Welcome" || !msg.New {
		t.Fatalf("unexpected message: %#v", item)
	}
}

func TestComments_DecodesReplyTreeAndMoreStubs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/comments/abc.json" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[
 {"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"abc","title":"Post","is_self":true,"selftext":"body"}}]}},
 {"kind":"Listing","data":{"children":[
   {"kind":"t1","data":{"id":"A","author":"a","body":"A","replies":{"kind":"Listing","data":{"children":[
     {"kind":"t1","data":{"id":"B","author":"b","body":"B","replies":{"kind":"Listing","data":{"children":[
       {"kind":"t1","data":{"id":"D","author":"d","body":"D","replies":""}}]}}}},
     {"kind":"more","data":{"count":4}},
     {"kind":"t1","data":{"id":"C","author":"c","body":"C","replies":""}}]}}}},
   {"kind":"more","data":{"count":12}}
 ]}}
]`))
	}))
	defer ts.Close()

	c := NewClient(Options{BaseURL: ts.URL, HTTPClient: ts.Client()})
	sub, items, err := c.Comments(context.Background(), "t3_abc")
	if err != nil {
		t.Fatalf("Comments returned error: %v", err)
	}
	if sub.Title != "Post" || !sub.IsSelf {
		t.Fatalf("unexpected submission: %+v", sub)
	}
	if len(items) != 2 {
		t.Fatalf("expected comment + more stub, got %d", len(items))
	}
	root, ok := items[0].(*Comment)
	if !ok {
		t.Fatalf("expected comment, got %T", items[0])
	}
	if len(root.Replies) != 2 || root.Replies[0].ID != "B" || root.Replies[1].ID != "C" {
		t.Fatalf("unexpected replies: %+v", root.Replies)
	}
	if len(root.Replies[0].Replies) != 1 || root.Replies[0].Replies[0].ID != "D" {
		t.Fatalf("unexpected nested replies: %+v", root.Replies[0].Replies)
	}
	if root.CountReplies() != 3 {
		t.Fatalf("expected 3 replies in tree, got %d", root.CountReplies())
	}
	if got := KindOf(items[1]); got != "more" {
		t.Fatalf("expected more stub kind, got %q", got)
	}
}

func TestUnixTime(t *testing.T) {
	got := unixTime(1770000100.5)
	want := time.Unix(1770000100, 500000000).UTC()
	if !got.Equal(want) {
		t.Fatalf("unixTime = %v, want %v", got, want)
	}
	if !unixTime(0).IsZero() {
		t.Fatal("expected zero time for missing timestamp")
	}
}
