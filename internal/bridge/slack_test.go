package bridge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// fakeSlack records chat.postMessage form posts.
type fakeSlack struct {
	mu    sync.Mutex
	posts []url.Values
	fail  string
}

func (f *fakeSlack) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	f.mu.Lock()
	f.posts = append(f.posts, r.PostForm)
	fail := f.fail
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path != "/chat.postMessage" {
		_, _ = w.Write([]byte(`{"ok":false,"error":"unknown_method"}`))
		return
	}
	if fail != "" {
		_, _ = w.Write([]byte(`{"ok":false,"error":"` + fail + `"}`))
		return
	}
	_, _ = w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000100"}`))
}

func (f *fakeSlack) getPosts() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.posts...)
}

func TestSlackNotifier_Send(t *testing.T) {
	fake := &fakeSlack{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	n := NewSlackNotifier(SlackConfig{BotToken: "xoxb-test", Channel: "CDEFAULT", APIURL: srv.URL + "/"})
	if err := n.Send(context.Background(), "C123", "📅 Jadwal Shift"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	posts := fake.getPosts()
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if posts[0].Get("channel") != "C123" {
		t.Errorf("channel = %q, want C123", posts[0].Get("channel"))
	}
	if posts[0].Get("text") != "📅 Jadwal Shift" {
		t.Errorf("text = %q", posts[0].Get("text"))
	}
}

func TestSlackNotifier_DefaultChannel(t *testing.T) {
	fake := &fakeSlack{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	n := NewSlackNotifier(SlackConfig{BotToken: "xoxb-test", Channel: "CDEFAULT", APIURL: srv.URL + "/"})
	if err := n.Send(context.Background(), "", "hi"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := fake.getPosts()[0].Get("channel"); got != "CDEFAULT" {
		t.Errorf("channel = %q, want CDEFAULT", got)
	}
}

func TestSlackNotifier_APIError(t *testing.T) {
	fake := &fakeSlack{fail: "channel_not_found"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	n := NewSlackNotifier(SlackConfig{BotToken: "xoxb-test", APIURL: srv.URL + "/"})
	if err := n.Send(context.Background(), "CNOPE", "hi"); err == nil {
		t.Error("expected error from Slack API")
	}
}

func TestSlackNotifier_NoChannel(t *testing.T) {
	n := NewSlackNotifier(SlackConfig{BotToken: "xoxb-test"})
	if err := n.Send(context.Background(), "", "hi"); err == nil {
		t.Error("expected error without channel")
	}
}
