package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClient_RejectsMissingConfig(t *testing.T) {
	if _, err := NewClient("", "42", 0); err == nil {
		t.Errorf("expected error for empty token")
	}
	if _, err := NewClient("tok", "", 0); err == nil {
		t.Errorf("expected error for empty chat id")
	}
}

func TestClient_SendMessagePayload(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient("tok", "42", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	c.apiBase = srv.URL

	if err := c.SendMessage(context.Background(), "<b>hi</b>"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if got["parse_mode"] != "HTML" {
		t.Errorf("parse_mode = %v, want HTML", got["parse_mode"])
	}
	if got["disable_web_page_preview"] != true {
		t.Errorf("disable_web_page_preview = %v, want true", got["disable_web_page_preview"])
	}
	if got["text"] != "<b>hi</b>" {
		t.Errorf("text = %v", got["text"])
	}
}

func TestClient_NonOKStatusIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewClient("tok", "42", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	c.apiBase = srv.URL

	sendErr := c.SendMessage(context.Background(), "x")
	var statusErr *StatusError
	if !errors.As(sendErr, &statusErr) {
		t.Fatalf("error %v is not a StatusError", sendErr)
	}
	if statusErr.Code != http.StatusTooManyRequests {
		t.Errorf("code = %d, want 429", statusErr.Code)
	}
}

func TestClient_SendPhotoTrimsCaption(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := NewClient("tok", "42", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	c.apiBase = srv.URL

	long := strings.Repeat("я", 2000)
	if err := c.SendPhoto(context.Background(), "https://img.example/1.jpg", long); err != nil {
		t.Fatalf("send photo: %v", err)
	}

	caption, _ := got["caption"].(string)
	if n := len([]rune(caption)); n != captionLimit {
		t.Errorf("caption length = %d runes, want %d", n, captionLimit)
	}
}
