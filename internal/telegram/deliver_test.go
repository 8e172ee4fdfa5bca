package telegram

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeSender struct {
	messages   []string
	photos     []string
	failAt     map[int]error // message index -> error
	photoErr   error
	nextSendIx int
}

func (f *fakeSender) SendMessage(ctx context.Context, text string) error {
	ix := f.nextSendIx
	f.nextSendIx++
	if err, ok := f.failAt[ix]; ok {
		return err
	}
	f.messages = append(f.messages, text)
	return nil
}

func (f *fakeSender) SendPhoto(ctx context.Context, photoURL, caption string) error {
	if f.photoErr != nil {
		return f.photoErr
	}
	f.photos = append(f.photos, photoURL)
	return nil
}

func TestDeliver_MiddleChunkFailureIsIsolated(t *testing.T) {
	s := &fakeSender{failAt: map[int]error{1: &StatusError{Code: 400}}}
	chunks := []string{"one", "two", "three"}

	report := Deliver(context.Background(), s, chunks, "", 0)

	if report.Attempted != 3 {
		t.Errorf("attempted = %d, want 3", report.Attempted)
	}
	if len(report.Failures) != 1 || report.Failures[0].Index != 1 {
		t.Fatalf("failures = %+v, want exactly index 1", report.Failures)
	}
	var statusErr *StatusError
	if !errors.As(report.Failures[0].Err, &statusErr) || statusErr.Code != 400 {
		t.Errorf("failure error = %v, want status 400", report.Failures[0].Err)
	}
	if len(s.messages) != 2 || s.messages[0] != "one" || s.messages[1] != "three" {
		t.Errorf("surviving chunks wrong: %v", s.messages)
	}
	if report.AllSent() {
		t.Errorf("AllSent should be false with a recorded failure")
	}
}

func TestDeliver_OrderPreserved(t *testing.T) {
	s := &fakeSender{}
	var chunks []string
	for i := 0; i < 5; i++ {
		chunks = append(chunks, fmt.Sprintf("part %d", i))
	}

	report := Deliver(context.Background(), s, chunks, "", 0)

	if !report.AllSent() || report.Attempted != 5 {
		t.Fatalf("unexpected report: %+v", report)
	}
	for i, msg := range s.messages {
		if want := fmt.Sprintf("part %d", i); msg != want {
			t.Errorf("message %d = %q, want %q", i, msg, want)
		}
	}
}

func TestDeliver_ImageSentBeforeText(t *testing.T) {
	s := &fakeSender{}
	report := Deliver(context.Background(), s, []string{"text"}, "https://img.example/1.jpg", 0)

	if !report.ImageSent {
		t.Errorf("image should be reported as sent")
	}
	if len(s.photos) != 1 || len(s.messages) != 1 {
		t.Fatalf("photos=%v messages=%v", s.photos, s.messages)
	}
}

func TestDeliver_ImageFailureIsNonFatal(t *testing.T) {
	s := &fakeSender{photoErr: &StatusError{Code: 404}}
	report := Deliver(context.Background(), s, []string{"a", "b"}, "https://img.example/x.jpg", 0)

	if report.ImageSent {
		t.Errorf("image should not be reported as sent")
	}
	if report.Attempted != 2 || !report.AllSent() {
		t.Errorf("text delivery should proceed after image failure: %+v", report)
	}
}
