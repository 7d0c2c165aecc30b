package content

import (
	"context"
	"errors"
	"testing"
)

type stylingPart struct {
	CustomClasses string `json:"customClasses"`
}

func TestGet_MissingPart(t *testing.T) {
	item := New("Widget")
	var part stylingPart
	ok, err := item.Get("WidgetStylingPart", &part)
	if ok || err != nil {
		t.Fatalf("expected missing part, got ok=%v err=%v", ok, err)
	}
}

func TestAlter_StoresMutation(t *testing.T) {
	item := New("Widget")
	if err := item.Apply("WidgetStylingPart", stylingPart{CustomClasses: "a"}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var part stylingPart
	err := item.Alter(context.Background(), "WidgetStylingPart", &part, func(context.Context) error {
		part.CustomClasses = "a b"
		return nil
	})
	if err != nil {
		t.Fatalf("alter: %v", err)
	}

	var reloaded stylingPart
	if _, err := item.Get("WidgetStylingPart", &reloaded); err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.CustomClasses != "a b" {
		t.Fatalf("mutation not stored: %+v", reloaded)
	}
}

func TestAlter_FailureLeavesPart(t *testing.T) {
	item := New("Widget")
	_ = item.Apply("WidgetStylingPart", stylingPart{CustomClasses: "keep"})

	boom := errors.New("binder failed")
	var part stylingPart
	err := item.Alter(context.Background(), "WidgetStylingPart", &part, func(context.Context) error {
		part.CustomClasses = "lost"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected binder error, got %v", err)
	}

	var reloaded stylingPart
	_, _ = item.Get("WidgetStylingPart", &reloaded)
	if reloaded.CustomClasses != "keep" {
		t.Fatalf("part changed on failure: %+v", reloaded)
	}
}

func TestAlter_MissingPart(t *testing.T) {
	var part stylingPart
	err := New("Widget").Alter(context.Background(), "WidgetStylingPart", &part, nil)
	if !errors.Is(err, ErrPartNotFound) {
		t.Fatalf("expected ErrPartNotFound, got %v", err)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	item := New("Widget")
	_ = item.Apply("WidgetStylingPart", stylingPart{CustomClasses: "a"})
	clone := item.Clone()
	_ = clone.Apply("WidgetStylingPart", stylingPart{CustomClasses: "b"})

	var part stylingPart
	_, _ = item.Get("WidgetStylingPart", &part)
	if part.CustomClasses != "a" {
		t.Fatalf("clone shares state with original")
	}
	if names := clone.PartNames(); len(names) != 1 || names[0] != "WidgetStylingPart" {
		t.Fatalf("unexpected part names: %v", names)
	}
}

func TestFields_ShareThePartObject(t *testing.T) {
	item := New("Article")
	if err := item.ApplyField("Article", "Tags", map[string][]string{"values": {"go"}}); err != nil {
		t.Fatalf("apply tags: %v", err)
	}
	if err := item.ApplyField("Article", "Aliases", map[string][]string{"values": {"a"}}); err != nil {
		t.Fatalf("apply aliases: %v", err)
	}

	var tags struct {
		Values []string `json:"values"`
	}
	ok, err := item.GetField("Article", "Tags", &tags)
	if err != nil || !ok {
		t.Fatalf("expected tags field, ok=%v err=%v", ok, err)
	}
	if len(tags.Values) != 1 || tags.Values[0] != "go" {
		t.Fatalf("unexpected tags: %+v", tags)
	}

	ok, err = item.GetField("Article", "Missing", &tags)
	if ok || err != nil {
		t.Fatalf("expected missing field, ok=%v err=%v", ok, err)
	}
	ok, err = item.GetField("Other", "Tags", &tags)
	if ok || err != nil {
		t.Fatalf("expected missing part, ok=%v err=%v", ok, err)
	}
}

func TestAlter_UnchangedSkipsStore(t *testing.T) {
	item := New("Widget")
	if err := item.Apply("WidgetStylingPart", stylingPart{CustomClasses: "a"}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var part stylingPart
	err := item.Alter(context.Background(), "WidgetStylingPart", &part, func(context.Context) error {
		part.CustomClasses = "partial"
		return ErrUnchanged
	})
	if err != nil {
		t.Fatalf("alter: %v", err)
	}

	var reloaded stylingPart
	if _, err := item.Get("WidgetStylingPart", &reloaded); err != nil {
		t.Fatalf("get: %v", err)
	}
	if reloaded.CustomClasses != "a" {
		t.Fatalf("part should be unchanged, got %q", reloaded.CustomClasses)
	}
}
