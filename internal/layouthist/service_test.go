package layouthist

import (
	"encoding/json"
	"testing"
)

func TestSaveAndHistory(t *testing.T) {
	svc := New(t.TempDir())

	first := json.RawMessage(`[{"id":"a","type":"hero","order":0,"visible":true,"props":{}}]`)
	info, err := svc.Save("home", first, "Admin", "initial layout")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if info.Hash == "" || info.Author != "Admin" {
		t.Errorf("unexpected commit info: %+v", info)
	}

	second := json.RawMessage(`[{"id":"a","type":"hero","order":0,"visible":false,"props":{}}]`)
	if _, err := svc.Save("home", second, "Admin", "hide hero"); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	history, err := svc.History("home", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(history))
	}
	if history[0].Message != "hide hero" {
		t.Errorf("expected newest commit first, got %q", history[0].Message)
	}
}

func TestHistoryForUnknownPageIsEmpty(t *testing.T) {
	svc := New(t.TempDir())
	history, err := svc.History("nope", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history, got %d", len(history))
	}
}

func TestGetByHashRoundTrip(t *testing.T) {
	svc := New(t.TempDir())

	first := json.RawMessage(`[{"id":"a","type":"hero","order":0,"visible":true,"props":{"headline":"v1"}}]`)
	info, err := svc.Save("home", first, "Admin", "v1")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := json.RawMessage(`[{"id":"a","type":"hero","order":0,"visible":true,"props":{"headline":"v2"}}]`)
	if _, err := svc.Save("home", second, "Admin", "v2"); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	payload, got, err := svc.GetByHash("home", info.Hash)
	if err != nil {
		t.Fatalf("GetByHash: %v", err)
	}
	if got.Message != "v1" {
		t.Errorf("expected commit v1, got %q", got.Message)
	}

	var sections []map[string]any
	if err := json.Unmarshal(payload, &sections); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	props, _ := sections[0]["props"].(map[string]any)
	if props["headline"] != "v1" {
		t.Errorf("expected headline v1, got %v", props["headline"])
	}
}

func TestPagesAreIsolated(t *testing.T) {
	svc := New(t.TempDir())

	if _, err := svc.Save("home", json.RawMessage(`[]`), "Admin", "home"); err != nil {
		t.Fatalf("Save home: %v", err)
	}
	if _, err := svc.Save("about", json.RawMessage(`[]`), "Admin", "about"); err != nil {
		t.Fatalf("Save about: %v", err)
	}

	homeHistory, err := svc.History("home", 10)
	if err != nil {
		t.Fatalf("History home: %v", err)
	}
	if len(homeHistory) != 1 {
		t.Errorf("expected 1 home commit, got %d", len(homeHistory))
	}
}
