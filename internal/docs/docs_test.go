package docs

import (
	"strings"
	"testing"
)

func TestTopicsResolveByName(t *testing.T) {
	names := make(map[string]bool)
	for _, topic := range All() {
		if names[topic.Name] {
			t.Fatalf("topic %q registered twice", topic.Name)
		}
		names[topic.Name] = true
		got, err := Get(topic.Name)
		if err != nil {
			t.Fatalf("Get(%q): %v", topic.Name, err)
		}
		if got.Title == "" || got.Summary == "" || got.Content == "" {
			t.Fatalf("topic %q is missing fields: %+v", topic.Name, got)
		}
	}
	for _, want := range []string{"quickstart", "placeholders", "regions", "onepagers", "server"} {
		if !names[want] {
			t.Fatalf("topic %q not registered", want)
		}
	}
}

func TestGetUnknownTopic(t *testing.T) {
	_, err := Get("frobnicate")
	if err == nil {
		t.Fatal("expected error for unknown topic")
	}
	if !strings.Contains(err.Error(), "deckmerge docs") {
		t.Fatalf("error should hint at the list command: %v", err)
	}
}
