package docs

import "fmt"

// Topic is one built-in documentation article, addressable from the
// command line by its Name slug.
type Topic struct {
	Name    string
	Title   string
	Summary string
	Content string // plain text, rendered verbatim
}

var index = func() map[string]Topic {
	m := make(map[string]Topic, len(topics))
	for _, t := range topics {
		m[t.Name] = t
	}
	return m
}()

// All lists the topics in the order they should be shown.
func All() []Topic { return topics }

// Get returns the topic registered under name.
func Get(name string) (Topic, error) {
	t, ok := index[name]
	if !ok {
		return Topic{}, fmt.Errorf("unknown topic %q, run 'deckmerge docs' to list available topics", name)
	}
	return t, nil
}
