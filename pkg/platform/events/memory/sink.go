// Package memory provides an in-process events.Sink for tests and single-node runs.
package memory

import (
	"context"
	"sync"

	"doctorat/pkg/platform/events"
)

// Message is a captured publication.
type Message struct {
	Topic   events.Topic
	Key     string
	Payload []byte
}

// Sink records every published message. Set Err to simulate an unavailable bus.
type Sink struct {
	mu       sync.RWMutex
	messages []Message
	err      error
	keyErrs  map[string]error
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) Publish(_ context.Context, topic events.Topic, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if err := s.keyErrs[key]; err != nil {
		return err
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.messages = append(s.messages, Message{Topic: topic, Key: key, Payload: cp})
	return nil
}

// FailWith makes subsequent publications return err. Pass nil to recover.
func (s *Sink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// FailKey makes publications with key return err. Pass nil to recover.
func (s *Sink) FailKey(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.keyErrs, key)
		return
	}
	if s.keyErrs == nil {
		s.keyErrs = make(map[string]error)
	}
	s.keyErrs[key] = err
}

// Messages returns a copy of everything published so far.
func (s *Sink) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Events decodes captured messages published on topic.
func (s *Sink) Events(topic events.Topic) []events.Event {
	var out []events.Event
	for _, m := range s.Messages() {
		if m.Topic != topic {
			continue
		}
		e, err := events.Unmarshal(m.Payload)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Reset drops captured messages.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
}
