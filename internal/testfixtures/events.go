package testfixtures

import (
	"context"
	"sync"
)

// PublishedEvent событие, записанное RecordingPublisher
type PublishedEvent struct {
	Key     string
	Payload any
}

// RecordingPublisher запоминает опубликованные события
type RecordingPublisher struct {
	mu     sync.Mutex
	events []PublishedEvent
	Err    error
}

// PublishJSON записывает событие
func (p *RecordingPublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, PublishedEvent{Key: key, Payload: v})
	return nil
}

// Keys возвращает ключи опубликованных событий по порядку
func (p *RecordingPublisher) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, len(p.events))
	for i, e := range p.events {
		keys[i] = e.Key
	}
	return keys
}

// Events возвращает опубликованные события
func (p *RecordingPublisher) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]PublishedEvent(nil), p.events...)
}

// NopMetrics метрики-заглушка
type NopMetrics struct{}

// IncBookingOperation ничего не делает
func (NopMetrics) IncBookingOperation(string, string) {}

// IncEquipmentOperation ничего не делает
func (NopMetrics) IncEquipmentOperation(string, string) {}
