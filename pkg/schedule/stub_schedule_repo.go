package schedule

import (
	"context"
)

// StubRepository is an in-memory Repository used by service tests.
type StubRepository struct {
	events []Event
}

func (s *StubRepository) Store(ctx context.Context, event Event) (Event, error) {
	s.events = append(s.events, event)
	return event, nil
}

func (s *StubRepository) StoreAll(ctx context.Context, events []Event) ([]Event, error) {
	s.events = append(s.events, events...)
	return events, nil
}

func (s *StubRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	for i := range s.events {
		if s.events[i].ID == id {
			event := s.events[i]
			return &event, nil
		}
	}
	return nil, nil
}

func (s *StubRepository) ListByDate(ctx context.Context, date string) ([]Event, error) {
	result := make([]Event, 0)
	for _, event := range s.events {
		if event.Date == date {
			result = append(result, event)
		}
	}
	return result, nil
}

func (s *StubRepository) ListByRange(ctx context.Context, from string, to string) ([]Event, error) {
	result := make([]Event, 0)
	for _, event := range s.events {
		if event.Date >= from && event.Date <= to {
			result = append(result, event)
		}
	}
	return result, nil
}

func (s *StubRepository) ListAll(ctx context.Context) ([]Event, error) {
	result := make([]Event, len(s.events))
	copy(result, s.events)
	return result, nil
}

func (s *StubRepository) Delete(ctx context.Context, id string) error {
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
