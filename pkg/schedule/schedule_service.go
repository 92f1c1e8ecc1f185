package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/dersplan/dersplan/internal/event_bus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	CreateEvent(ctx context.Context, event Event) (Event, error)
	CreateRecurring(ctx context.Context, event Event, mode RecurrenceMode) ([]Event, error)
	EventsForDate(ctx context.Context, date string) ([]Event, error)
	EventsForRange(ctx context.Context, from string, to string) (map[string][]Event, error)
	EditEvent(ctx context.Context, id string, updated Event) (Event, error)
	DeleteEvent(ctx context.Context, id string) error
	CleanupMalformed(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repo       Repository
	recurrence RecurrenceConfig
	bus        *event_bus.EventBus
}

func NewService(repo Repository, recurrence RecurrenceConfig, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, recurrence: recurrence, bus: bus}
}

// CreateEvent validates and stores a single event, assigning a fresh id.
// Times are normalized to HH:MM before the write.
func (s *ServiceImpl) CreateEvent(ctx context.Context, event Event) (Event, error) {
	normalized, err := normalize(event)
	if err != nil {
		return Event{}, err
	}
	normalized.ID = uuid.NewString()

	stored, err := s.repo.Store(ctx, normalized)
	if err != nil {
		return Event{}, err
	}
	s.publishCreated(ctx, stored)
	return stored, nil
}

// CreateRecurring expands the event into independent records over the
// configured horizon, one fresh id per occurrence. event.Date is the date of
// the first occurrence.
func (s *ServiceImpl) CreateRecurring(ctx context.Context, event Event, mode RecurrenceMode) ([]Event, error) {
	normalized, err := normalize(event)
	if err != nil {
		return nil, err
	}

	first, err := time.ParseInLocation(DateKeyLayout, normalized.Date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", normalized.Date, ErrValidation)
	}

	dates, err := OccurrenceDates(first, mode, s.recurrence)
	if err != nil {
		return nil, err
	}

	records := make([]Event, 0, len(dates))
	for _, date := range dates {
		occurrence := normalized
		occurrence.ID = uuid.NewString()
		occurrence.Date = DateKey(date)
		records = append(records, occurrence)
	}

	stored, err := s.repo.StoreAll(ctx, records)
	if err != nil {
		return nil, err
	}
	log.Debugf("Created %d %s occurrences of %q", len(stored), mode, normalized.Title)
	for _, record := range stored {
		s.publishCreated(ctx, record)
	}
	return stored, nil
}

func (s *ServiceImpl) EventsForDate(ctx context.Context, date string) ([]Event, error) {
	if _, err := time.Parse(DateKeyLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, ErrValidation)
	}
	return s.repo.ListByDate(ctx, date)
}

// EventsForRange returns the day buckets between from and to (inclusive),
// keyed by date, insertion order preserved within each bucket.
func (s *ServiceImpl) EventsForRange(ctx context.Context, from string, to string) (map[string][]Event, error) {
	for _, date := range []string{from, to} {
		if _, err := time.Parse(DateKeyLayout, date); err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", date, ErrValidation)
		}
	}
	events, err := s.repo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	buckets := make(map[string][]Event)
	for _, event := range events {
		buckets[event.Date] = append(buckets[event.Date], event)
	}
	return buckets, nil
}

// EditEvent replaces the record: delete by id, then create the updated event
// under a fresh id. The two steps are deliberate; an edited event never keeps
// its identity.
func (s *ServiceImpl) EditEvent(ctx context.Context, id string, updated Event) (Event, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if existing == nil {
		return Event{}, ErrNotFound
	}
	if updated.Date == "" {
		updated.Date = existing.Date
	}
	if _, err := normalize(updated); err != nil {
		return Event{}, err
	}

	if err := s.DeleteEvent(ctx, id); err != nil {
		return Event{}, err
	}
	return s.CreateEvent(ctx, updated)
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.bus != nil {
		err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ScheduleEventDeletedType, event_bus.ScheduleEventDeleted{
			ID:   existing.ID,
			Date: existing.Date,
		}))
		if err != nil {
			log.Warnf("failed to publish delete notification: %v", err)
		}
	}
	return nil
}

// CleanupMalformed removes every stored record whose times no longer parse
// and returns the number of removed records. Malformed records are a data
// hygiene issue, not a user error, so nothing is surfaced beyond logs.
func (s *ServiceImpl) CleanupMalformed(ctx context.Context) (int, error) {
	events, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, event := range events {
		if event.WellFormedTimes() {
			continue
		}
		log.Debugf("Removing malformed record %s (%s %s-%s)", event.ID, event.Date, event.StartTime, event.EndTime)
		if err := s.repo.Delete(ctx, event.ID); err != nil {
			return removed, err
		}
		removed++
	}
	if removed > 0 {
		log.Infof("Cleanup removed %d malformed records", removed)
	}
	return removed, nil
}

func (s *ServiceImpl) publishCreated(ctx context.Context, event Event) {
	if s.bus == nil {
		return
	}
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ScheduleEventCreatedType, event_bus.ScheduleEventCreated{
		ID:    event.ID,
		Date:  event.Date,
		Title: event.Title,
	}))
	if err != nil {
		log.Warnf("failed to publish create notification: %v", err)
	}
}

func normalize(event Event) (Event, error) {
	if event.Category == "" {
		event.Category = CategoryCourse
	}
	if start, err := NormalizeClock(event.StartTime); err == nil {
		event.StartTime = start
	}
	if end, err := NormalizeClock(event.EndTime); err == nil {
		event.EndTime = end
	}
	if err := event.Validate(); err != nil {
		return Event{}, err
	}
	return event, nil
}
