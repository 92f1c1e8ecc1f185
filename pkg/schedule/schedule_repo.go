package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, event Event) (Event, error)
	StoreAll(ctx context.Context, events []Event) ([]Event, error)
	FindByID(ctx context.Context, id string) (*Event, error)
	ListByDate(ctx context.Context, date string) ([]Event, error)
	ListByRange(ctx context.Context, from string, to string) ([]Event, error)
	ListAll(ctx context.Context) ([]Event, error)
	Delete(ctx context.Context, id string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// insertQuery appends the event at the end of its day bucket. The position
// subselect preserves insertion order within a date.
const insertQuery = `
	INSERT INTO schedule_event (id, date, title, location, start_time, end_time, category, position)
	VALUES (?, ?, ?, ?, ?, ?, ?,
		(SELECT COALESCE(MAX(position), -1) + 1 FROM schedule_event WHERE date = ?))`

// Store stores a single Event to the database
func (r *RepositoryImpl) Store(ctx context.Context, event Event) (Event, error) {
	_, err := r.db.ExecContext(ctx, insertQuery,
		event.ID, event.Date, event.Title, event.Location, event.StartTime, event.EndTime, string(event.Category), event.Date)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return Event{}, err
	}
	return event, nil
}

// StoreAll stores the given events in a single transaction. Either all
// records are written or none are.
func (r *RepositoryImpl) StoreAll(ctx context.Context, events []Event) ([]Event, error) {
	if len(events) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		err := fmt.Errorf("could not begin transaction: %w", err)
		log.Error(err)
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return nil, err
	}
	defer stmt.Close()

	for _, event := range events {
		_, err := stmt.ExecContext(ctx,
			event.ID, event.Date, event.Title, event.Location, event.StartTime, event.EndTime, string(event.Category), event.Date)
		if err != nil {
			err := fmt.Errorf("could not execute query: %w", err)
			log.Error(err)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		err := fmt.Errorf("could not commit transaction: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

func (r *RepositoryImpl) FindByID(ctx context.Context, id string) (*Event, error) {
	query := `
		SELECT id, date, title, location, start_time, end_time, category
		FROM schedule_event
		WHERE id = ? LIMIT 1`

	row := r.db.QueryRowContext(ctx, query, id)

	var event Event
	var category string
	err := row.Scan(&event.ID, &event.Date, &event.Title, &event.Location, &event.StartTime, &event.EndTime, &category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		err := fmt.Errorf("failed when trying to find event %s: %w", id, err)
		log.Error(err)
		return nil, err
	}
	event.Category = Category(category)
	return &event, nil
}

func (r *RepositoryImpl) ListByDate(ctx context.Context, date string) ([]Event, error) {
	query := `
		SELECT id, date, title, location, start_time, end_time, category
		FROM schedule_event
		WHERE date = ?
		ORDER BY position`

	rows, err := r.db.QueryContext(ctx, query, date)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *RepositoryImpl) ListByRange(ctx context.Context, from string, to string) ([]Event, error) {
	query := `
		SELECT id, date, title, location, start_time, end_time, category
		FROM schedule_event
		WHERE date >= ? AND date <= ?
		ORDER BY date, position`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *RepositoryImpl) ListAll(ctx context.Context) ([]Event, error) {
	query := `
		SELECT id, date, title, location, start_time, end_time, category
		FROM schedule_event
		ORDER BY date, position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *RepositoryImpl) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM schedule_event WHERE id = ?", id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not read affected rows: %w", err)
		log.Error(err)
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	events := make([]Event, 0)
	for rows.Next() {
		var event Event
		var category string
		if err := rows.Scan(&event.ID, &event.Date, &event.Title, &event.Location, &event.StartTime, &event.EndTime, &category); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		event.Category = Category(category)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("row iteration failed: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}
