package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Quote represents one reaction text in the catalog. Position orders the
// round-robin rotation; gaps between positions are harmless.
type Quote struct {
	ID        string
	Text      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// QuoteRepository provides CRUD operations for quotes.
type QuoteRepository struct {
	db *sql.DB
}

// Quotes returns the quote repository for this store.
func (s *Store) Quotes() *QuoteRepository {
	return &QuoteRepository{db: s.db}
}

// Create inserts a new quote into the database.
func (r *QuoteRepository) Create(q *Quote) error {
	now := time.Now()
	q.CreatedAt = now
	q.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO quotes (id, text, position, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		q.ID, q.Text, q.Position, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a quote by its ID.
func (r *QuoteRepository) GetByID(id string) (*Quote, error) {
	q := &Quote{}

	err := r.db.QueryRow(
		`SELECT id, text, position, created_at, updated_at
		 FROM quotes WHERE id = ?`,
		id,
	).Scan(&q.ID, &q.Text, &q.Position, &q.CreatedAt, &q.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return q, nil
}

// List retrieves all quotes in catalog order.
func (r *QuoteRepository) List() ([]*Quote, error) {
	rows, err := r.db.Query(
		`SELECT id, text, position, created_at, updated_at
		 FROM quotes ORDER BY position ASC, created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quotes []*Quote
	for rows.Next() {
		q := &Quote{}

		err := rows.Scan(&q.ID, &q.Text, &q.Position, &q.CreatedAt, &q.UpdatedAt)
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quotes, nil
}

// Texts returns the quote texts in catalog order, the shape the
// round-robin cycle consumes.
func (r *QuoteRepository) Texts() ([]string, error) {
	quotes, err := r.List()
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(quotes))
	for _, q := range quotes {
		texts = append(texts, q.Text)
	}

	return texts, nil
}

// Count returns the number of quotes in the catalog.
func (r *QuoteRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM quotes`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// NextPosition returns the position for appending a quote at the end of
// the catalog.
func (r *QuoteRepository) NextPosition() (int, error) {
	var max int
	err := r.db.QueryRow(`SELECT COALESCE(MAX(position), 0) FROM quotes`).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Update updates an existing quote in the database.
func (r *QuoteRepository) Update(q *Quote) error {
	q.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE quotes SET text = ?, position = ?, updated_at = ?
		 WHERE id = ?`,
		q.Text, q.Position, q.UpdatedAt, q.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a quote from the database by its ID.
func (r *QuoteRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Seed inserts the given texts as the catalog, in order, using the
// supplied ID generator. It is intended for first-run population and
// does nothing when the catalog already has quotes.
func (r *QuoteRepository) Seed(texts []string, newID func() string) error {
	count, err := r.Count()
	if err != nil {
		return err
	}
	if count > 0 || len(texts) == 0 {
		return nil
	}

	for i, text := range texts {
		q := &Quote{
			ID:       newID(),
			Text:     text,
			Position: i + 1,
		}
		if err := r.Create(q); err != nil {
			return err
		}
	}

	return nil
}
