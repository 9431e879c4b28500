package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"estate_portal_backend/internal/listings/domain"
	"estate_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const listingNotFoundMessage = "listing not found"

const listingColumns = `id, builder_id, builder_name, name, status, featured, property_type,
	city, area, price_min, price_max, possession_date, views, inquiries, document,
	created_at, updated_at`

// Repo implements the listings repository. Queryable fields live in columns,
// the rest of the listing lives in the JSONB document column.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new listings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListByStatus returns listings in the given status.
func (r *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM listings
		WHERE status = $1
		ORDER BY featured DESC, created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("list listings by status: %w", err)
	}
	return collectListings(rows, "list listings by status")
}

// ListByBuilder returns every listing of one builder, newest first.
func (r *Repo) ListByBuilder(ctx context.Context, builderID uuid.UUID) ([]domain.Listing, error) {
	query := `SELECT ` + listingColumns + `
		FROM listings
		WHERE builder_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, builderID)
	if err != nil {
		return nil, fmt.Errorf("list listings by builder: %w", err)
	}
	return collectListings(rows, "list listings by builder")
}

// GetByID retrieves a listing by ID regardless of status.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	listing, err := scanListing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Listing{}, apperr.NotFound(listingNotFoundMessage)
		}
		return domain.Listing{}, fmt.Errorf("get listing by id: %w", err)
	}
	return listing, nil
}

// Create inserts a listing. ID and timestamps are assigned by the database
// unless already set.
func (r *Repo) Create(ctx context.Context, listing domain.Listing) (domain.Listing, error) {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	doc, err := json.Marshal(listing)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("encode listing document: %w", err)
	}

	query := `
		INSERT INTO listings (id, builder_id, builder_name, name, status, featured, property_type,
			city, area, price_min, price_max, possession_date, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, COALESCE($14, now()))
		RETURNING ` + listingColumns

	created, err := scanListing(r.pool.QueryRow(ctx, query,
		listing.ID, listing.BuilderID, listing.BuilderName, listing.Name, string(listing.Status),
		listing.Featured, string(listing.PropertyType), listing.Location.City, listing.Location.Area,
		listing.PriceRange.Min, listing.PriceRange.Max, possessionParam(listing.PossessionDate), doc,
		createdAtParam(listing.CreatedAt),
	))
	if err != nil {
		return domain.Listing{}, fmt.Errorf("create listing: %w", err)
	}
	return created, nil
}

// Update replaces the editable fields of a listing.
func (r *Repo) Update(ctx context.Context, listing domain.Listing) (domain.Listing, error) {
	doc, err := json.Marshal(listing)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("encode listing document: %w", err)
	}

	query := `
		UPDATE listings
		SET builder_name = $2,
			name = $3,
			featured = $4,
			property_type = $5,
			city = $6,
			area = $7,
			price_min = $8,
			price_max = $9,
			possession_date = $10,
			document = $11,
			updated_at = now()
		WHERE id = $1
		RETURNING ` + listingColumns

	updated, err := scanListing(r.pool.QueryRow(ctx, query,
		listing.ID, listing.BuilderName, listing.Name, listing.Featured, string(listing.PropertyType),
		listing.Location.City, listing.Location.Area, listing.PriceRange.Min, listing.PriceRange.Max,
		possessionParam(listing.PossessionDate), doc,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Listing{}, apperr.NotFound(listingNotFoundMessage)
		}
		return domain.Listing{}, fmt.Errorf("update listing: %w", err)
	}
	return updated, nil
}

// UpdateStatus moves a listing to a new publication status.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Listing, error) {
	query := `
		UPDATE listings SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + listingColumns

	updated, err := scanListing(r.pool.QueryRow(ctx, query, id, string(status)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Listing{}, apperr.NotFound(listingNotFoundMessage)
		}
		return domain.Listing{}, fmt.Errorf("update listing status: %w", err)
	}
	return updated, nil
}

// Delete removes a listing.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(listingNotFoundMessage)
	}
	return nil
}

// IncrementViews bumps the view counter.
func (r *Repo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, "views", id)
}

// IncrementInquiries bumps the inquiry counter.
func (r *Repo) IncrementInquiries(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, "inquiries", id)
}

func (r *Repo) increment(ctx context.Context, column string, id uuid.UUID) error {
	// column is one of two constants above, never user input.
	query := fmt.Sprintf(`UPDATE listings SET %[1]s = %[1]s + 1 WHERE id = $1`, column)
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment listing %s: %w", column, err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(listingNotFoundMessage)
	}
	return nil
}

func collectListings(rows pgx.Rows, op string) ([]domain.Listing, error) {
	defer rows.Close()

	listings := make([]domain.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return listings, nil
}

func scanListing(row pgx.Row) (domain.Listing, error) {
	var (
		l              domain.Listing
		status, ptype  string
		city, area     string
		possessionDate *time.Time
		doc            []byte
	)
	var id, builderID uuid.UUID
	var builderName, name string
	var featured bool
	var priceMin, priceMax, views, inquiries int64
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&id, &builderID, &builderName, &name, &status, &featured, &ptype,
		&city, &area, &priceMin, &priceMax, &possessionDate, &views, &inquiries, &doc,
		&createdAt, &updatedAt,
	); err != nil {
		return domain.Listing{}, err
	}

	if len(doc) > 0 {
		if err := json.Unmarshal(doc, &l); err != nil {
			return domain.Listing{}, fmt.Errorf("decode listing document: %w", err)
		}
	}

	// Columns are authoritative over whatever the document carries.
	l.ID = id
	l.BuilderID = builderID
	l.BuilderName = builderName
	l.Name = name
	l.Status = domain.Status(status)
	l.Featured = featured
	l.PropertyType = domain.PropertyType(ptype)
	l.Location.City = city
	l.Location.Area = area
	l.PriceRange = domain.PriceRange{Min: priceMin, Max: priceMax}
	l.PossessionDate = domain.Date{}
	if possessionDate != nil {
		y, m, d := possessionDate.Date()
		l.PossessionDate = domain.NewDate(y, m, d)
	}
	l.Views = views
	l.Inquiries = inquiries
	l.CreatedAt = createdAt.UTC()
	l.UpdatedAt = updatedAt.UTC()
	l.Normalize()
	return l, nil
}

func possessionParam(d domain.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

func createdAtParam(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
