package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"estate_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const investmentNotFoundMessage = "investment not found"

// ErrConcurrentUpdate reports a write that lost to another update of the same row.
var ErrConcurrentUpdate = apperr.Conflict("investment was updated concurrently; reload and retry").WithCode("CONCURRENT_UPDATE")

// Repository persists investments.
type Repository interface {
	Create(ctx context.Context, inv Investment) (Investment, error)
	GetByID(ctx context.Context, id uuid.UUID) (Investment, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]Investment, error)
	ListForBuilder(ctx context.Context, builderID uuid.UUID) ([]Investment, error)
	UpdateProgress(ctx context.Context, id uuid.UUID, expected Snapshot, progress Progress) (Investment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (Investment, error)
}

// Repo implements Repository with pgx.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new investments repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const investmentColumns = `v.id, v.customer_id, v.listing_id, l.name, l.builder_id, v.amount, v.investment_type,
	v.status, v.progress_stage, v.progress_percentage, v.progress_updated_at, v.notes, v.documents, v.created_at`

const investmentFrom = ` FROM investments v JOIN listings l ON l.id = v.listing_id`

// Create inserts an investment.
func (r *Repo) Create(ctx context.Context, inv Investment) (Investment, error) {
	docs, err := marshalDocuments(inv.Documents)
	if err != nil {
		return Investment{}, err
	}

	query := `
		INSERT INTO investments (customer_id, listing_id, amount, investment_type, status,
			progress_stage, progress_percentage, notes, documents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, progress_updated_at, created_at`

	err = r.pool.QueryRow(ctx, query,
		inv.CustomerID, inv.ListingID, inv.Amount, inv.InvestmentType, inv.Status,
		inv.ProgressStage, inv.ProgressPercentage, inv.Notes, docs,
	).Scan(&inv.ID, &inv.ProgressUpdatedAt, &inv.CreatedAt)
	if err != nil {
		return Investment{}, fmt.Errorf("create investment: %w", err)
	}
	return inv, nil
}

// GetByID retrieves an investment.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Investment, error) {
	query := `SELECT ` + investmentColumns + investmentFrom + ` WHERE v.id = $1`

	inv, err := scanInvestment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Investment{}, apperr.NotFound(investmentNotFoundMessage)
		}
		return Investment{}, fmt.Errorf("get investment: %w", err)
	}
	return inv, nil
}

// ListForCustomer returns a customer's investments, newest first.
func (r *Repo) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]Investment, error) {
	query := `SELECT ` + investmentColumns + investmentFrom + ` WHERE v.customer_id = $1 ORDER BY v.created_at DESC, v.id`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer investments: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("list customer investments: %w", err)
	}
	return items, nil
}

// ListForBuilder returns investments in the builder's listings, newest first.
func (r *Repo) ListForBuilder(ctx context.Context, builderID uuid.UUID) ([]Investment, error) {
	query := `SELECT ` + investmentColumns + investmentFrom + ` WHERE l.builder_id = $1 ORDER BY v.created_at DESC, v.id`

	rows, err := r.pool.Query(ctx, query, builderID)
	if err != nil {
		return nil, fmt.Errorf("list builder investments: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("list builder investments: %w", err)
	}
	return items, nil
}

// UpdateProgress records a construction update. Documents are appended.
// The row must still match expected, otherwise a concurrent update won.
func (r *Repo) UpdateProgress(ctx context.Context, id uuid.UUID, expected Snapshot, p Progress) (Investment, error) {
	docs, err := marshalDocuments(p.Documents)
	if err != nil {
		return Investment{}, err
	}

	query := `
		UPDATE investments SET
			progress_stage = $2,
			progress_percentage = $3,
			progress_updated_at = now(),
			notes = CASE WHEN $4::text = '' THEN notes ELSE $4::text END,
			documents = documents || $5::jsonb
		WHERE id = $1
			AND status = $6
			AND progress_stage = $7
			AND progress_percentage = $8`

	tag, err := r.pool.Exec(ctx, query, id, p.Stage, p.Percentage, p.Notes, docs,
		expected.Status, expected.Stage, expected.Percentage)
	if err != nil {
		return Investment{}, fmt.Errorf("update investment progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Investment{}, r.missedUpdate(ctx, id)
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus moves an investment from one status to another.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (Investment, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE investments SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return Investment{}, fmt.Errorf("update investment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Investment{}, r.missedUpdate(ctx, id)
	}
	return r.GetByID(ctx, id)
}

// missedUpdate tells a deleted row apart from one that changed underneath.
func (r *Repo) missedUpdate(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrConcurrentUpdate
}

func marshalDocuments(docs []Document) ([]byte, error) {
	if docs == nil {
		docs = []Document{}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode investment documents: %w", err)
	}
	return raw, nil
}

func collect(rows pgx.Rows) ([]Investment, error) {
	defer rows.Close()
	items := make([]Investment, 0)
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, inv)
	}
	return items, rows.Err()
}

func scanInvestment(row pgx.Row) (Investment, error) {
	var (
		inv  Investment
		docs []byte
	)
	err := row.Scan(
		&inv.ID, &inv.CustomerID, &inv.ListingID, &inv.ListingName, &inv.BuilderID, &inv.Amount, &inv.InvestmentType,
		&inv.Status, &inv.ProgressStage, &inv.ProgressPercentage, &inv.ProgressUpdatedAt, &inv.Notes, &docs, &inv.CreatedAt,
	)
	if err != nil {
		return Investment{}, err
	}
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &inv.Documents); err != nil {
			return Investment{}, fmt.Errorf("decode investment documents: %w", err)
		}
	}
	return inv, nil
}
