package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"estate_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const inquiryNotFoundMessage = "inquiry not found"

// ErrConcurrentUpdate reports a status change that lost to another one.
var ErrConcurrentUpdate = apperr.Conflict("inquiry was updated concurrently; reload and retry").WithCode("CONCURRENT_UPDATE")

// Repository persists inquiries.
type Repository interface {
	Create(ctx context.Context, inquiry Inquiry) (Inquiry, error)
	GetByID(ctx context.Context, id uuid.UUID) (Inquiry, error)
	ListForBuilder(ctx context.Context, params ListParams) ([]Inquiry, int, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (Inquiry, error)
}

// Repo implements Repository with pgx.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new inquiries repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const inquiryColumns = `i.id, i.listing_id, l.name, i.builder_id, i.customer_id, i.name, i.email, i.phone,
	i.inquiry_type, i.budget, i.message, i.preferred_contact, i.status, i.created_at, i.updated_at`

const inquiryFrom = ` FROM inquiries i JOIN listings l ON l.id = i.listing_id`

// Create inserts an inquiry.
func (r *Repo) Create(ctx context.Context, in Inquiry) (Inquiry, error) {
	query := `
		INSERT INTO inquiries (listing_id, builder_id, customer_id, name, email, phone,
			inquiry_type, budget, message, preferred_contact, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		in.ListingID, in.BuilderID, in.CustomerID, in.Name, in.Email, in.Phone,
		in.InquiryType, in.Budget, in.Message, in.PreferredContact, in.Status,
	).Scan(&in.ID, &in.CreatedAt, &in.UpdatedAt)
	if err != nil {
		return Inquiry{}, fmt.Errorf("create inquiry: %w", err)
	}
	return in, nil
}

// GetByID retrieves an inquiry.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Inquiry, error) {
	query := `SELECT ` + inquiryColumns + inquiryFrom + ` WHERE i.id = $1`

	in, err := scanInquiry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Inquiry{}, apperr.NotFound(inquiryNotFoundMessage)
		}
		return Inquiry{}, fmt.Errorf("get inquiry: %w", err)
	}
	return in, nil
}

// ListForBuilder returns one page of a builder's inquiries, newest first,
// and the total number of matches.
func (r *Repo) ListForBuilder(ctx context.Context, p ListParams) ([]Inquiry, int, error) {
	where := []string{"i.builder_id = $1"}
	args := []any{p.BuilderID}

	if p.ListingID != nil {
		args = append(args, *p.ListingID)
		where = append(where, fmt.Sprintf("i.listing_id = $%d", len(args)))
	}
	if p.Status != "" {
		args = append(args, p.Status)
		where = append(where, fmt.Sprintf("i.status = $%d", len(args)))
	}
	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(i.name ILIKE $%[1]d OR i.email ILIKE $%[1]d OR l.name ILIKE $%[1]d)", n))
	}
	if p.From != nil {
		args = append(args, *p.From)
		where = append(where, fmt.Sprintf("i.created_at >= $%d", len(args)))
	}
	if p.To != nil {
		args = append(args, *p.To)
		where = append(where, fmt.Sprintf("i.created_at <= $%d", len(args)))
	}
	clause := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+inquiryFrom+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inquiries: %w", err)
	}

	args = append(args, p.Limit, p.Offset)
	query := `SELECT ` + inquiryColumns + inquiryFrom + clause +
		fmt.Sprintf(" ORDER BY i.created_at DESC, i.id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}
	return items, total, nil
}

// ListForCustomer returns every inquiry a customer sent, newest first.
func (r *Repo) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]Inquiry, error) {
	query := `SELECT ` + inquiryColumns + inquiryFrom + ` WHERE i.customer_id = $1 ORDER BY i.created_at DESC, i.id`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer inquiries: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("list customer inquiries: %w", err)
	}
	return items, nil
}

// UpdateStatus moves an inquiry from one status to another. It only
// applies while the stored status still equals from.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (Inquiry, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE inquiries SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return Inquiry{}, fmt.Errorf("update inquiry status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return Inquiry{}, err
		}
		return Inquiry{}, ErrConcurrentUpdate
	}
	return r.GetByID(ctx, id)
}

func collect(rows pgx.Rows) ([]Inquiry, error) {
	defer rows.Close()
	items := make([]Inquiry, 0)
	for rows.Next() {
		in, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, in)
	}
	return items, rows.Err()
}

func scanInquiry(row pgx.Row) (Inquiry, error) {
	var in Inquiry
	err := row.Scan(
		&in.ID, &in.ListingID, &in.ListingName, &in.BuilderID, &in.CustomerID, &in.Name, &in.Email, &in.Phone,
		&in.InquiryType, &in.Budget, &in.Message, &in.PreferredContact, &in.Status, &in.CreatedAt, &in.UpdatedAt,
	)
	return in, err
}
