package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-rentify/internal/model"
)

type PropertyRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewPropertyRepository(pool *pgxpool.Pool, timeout time.Duration) *PropertyRepository {
	return &PropertyRepository{pool: pool, timeout: timeout}
}

const propertyColumns = `id, seller_id, property_details, rental_terms, seller_information, move_in_date, created_at, updated_at`

func scanProperty(row pgx.Row) (model.Property, error) {
	var p model.Property
	err := row.Scan(&p.ID, &p.SellerID, &p.Details, &p.RentalTerms, &p.SellerInformation,
		&p.MoveInDate, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PropertyRepository) List(ctx context.Context) ([]model.Property, error) {
	return r.query(ctx, "list properties",
		`SELECT `+propertyColumns+` FROM properties ORDER BY created_at DESC`)
}

func (r *PropertyRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Property, error) {
	return r.query(ctx, "list properties by seller",
		`SELECT `+propertyColumns+` FROM properties WHERE seller_id = $1 ORDER BY created_at DESC`, sellerID)
}

func (r *PropertyRepository) query(ctx context.Context, op string, sql string, args ...any) ([]model.Property, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	defer rows.Close()

	properties := make([]model.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, storeError(op, err)
		}
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(op, err)
	}
	return properties, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (model.Property, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	p, err := scanProperty(r.pool.QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Property{}, model.ErrPropertyNotFound
	}
	if err != nil {
		return model.Property{}, storeError("find property", err)
	}
	return p, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p model.Property) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO properties (`+propertyColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.SellerID, p.Details, p.RentalTerms, p.SellerInformation, p.MoveInDate, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return storeError("create property", err)
	}
	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, p model.Property) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE properties
		 SET property_details = $2, rental_terms = $3, seller_information = $4, move_in_date = $5, updated_at = $6
		 WHERE id = $1`,
		p.ID, p.Details, p.RentalTerms, p.SellerInformation, p.MoveInDate, p.UpdatedAt)
	if err != nil {
		return storeError("update property", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return storeError("delete property", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPropertyNotFound
	}
	return nil
}
