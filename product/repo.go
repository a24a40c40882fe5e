package product

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// ListQuery carries pagination and the optional name search.
type ListQuery struct {
	Name string
	Page int
	Size int
}

func (q ListQuery) normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 || q.Size > 100 {
		q.Size = 10
	}
	return q
}

// Store is the persistence boundary for the catalog. The catalog keeps
// bigint keys, so it talks to bun directly instead of going through the
// uuid-keyed generic repository.
type Store struct {
	db *bun.DB
}

// NewStore creates the catalog store.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// RunInTx delegates to the underlying DB.
func (s *Store) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return s.db.RunInTx(ctx, opts, f)
}

// ListProducts returns one page of products, newest first, optionally
// filtered by name. The second return value is the total match count.
func (s *Store) ListProducts(ctx context.Context, query ListQuery) ([]*Product, int, error) {
	query = query.normalized()

	var records []*Product
	q := s.db.NewSelect().Model(&records)

	if query.Name != "" {
		q = q.Where("?TableAlias.name LIKE ?", "%"+query.Name+"%")
	}

	total, err := q.
		Order("created_at DESC").
		Limit(query.Size).
		Offset((query.Page - 1) * query.Size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetProduct returns one product with its live options.
func (s *Store) GetProduct(ctx context.Context, id int64) (*Product, error) {
	record := &Product{}
	err := s.db.NewSelect().
		Model(record).
		Relation("Options").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"product_id": id})
		}
		return nil, err
	}
	return record, nil
}

// CreateProduct inserts the product and any initial options in one
// transaction.
func (s *Store) CreateProduct(ctx context.Context, record *Product, options []*Option) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return err
		}

		for _, opt := range options {
			opt.ProductID = record.ID
		}

		if len(options) > 0 {
			if _, err := tx.NewInsert().Model(&options).Exec(ctx); err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateProduct persists changed product columns.
func (s *Store) UpdateProduct(ctx context.Context, record *Product) error {
	res, err := s.db.NewUpdate().
		Model(record).
		Column("name", "description", "price", "shipping_fee", "status", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, record.ID)
}

// DeleteProduct soft deletes the product and every live option under it.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*Product)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		if err := requireAffected(res, id); err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*Option)(nil)).
			Where("?TableAlias.product_id = ?", id).
			Exec(ctx)
		return err
	})
}

// ListOptionOverview returns one page of products with their live option
// counts, optionally filtered by product name.
func (s *Store) ListOptionOverview(ctx context.Context, query ListQuery) ([]*OptionOverview, int, error) {
	query = query.normalized()

	var records []*OptionOverview
	q := s.db.NewSelect().
		Model(&records).
		ColumnExpr("?TableAlias.id").
		ColumnExpr("?TableAlias.name").
		ColumnExpr("?TableAlias.status").
		ColumnExpr("(SELECT count(*) FROM product_options AS opt WHERE opt.product_id = ?TableAlias.id AND opt.deleted_at IS NULL) AS option_count")

	if query.Name != "" {
		q = q.Where("?TableAlias.name LIKE ?", "%"+query.Name+"%")
	}

	total, err := q.
		Order("id ASC").
		Limit(query.Size).
		Offset((query.Page - 1) * query.Size).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// OptionsForProduct returns the live options of a product.
func (s *Store) OptionsForProduct(ctx context.Context, productID int64) ([]*Option, error) {
	var records []*Option
	err := s.db.NewSelect().
		Model(&records).
		Where("?TableAlias.product_id = ?", productID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// SaveOptions upserts the given options (insert when ID is zero, update
// otherwise) in one transaction.
func (s *Store) SaveOptions(ctx context.Context, options []*Option) error {
	if len(options) == 0 {
		return nil
	}
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, opt := range options {
			if opt.ID == 0 {
				if _, err := tx.NewInsert().Model(opt).Exec(ctx); err != nil {
					return err
				}
				continue
			}
			if _, err := tx.NewUpdate().
				Model(opt).
				Column("name", "additional_price").
				WherePK().
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteOption soft deletes a single option.
func (s *Store) DeleteOption(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().
		Model((*Option)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	return requireAffected(res, id)
}

// ListSelectOptions returns the whole select option pool.
func (s *Store) ListSelectOptions(ctx context.Context) ([]*SelectOption, error) {
	var records []*SelectOption
	err := s.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{"id": id})
	}
	return nil
}
