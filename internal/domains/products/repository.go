package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sangkips/registration-service/internal/domains/products/models"
)

// Repository is implemented by the relational and the document store.
// The service is written against it and never knows which one it has.
type Repository interface {
	// ValidID reports whether id is a well-formed identifier for this store.
	ValidID(id string) bool
	// Save inserts p when it has no ID, otherwise updates it.
	Save(ctx context.Context, p Product) (Product, error)
	FindByID(ctx context.Context, id string) (Product, bool, error)
	FindAll(ctx context.Context) ([]Product, error)
	// Update returns the product as stored and reports whether it was changed.
	Update(ctx context.Context, p Product) (Product, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) withQueries(ctx context.Context, fn func(q *models.Queries) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(models.New(conn))
}

func (r *postgresRepository) ValidID(id string) bool {
	_, ok := parseSerial(id)
	return ok
}

func (r *postgresRepository) Save(ctx context.Context, p Product) (Product, error) {
	if p.ID != "" {
		stored, updated, err := r.Update(ctx, p)
		if err != nil {
			return Product{}, err
		}
		if !updated {
			return Product{}, fmt.Errorf("update product %s: no rows affected", p.ID)
		}
		return stored, nil
	}

	var row models.Produto
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		row, err = q.CreateProduct(ctx, models.CreateProductParams{
			Nome:      p.Name,
			Preco:     p.Price,
			Descricao: stringToNullString(p.Description),
		})
		return err
	})
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	return toProduct(row), nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (Product, bool, error) {
	serial, ok := parseSerial(id)
	if !ok {
		return Product{}, false, nil
	}

	var row models.Produto
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		row, err = q.GetProduct(ctx, serial)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, fmt.Errorf("find product %d: %w", serial, err)
	}
	return toProduct(row), true, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]Product, error) {
	var rows []models.Produto
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		rows, err = q.ListProducts(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]Product, len(rows))
	for i, row := range rows {
		products[i] = toProduct(row)
	}
	return products, nil
}

func (r *postgresRepository) Update(ctx context.Context, p Product) (Product, bool, error) {
	serial, ok := parseSerial(p.ID)
	if !ok {
		return Product{}, false, nil
	}

	var row models.Produto
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		row, err = q.UpdateProduct(ctx, models.UpdateProductParams{
			ID:        serial,
			Nome:      p.Name,
			Preco:     p.Price,
			Descricao: stringToNullString(p.Description),
		})
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, fmt.Errorf("update product %d: %w", serial, err)
	}
	return toProduct(row), true, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	serial, ok := parseSerial(id)
	if !ok {
		return false, nil
	}

	var affected int64
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		affected, err = q.DeleteProduct(ctx, serial)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete product %d: %w", serial, err)
	}
	return affected > 0, nil
}

// parseSerial accepts only the canonical decimal form, so "007" and "+7"
// are not aliases of "7".
func parseSerial(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 || strconv.FormatInt(n, 10) != id {
		return 0, false
	}
	return n, true
}

func toProduct(row models.Produto) Product {
	return Product{
		ID:          strconv.FormatInt(row.ID, 10),
		Name:        row.Nome,
		Price:       row.Preco,
		Description: row.Descricao.String,
	}
}

func stringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
