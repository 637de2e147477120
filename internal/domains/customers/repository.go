package customers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sangkips/registration-service/internal/domains/customers/models"
)

type Repository interface {
	// Save inserts c when it has no ID, otherwise updates it.
	Save(ctx context.Context, c Customer) (Customer, error)
	FindByID(ctx context.Context, id int64) (Customer, bool, error)
	FindAll(ctx context.Context) ([]Customer, error)
	Update(ctx context.Context, c Customer) (Customer, error)
	UpdateEmail(ctx context.Context, id int64, email string) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// ErrNoRowsAffected is returned by updates that matched no row.
var ErrNoRowsAffected = errors.New("no customer updated")

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// withQueries checks a connection out of the pool for the duration of fn.
func (r *repository) withQueries(ctx context.Context, fn func(q *models.Queries) error) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(models.New(conn))
}

func (r *repository) Save(ctx context.Context, c Customer) (Customer, error) {
	if c.ID != 0 {
		return r.Update(ctx, c)
	}

	var row models.Cliente
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		row, err = q.CreateCustomer(ctx, models.CreateCustomerParams{
			Nome:     c.Name,
			Email:    c.Email,
			Telefone: stringToNullString(c.Phone),
			Endereco: stringToNullString(c.Address),
		})
		return err
	})
	if err != nil {
		return Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return toCustomer(row), nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (Customer, bool, error) {
	var row models.Cliente
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		row, err = q.GetCustomer(ctx, id)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Customer{}, false, nil
	}
	if err != nil {
		return Customer{}, false, fmt.Errorf("find customer %d: %w", id, err)
	}
	return toCustomer(row), true, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Customer, error) {
	var rows []models.Cliente
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		rows, err = q.ListCustomers(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers := make([]Customer, len(rows))
	for i, row := range rows {
		customers[i] = toCustomer(row)
	}
	return customers, nil
}

func (r *repository) Update(ctx context.Context, c Customer) (Customer, error) {
	var affected int64
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		affected, err = q.UpdateCustomer(ctx, models.UpdateCustomerParams{
			ID:       c.ID,
			Nome:     c.Name,
			Email:    c.Email,
			Telefone: stringToNullString(c.Phone),
			Endereco: stringToNullString(c.Address),
		})
		return err
	})
	if err != nil {
		return Customer{}, fmt.Errorf("update customer %d: %w", c.ID, err)
	}
	if affected == 0 {
		return Customer{}, fmt.Errorf("update customer %d: %w", c.ID, ErrNoRowsAffected)
	}
	return c, nil
}

func (r *repository) UpdateEmail(ctx context.Context, id int64, email string) error {
	var affected int64
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		affected, err = q.UpdateCustomerEmail(ctx, models.UpdateCustomerEmailParams{ID: id, Email: email})
		return err
	})
	if err != nil {
		return fmt.Errorf("update customer %d email: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("update customer %d email: %w", id, ErrNoRowsAffected)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	var affected int64
	err := r.withQueries(ctx, func(q *models.Queries) error {
		var err error
		affected, err = q.DeleteCustomer(ctx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete customer %d: %w", id, err)
	}
	return affected > 0, nil
}

func toCustomer(row models.Cliente) Customer {
	return Customer{
		ID:      row.ID,
		Name:    row.Nome,
		Email:   row.Email,
		Phone:   row.Telefone.String,
		Address: row.Endereco.String,
	}
}

func stringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
