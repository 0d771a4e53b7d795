package repository

import (
	"context"
	"database/sql"
	"errors"
	"product-console/internal/entity"
)

const productColumns = `productId, productName, productPrice, productDesc, productCategory`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct reads one row, recording NULL columns in Product.Nulls.
func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		id, price            sql.NullInt64
		name, desc, category sql.NullString
	)
	if err := row.Scan(&id, &name, &price, &desc, &category); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          int(id.Int64),
		Name:        name.String,
		Price:       int(price.Int64),
		Description: desc.String,
		Category:    category.String,
	}
	if !id.Valid {
		product.Nulls |= entity.ColumnID
	}
	if !name.Valid {
		product.Nulls |= entity.ColumnName
	}
	if !price.Valid {
		product.Nulls |= entity.ColumnPrice
	}
	if !desc.Valid {
		product.Nulls |= entity.ColumnDescription
	}
	if !category.Valid {
		product.Nulls |= entity.ColumnCategory
	}
	return product, nil
}

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db}
}

// GetProductByID returns the first row matching id, or nil when there is none.
func (r *ProductRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products_info WHERE productId = ? LIMIT 1`
	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	query := `INSERT INTO products_info (productId, productName, productPrice, productDesc, productCategory) VALUES (?, ?, ?, ?, ?)`
	_, err := r.execInTx(ctx, query, product.Values()...)
	return err
}

// UpdateProductPrice sets the price of every row matching id and reports how many rows changed.
func (r *ProductRepository) UpdateProductPrice(ctx context.Context, id int, price int) (int64, error) {
	query := `UPDATE products_info SET productPrice = ? WHERE productId = ?`
	return r.execInTx(ctx, query, price, id)
}

// DeleteProduct removes every row matching id and reports how many rows were removed.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id int) (int64, error) {
	query := `DELETE FROM products_info WHERE productId = ?`
	return r.execInTx(ctx, query, id)
}

func (r *ProductRepository) GetProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	query := `SELECT ` + productColumns + ` FROM products_info`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products_info`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// execInTx runs a single statement in its own transaction and commits it.
func (r *ProductRepository) execInTx(ctx context.Context, query string, args ...interface{}) (int64, error) {
	// Start a transaction
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	// Commit the transaction
	err = tx.Commit()
	if err != nil {
		return 0, err
	}

	return affected, nil
}
