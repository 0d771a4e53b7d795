package migrations_test

import (
	"context"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"product-console/internal/testutil"
	"product-console/migrations"
	"testing"
)

func TestAutoMigrateProductsCreatesTable(t *testing.T) {
	db := testutil.NewTestDB(t)

	_, err := db.Exec(`INSERT INTO products_info (productId, productName, productPrice, productDesc, productCategory) VALUES (?, ?, ?, ?, ?)`,
		1, "Pen", 10, "Blue pen", "Stationery")
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM products_info`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestAutoMigrateProductsIsIdempotent(t *testing.T) {
	db := testutil.NewTestDB(t)

	err := migrations.AutoMigrateProducts(context.Background(), db, goose.DialectSQLite3, 0)
	assert.NoError(t, err)
}
