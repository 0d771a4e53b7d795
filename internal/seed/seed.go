package seed

import (
	"context"
	"errors"
	"fmt"
	"github.com/brianvoe/gofakeit/v7"
	"product-console/internal/entity"
)

var ErrInvalidCount = errors.New("invalid product count")

type ProductAdder interface {
	AddProduct(ctx context.Context, product *entity.Product) error
}

// Seeder inserts fake products with sequential ids.
type Seeder struct {
	svc   ProductAdder
	faker *gofakeit.Faker
}

// New creates a Seeder. A zero seed picks a random one.
func New(svc ProductAdder, seed uint64) *Seeder {
	return &Seeder{svc: svc, faker: gofakeit.New(seed)}
}

// Seed inserts count products with ids startID, startID+1, ...
func (s *Seeder) Seed(ctx context.Context, startID, count int) ([]*entity.Product, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}

	products := make([]*entity.Product, 0, count)
	for i := 0; i < count; i++ {
		p := s.fakeProduct(startID + i)
		if err := s.svc.AddProduct(ctx, p); err != nil {
			return products, fmt.Errorf("seed product %d: %w", p.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *Seeder) fakeProduct(id int) *entity.Product {
	return &entity.Product{
		ID:          id,
		Name:        truncate(s.faker.ProductName(), entity.MaxNameLength),
		Price:       s.faker.Number(1, 1000),
		Description: truncate(s.faker.ProductDescription(), entity.MaxDescriptionLength),
		Category:    truncate(s.faker.ProductCategory(), entity.MaxCategoryLength),
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
