package service

import (
	"context"
	"fmt"
	"github.com/rs/zerolog"
	"os"
	"product-console/internal/entity"
	"product-console/internal/repository"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

type ProductService struct {
	productRepo *repository.ProductRepository
	cache       Cache
	publisher   Publisher
}

// NewProductService creates a new instance of ProductService.
// cache and publisher may be nil.
func NewProductService(productRepo *repository.ProductRepository, cache Cache, publisher Publisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
		publisher:   publisher,
	}
}

// AddProduct validates and inserts a new product row.
func (p *ProductService) AddProduct(ctx context.Context, product *entity.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	if err := p.productRepo.CreateProduct(ctx, product); err != nil {
		logger.Error().Err(err).Msgf("Error inserting product %d", product.ID)
		return fmt.Errorf("insert product %d: %w", product.ID, err)
	}
	logger.Info().Msgf("Inserted product %d", product.ID)

	p.evict(ctx, product.ID)
	p.publish(ctx, &entity.ProductEvent{Type: entity.EventCreated, ProductID: product.ID, Product: product, Affected: 1})
	return nil
}

// UpdateProductPrice sets the price of every product with the given id.
// Zero matching rows is not an error.
func (p *ProductService) UpdateProductPrice(ctx context.Context, productID int, price int) (int64, error) {
	affected, err := p.productRepo.UpdateProductPrice(ctx, productID, price)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating price of product %d", productID)
		return 0, fmt.Errorf("update price of product %d: %w", productID, err)
	}
	p.logAffected("Updated price of", productID, affected)

	p.evict(ctx, productID)
	p.publish(ctx, &entity.ProductEvent{Type: entity.EventPriceUpdated, ProductID: productID, Affected: affected})
	return affected, nil
}

// DeleteProduct removes every product with the given id.
func (p *ProductService) DeleteProduct(ctx context.Context, productID int) (int64, error) {
	affected, err := p.productRepo.DeleteProduct(ctx, productID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d", productID)
		return 0, fmt.Errorf("delete product %d: %w", productID, err)
	}
	p.logAffected("Deleted", productID, affected)

	p.evict(ctx, productID)
	p.publish(ctx, &entity.ProductEvent{Type: entity.EventDeleted, ProductID: productID, Affected: affected})
	return affected, nil
}

// GetProduct returns the first product with the given id, or nil when none exists.
func (p *ProductService) GetProduct(ctx context.Context, productID int) (*entity.Product, error) {
	// Read from cache
	if p.cache != nil {
		product, err := p.cache.Get(ctx, productID)
		if err != nil {
			logger.Error().Err(err).Msgf("Error getting product %d from cache", productID)
		} else if product != nil {
			logger.Debug().Msgf("Retrieved product %d from cache", productID)
			return product, nil
		}
	}

	product, err := p.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting product by ID %d", productID)
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}
	if product == nil {
		logger.Debug().Msgf("Product %d not found", productID)
		return nil, nil
	}

	// Write to cache
	if p.cache != nil {
		if err := p.cache.Set(ctx, product); err != nil {
			logger.Error().Err(err).Msgf("Error setting product %d in cache", productID)
		}
	}

	return product, nil
}

// ListProducts returns every product row.
func (p *ProductService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := p.productRepo.GetProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting products")
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (p *ProductService) CountProducts(ctx context.Context) (int, error) {
	count, err := p.productRepo.CountProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (p *ProductService) logAffected(action string, productID int, affected int64) {
	switch {
	case affected == 0:
		logger.Warn().Msgf("%s product %d: no matching rows", action, productID)
	case affected > 1:
		logger.Warn().Msgf("%s product %d: %d rows share this id", action, productID, affected)
	default:
		logger.Info().Msgf("%s product %d", action, productID)
	}
}

func (p *ProductService) evict(ctx context.Context, productID int) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Delete(ctx, productID); err != nil {
		logger.Error().Err(err).Msgf("Error deleting product %d from cache", productID)
	}
}

func (p *ProductService) publish(ctx context.Context, event *entity.ProductEvent) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, event); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for product %d", event.Type, event.ProductID)
	}
}
