// Package seed loads demo catalog data for local development.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	catalogdomain "github.com/smallbiznis/orderdesk/internal/catalog/domain"
	distributordomain "github.com/smallbiznis/orderdesk/internal/distributor/domain"
	promotiondomain "github.com/smallbiznis/orderdesk/internal/promotion/domain"
)

// EnsureDemoData seeds a small catalog, two distributors and one promotion
// slab set. Idempotent: existing rows are left untouched.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := ensureProducts(ctx, tx, node)
		if err != nil {
			return err
		}
		if err := ensureDistributors(ctx, tx, node); err != nil {
			return err
		}
		return ensureSlabs(ctx, tx, node, products)
	})
}

func ensureProducts(ctx context.Context, tx *gorm.DB, node *snowflake.Node) (map[string]catalogdomain.Product, error) {
	seeded := []catalogdomain.Product{
		{
			SKU:                 "amoxicillin-500mg",
			Name:                "Amoxicillin 500mg",
			UnitPrice:           100,
			PrepaidDiscountRate: 10,
			CreditDiscountRate:  5,
			TaxRate:             18,
			AvailableStock:      5000,
			Active:              true,
		},
		{
			SKU:                  "insulin-pen",
			Name:                 "Insulin Pen",
			UnitPrice:            1000,
			PrepaidDiscountRate:  12,
			CreditDiscountRate:   6,
			TaxRate:              12,
			AvailableStock:       800,
			AllocationControlled: true,
			RemainingAllocation:  500,
			Active:               true,
		},
		{
			SKU:                 "paracetamol-650mg",
			Name:                "Paracetamol 650mg",
			UnitPrice:           45,
			PrepaidDiscountRate: 8,
			CreditDiscountRate:  4,
			TaxRate:             12,
			AvailableStock:      12000,
			Active:              true,
		},
	}

	byCode := make(map[string]catalogdomain.Product, len(seeded))
	for _, product := range seeded {
		var existing catalogdomain.Product
		err := tx.WithContext(ctx).Where("sku = ?", product.SKU).First(&existing).Error
		if err == nil {
			byCode[product.SKU] = existing
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		product.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&product).Error; err != nil {
			return nil, err
		}
		byCode[product.SKU] = product
	}
	return byCode, nil
}

func ensureDistributors(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	seeded := []distributordomain.Distributor{
		{
			Code:         "western-pharma",
			Name:         "Western Pharma Distributors",
			Jurisdiction: "MH",
			CreditLimit:  5000000,
			Active:       true,
		},
		{
			Code:         "southern-pharma",
			Name:         "Southern Pharma Agencies",
			Jurisdiction: "KA",
			Active:       true,
		},
	}

	for _, distributor := range seeded {
		var existing distributordomain.Distributor
		err := tx.WithContext(ctx).Where("code = ?", distributor.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		distributor.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&distributor).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureSlabs(ctx context.Context, tx *gorm.DB, node *snowflake.Node, products map[string]catalogdomain.Product) error {
	amoxicillin, ok := products["amoxicillin-500mg"]
	if !ok {
		return nil
	}

	slabs := []promotiondomain.Slab{
		{ProductID: amoxicillin.ID, ThresholdQuantity: 10, FreeQuantity: 2, Active: true},
		{ProductID: amoxicillin.ID, ThresholdQuantity: 50, FreeQuantity: 12, Active: true},
	}

	for _, slab := range slabs {
		var existing promotiondomain.Slab
		err := tx.WithContext(ctx).
			Where("product_id = ? AND threshold_quantity = ?", slab.ProductID, slab.ThresholdQuantity).
			First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		slab.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&slab).Error; err != nil {
			return err
		}
	}
	return nil
}
