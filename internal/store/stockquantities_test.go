package store

import (
	"context"
	"errors"
	"testing"

	"github.com/avillegas/inventario/internal/db"
	"github.com/avillegas/inventario/internal/model"
)

func TestAdjustStockQuantityOps(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	categoryID, brandID := seedCatalog(t, database)

	product, _ := CreateProduct(ctx, database, model.Product{
		CategoryID: categoryID, BrandID: brandID, Model: "USB-C Cable",
	})

	sq, err := AdjustStockQuantity(ctx, database, product.ID, model.AdjustSet, 10)
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if sq.Quantity != 10 {
		t.Errorf("expected 10 after set, got %d", sq.Quantity)
	}

	sq, err = AdjustStockQuantity(ctx, database, product.ID, model.AdjustIncrement, 5)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if sq.Quantity != 15 {
		t.Errorf("expected 15 after increment, got %d", sq.Quantity)
	}

	sq, err = AdjustStockQuantity(ctx, database, product.ID, model.AdjustDecrement, 20)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if sq.Quantity != 0 {
		t.Errorf("expected decrement clamped at 0, got %d", sq.Quantity)
	}
}

func TestAdjustStockQuantityValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	categoryID, brandID := seedCatalog(t, database)

	product, _ := CreateProduct(ctx, database, model.Product{
		CategoryID: categoryID, BrandID: brandID, Model: "USB-C Cable",
	})

	var ve *ValidationError

	if _, err := AdjustStockQuantity(ctx, database, product.ID, model.AdjustIncrement, 0); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for zero increment, got %v", err)
	}
	if _, err := AdjustStockQuantity(ctx, database, product.ID, model.AdjustSet, -1); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for negative set, got %v", err)
	}
	if _, err := AdjustStockQuantity(ctx, database, product.ID, "divide", 1); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for unknown op, got %v", err)
	}

	var nf *NotFoundError
	if _, err := AdjustStockQuantity(ctx, database, 9999, model.AdjustIncrement, 1); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError for missing pool, got %v", err)
	}
}

func TestListLowStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	categoryID, brandID := seedCatalog(t, database)

	low, _ := CreateProduct(ctx, database, model.Product{
		CategoryID: categoryID, BrandID: brandID, Model: "USB-C Cable", MinimumQuantity: 5,
	})
	ok, _ := CreateProduct(ctx, database, model.Product{
		CategoryID: categoryID, BrandID: brandID, Model: "HDMI Cable", MinimumQuantity: 5,
	})

	AdjustStockQuantity(ctx, database, low.ID, model.AdjustSet, 3)
	AdjustStockQuantity(ctx, database, ok.ID, model.AdjustSet, 5)

	quantities, err := ListLowStock(ctx, database)
	if err != nil {
		t.Fatalf("ListLowStock: %v", err)
	}
	// Quantity equal to the minimum is not low.
	if len(quantities) != 1 || quantities[0].ProductID != low.ID {
		t.Errorf("expected only the cable below minimum, got %+v", quantities)
	}
}

func TestListStockQuantitiesJoinsNames(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	categoryID, brandID := seedCatalog(t, database)

	CreateProduct(ctx, database, model.Product{
		CategoryID: categoryID, BrandID: brandID, Model: "USB-C Cable",
	})

	quantities, err := ListStockQuantities(ctx, database)
	if err != nil {
		t.Fatalf("ListStockQuantities: %v", err)
	}
	if len(quantities) != 1 {
		t.Fatalf("expected 1 pool, got %d", len(quantities))
	}
	sq := quantities[0]
	if sq.ProductModel != "USB-C Cable" || sq.CategoryName != "Laptops" || sq.BrandName != "Lenovo" {
		t.Errorf("expected joined names, got %+v", sq)
	}
}
