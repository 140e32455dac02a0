package store

import (
	"context"
	"errors"
	"testing"

	"github.com/avillegas/inventario/internal/db"
	"github.com/avillegas/inventario/internal/model"
)

func TestCategoryLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, err := CreateCategory(ctx, database, "Laptops")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if err := UpdateCategory(ctx, database, category.ID, "Notebooks"); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	got, _ := GetCategory(ctx, database, category.ID)
	if got.Name != "Notebooks" {
		t.Errorf("expected renamed category, got %q", got.Name)
	}

	if err := DeleteCategory(ctx, database, category.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	got, _ = GetCategory(ctx, database, category.ID)
	if got != nil {
		t.Error("expected category gone after delete")
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateCategory(ctx, database, "Laptops"); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	_, err := CreateCategory(ctx, database, "Laptops")
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for duplicate name, got %v", err)
	}
}

func TestDeleteCategoryReferencedByProduct(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	category, _ := CreateCategory(ctx, database, "Laptops")
	brand, _ := CreateBrand(ctx, database, "Lenovo")
	if _, err := CreateProduct(ctx, database, model.Product{
		CategoryID: category.ID, BrandID: brand.ID, Model: "ThinkPad T14", IsSerialized: true,
	}); err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	err := DeleteCategory(ctx, database, category.ID)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for referenced category, got %v", err)
	}
}

func TestBrandLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	brand, err := CreateBrand(ctx, database, "Lenovo")
	if err != nil {
		t.Fatalf("CreateBrand: %v", err)
	}

	if err := UpdateBrand(ctx, database, brand.ID, "HP"); err != nil {
		t.Fatalf("UpdateBrand: %v", err)
	}
	got, _ := GetBrand(ctx, database, brand.ID)
	if got.Name != "HP" {
		t.Errorf("expected renamed brand, got %q", got.Name)
	}

	if err := DeleteBrand(ctx, database, brand.ID); err != nil {
		t.Fatalf("DeleteBrand: %v", err)
	}
}

func TestListCategoriesOrdered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateCategory(ctx, database, "Monitors")
	CreateCategory(ctx, database, "Laptops")

	categories, err := ListCategories(ctx, database)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 2 || categories[0].Name != "Laptops" {
		t.Errorf("expected name order, got %+v", categories)
	}
}
