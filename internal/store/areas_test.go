package store

import (
	"context"
	"errors"
	"testing"

	"github.com/avillegas/inventario/internal/db"
)

func TestAreaLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	area, err := CreateArea(ctx, database, "IT", "Floor 3", "CC-100")
	if err != nil {
		t.Fatalf("CreateArea: %v", err)
	}
	if area.Name != "IT" || area.Location != "Floor 3" || area.CostCenter != "CC-100" {
		t.Errorf("unexpected area: %+v", area)
	}

	if err := UpdateArea(ctx, database, area.ID, "IT Support", "Floor 4", ""); err != nil {
		t.Fatalf("UpdateArea: %v", err)
	}
	got, _ := GetArea(ctx, database, area.ID)
	if got.Name != "IT Support" || got.CostCenter != "" {
		t.Errorf("unexpected updated area: %+v", got)
	}

	if err := DeleteArea(ctx, database, area.ID); err != nil {
		t.Fatalf("DeleteArea: %v", err)
	}
	got, _ = GetArea(ctx, database, area.ID)
	if got != nil {
		t.Error("expected area gone after delete")
	}
}

func TestCreateAreaDuplicateName(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateArea(ctx, database, "IT", "", ""); err != nil {
		t.Fatalf("CreateArea: %v", err)
	}

	_, err := CreateArea(ctx, database, "IT", "", "")
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for duplicate name, got %v", err)
	}
}

func TestUpdateAreaMissing(t *testing.T) {
	database := db.NewTestDB(t)

	err := UpdateArea(context.Background(), database, 42, "IT", "", "")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
