package store

import (
	"context"
	"errors"
	"testing"

	"github.com/avillegas/inventario/internal/db"
	"github.com/avillegas/inventario/internal/model"
)

func TestUserLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, database, 1001, "Alice Pérez", true)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.EmployeeID != 1001 || !user.Active {
		t.Errorf("unexpected user: %+v", user)
	}

	if err := UpdateUser(ctx, database, user.ID, 1001, "Alice Pérez", false); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	got, _ := GetUser(ctx, database, user.ID)
	if got.Active {
		t.Error("expected user deactivated")
	}

	if err := DeleteUser(ctx, database, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	got, _ = GetUser(ctx, database, user.ID)
	if got != nil {
		t.Error("expected user gone after delete")
	}
}

func TestListUsersActiveFilter(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateUser(ctx, database, 1001, "Alice Pérez", true)
	CreateUser(ctx, database, 1002, "Bruno Díaz", false)

	all, err := ListUsers(ctx, database, false)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 users, got %d", len(all))
	}

	active, err := ListUsers(ctx, database, true)
	if err != nil {
		t.Fatalf("ListUsers active: %v", err)
	}
	if len(active) != 1 || active[0].EmployeeID != 1001 {
		t.Errorf("expected only active user, got %+v", active)
	}
}

func TestCreateUserDuplicateEmployeeID(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, database, 1001, "Alice Pérez", true); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	_, err := CreateUser(ctx, database, 1001, "Alice Clone", true)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for duplicate employee id, got %v", err)
	}
}

func TestDeleteUserReferencedByDelivery(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	AdjustStockQuantity(ctx, database, fx.pooled.ID, model.AdjustSet, 5)
	if _, err := CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: fx.pooled.ID, Quantity: 1}}); err != nil {
		t.Fatalf("CreateDelivery: %v", err)
	}

	err := DeleteUser(ctx, database, fx.userID)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for referenced user, got %v", err)
	}
}
