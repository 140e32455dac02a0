package store

import (
	"context"
	"errors"
	"testing"

	"github.com/avillegas/inventario/internal/db"
	"github.com/avillegas/inventario/internal/model"
)

func TestAccountLifecycle(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	account, err := CreateAccount(ctx, database, "alice", "hash1", model.RoleManager)
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if account.Username != "alice" || account.Role != model.RoleManager {
		t.Errorf("unexpected account: %+v", account)
	}

	byName, err := GetAccountByUsername(ctx, database, "alice")
	if err != nil {
		t.Fatalf("GetAccountByUsername: %v", err)
	}
	if byName == nil || byName.ID != account.ID {
		t.Fatal("expected to find account by username")
	}

	if err := UpdateAccountRole(ctx, database, account.ID, model.RoleAdmin); err != nil {
		t.Fatalf("UpdateAccountRole: %v", err)
	}
	got, _ := GetAccount(ctx, database, account.ID)
	if got.Role != model.RoleAdmin {
		t.Errorf("expected role admin, got %q", got.Role)
	}

	if err := DeleteAccount(ctx, database, account.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	got, _ = GetAccount(ctx, database, account.ID)
	if got == nil || got.DeletedAt == nil {
		t.Error("expected soft-deleted account to keep its row")
	}

	accounts, _ := ListAccounts(ctx, database)
	if len(accounts) != 0 {
		t.Errorf("expected deleted account excluded from list, got %d", len(accounts))
	}
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateAccount(ctx, database, "alice", "hash1", model.RoleUser); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	_, err := CreateAccount(ctx, database, "alice", "hash2", model.RoleUser)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for duplicate username, got %v", err)
	}
}

func TestUsernameReusableAfterDelete(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	account, _ := CreateAccount(ctx, database, "alice", "hash1", model.RoleUser)
	if err := DeleteAccount(ctx, database, account.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	// The unique index only covers live accounts.
	if _, err := CreateAccount(ctx, database, "alice", "hash2", model.RoleUser); err != nil {
		t.Fatalf("expected username reusable after soft delete, got %v", err)
	}
}

func TestGetAccountMissing(t *testing.T) {
	database := db.NewTestDB(t)

	account, err := GetAccount(context.Background(), database, 42)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if account != nil {
		t.Error("expected nil for missing account")
	}
}
