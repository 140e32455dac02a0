package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/avillegas/inventario/internal/db"
	"github.com/avillegas/inventario/internal/model"
)

// deliveryFixture seeds the catalog rows every delivery test needs: a
// recipient, an area, a serialized product, and a pooled product.
type deliveryFixture struct {
	userID     int64
	areaID     int64
	serialized *model.Product
	pooled     *model.Product
}

func newDeliveryFixture(t *testing.T, database *sql.DB) deliveryFixture {
	t.Helper()
	ctx := context.Background()

	category, err := CreateCategory(ctx, database, "Laptops")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	brand, err := CreateBrand(ctx, database, "Lenovo")
	if err != nil {
		t.Fatalf("CreateBrand: %v", err)
	}

	serialized, err := CreateProduct(ctx, database, model.Product{
		CategoryID: category.ID, BrandID: brand.ID, Model: "ThinkPad T14", IsSerialized: true,
	})
	if err != nil {
		t.Fatalf("CreateProduct serialized: %v", err)
	}
	pooled, err := CreateProduct(ctx, database, model.Product{
		CategoryID: category.ID, BrandID: brand.ID, Model: "USB-C Cable", MinimumQuantity: 5,
	})
	if err != nil {
		t.Fatalf("CreateProduct pooled: %v", err)
	}

	user, err := CreateUser(ctx, database, 1001, "Alice Pérez", true)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	area, err := CreateArea(ctx, database, "IT", "Floor 3", "CC-100")
	if err != nil {
		t.Fatalf("CreateArea: %v", err)
	}

	return deliveryFixture{userID: user.ID, areaID: area.ID, serialized: serialized, pooled: pooled}
}

func TestCreateDeliverySerialized(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	item, err := CreateStockItem(ctx, database, fx.serialized.ID, "SN-001", "shelf A", "")
	if err != nil {
		t.Fatalf("CreateStockItem: %v", err)
	}

	delivery, err := CreateDelivery(ctx, database, fx.userID, fx.areaID, "new hire laptop",
		[]model.DeliveryLineInput{{ProductID: fx.serialized.ID, ItemID: &item.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("CreateDelivery: %v", err)
	}
	if len(delivery.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(delivery.Lines))
	}
	if delivery.Lines[0].Serial != "SN-001" {
		t.Errorf("expected line serial SN-001, got %q", delivery.Lines[0].Serial)
	}
	if delivery.UserName != "Alice Pérez" || delivery.AreaName != "IT" {
		t.Errorf("expected joined names, got %q / %q", delivery.UserName, delivery.AreaName)
	}

	got, _ := GetStockItem(ctx, database, item.ID)
	if got.Status != model.ItemStatusDelivered {
		t.Errorf("expected item status delivered, got %q", got.Status)
	}
}

func TestCreateDeliveryQuantityPool(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	AdjustStockQuantity(ctx, database, fx.pooled.ID, model.AdjustSet, 10)

	_, err := CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: fx.pooled.ID, Quantity: 3}})
	if err != nil {
		t.Fatalf("CreateDelivery: %v", err)
	}

	sq, _ := GetStockQuantity(ctx, database, fx.pooled.ID)
	if sq.Quantity != 7 {
		t.Errorf("expected pool at 7, got %d", sq.Quantity)
	}
}

func TestCreateDeliveryClampsPoolAtZero(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	AdjustStockQuantity(ctx, database, fx.pooled.ID, model.AdjustSet, 2)

	// Over-delivery drains the pool but does not fail.
	_, err := CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: fx.pooled.ID, Quantity: 5}})
	if err != nil {
		t.Fatalf("CreateDelivery: %v", err)
	}

	sq, _ := GetStockQuantity(ctx, database, fx.pooled.ID)
	if sq.Quantity != 0 {
		t.Errorf("expected pool clamped at 0, got %d", sq.Quantity)
	}
}

func TestCreateDeliveryAtomicOnFailedLine(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	item, _ := CreateStockItem(ctx, database, fx.serialized.ID, "SN-001", "", "")
	AdjustStockQuantity(ctx, database, fx.pooled.ID, model.AdjustSet, 10)

	// Second line references an item that does not exist; the whole
	// delivery must roll back, including the first line's decrement.
	missing := int64(9999)
	_, err := CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{
			{ProductID: fx.pooled.ID, Quantity: 4},
			{ProductID: fx.serialized.ID, ItemID: &missing, Quantity: 1},
		})
	if err == nil {
		t.Fatal("expected error for missing stock item")
	}

	sq, _ := GetStockQuantity(ctx, database, fx.pooled.ID)
	if sq.Quantity != 10 {
		t.Errorf("expected pool unchanged at 10, got %d", sq.Quantity)
	}

	got, _ := GetStockItem(ctx, database, item.ID)
	if got.Status != model.ItemStatusInWarehouse {
		t.Errorf("expected item still in warehouse, got %q", got.Status)
	}

	deliveries, _ := ListDeliveries(ctx, database)
	if len(deliveries) != 0 {
		t.Errorf("expected no deliveries recorded, got %d", len(deliveries))
	}
}

func TestCreateDeliverySameItemTwiceConflicts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	item, _ := CreateStockItem(ctx, database, fx.serialized.ID, "SN-001", "", "")

	_, err := CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: fx.serialized.ID, ItemID: &item.ID, Quantity: 1}})
	if err != nil {
		t.Fatalf("first CreateDelivery: %v", err)
	}

	_, err = CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: fx.serialized.ID, ItemID: &item.ID, Quantity: 1}})
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError for already-delivered item, got %v", err)
	}
}

func TestCreateDeliveryLineShapeValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	item, _ := CreateStockItem(ctx, database, fx.serialized.ID, "SN-001", "", "")

	var ve *ValidationError

	// Serialized line without an item.
	_, err := CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: fx.serialized.ID, Quantity: 1}})
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for serialized line without item, got %v", err)
	}

	// Serialized line with quantity != 1.
	_, err = CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: fx.serialized.ID, ItemID: &item.ID, Quantity: 2}})
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for serialized quantity 2, got %v", err)
	}

	// Pooled line referencing an item.
	_, err = CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: fx.pooled.ID, ItemID: &item.ID, Quantity: 1}})
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for pooled line with item, got %v", err)
	}

	// Pooled line with non-positive quantity.
	_, err = CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: fx.pooled.ID, Quantity: 0}})
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for zero quantity, got %v", err)
	}

	// No lines at all.
	_, err = CreateDelivery(ctx, database, fx.userID, fx.areaID, "", nil)
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for empty delivery, got %v", err)
	}

	// Missing recipient.
	_, err = CreateDelivery(ctx, database, 0, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: fx.pooled.ID, Quantity: 1}})
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for missing user, got %v", err)
	}
}

func TestCreateDeliveryUnknownProduct(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	_, err := CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{{ProductID: 9999, Quantity: 1}})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for unknown product, got %v", err)
	}
}

func TestDeleteDeliveryRestoresStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	item, _ := CreateStockItem(ctx, database, fx.serialized.ID, "SN-001", "", "")
	AdjustStockQuantity(ctx, database, fx.pooled.ID, model.AdjustSet, 10)

	delivery, err := CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
		[]model.DeliveryLineInput{
			{ProductID: fx.serialized.ID, ItemID: &item.ID, Quantity: 1},
			{ProductID: fx.pooled.ID, Quantity: 4},
		})
	if err != nil {
		t.Fatalf("CreateDelivery: %v", err)
	}

	if err := DeleteDelivery(ctx, database, delivery.ID); err != nil {
		t.Fatalf("DeleteDelivery: %v", err)
	}

	got, _ := GetStockItem(ctx, database, item.ID)
	if got.Status != model.ItemStatusInWarehouse {
		t.Errorf("expected item back in warehouse, got %q", got.Status)
	}

	sq, _ := GetStockQuantity(ctx, database, fx.pooled.ID)
	if sq.Quantity != 10 {
		t.Errorf("expected pool restored to 10, got %d", sq.Quantity)
	}

	_, err = GetDelivery(ctx, database, delivery.ID)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError after deletion, got %v", err)
	}
}

func TestDeleteDeliveryMissing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	err := DeleteDelivery(ctx, database, 42)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestConcurrentDeliveriesOfSameItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	item, _ := CreateStockItem(ctx, database, fx.serialized.ID, "SN-001", "", "")

	// Two racing deliveries of the same item: exactly one may win.
	results := make(chan error, 2)
	for range 2 {
		go func() {
			_, err := CreateDelivery(ctx, database, fx.userID, fx.areaID, "",
				[]model.DeliveryLineInput{{ProductID: fx.serialized.ID, ItemID: &item.ID, Quantity: 1}})
			results <- err
		}()
	}

	var successes, conflicts int
	for range 2 {
		err := <-results
		if err == nil {
			successes++
			continue
		}
		var ce *ConflictError
		if errors.As(err, &ce) {
			conflicts++
		} else {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Errorf("expected 1 success and 1 conflict, got %d/%d", successes, conflicts)
	}

	got, _ := GetStockItem(ctx, database, item.ID)
	if got.Status != model.ItemStatusDelivered {
		t.Errorf("expected item delivered exactly once, got %q", got.Status)
	}
}

func TestListDeliveriesNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	fx := newDeliveryFixture(t, database)

	AdjustStockQuantity(ctx, database, fx.pooled.ID, model.AdjustSet, 10)

	first, _ := CreateDelivery(ctx, database, fx.userID, fx.areaID, "first",
		[]model.DeliveryLineInput{{ProductID: fx.pooled.ID, Quantity: 1}})
	second, _ := CreateDelivery(ctx, database, fx.userID, fx.areaID, "second",
		[]model.DeliveryLineInput{{ProductID: fx.pooled.ID, Quantity: 1}})

	deliveries, err := ListDeliveries(ctx, database)
	if err != nil {
		t.Fatalf("ListDeliveries: %v", err)
	}
	if len(deliveries) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(deliveries))
	}
	if deliveries[0].ID != second.ID || deliveries[1].ID != first.ID {
		t.Errorf("expected newest first, got order %d, %d", deliveries[0].ID, deliveries[1].ID)
	}
}
