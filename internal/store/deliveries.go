package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avillegas/inventario/internal/model"
)

// CreateDelivery records a hand-out of stock to a user/area as a single
// transaction: the header, every line, and every stock mutation commit
// together or not at all. Lines are processed sequentially in input
// order; the first failing line aborts the whole delivery.
func CreateDelivery(ctx context.Context, db *sql.DB, userID, areaID int64, observation string, lines []model.DeliveryLineInput) (*model.Delivery, error) {
	if userID <= 0 || areaID <= 0 {
		return nil, &ValidationError{Message: "user and area are required"}
	}
	if len(lines) == 0 {
		return nil, &ValidationError{Message: "at least one product line required"}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO deliveries (user_id, area_id, observation) VALUES (?, ?, ?)`,
		userID, areaID, nullable(observation),
	)
	if err != nil {
		return nil, fmt.Errorf("creating delivery: %w",
			mapConstraintErr(err, "conflicting delivery", "referenced user or area does not exist"))
	}

	deliveryID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting delivery id: %w", err)
	}

	for _, line := range lines {
		var serialized bool
		err := tx.QueryRowContext(ctx,
			`SELECT is_serialized FROM products WHERE id = ?`, line.ProductID,
		).Scan(&serialized)
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Resource: "product", ID: line.ProductID}
		}
		if err != nil {
			return nil, fmt.Errorf("checking product: %w", err)
		}

		if err := consumeStock(ctx, tx, line.ProductID, serialized, line.ItemID, line.Quantity); err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO delivery_lines (delivery_id, product_id, item_id, quantity)
			 VALUES (?, ?, ?, ?)`,
			deliveryID, line.ProductID, line.ItemID, line.Quantity,
		); err != nil {
			return nil, fmt.Errorf("creating delivery line: %w",
				mapConstraintErr(err, "conflicting delivery line", "referenced stock item does not exist"))
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing delivery: %w", err)
	}

	return GetDelivery(ctx, db, deliveryID)
}

// DeleteDelivery removes a delivery and undoes its stock side effects
// in one transaction: serialized items return to the warehouse and
// quantity pools are re-incremented before the lines and header are
// deleted. The existence check runs first so no restore is issued for
// a delivery that does not exist.
func DeleteDelivery(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM deliveries WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return &NotFoundError{Resource: "delivery", ID: id}
	}
	if err != nil {
		return fmt.Errorf("checking delivery: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT dl.product_id, dl.item_id, dl.quantity, p.is_serialized
		 FROM delivery_lines dl
		 JOIN products p ON p.id = dl.product_id
		 WHERE dl.delivery_id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("fetching delivery lines: %w", err)
	}

	type lineStock struct {
		productID  int64
		itemID     *int64
		quantity   int
		serialized bool
	}
	var lines []lineStock
	for rows.Next() {
		var l lineStock
		if err := rows.Scan(&l.productID, &l.itemID, &l.quantity, &l.serialized); err != nil {
			rows.Close()
			return fmt.Errorf("scanning delivery line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("reading delivery lines: %w", err)
	}
	rows.Close()

	for _, l := range lines {
		if err := restoreStock(ctx, tx, l.productID, l.serialized, l.itemID, l.quantity); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM delivery_lines WHERE delivery_id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting delivery lines: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM deliveries WHERE id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting delivery: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delivery deletion: %w", err)
	}
	return nil
}

// ListDeliveries returns all deliveries with user and area names,
// newest first.
func ListDeliveries(ctx context.Context, db *sql.DB) ([]model.Delivery, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT d.id, d.user_id, d.area_id, d.delivered_at, d.observation,
		        u.full_name AS user_name, a.name AS area_name
		 FROM deliveries d
		 JOIN users u ON u.id = d.user_id
		 JOIN areas a ON a.id = d.area_id
		 ORDER BY d.delivered_at DESC, d.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []model.Delivery
	for rows.Next() {
		var d model.Delivery
		var observation sql.NullString
		if err := rows.Scan(&d.ID, &d.UserID, &d.AreaID, &d.DeliveredAt, &observation,
			&d.UserName, &d.AreaName); err != nil {
			return nil, fmt.Errorf("scanning delivery: %w", err)
		}
		d.Observation = observation.String
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

// GetDelivery returns one delivery with user and area names and its
// full set of lines, each carrying the product model and, for
// serialized products, the stock item's serial.
func GetDelivery(ctx context.Context, db *sql.DB, id int64) (*model.Delivery, error) {
	d := &model.Delivery{}
	var observation sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT d.id, d.user_id, d.area_id, d.delivered_at, d.observation,
		        u.full_name AS user_name, a.name AS area_name
		 FROM deliveries d
		 JOIN users u ON u.id = d.user_id
		 JOIN areas a ON a.id = d.area_id
		 WHERE d.id = ?`, id,
	).Scan(&d.ID, &d.UserID, &d.AreaID, &d.DeliveredAt, &observation, &d.UserName, &d.AreaName)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "delivery", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("getting delivery: %w", err)
	}
	d.Observation = observation.String

	rows, err := db.QueryContext(ctx,
		`SELECT dl.id, dl.delivery_id, dl.product_id, dl.item_id, dl.quantity,
		        p.model AS product_model, si.serial
		 FROM delivery_lines dl
		 JOIN products p ON p.id = dl.product_id
		 LEFT JOIN stock_items si ON si.id = dl.item_id
		 WHERE dl.delivery_id = ?
		 ORDER BY dl.id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching delivery lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l model.DeliveryLine
		var serial sql.NullString
		if err := rows.Scan(&l.ID, &l.DeliveryID, &l.ProductID, &l.ItemID, &l.Quantity,
			&l.ProductModel, &serial); err != nil {
			return nil, fmt.Errorf("scanning delivery line: %w", err)
		}
		l.Serial = serial.String
		d.Lines = append(d.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return d, nil
}
