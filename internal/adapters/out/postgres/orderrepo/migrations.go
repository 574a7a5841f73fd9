package orderrepo

import (
	"context"

	"gorm.io/gorm"
)

// ChangesChannel is the NOTIFY channel raised after every statement that writes orders.
const ChangesChannel = "orders_changed"

var notifyTriggerStatements = []string{
	`CREATE OR REPLACE FUNCTION notify_orders_changed() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify('` + ChangesChannel + `', TG_OP);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS orders_changed ON orders`,
	`CREATE TRIGGER orders_changed
	AFTER INSERT OR UPDATE OR DELETE OR TRUNCATE ON orders
	FOR EACH STATEMENT EXECUTE FUNCTION notify_orders_changed()`,
}

// Migrate creates the orders table and the statement-level trigger that feeds Watch.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&OrderDTO{}); err != nil {
			return err
		}
		for _, stmt := range notifyTriggerStatements {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
