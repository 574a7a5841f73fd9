package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/stream"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var _ ports.OrderStore = (*GormOrderStore)(nil)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

// GormOrderStore implements ports.OrderStore on PostgreSQL. Reads and writes go
// through GORM; Watch opens a dedicated lib/pq listener per subscription.
type GormOrderStore struct {
	db          *gorm.DB
	listenerDSN string
	logger      *slog.Logger
}

// NewGormOrderStore creates the store. listenerDSN is the connection string used for
// LISTEN connections; it must point to the same database as db.
func NewGormOrderStore(db *gorm.DB, listenerDSN string, logger *slog.Logger) *GormOrderStore {
	return &GormOrderStore{
		db:          db,
		listenerDSN: listenerDSN,
		logger:      logger.With("component", "GormOrderStore"),
	}
}

// Create inserts the draft; the database fills in id and created_at.
func (s *GormOrderStore) Create(ctx context.Context, draft *order.Draft) (kernel.UUID, error) {
	if err := draft.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	dto := fromDraft(draft)
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return kernel.UUID{}, errs.NewStoreWriteError("create", err)
	}

	return kernel.UUIDFromBytes(dto.ID[:])
}

func (s *GormOrderStore) ListByCreatedDesc(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", dto.ID, err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// UpdateStatus writes one column of one row.
func (s *GormOrderStore) UpdateStatus(ctx context.Context, change order.StatusChange) error {
	if err := change.Validate(); err != nil {
		return err
	}

	column := "paid"
	if change.Field() == order.FieldDeliveryState {
		column = "delivery_state"
	}

	result := s.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", change.OrderID().Bytes()).
		Update(column, change.Value())
	if result.Error != nil {
		return errs.NewStoreWriteError("update "+column, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", change.OrderID().String())
	}

	return nil
}

func (s *GormOrderStore) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return errs.NewStoreWriteError("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

// DeleteAll runs in one transaction and rolls back unless every id was deleted.
func (s *GormOrderStore) DeleteAll(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		raw = append(raw, id.Bytes())
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ?", raw).Delete(&OrderDTO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(raw)) {
			return fmt.Errorf("deleted %d of %d orders", result.RowsAffected, len(raw))
		}
		return nil
	})
	if err != nil {
		return errs.NewStoreWriteError("delete all", err)
	}

	return nil
}

// Watch delivers a snapshot on start and after every notification on ChangesChannel.
// Notifications that pile up while a snapshot is being read are folded into one read.
// The listener is not allowed to reconnect: a dropped connection ends the watch.
func (s *GormOrderStore) Watch(ctx context.Context, onChange func([]*order.Order)) (ports.Watch, error) {
	failed := make(chan error, 1)
	listener := pq.NewListener(s.listenerDSN, listenerMinReconnect, listenerMaxReconnect,
		func(ev pq.ListenerEventType, err error) {
			if ev != pq.ListenerEventDisconnected && ev != pq.ListenerEventConnectionAttemptFailed {
				return
			}
			if err == nil {
				err = errors.New("listener disconnected")
			}
			select {
			case failed <- err:
			default:
			}
		})

	if err := listener.Listen(ChangesChannel); err != nil {
		_ = listener.Close()
		return nil, errs.NewSubscriptionError(err)
	}

	return stream.Start(ctx, func(ctx context.Context) error {
		defer func() {
			if err := listener.Close(); err != nil {
				s.logger.Warn("failed to close listener", "error", err)
			}
		}()

		deliver := func() error {
			snapshot, err := s.ListByCreatedDesc(ctx)
			if err != nil {
				return err
			}
			if ctx.Err() == nil {
				onChange(snapshot)
			}
			return nil
		}

		if err := deliver(); err != nil {
			return err
		}

		ping := time.NewTicker(listenerPingInterval)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case err := <-failed:
				return err
			case <-listener.Notify:
				drain(listener.Notify)
				if err := deliver(); err != nil {
					return err
				}
			case <-ping.C:
				if err := listener.Ping(); err != nil {
					return err
				}
			}
		}
	}), nil
}

func drain(ch <-chan *pq.Notification) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
