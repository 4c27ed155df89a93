package orderrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
// It runs on whatever *gorm.DB it is given: the plain connection or the
// transaction of a unit of work.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save inserts a never-saved order (version 0) or updates an existing one
// guarded by its version, then replaces the item rows. Order and items are
// written in one transaction (a savepoint when already inside one).
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	dto.Items = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if aggregate.Version() == 0 {
			if err := insertOrder(tx, &dto); err != nil {
				return err
			}
		} else {
			if err := updateOrder(tx, dto, aggregate.Version()); err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
			return errs.NewDatabaseError("delete order items", err)
		}
		if err := tx.Create(&items).Error; err != nil {
			return errs.NewDatabaseError("insert order items", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	aggregate.IncrementVersion()
	return nil
}

func insertOrder(tx *gorm.DB, dto *OrderDTO) error {
	if err := tx.Create(dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrConcurrentModification
		}
		return errs.NewDatabaseError("insert order", err)
	}
	return nil
}

func updateOrder(tx *gorm.DB, dto OrderDTO, expectedVersion int) error {
	result := tx.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, expectedVersion).
		Updates(map[string]any{
			"status":     dto.Status,
			"currency":   dto.Currency,
			"total":      dto.Total,
			"updated_at": dto.UpdatedAt,
			"version":    dto.Version,
		})
	if result.Error != nil {
		return errs.NewDatabaseError("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrConcurrentModification
	}
	return nil
}

// FindByID retrieves an order with its items.
func (r *GormOrderRepository) FindByID(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.withItems(ctx).First(&dto, "id = ?", id.UUID().Value()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewDatabaseError("find order", err)
	}

	return toDomain(dto)
}

// FindByCustomer retrieves a customer's orders, oldest first.
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID kernel.CustomerID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.withItems(ctx).
		Where("customer_id = ?", customerID.UUID().Value()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find customer orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// Delete removes an order; its items go with it.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id.UUID().Value()).Delete(&OrderItemDTO{}).Error; err != nil {
			return errs.NewDatabaseError("delete order items", err)
		}

		result := tx.Where("id = ?", id.UUID().Value()).Delete(&OrderDTO{})
		if result.Error != nil {
			return errs.NewDatabaseError("delete order", result.Error)
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		return nil
	})
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
