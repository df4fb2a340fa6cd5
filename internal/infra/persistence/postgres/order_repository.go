package postgres

import (
	"context"

	"bookbridge/internal/domain/entity"
	domainerrors "bookbridge/internal/domain/errors"
	"bookbridge/internal/domain/repository"
	"bookbridge/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order together with its items in a single insert.
// GORM writes the association rows with the generated order ID.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateOrderItem
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrBookNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = itemM.OrderID
		order.Items[i].CreatedAt = itemM.CreatedAt
	}

	return nil
}

// FindByID retrieves a single order with its items, their books, and the
// customer preloaded.
func (repo *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items.Book").
		Preload("Customer").
		First(&orderM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return toOrderDomain(&orderM), nil
}

// ListByCustomer retrieves all orders placed by one customer, most recent first.
func (repo *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*entity.Order, error) {
	return repo.list(ctx, repo.db.WithContext(ctx).Where("customer_id = ?", customerID))
}

// ListBySeller retrieves orders containing at least one of the seller's books.
// The join can match an order through several lines, so results are deduplicated.
func (repo *orderRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*entity.Order, error) {
	tx := repo.db.WithContext(ctx).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN books ON books.id = order_items.book_id").
		Where("books.seller_id = ?", sellerID).
		Distinct("orders.*")

	return repo.list(ctx, tx)
}

// ListAll retrieves every order, most recent first.
func (repo *orderRepository) ListAll(ctx context.Context) ([]*entity.Order, error) {
	return repo.list(ctx, repo.db.WithContext(ctx))
}

func (repo *orderRepository) list(_ context.Context, tx *gorm.DB) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := tx.
		Model(&model.OrderModel{}).
		Preload("Items.Book").
		Preload("Customer").
		Order("orders.created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// Update persists the order's mutable fields. Items are updated separately
// through UpdateItem, so association writes are skipped here.
func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":           order.Status.String(),
			"total_amount":     order.TotalAmount,
			"shipping_address": order.ShippingAddress,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// FindItemByID retrieves a single order line with its book preloaded.
func (repo *orderRepository) FindItemByID(ctx context.Context, itemID int64) (*entity.OrderItem, error) {
	var itemM model.OrderItemModel

	if err := repo.db.WithContext(ctx).
		Preload("Book").
		First(&itemM, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find order item")
	}

	return toOrderItemDomain(&itemM), nil
}

// UpdateItem persists an order line's quantity and recomputed subtotal.
func (repo *orderRepository) UpdateItem(ctx context.Context, item *entity.OrderItem) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"quantity": item.Quantity,
			"subtotal": item.Subtotal,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderItemNotFound
	}

	return nil
}

// Delete removes an order; the cascade constraint removes its items.
func (repo *orderRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.OrderModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]*entity.OrderItem, 0, len(data.Items))
	for i := range data.Items {
		items = append(items, toOrderItemDomain(&data.Items[i]))
	}

	return &entity.Order{
		ID:              data.ID,
		CustomerID:      data.CustomerID,
		Customer:        toUserDomain(data.Customer),
		Status:          entity.OrderStatus(data.Status),
		TotalAmount:     data.TotalAmount,
		ShippingAddress: data.ShippingAddress,
		Items:           items,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// toOrderItemDomain converts a GORM OrderItemModel to a domain OrderItem entity.
func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	if data == nil {
		return nil
	}

	return &entity.OrderItem{
		ID:        data.ID,
		OrderID:   data.OrderID,
		BookID:    data.BookID,
		Book:      toBookDomain(data.Book),
		Quantity:  data.Quantity,
		Price:     data.Price,
		Subtotal:  data.Subtotal,
		CreatedAt: data.CreatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Subtotal,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		CustomerID:      data.CustomerID,
		Status:          data.Status.String(),
		TotalAmount:     data.TotalAmount,
		ShippingAddress: data.ShippingAddress,
		Items:           items,
	}
}
