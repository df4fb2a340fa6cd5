package impl

import (
	"context"
	"log/slog"
	"strconv"
	"testing"

	"bookbridge/internal/domain/entity"
	domainerrors "bookbridge/internal/domain/errors"
	"bookbridge/internal/domain/repository"
	"bookbridge/internal/domain/service"
	mockRepo "bookbridge/internal/mocks/repository"
	mockSvc "bookbridge/internal/mocks/service"
	"bookbridge/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	factory   *mockRepo.MockRepositoryFactory
	orderRepo *mockRepo.MockOrderRepository
	bookRepo  *mockRepo.MockBookRepository
	publisher *mockSvc.MockEventPublisher
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	bookRepo := mockRepo.NewMockBookRepository(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	service := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		Publisher: publisher,
		Logger:    slog.New(slog.DiscardHandler),
	})

	return orderServiceFixtures{
		service:   service,
		txManager: txManager,
		factory:   factory,
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		publisher: publisher,
	}
}

// expectTransaction wires the transaction manager to run the callback against
// the fixture's repository factory.
func (fx *orderServiceFixtures) expectTransaction(ctx context.Context) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(fx.factory)
		})
}

func activeBook(id int64, sellerID int64, price string, stock int) *entity.Book {
	return &entity.Book{
		ID:            id,
		Title:         "Book " + strconv.FormatInt(id, 10),
		Author:        "Author",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		SellerID:      sellerID,
		IsActive:      true,
	}
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	customer := usecase.Actor{UserID: 7, Role: entity.RoleCustomer}
	input := &usecase.PlaceOrderInput{
		ShippingAddress: "1 Main St",
		Items: []*usecase.OrderItemInput{
			{BookID: 1, Quantity: 3},
			{BookID: 2, Quantity: 1},
		},
	}

	fx.expectTransaction(ctx)
	fx.factory.EXPECT().BookRepo().Return(fx.bookRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.bookRepo.EXPECT().FindActiveByID(ctx, int64(1)).Return(activeBook(1, 20, "19.99", 10), nil)
	fx.bookRepo.EXPECT().FindActiveByID(ctx, int64(2)).Return(activeBook(2, 21, "5.00", 2), nil)
	fx.bookRepo.EXPECT().DecrementStock(ctx, int64(1), 3).Return(nil)
	fx.bookRepo.EXPECT().DecrementStock(ctx, int64(2), 1).Return(nil)

	fx.orderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		RunAndReturn(func(_ context.Context, order *entity.Order) error {
			order.ID = 100
			for i, item := range order.Items {
				item.ID = int64(i + 1)
				item.OrderID = order.ID
			}

			return nil
		})

	fx.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
		RunAndReturn(func(_ context.Context, event *service.OrderEvent) error {
			assert.Equal(t, service.OrderEventPlaced, event.EventType)
			assert.Equal(t, int64(100), event.OrderID)
			assert.Equal(t, int64(7), event.CustomerID)
			assert.Equal(t, "pending", event.Status)
			assert.Equal(t, "64.97", event.TotalAmount)

			return nil
		})

	output, err := fx.service.PlaceOrder(ctx, customer, input)
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, int64(100), output.ID)
	assert.Equal(t, "pending", output.Status)
	assert.Equal(t, "64.97", output.TotalAmount)
	require.Len(t, output.Items, 2)
	assert.Equal(t, "19.99", output.Items[0].Price)
	assert.Equal(t, "59.97", output.Items[0].Subtotal)
	assert.Equal(t, "5.00", output.Items[1].Subtotal)
}

func TestOrderService_PlaceOrder_InsufficientStockRollsBack(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	customer := usecase.Actor{UserID: 7, Role: entity.RoleCustomer}
	input := &usecase.PlaceOrderInput{
		ShippingAddress: "1 Main St",
		Items: []*usecase.OrderItemInput{
			{BookID: 1, Quantity: 2},
			{BookID: 2, Quantity: 5},
		},
	}

	fx.expectTransaction(ctx)
	fx.factory.EXPECT().BookRepo().Return(fx.bookRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

	fx.bookRepo.EXPECT().FindActiveByID(ctx, int64(1)).Return(activeBook(1, 20, "10.00", 5), nil)
	fx.bookRepo.EXPECT().DecrementStock(ctx, int64(1), 2).Return(nil)
	fx.bookRepo.EXPECT().FindActiveByID(ctx, int64(2)).Return(activeBook(2, 20, "4.00", 3), nil)
	fx.bookRepo.EXPECT().DecrementStock(ctx, int64(2), 5).Return(repository.ErrInsufficientStock)

	output, err := fx.service.PlaceOrder(ctx, customer, input)
	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInsufficientStock.ErrorCode(), appErr.ErrorCode())

	// The response detail names the book and the shortfall.
	assert.Contains(t, appErr.Details(), `"Book 2"`)
	assert.Contains(t, appErr.Details(), "3 available, 5 requested")

	// No order is persisted and no event is published.
	fx.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_UnknownBook(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	customer := usecase.Actor{UserID: 7, Role: entity.RoleCustomer}
	input := &usecase.PlaceOrderInput{
		ShippingAddress: "1 Main St",
		Items:           []*usecase.OrderItemInput{{BookID: 99, Quantity: 1}},
	}

	fx.expectTransaction(ctx)
	fx.factory.EXPECT().BookRepo().Return(fx.bookRepo)
	fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)
	fx.bookRepo.EXPECT().FindActiveByID(ctx, int64(99)).Return(nil, repository.ErrBookNotFound)

	output, err := fx.service.PlaceOrder(ctx, customer, input)
	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrBookNotFound.ErrorCode(), appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "book 99 not found")
}

func TestOrderService_PlaceOrder_DuplicateBookRejected(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	customer := usecase.Actor{UserID: 7, Role: entity.RoleCustomer}
	input := &usecase.PlaceOrderInput{
		ShippingAddress: "1 Main St",
		Items: []*usecase.OrderItemInput{
			{BookID: 1, Quantity: 1},
			{BookID: 1, Quantity: 2},
		},
	}

	output, err := fx.service.PlaceOrder(ctx, customer, input)
	require.Error(t, err)
	assert.Nil(t, output)

	// Rejected before any transaction starts.
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_CustomersOnly(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	seller := usecase.Actor{UserID: 20, Role: entity.RoleSeller}
	input := &usecase.PlaceOrderInput{
		ShippingAddress: "1 Main St",
		Items:           []*usecase.OrderItemInput{{BookID: 1, Quantity: 1}},
	}

	output, err := fx.service.PlaceOrder(ctx, seller, input)
	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrForbidden.ErrorCode(), appErr.ErrorCode())

	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestOrderService_ListOrders_RoleScoping(t *testing.T) {
	ctx := context.Background()

	t.Run("customer sees own orders", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().ListByCustomer(ctx, int64(7)).Return([]*entity.Order{}, nil)

		_, err := fx.service.ListOrders(ctx, usecase.Actor{UserID: 7, Role: entity.RoleCustomer})
		require.NoError(t, err)
	})

	t.Run("seller sees orders with their books", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().ListBySeller(ctx, int64(20)).Return([]*entity.Order{}, nil)

		_, err := fx.service.ListOrders(ctx, usecase.Actor{UserID: 20, Role: entity.RoleSeller})
		require.NoError(t, err)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().ListAll(ctx).Return([]*entity.Order{}, nil)

		_, err := fx.service.ListOrders(ctx, usecase.Actor{UserID: 1, Role: entity.RoleAdmin})
		require.NoError(t, err)
	})
}

func ordersFixtureOrder() *entity.Order {
	book := activeBook(1, 20, "12.50", 4)

	return &entity.Order{
		ID:              100,
		CustomerID:      7,
		Status:          entity.OrderStatusPending,
		TotalAmount:     decimal.RequireFromString("25.00"),
		ShippingAddress: "1 Main St",
		Items: []*entity.OrderItem{
			{ID: 1, OrderID: 100, BookID: 1, Book: book, Quantity: 2,
				Price: book.Price, Subtotal: decimal.RequireFromString("25.00")},
		},
	}
}

func TestOrderService_GetOrder_Visibility(t *testing.T) {
	ctx := context.Background()

	t.Run("owning customer", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, int64(100)).Return(ordersFixtureOrder(), nil)

		output, err := fx.service.GetOrder(ctx, usecase.Actor{UserID: 7, Role: entity.RoleCustomer}, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(100), output.ID)
	})

	t.Run("seller of a contained book", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, int64(100)).Return(ordersFixtureOrder(), nil)

		output, err := fx.service.GetOrder(ctx, usecase.Actor{UserID: 20, Role: entity.RoleSeller}, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(100), output.ID)
	})

	t.Run("unrelated customer reads as not found", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, int64(100)).Return(ordersFixtureOrder(), nil)

		output, err := fx.service.GetOrder(ctx, usecase.Actor{UserID: 8, Role: entity.RoleCustomer}, 100)
		require.Error(t, err)
		assert.Nil(t, output)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrOrderNotFound.ErrorCode(), appErr.ErrorCode())
	})
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown status rejected", func(t *testing.T) {
		fx := createTestOrderService(t)

		_, err := fx.service.UpdateOrderStatus(ctx,
			usecase.Actor{UserID: 1, Role: entity.RoleAdmin}, 100,
			&usecase.UpdateOrderStatusInput{Status: "teleported"})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrInvalidOrderStatus.ErrorCode(), appErr.ErrorCode())
	})

	t.Run("unrelated seller forbidden", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, int64(100)).Return(ordersFixtureOrder(), nil)

		_, err := fx.service.UpdateOrderStatus(ctx,
			usecase.Actor{UserID: 99, Role: entity.RoleSeller}, 100,
			&usecase.UpdateOrderStatusInput{Status: "shipped"})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrForbidden.ErrorCode(), appErr.ErrorCode())
	})

	t.Run("seller of contained book updates and event fires", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, int64(100)).Return(ordersFixtureOrder(), nil)
		fx.orderRepo.EXPECT().
			Update(ctx, mock.AnythingOfType("*entity.Order")).
			RunAndReturn(func(_ context.Context, order *entity.Order) error {
				assert.Equal(t, entity.OrderStatusShipped, order.Status)

				return nil
			})
		fx.publisher.EXPECT().
			PublishOrderEvent(ctx, mock.AnythingOfType("*service.OrderEvent")).
			RunAndReturn(func(_ context.Context, event *service.OrderEvent) error {
				assert.Equal(t, service.OrderEventStatusChanged, event.EventType)
				assert.Equal(t, "shipped", event.Status)

				return nil
			})

		output, err := fx.service.UpdateOrderStatus(ctx,
			usecase.Actor{UserID: 20, Role: entity.RoleSeller}, 100,
			&usecase.UpdateOrderStatusInput{Status: "shipped"})
		require.NoError(t, err)
		assert.Equal(t, "shipped", output.Status)
	})
}

func TestOrderService_UpdateOrderItem(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin forbidden", func(t *testing.T) {
		fx := createTestOrderService(t)

		_, err := fx.service.UpdateOrderItem(ctx,
			usecase.Actor{UserID: 7, Role: entity.RoleCustomer}, 100, 1,
			&usecase.UpdateOrderItemInput{Quantity: 3})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrForbidden.ErrorCode(), appErr.ErrorCode())
	})

	t.Run("admin change recomputes subtotal and total", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.expectTransaction(ctx)
		fx.factory.EXPECT().OrderRepo().Return(fx.orderRepo)

		fx.orderRepo.EXPECT().FindByID(ctx, int64(100)).Return(ordersFixtureOrder(), nil)
		fx.orderRepo.EXPECT().
			UpdateItem(ctx, mock.AnythingOfType("*entity.OrderItem")).
			RunAndReturn(func(_ context.Context, item *entity.OrderItem) error {
				assert.Equal(t, 3, item.Quantity)
				assert.Equal(t, "37.50", item.Subtotal.StringFixed(2))

				return nil
			})
		fx.orderRepo.EXPECT().
			Update(ctx, mock.AnythingOfType("*entity.Order")).
			RunAndReturn(func(_ context.Context, order *entity.Order) error {
				assert.Equal(t, "37.50", order.TotalAmount.StringFixed(2))

				return nil
			})

		output, err := fx.service.UpdateOrderItem(ctx,
			usecase.Actor{UserID: 1, Role: entity.RoleAdmin}, 100, 1,
			&usecase.UpdateOrderItemInput{Quantity: 3})
		require.NoError(t, err)
		assert.Equal(t, "37.50", output.TotalAmount)
	})
}

func TestOrderService_DeleteOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("owning customer deletes", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, int64(100)).Return(ordersFixtureOrder(), nil)
		fx.orderRepo.EXPECT().Delete(ctx, int64(100)).Return(nil)

		err := fx.service.DeleteOrder(ctx, usecase.Actor{UserID: 7, Role: entity.RoleCustomer}, 100)
		require.NoError(t, err)
	})

	t.Run("unrelated customer forbidden", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, int64(100)).Return(ordersFixtureOrder(), nil)

		err := fx.service.DeleteOrder(ctx, usecase.Actor{UserID: 8, Role: entity.RoleCustomer}, 100)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainerrors.ErrForbidden.ErrorCode(), appErr.ErrorCode())
	})
}
