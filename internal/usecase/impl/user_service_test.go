package impl

import (
	"context"
	"log/slog"
	"testing"

	"bookbridge/internal/domain/entity"
	domainerrors "bookbridge/internal/domain/errors"
	"bookbridge/internal/domain/repository"
	"bookbridge/internal/domain/service"
	mockRepo "bookbridge/internal/mocks/repository"
	mockSvc "bookbridge/internal/mocks/service"
	"bookbridge/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	txManager    *mockRepo.MockTransactionManager
	factory      *mockRepo.MockRepositoryFactory
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
}

func createTestUserService(t *testing.T) userServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)

	service := NewUserService(UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       slog.New(slog.DiscardHandler),
	})

	return userServiceFixtures{
		service:      service,
		txManager:    txManager,
		factory:      factory,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

func (fx *userServiceFixtures) expectTransaction(ctx context.Context) {
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(fx.factory)
		})
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:    "reader@example.com",
		Name:     "Reader",
		Password: "sup3r-secret",
	}

	fx.hasher.EXPECT().Hash("sup3r-secret").Return("hashed", nil)
	fx.expectTransaction(ctx)
	fx.factory.EXPECT().UserRepo().Return(fx.userRepo)

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "reader@example.com").
		Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		RunAndReturn(func(_ context.Context, user *entity.User) error {
			assert.Equal(t, "hashed", user.PasswordHash)
			assert.Equal(t, entity.RoleCustomer, user.Role)
			user.ID = 7

			return nil
		})

	output, err := fx.service.Register(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, int64(7), output.User.ID)
	assert.Equal(t, "customer", output.User.Role)
}

func TestUserService_Register_SellerRole(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:    "shop@example.com",
		Name:     "Shop",
		Password: "sup3r-secret",
		Role:     "seller",
	}

	fx.hasher.EXPECT().Hash("sup3r-secret").Return("hashed", nil)
	fx.expectTransaction(ctx)
	fx.factory.EXPECT().UserRepo().Return(fx.userRepo)
	fx.userRepo.EXPECT().FindByEmail(ctx, "shop@example.com").Return(nil, repository.ErrUserNotFound)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		RunAndReturn(func(_ context.Context, user *entity.User) error {
			assert.Equal(t, entity.RoleSeller, user.Role)

			return nil
		})

	output, err := fx.service.Register(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "seller", output.User.Role)
}

func TestUserService_Register_AdminRoleRejected(t *testing.T) {
	fx := createTestUserService(t)

	output, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "boss@example.com",
		Name:     "Boss",
		Password: "sup3r-secret",
		Role:     "admin",
	})
	require.Error(t, err)
	assert.Nil(t, output)

	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	fx.hasher.EXPECT().Hash("sup3r-secret").Return("hashed", nil)
	fx.expectTransaction(ctx)
	fx.factory.EXPECT().UserRepo().Return(fx.userRepo)
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "reader@example.com").
		Return(&entity.User{ID: 7, Email: "reader@example.com"}, nil)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    "reader@example.com",
		Name:     "Reader",
		Password: "sup3r-secret",
	})
	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrUserAlreadyExists.ErrorCode(), appErr.ErrorCode())
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           7,
		Email:        "reader@example.com",
		PasswordHash: "hashed",
		Role:         entity.RoleCustomer,
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "reader@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("sup3r-secret", "hashed").Return(true)
	fx.tokenService.EXPECT().
		GenerateTokens(int64(7), entity.RoleCustomer).
		Return("access-token", "refresh-token", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "reader@example.com",
		Password: "sup3r-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, int64(7), output.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "reader@example.com", PasswordHash: "hashed"}

	fx.userRepo.EXPECT().FindByEmail(ctx, "reader@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", "hashed").Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "reader@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidCredentials.ErrorCode(), appErr.ErrorCode())
}

func TestUserService_Login_UnknownEmailSameError(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	require.Error(t, err)

	// Unknown emails and wrong passwords are indistinguishable to the caller.
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidCredentials.ErrorCode(), appErr.ErrorCode())
}

func TestUserService_RefreshToken_Success(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	user := &entity.User{ID: 7, Email: "reader@example.com", Role: entity.RoleSeller}

	fx.tokenService.EXPECT().
		ValidateRefreshToken("refresh-token").
		Return(&service.TokenClaims{UserID: 7, Role: entity.RoleCustomer, Type: service.TokenTypeRefresh}, nil)
	// Role comes from storage, not from the old token.
	fx.userRepo.EXPECT().FindByID(ctx, int64(7)).Return(user, nil)
	fx.tokenService.EXPECT().
		GenerateTokens(int64(7), entity.RoleSeller).
		Return("new-access", "new-refresh", nil)

	output, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})
	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, "seller", output.User.Role)
}

func TestUserService_RefreshToken_DeletedAccount(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	fx.tokenService.EXPECT().
		ValidateRefreshToken("refresh-token").
		Return(&service.TokenClaims{UserID: 7, Type: service.TokenTypeRefresh}, nil)
	fx.userRepo.EXPECT().FindByID(ctx, int64(7)).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.RefreshToken(ctx, &usecase.RefreshTokenInput{RefreshToken: "refresh-token"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrRefreshTokenInvalid.ErrorCode(), appErr.ErrorCode())
}

func TestUserService_GetProfile(t *testing.T) {
	fx := createTestUserService(t)

	ctx := context.Background()
	fx.userRepo.EXPECT().FindByID(ctx, int64(7)).Return(&entity.User{
		ID:    7,
		Email: "reader@example.com",
		Name:  "Reader",
		Role:  entity.RoleCustomer,
	}, nil)

	output, err := fx.service.GetProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", output.Email)
	assert.Equal(t, "Reader", output.Name)
}
