package usecase

import (
	"context"
	"time"

	"nuptio/internal/domain/entity"
	"nuptio/internal/domain/repository"
	"nuptio/pkg/errors"
)

type UserUseCase struct {
	userRepo          repository.UserRepository
	searchHistoryRepo repository.SearchHistoryRepository
	firebaseAuth      FirebaseAuthClient
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	searchHistoryRepo repository.SearchHistoryRepository,
	firebaseAuth FirebaseAuthClient,
) *UserUseCase {
	return &UserUseCase{
		userRepo:          userRepo,
		searchHistoryRepo: searchHistoryRepo,
		firebaseAuth:      firebaseAuth,
	}
}

type UpdateProfileInput struct {
	Username    string
	Phone       string
	FullName    string
	City        string
	AvatarURL   string
	WeddingDate *time.Time
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return user, nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	if input.WeddingDate != nil {
		user.WeddingDate = input.WeddingDate
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// BecomeProvider flips a buyer account into a vendor account so it can own
// storefronts. Admins stay admins.
func (uc *UserUseCase) BecomeProvider(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if user.Role == "admin" {
		return nil, errors.BadRequest("Admin accounts cannot become providers", nil)
	}
	if user.Role == "provider" {
		return user, nil
	}

	user.Role = "provider"
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return errors.NotFound("User", err)
	}

	// Re-authenticate with the current password before allowing the change.
	if _, err := uc.firebaseAuth.SignInWithEmailPassword(user.Email, currentPassword); err != nil {
		return errors.Unauthorized("Current password is incorrect", err)
	}

	if err := uc.firebaseAuth.UpdateUserPassword(ctx, userID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	return nil
}

func (uc *UserUseCase) ListSearchHistory(ctx context.Context, userID string, limit int) ([]*entity.SearchEntry, error) {
	return uc.searchHistoryRepo.ListByUser(ctx, userID, limit)
}

func (uc *UserUseCase) ClearSearchHistory(ctx context.Context, userID string) error {
	return uc.searchHistoryRepo.Clear(ctx, userID)
}
