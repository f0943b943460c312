package usecase

import (
	"context"
	"fmt"

	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type UserUseCase struct {
	userRepo userRepository
}

func NewUserUseCase(userRepo userRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	const op = "usecase.UserUseCase.GetUser"

	user, err := uc.userRepo.RetrieveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	return user, nil
}

// UpdateProfile overwrites the editable fields of the user.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, id int64, profile entity.Profile) (*entity.User, error) {
	const op = "usecase.UserUseCase.UpdateProfile"

	user, err := uc.userRepo.UpdateProfile(ctx, id, profile)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to update profile: %w", op, err)
	}

	return user, nil
}
