package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/access"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// UserUseCase administración de usuarios (pantalla de ADMIN). El digest se
// calcula aquí; el repositorio nunca ve secretos en claro.
type UserUseCase struct {
	userRepo repository.UserRepository
	salt     string
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository, salt string) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, salt: salt}
}

// Create da de alta un usuario. Username y Secret son obligatorios y el rol
// debe ser uno de los conocidos. Username duplicado devuelve ErrDuplicate.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Secret == "" {
		return nil, fmt.Errorf("username y secret requeridos: %w", domain.ErrValidation)
	}
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("rol %q: %w", in.Role, domain.ErrValidation)
	}
	user := &entity.User{
		Username: in.Username,
		Digest:   access.Digest(in.Secret, uc.salt),
		Role:     in.Role,
	}
	id, err := uc.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return toUserResponse(user), nil
}

// Update cambia el secreto y el rol de un usuario. El username es inmutable.
func (uc *UserUseCase) Update(ctx context.Context, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Secret == "" {
		return nil, fmt.Errorf("secret requerido: %w", domain.ErrValidation)
	}
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("rol %q: %w", in.Role, domain.ErrValidation)
	}
	user.Digest = access.Digest(in.Secret, uc.salt)
	user.Role = in.Role
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario por id.
func (uc *UserUseCase) Delete(ctx context.Context, id int64) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.userRepo.Delete(ctx, id)
}

// List lista los usuarios por id ascendente.
func (uc *UserUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
