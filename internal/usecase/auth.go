package usecase

import (
	"context"
	"errors"

	"futsal-reserve/internal/domain/user"
	"futsal-reserve/internal/infra"
	"futsal-reserve/internal/pkg/errs"
	"futsal-reserve/internal/pkg/jwt"
	"futsal-reserve/internal/pkg/password"
	"futsal-reserve/internal/usecase/queries"
	"futsal-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrTokenValidation    = errors.New("token validation failed")
)

type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
}

type SignupParams struct {
	Email       string
	Password    string
	Name        string
	PhoneNumber string
}

type AuthUseCase interface {
	Signup(ctx context.Context, params SignupParams) (*queries.AuthorizedUserView, error)
	Login(ctx context.Context, credentials user.Credentials) (string, *queries.AuthorizedUserView, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error)
}

type authUseCaseImpl struct {
	uow        shared.UnitOfWork
	userReads  UserReadStore
	jwtService *jwt.Service
}

func NewAuthUseCase(uow shared.UnitOfWork, userReads UserReadStore, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		uow:        uow,
		userReads:  userReads,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Signup(ctx context.Context, params SignupParams) (*queries.AuthorizedUserView, error) {
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if _, err := user.NewPassword(params.Password); err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	hash, err := password.HashPassword(params.Password)
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	newUser := user.NewUser(email, hash, params.Name, params.PhoneNumber, user.RoleUser)

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Users().Create(ctx, newUser)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Wrap(err, "failed to create user")
	}

	return &queries.AuthorizedUserView{
		ID:          newUser.ID(),
		Email:       newUser.Email().Value(),
		Name:        newUser.Name(),
		PhoneNumber: newUser.PhoneNumber(),
		Role:        newUser.Role().String(),
	}, nil
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials user.Credentials) (string, *queries.AuthorizedUserView, error) {
	view, hashedPassword, err := a.userReads.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, errs.Wrap(err, "failed to find user")
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	return token, view, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	view, err := a.userReads.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find user")
	}
	return view, nil
}
