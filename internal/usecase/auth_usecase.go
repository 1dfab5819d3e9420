package usecase

import (
	"errors"

	"minigram/internal/entity"
	"minigram/internal/repo/persistent"
	"minigram/pkg/jwt"
	"minigram/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(name, email, username, password, passwordAgain string) (*entity.User, string, error)
	Login(email, password string) (*entity.User, string, error)
	GetUser(userID uint) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates an account and logs it in, returning a session token.
// The username uniqueness check is left to the store's unique index so two
// concurrent registrations cannot both win.
func (uc *authUseCase) Register(name, email, username, password, passwordAgain string) (*entity.User, string, error) {
	if password != passwordAgain {
		return nil, "", entity.ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", err
	}

	user := &entity.User{
		Name:     name,
		Email:    email,
		Username: username,
		Password: string(hashedPassword),
	}

	if err := uc.userRepo.Create(user); err != nil {
		if !errors.Is(err, entity.ErrUsernameTaken) {
			uc.logger.Error("Failed to create user: %v", err)
		}
		return nil, "", err
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", entity.ErrWrongPassword
	}

	token, err := uc.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) GetUser(userID uint) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}
