package service

import (
	"context"
	"strings"
	"time"

	"notesai-be/internal/config"
	"notesai-be/internal/dto"
	"notesai-be/internal/entity"
	"notesai-be/internal/pkg/apperrors"
	"notesai-be/internal/pkg/logger"
	"notesai-be/internal/pkg/mailer"
	"notesai-be/internal/repository/specification"
	"notesai-be/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 7 * 24 * time.Hour

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService *mailer.EmailService
	cfg          *config.Config
	logger       logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService *mailer.EmailService,
	cfg *config.Config,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:   uowFactory,
		emailService: emailService,
		cfg:          cfg,
		logger:       log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.New(apperrors.ErrDuplicate, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := entity.User{
		Id:           uuid.New(),
		Email:        email,
		FullName:     req.Name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, &user); err != nil {
		return nil, err
	}

	// Welcome mail is fire and forget; registration never waits on SMTP.
	if s.emailService != nil && s.emailService.Configured() {
		go func(to, name string) {
			if err := s.emailService.SendWelcome(to, name); err != nil {
				s.logger.Warn("AuthService", "Failed to send welcome email", map[string]interface{}{
					"email": to,
					"error": err.Error(),
				})
			}
		}(user.Email, user.FullName)
	}

	return s.buildAuthResponse(&user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password collapse into the same 401.
	if user == nil {
		return nil, apperrors.Unauthorized()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized()
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *entity.User) (*dto.AuthResponse, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.Id.String(),
		"exp":     time.Now().Add(tokenLifetime).Unix(),
		"iat":     time.Now().Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: signed,
		User: dto.UserResponse{
			Id:        user.Id,
			Email:     user.Email,
			Name:      user.FullName,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
