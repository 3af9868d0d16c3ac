package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storerating/entity"
	"storerating/repository"
	"storerating/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService จัดการ business logic ของการ login/register
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Register สร้าง user role "user" แล้วออก token ให้เลย
func (s *AuthService) Register(ctx context.Context, in UserInput) (string, *entity.User, error) {
	user, err := createUser(ctx, s.userRepo, in, entity.RoleUser)
	if err != nil {
		return "", nil, err
	}
	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

type loginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login ตรวจสอบ user + สร้าง JWT
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	in := loginInput{Email: normalizeEmail(email), Password: password}
	if err := FromFieldErrors(inputValidator.Struct(in)); err != nil {
		return "", nil, err
	}
	email = in.Email

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, unauthenticated("Invalid credentials")
	}
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	// เทียบรหัสผ่าน
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, unauthenticated("Invalid credentials")
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}

// UpdatePassword hash ใหม่ทุกครั้งที่ path นี้ ไม่มีการเดาว่า hash แล้วหรือยัง
func (s *AuthService) UpdatePassword(ctx context.Context, userID uint, current, next string) error {
	if err := validateVar("newPassword", next, "min=8,max=16,"+tagPassword); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("User")
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return unauthenticated("Current password is incorrect")
	}

	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

// GetProfile
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("User")
	}
	return user, err
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// createUser ใช้ร่วมกันระหว่าง register กับ admin
func createUser(ctx context.Context, repo *repository.UserRepository, in UserInput, role entity.Role) (*entity.User, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	// ตรวจซ้ำ email
	count, err := repo.CountByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, conflict("User already exists with this email")
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Address:  strings.TrimSpace(in.Address),
		Role:     role,
	}
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("User already exists with this email")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
