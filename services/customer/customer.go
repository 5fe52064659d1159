package customer

import (
	"context"
	"strings"
	"time"

	customerRepo "nekokin/database/repository/customer"
	petRepo "nekokin/database/repository/pet"
	"nekokin/models"
	"nekokin/services/booking"
	"nekokin/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionDuration = 24 * time.Hour

// AuthResult carries a freshly authenticated customer and their session token.
type AuthResult struct {
	Customer *models.Customer `json:"customer"`
	Token    string           `json:"token"`
}

// Service manages customer accounts, their sessions and their pets.
type Service struct {
	Customers customerRepo.CustomerRepository
	Pets      petRepo.PetRepository
	AuthCache *redis.Client
	Logger    *zap.Logger
}

func NewService(customers customerRepo.CustomerRepository, pets petRepo.PetRepository, authCache *redis.Client, logger *zap.Logger) *Service {
	return &Service{Customers: customers, Pets: pets, AuthCache: authCache, Logger: logger}
}

// Register creates an account and opens a session for it.
func (s *Service) Register(ctx context.Context, name, email, phone, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, booking.NewValidationError("name, email and password are required")
	}
	if len(password) < 8 {
		return nil, booking.NewValidationError("password must be at least 8 characters")
	}

	existing, err := s.Customers.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, booking.NewConflictError("an account with email %s already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c := &models.Customer{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		Role:         models.RoleCustomer,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Customers.Create(c); err != nil {
		return nil, err
	}
	s.Logger.Info("customer registered", zap.String("customerID", c.ID))

	return s.openSession(ctx, c)
}

// Login checks the credentials and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, booking.NewValidationError("email and password are required")
	}

	c, err := s.Customers.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, booking.NewForbiddenError("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, booking.NewForbiddenError("invalid email or password")
	}
	return s.openSession(ctx, c)
}

// Logout revokes the session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.AuthCache == nil || token == "" {
		return nil
	}
	return s.AuthCache.Del(ctx, utils.AuthCachePrefix+utils.HashToken(token)).Err()
}

func (s *Service) openSession(ctx context.Context, c *models.Customer) (*AuthResult, error) {
	token, err := utils.GenerateToken(c.ID, c.Role, sessionDuration)
	if err != nil {
		return nil, err
	}
	if s.AuthCache != nil {
		key := utils.AuthCachePrefix + utils.HashToken(token)
		if err := s.AuthCache.Set(ctx, key, c.ID, utils.AuthCacheTTL).Err(); err != nil {
			s.Logger.Warn("failed to cache session token", zap.Error(err))
		}
	}
	return &AuthResult{Customer: c, Token: token}, nil
}

// Get returns a customer profile. Customers can only read their own.
func (s *Service) Get(actor booking.Actor, id string) (*models.Customer, error) {
	if !actor.IsAdmin() && actor.CustomerID != id {
		return nil, booking.NewForbiddenError("you do not have access to this account")
	}
	c, err := s.Customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, booking.NewNotFoundError("customer %s does not exist", id)
	}
	return c, nil
}

// List returns all customers; admin only.
func (s *Service) List(actor booking.Actor) ([]models.Customer, error) {
	if !actor.IsAdmin() {
		return nil, booking.NewForbiddenError("only administrators may list customers")
	}
	return s.Customers.GetAll()
}

// UpdateProfileRequest patches the mutable profile fields.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UpdateProfile applies a partial profile update.
func (s *Service) UpdateProfile(actor booking.Actor, id string, req UpdateProfileRequest) (*models.Customer, error) {
	c, err := s.Get(actor, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, booking.NewValidationError("name cannot be empty")
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		c.Address = strings.TrimSpace(*req.Address)
	}
	c.UpdatedAt = time.Now()
	if err := s.Customers.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ChangePassword verifies the current password before setting a new one.
func (s *Service) ChangePassword(actor booking.Actor, id, current, next string) error {
	if actor.CustomerID != id {
		return booking.NewForbiddenError("you do not have access to this account")
	}
	if len(next) < 8 {
		return booking.NewValidationError("password must be at least 8 characters")
	}
	c, err := s.Customers.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return booking.NewNotFoundError("customer %s does not exist", id)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(current)); err != nil {
		return booking.NewForbiddenError("current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hash)
	c.UpdatedAt = time.Now()
	return s.Customers.Update(c)
}
