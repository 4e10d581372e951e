package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"delivery_admin_echo/internal/models"
)

var (
	// ErrUserNotFound is returned when no user of the requested type has the id
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidUser is wrapped by every ValidationError
	ErrInvalidUser = errors.New("invalid user")
)

// ValidationError lists per-field problems with a user
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid user: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidUser }

// UserStore is the data-fetch capability behind the user list and detail pages
type UserStore interface {
	ListUsers(ctx context.Context, userType models.UserType) ([]models.User, error)
	GetUser(ctx context.Context, userType models.UserType, id uint) (models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// ValidateUser trims u in place, lowercases the email and reports missing or
// malformed fields
func ValidateUser(u *models.User) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Phone = strings.TrimSpace(u.Phone)

	fields := make(map[string]string)
	if u.Name == "" {
		fields["name"] = "Name is required"
	}
	if u.Email == "" {
		fields["email"] = "Email is required"
	} else if addr, err := mail.ParseAddress(u.Email); err != nil || addr.Address != u.Email {
		fields["email"] = "Email is not a valid address"
	}
	if !u.UserType.Valid() {
		fields["user_type"] = "Unknown user type"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func duplicateEmail() error {
	return &ValidationError{Fields: map[string]string{"email": "Email is already in use"}}
}

// UserService stores users in the database
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ListUsers returns all users of one type ordered by name
func (s *UserService) ListUsers(ctx context.Context, userType models.UserType) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Where("user_type = ?", userType).Order("name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list %s users: %w", userType, err)
	}
	return users, nil
}

// GetUser fetches one user, scoped to its type
func (s *UserService) GetUser(ctx context.Context, userType models.UserType, id uint) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("user_type = ?", userType).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrUserNotFound
	}
	if err != nil {
		return user, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// CreateUser validates and inserts user
func (s *UserService) CreateUser(ctx context.Context, user *models.User) error {
	if err := ValidateUser(user); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicateEmail()
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// MemoryUserStore keeps users in process memory; used when no database is configured
type MemoryUserStore struct {
	mu     sync.RWMutex
	users  map[uint]models.User
	nextID uint
}

// NewMemoryUserStore creates a store holding seed, assigning ids in order
func NewMemoryUserStore(seed []models.User) *MemoryUserStore {
	s := &MemoryUserStore{users: make(map[uint]models.User), nextID: 1}
	for i := range seed {
		u := seed[i]
		s.insert(&u)
	}
	return s
}

func (s *MemoryUserStore) insert(u *models.User) {
	now := time.Now()
	u.ID = s.nextID
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	s.nextID++
}

// ListUsers implements UserStore
func (s *MemoryUserStore) ListUsers(ctx context.Context, userType models.UserType) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0)
	for _, u := range s.users {
		if u.UserType == userType {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name == users[j].Name {
			return users[i].ID < users[j].ID
		}
		return users[i].Name < users[j].Name
	})
	return users, nil
}

// GetUser implements UserStore
func (s *MemoryUserStore) GetUser(ctx context.Context, userType models.UserType, id uint) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok || u.UserType != userType {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

// CreateUser implements UserStore
func (s *MemoryUserStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := ValidateUser(user); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return duplicateEmail()
		}
	}
	s.insert(user)
	return nil
}
