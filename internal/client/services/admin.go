package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/aleksmv/userdesk/internal/client/api"
	"github.com/aleksmv/userdesk/internal/client/models"
	"github.com/aleksmv/userdesk/internal/client/session"
	"github.com/aleksmv/userdesk/internal/logging"
)

// ErrPasswordRequired reports a create or register payload without a
// password. The server would reject it anyway; failing locally keeps the
// round trip.
var ErrPasswordRequired = errors.New("password is required")

// CreateUserRequest is the payload for creating a user record. Password
// must be non-empty; callers may supply a generated default.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

// UpdateUserRequest carries only the fields to change. An unset or empty
// Password is never sent, so the server retains the prior credential.
type UpdateUserRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Password string `json:"password,omitempty"`
}

// AdminService is the user-management facade. It exists only for sessions
// holding the ADMIN role (see AuthService.Admin), and every method
// re-checks the live role before dispatch, failing api.ErrForbidden when
// the role no longer grants it.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type adminService struct {
	gw      Gateway
	session *session.Session
	log     logging.Logger
}

func (s *adminService) requireAdmin() error {
	if !s.session.IsAdmin() {
		return api.ErrForbidden
	}
	return nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	var profiles []models.Profile
	if err := s.gw.Do(ctx, http.MethodGet, "/api/v1/users", nil, &profiles); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(profiles))
	for i := range profiles {
		users = append(users, *profiles[i].User())
	}
	return users, nil
}

func (s *adminService) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}
	var p models.Profile
	if err := s.gw.Do(ctx, http.MethodPost, "/api/v1/users", req, &p); err != nil {
		return nil, err
	}
	return p.User(), nil
}

func (s *adminService) UpdateUser(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	var p models.Profile
	if err := s.gw.Do(ctx, http.MethodPut, "/api/v1/users/"+url.PathEscape(id), req, &p); err != nil {
		return nil, err
	}
	return p.User(), nil
}

func (s *adminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.requireAdmin(); err != nil {
		return err
	}
	return s.gw.Do(ctx, http.MethodDelete, "/api/v1/users/"+url.PathEscape(id), nil, nil)
}
