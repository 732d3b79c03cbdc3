package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/plumablog/backend/internal/api/validate"
	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/httperr"
	"github.com/plumablog/backend/internal/metrics"
	"github.com/plumablog/backend/internal/models"
	repo "github.com/plumablog/backend/internal/repository"
	"github.com/plumablog/backend/internal/worker"
)

type UserService struct {
	users      repo.Users
	tm         *auth.TokenManager
	bcryptCost int
	audit      auditor
}

func NewUserService(users repo.Users, tm *auth.TokenManager, bcryptCost int, logs repo.AuditLogs, wp *worker.Pool) *UserService {
	return &UserService{users: users, tm: tm, bcryptCost: bcryptCost, audit: newAuditor(logs, wp)}
}

// Signup creates a local account. Username and email are stored lowercased
// and must be unique case-insensitively. Returns the user and a session
// token for the cookie.
func (s *UserService) Signup(ctx context.Context, username, email, password string) (models.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if !validate.AllPresent(username, email, password) {
		return models.User{}, "", httperr.BadRequest("All fields are required")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return models.User{}, "", err
	}
	if exists {
		return models.User{}, "", httperr.BadRequest("Username or Email already exists")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return models.User{}, "", err
	}
	u, err := s.users.Create(ctx, models.User{
		Username:     strings.ToLower(username),
		Email:        strings.ToLower(email),
		PasswordHash: hash,
	})
	if err != nil {
		return models.User{}, "", err
	}

	token, err := s.tm.Issue(u.ID, u.IsAdmin)
	if err != nil {
		return models.User{}, "", err
	}
	metrics.SignupsTotal.Inc()
	return u, token, nil
}

// SignIn authenticates by exact email. Unknown email is 404; a wrong
// password is 400, not 401.
func (s *UserService) SignIn(ctx context.Context, email, password string) (models.User, string, error) {
	if !validate.AllPresent(email, password) {
		return models.User{}, "", httperr.BadRequest("All fields are required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, "", httperr.NotFound("Email not registered")
	}
	if err != nil {
		return models.User{}, "", err
	}

	if !auth.CheckPassword(password, u.PasswordHash) {
		metrics.SigninsTotal.WithLabelValues("rejected").Inc()
		return models.User{}, "", httperr.BadRequest("Invalid password")
	}

	token, err := s.tm.Issue(u.ID, u.IsAdmin)
	if err != nil {
		return models.User{}, "", err
	}
	metrics.SigninsTotal.WithLabelValues("ok").Inc()
	return u, token, nil
}

// Google finds the account for a federated identity's email or creates one
// with a synthesized password and a username derived from the display name.
// No local password check on either path.
func (s *UserService) Google(ctx context.Context, email, name, photoURL string) (models.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		// existing account
	case errors.Is(err, pgx.ErrNoRows):
		hash, herr := auth.HashPassword(randString(16), s.bcryptCost)
		if herr != nil {
			return models.User{}, "", herr
		}
		u, err = s.users.Create(ctx, models.User{
			Username:     federatedUsername(name),
			Email:        strings.ToLower(email),
			PasswordHash: hash,
			ProfilePic:   photoURL,
		})
		if err != nil {
			return models.User{}, "", err
		}
		metrics.SignupsTotal.Inc()
	default:
		return models.User{}, "", err
	}

	token, err := s.tm.Issue(u.ID, u.IsAdmin)
	if err != nil {
		return models.User{}, "", err
	}
	return u, token, nil
}

type UpdateUserInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	ProfilePic string `json:"profilePic"`
}

// Update is self-service only. A body carrying just profilePic updates that
// field alone; otherwise the supplied fields are merged onto the stored user
// and the password is rehashed only when one was supplied.
func (s *UserService) Update(ctx context.Context, actorID, targetID string, in UpdateUserInput) (models.User, error) {
	if actorID != targetID {
		return models.User{}, httperr.Unauthorized("Unauthorized")
	}

	if in.ProfilePic != "" && in.Username == "" && in.Email == "" && in.Password == "" {
		return s.users.UpdateProfilePic(ctx, targetID, in.ProfilePic)
	}

	u, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return models.User{}, err
	}
	if in.Username != "" {
		u.Username = strings.ToLower(in.Username)
	}
	if in.Email != "" {
		u.Email = strings.ToLower(in.Email)
	}
	if in.ProfilePic != "" {
		u.ProfilePic = in.ProfilePic
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password, s.bcryptCost)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = hash
	}
	return s.users.Update(ctx, u)
}

// Delete is self-service; the caller's session cookie is cleared by the
// handler afterwards.
func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	if actorID != targetID {
		return httperr.Unauthorized("Unauthorized")
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	s.audit.record("user", targetID, auth.Identity{ID: actorID}, "delete", nil)
	return nil
}

func (s *UserService) DeleteAsAdmin(ctx context.Context, actor auth.Identity, targetID string) error {
	if !actor.IsAdmin {
		return httperr.Unauthorized("Unauthorized")
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}
	s.audit.record("user", targetID, actor, "admin_delete", nil)
	return nil
}

type UserListResult struct {
	Users      []models.User `json:"users"`
	TotalUsers int64         `json:"totalUsers"`
	LastMonth  int64         `json:"lastMonth"`
}

// List is admin-only. LastMonth counts accounts created since the same
// day-of-month one calendar month back, not a rolling 30 days.
func (s *UserService) List(ctx context.Context, actor auth.Identity, p repo.Page) (UserListResult, error) {
	if !actor.IsAdmin {
		return UserListResult{}, httperr.Unauthorized("You are not allowed to see all users")
	}

	users, err := s.users.List(ctx, p)
	if err != nil {
		return UserListResult{}, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return UserListResult{}, err
	}
	lastMonth, err := s.users.CountCreatedSince(ctx, monthAgo())
	if err != nil {
		return UserListResult{}, err
	}
	return UserListResult{Users: users, TotalUsers: total, LastMonth: lastMonth}, nil
}

// Get is public; the password hash never serializes.
func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, httperr.NotFound("User not found")
	}
	return u, err
}

func monthAgo() time.Time {
	return time.Now().AddDate(0, -1, 0)
}

const randAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randString(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(randAlphabet))))
		if err != nil {
			// crypto/rand failing means the process has bigger problems
			panic(err)
		}
		b[i] = randAlphabet[idx.Int64()]
	}
	return string(b)
}

// federatedUsername is the display name's first token, lowercased, plus a
// random numeric suffix to dodge collisions.
func federatedUsername(name string) string {
	first := strings.ToLower(name)
	if i := strings.IndexByte(first, ' '); i >= 0 {
		first = first[:i]
	}
	digits := "0123456789"
	suffix := make([]byte, 4)
	for i := range suffix {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			panic(err)
		}
		suffix[i] = digits[idx.Int64()]
	}
	return first + string(suffix)
}
