package svc

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/jacentio/sceneforge/scene"
	"github.com/jacentio/sceneforge/store"
)

const passwordCost = 12

// UserService manages user accounts and authentication.
type UserService struct {
	docs   DocStore[scene.User]
	tokens *TokenIssuer
	logger *slog.Logger
}

// NewUserService creates a user service over a user store.
func NewUserService(docs DocStore[scene.User], tokens *TokenIssuer, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{docs: docs, tokens: tokens, logger: logger}
}

// Register creates a new account. The username must be unused; the password
// is one-way hashed before storage and the plaintext is never persisted.
//
// The uniqueness pre-check and the insert are not transactional: two
// concurrent registrations for the same username can both pass the check,
// in which case the loser surfaces the store-level conflict from Insert.
func (s *UserService) Register(ctx context.Context, username, password, displayName string) (scene.PublicUser, error) {
	if username == "" || password == "" {
		return scene.PublicUser{}, ErrMissingCredentials
	}

	existing, err := s.docs.ByField(ctx, "username", username)
	if err != nil {
		return scene.PublicUser{}, fmt.Errorf("failed to check if user %s already exists: %w", username, err)
	}
	if existing != nil {
		return scene.PublicUser{}, fmt.Errorf("%w: %s", ErrDuplicateUser, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return scene.PublicUser{}, fmt.Errorf("failed to hash password for user %s: %w", username, err)
	}

	user := scene.User{
		ID:           bson.NewObjectID(),
		Username:     username,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	}
	if _, err := s.docs.Insert(ctx, user); err != nil {
		return scene.PublicUser{}, fmt.Errorf("failed to add user %s: %w", username, err)
	}
	s.logger.Info("user registered", "id", user.ID.Hex(), "username", username)
	return user.Public(), nil
}

// Login validates credentials and issues a signed, time-limited token bound
// to the user identifier. An unknown username and a wrong password fail the
// same way externally; the internal cause differs.
func (s *UserService) Login(ctx context.Context, username, password string) (scene.PublicUser, string, error) {
	if username == "" || password == "" {
		return scene.PublicUser{}, "", ErrMissingCredentials
	}

	user, err := s.docs.ByField(ctx, "username", username)
	if err != nil {
		return scene.PublicUser{}, "", fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		return scene.PublicUser{}, "", fmt.Errorf("%w: %w", ErrInvalidCredentials, errUnknownUser)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return scene.PublicUser{}, "", fmt.Errorf("%w: %w", ErrInvalidCredentials, errPasswordMismatch)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return scene.PublicUser{}, "", fmt.Errorf("failed to issue token for user %s: %w", username, err)
	}
	return user.Public(), token, nil
}

// List returns the public view of every user.
func (s *UserService) List(ctx context.Context) ([]scene.PublicUser, error) {
	users, err := s.docs.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	public := make([]scene.PublicUser, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}
	return public, nil
}

// Get returns one user's public view.
func (s *UserService) Get(ctx context.Context, id bson.ObjectID) (scene.PublicUser, error) {
	u, err := s.docs.ByID(ctx, id)
	if err != nil {
		return scene.PublicUser{}, fmt.Errorf("failed to get user with id %s: %w", id.Hex(), err)
	}
	return u.Public(), nil
}

// Update applies a partial merge to a user. A plaintext "password" field in
// the payload is replaced with its hash before it reaches the store.
func (s *UserService) Update(ctx context.Context, id bson.ObjectID, fields map[string]any) error {
	if pw, ok := fields["password"].(string); ok && pw != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), passwordCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for user %s: %w", id.Hex(), err)
		}
		rehashed := make(map[string]any, len(fields))
		for k, v := range fields {
			rehashed[k] = v
		}
		rehashed["password"] = string(hash)
		fields = rehashed
	}

	n, err := s.docs.Update(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id.Hex(), err)
	}
	if n == 0 {
		return fmt.Errorf("failed to update user with id %s: %w", id.Hex(), store.ErrNotFound)
	}
	return nil
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id bson.ObjectID) error {
	n, err := s.docs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user with id %s: %w", id.Hex(), err)
	}
	if n == 0 {
		return fmt.Errorf("failed to delete user with id %s: %w", id.Hex(), store.ErrNotFound)
	}
	s.logger.Info("user deleted", "id", id.Hex())
	return nil
}
