package auth

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/taskup/domain"
	"github.com/fastygo/taskup/internal/persist"
	"github.com/fastygo/taskup/repository"
)

// TokenOptions configures issued session tokens.
type TokenOptions struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Session is the result of a successful login or registration.
type Session struct {
	User      domain.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type credential struct {
	Email string      `json:"email"`
	Hash  string      `json:"hash"`
	User  domain.User `json:"user"`
}

// credentialBook is keyed by user id.
type credentialBook struct {
	Entries map[string]credential `json:"entries"`
}

// UseCase holds the single signed-in user of the installation.
type UseCase struct {
	kv     repository.KVStore
	tokens TokenOptions
	logger *zap.Logger
	now    func() time.Time
	cost   int

	mu          sync.RWMutex
	ready       bool
	// credMu serialises read-modify-write of the credential book.
	credMu      sync.Mutex
	user        *persist.Record[domain.User]
	credentials *persist.Record[credentialBook]
}

// Option customises the use case.
type Option func(*UseCase)

// WithClock overrides the time source used for token expiry.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(uc *UseCase) { uc.cost = cost }
}

func New(kv repository.KVStore, tokens TokenOptions, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokens.TTL <= 0 {
		tokens.TTL = 24 * time.Hour
	}
	uc := &UseCase{
		kv:     kv,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Load restores the persisted session and marks the store ready.
func (uc *UseCase) Load(ctx context.Context) []persist.LoadReport {
	user, userReport := persist.LoadRecord[domain.User](ctx, uc.kv, repository.KeyUser, uc.logger)
	creds, credReport := persist.LoadRecord[credentialBook](ctx, uc.kv, repository.KeyCredentials, uc.logger)

	uc.mu.Lock()
	uc.user = user
	uc.credentials = creds
	uc.ready = true
	uc.mu.Unlock()

	if current, ok := user.Get(); ok {
		uc.logger.Info("session restored", zap.String("user_id", current.ID))
	}
	return []persist.LoadReport{userReport, credReport}
}

// Ready reports whether Load has completed. Before that an absent user does
// not mean the user is logged out.
func (uc *UseCase) Ready() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.ready
}

// Current returns the signed-in user, if any.
func (uc *UseCase) Current() (domain.User, bool) {
	user, err := uc.userRecord()
	if err != nil {
		return domain.User{}, false
	}
	return user.Get()
}

// IsCurrent reports whether userID is the signed-in user.
func (uc *UseCase) IsCurrent(userID string) bool {
	current, ok := uc.Current()
	return ok && userID != "" && current.ID == userID
}

// Register creates credentials for user and signs them in.
func (uc *UseCase) Register(ctx context.Context, user domain.User, password string) (Session, persist.Outcome, error) {
	userRec, err := uc.userRecord()
	if err != nil {
		return Session{}, persist.Outcome{}, err
	}
	email := normalizeEmail(user.Email)
	if email == "" {
		return Session{}, persist.Outcome{}, domain.ErrEmailRequired
	}
	if password == "" {
		return Session{}, persist.Outcome{}, domain.ErrPasswordRequired
	}
	if _, ok := uc.findCredential(email); ok {
		return Session{}, persist.Outcome{}, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return Session{}, persist.Outcome{}, domain.WrapError(domain.ErrCodeInternal, "failed to hash password", err)
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	uc.credMu.Lock()
	if _, ok := uc.findCredential(email); ok {
		uc.credMu.Unlock()
		return Session{}, persist.Outcome{}, domain.ErrEmailTaken
	}
	credOut := uc.saveCredential(ctx, credential{Email: email, Hash: string(hash), User: user})
	uc.credMu.Unlock()

	out := userRec.Set(ctx, user)
	if out.PersistErr == nil {
		out.PersistErr = credOut.PersistErr
	}

	session, err := uc.issue(user)
	if err != nil {
		return Session{}, out, err
	}
	uc.logger.Info("user registered", zap.String("user_id", user.ID))
	return session, out, nil
}

// Login verifies the password registered for email and signs the user in.
func (uc *UseCase) Login(ctx context.Context, email, password string) (Session, persist.Outcome, error) {
	userRec, err := uc.userRecord()
	if err != nil {
		return Session{}, persist.Outcome{}, err
	}
	cred, ok := uc.findCredential(normalizeEmail(email))
	if !ok {
		return Session{}, persist.Outcome{}, domain.ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.Hash), []byte(password)); err != nil {
		uc.logger.Info("login rejected", zap.String("user_id", cred.User.ID))
		return Session{}, persist.Outcome{}, domain.ErrBadCredentials
	}

	out := userRec.Set(ctx, cred.User)
	session, err := uc.issue(cred.User)
	if err != nil {
		return Session{}, out, err
	}
	uc.logger.Info("user logged in", zap.String("user_id", cred.User.ID))
	return session, out, nil
}

// Logout clears the signed-in user and its stored key.
func (uc *UseCase) Logout(ctx context.Context) (persist.Outcome, error) {
	userRec, err := uc.userRecord()
	if err != nil {
		return persist.Outcome{}, err
	}
	return userRec.Clear(ctx), nil
}

// UpdateProfile merges patch into the signed-in user. Without a user it does
// nothing.
func (uc *UseCase) UpdateProfile(ctx context.Context, patch domain.UserPatch) (domain.User, persist.Outcome, error) {
	userRec, err := uc.userRecord()
	if err != nil {
		return domain.User{}, persist.Outcome{}, err
	}
	out := userRec.Update(ctx, patch.Apply)
	updated, ok := userRec.Get()
	if !ok {
		return domain.User{}, out, nil
	}

	uc.mu.RLock()
	creds := uc.credentials
	uc.mu.RUnlock()
	uc.credMu.Lock()
	defer uc.credMu.Unlock()
	creds.Update(ctx, func(book *credentialBook) {
		entry, ok := book.Entries[updated.ID]
		if !ok {
			return
		}
		entry.User = updated
		if email := normalizeEmail(updated.Email); email != "" {
			entry.Email = email
		}
		book.Entries = maps.Clone(book.Entries)
		book.Entries[updated.ID] = entry
	})
	return updated, out, nil
}

func (uc *UseCase) userRecord() (*persist.Record[domain.User], error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if !uc.ready {
		return nil, domain.ErrNoSession
	}
	return uc.user, nil
}

func (uc *UseCase) findCredential(email string) (credential, bool) {
	uc.mu.RLock()
	creds := uc.credentials
	uc.mu.RUnlock()
	if creds == nil {
		return credential{}, false
	}
	book, _ := creds.Get()
	for _, entry := range book.Entries {
		if entry.Email == email {
			return entry, true
		}
	}
	return credential{}, false
}

// saveCredential must be called with credMu held.
func (uc *UseCase) saveCredential(ctx context.Context, entry credential) persist.Outcome {
	uc.mu.RLock()
	creds := uc.credentials
	uc.mu.RUnlock()
	book, _ := creds.Get()
	next := credentialBook{Entries: maps.Clone(book.Entries)}
	if next.Entries == nil {
		next.Entries = make(map[string]credential)
	}
	next.Entries[entry.User.ID] = entry
	return creds.Set(ctx, next)
}

func (uc *UseCase) issue(user domain.User) (Session, error) {
	now := uc.now()
	expires := now.Add(uc.tokens.TTL)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"iat":     now.Unix(),
		"exp":     expires.Unix(),
	}
	if uc.tokens.Issuer != "" {
		claims["iss"] = uc.tokens.Issuer
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.tokens.Secret))
	if err != nil {
		return Session{}, domain.WrapError(domain.ErrCodeInternal, "failed to sign token", err)
	}
	return Session{User: user, Token: token, ExpiresAt: expires}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
