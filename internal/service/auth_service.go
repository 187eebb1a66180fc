package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"petadopt/internal/entity"
	"petadopt/internal/metrics"
	"petadopt/internal/repository"
	"petadopt/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Compared against when no account matches so a miss costs the same as a
// wrong password.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

const resetTokenBytes = 32

type AuthService struct {
	directories  Directories
	resolver     *AccountResolver
	securityLogs repository.SecurityLogRepository

	emailSender  EmailSender
	passwordHash PasswordHasher
	accessTokens AccessTokenIssuer
	clock        Clock
	config       AuthConfig
	metrics      *metrics.Metrics
	logger       logrus.FieldLogger
}

func NewAuthService(
	directories Directories,
	securityLogs repository.SecurityLogRepository,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	accessTokens AccessTokenIssuer,
	clock Clock,
	config AuthConfig,
	m *metrics.Metrics,
	logger logrus.FieldLogger,
) *AuthService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuthService{
		directories:  directories,
		resolver:     NewAccountResolver(directories.Ordered()...),
		securityLogs: securityLogs,
		emailSender:  emailSender,
		passwordHash: passwordHash,
		accessTokens: accessTokens,
		clock:        clock,
		config:       config,
		metrics:      m,
		logger:       logger,
	}
}

func (s *AuthService) RegisterAdopter(ctx context.Context, input AdopterRegistration) (entity.User, error) {
	return register(ctx, s, s.directories.Adopters, input.RegisterInput, func(account entity.Account) (*entity.Adopter, error) {
		livingSituation := strings.TrimSpace(input.LivingSituation)
		if livingSituation == "" {
			return nil, validationError("All required fields must be provided: living_situation")
		}
		return &entity.Adopter{
			Account:         account,
			LivingSituation: livingSituation,
			PetExperience:   nonNil(input.PetExperience),
		}, nil
	})
}

func (s *AuthService) RegisterVolunteer(ctx context.Context, input VolunteerRegistration) (entity.User, error) {
	return register(ctx, s, s.directories.Volunteers, input.RegisterInput, func(account entity.Account) (*entity.Volunteer, error) {
		if len(input.Availability) == 0 {
			return nil, validationError("All required fields must be provided: availability")
		}
		availability, err := entity.CanonicalAvailability(input.Availability)
		if err != nil {
			return nil, &Error{Kind: ErrValidation, Message: err.Error()}
		}
		return &entity.Volunteer{
			Account:      account,
			Availability: availability,
			Activities:   nonNil(input.Activities),
		}, nil
	})
}

// RegisterStaff creates an inactive account. It cannot log in until an
// active staff member sets its status.
func (s *AuthService) RegisterStaff(ctx context.Context, input StaffRegistration) (entity.User, error) {
	return register(ctx, s, s.directories.Staff, input.RegisterInput, func(account entity.Account) (*entity.Staff, error) {
		return &entity.Staff{
			Account:         account,
			Status:          entity.StaffInactive,
			EmergencyNumber: optional(input.EmergencyNumber),
		}, nil
	})
}

// register runs the workflow shared by every kind; build adds and checks the
// kind-specific fields.
func register[P entity.User](
	ctx context.Context,
	s *AuthService,
	directory repository.Directory[P],
	input RegisterInput,
	build func(account entity.Account) (P, error),
) (entity.User, error) {
	kind := directory.Kind()
	email := utils.NormalizeEmail(input.Email)
	if email == "" {
		s.metrics.Registration(string(kind), metrics.ResultInvalid)
		return nil, validationError("All required fields must be provided: email")
	}

	existing, err := directory.FindAccountByEmail(ctx, email)
	if err != nil {
		s.metrics.Registration(string(kind), metrics.ResultError)
		return nil, persistenceError("find "+string(kind)+" by email", err)
	}
	if existing != nil {
		s.metrics.Registration(string(kind), metrics.ResultConflict)
		return nil, &Error{Kind: ErrConflict, Message: MsgEmailRegistered}
	}

	if missing := missingFields(input); len(missing) > 0 {
		s.metrics.Registration(string(kind), metrics.ResultInvalid)
		return nil, validationError("All required fields must be provided: %s", strings.Join(missing, ", "))
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		s.metrics.Registration(string(kind), metrics.ResultError)
		return nil, &Error{Kind: ErrValidation, Message: "password cannot be hashed", Err: err}
	}

	now := s.now()
	record, err := build(entity.Account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        optional(input.Phone),
		Role:         kind,
		Consents:     entity.BuildConsents(kind, input.Consents, now),
	})
	if err != nil {
		s.metrics.Registration(string(kind), metrics.ResultInvalid)
		return nil, err
	}

	if err := directory.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.metrics.Registration(string(kind), metrics.ResultConflict)
			return nil, &Error{Kind: ErrConflict, Message: MsgEmailRegistered, Err: err}
		}
		s.metrics.Registration(string(kind), metrics.ResultError)
		return nil, persistenceError("create "+string(kind), err)
	}

	s.metrics.Registration(string(kind), metrics.ResultSuccess)
	id := record.Base().ID
	s.logSecurity(ctx, &id, kind, input.IPAddress, entity.Registered, nil)
	return record.Sanitized(), nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	kind, ok := entity.ParseUserKind(input.Role)
	if !ok {
		return nil, validationError("role must be one of adopter, volunteer, staff")
	}
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, validationError("email and password are required")
	}
	store, ok := s.directories.Store(kind)
	if !ok {
		return nil, validationError("role must be one of adopter, volunteer, staff")
	}

	email := utils.NormalizeEmail(input.Email)
	user, err := store.FindAccountByEmail(ctx, email)
	if err != nil {
		s.metrics.Login(string(kind), metrics.ResultError)
		return nil, persistenceError("find "+string(kind)+" by email", err)
	}
	if user == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		s.metrics.Login(string(kind), metrics.ResultInvalid)
		s.logSecurity(ctx, nil, kind, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, invalidCredentials()
	}

	account := user.Base()
	// Inactive staff get their own message even before the password check.
	if staff, isStaff := user.(*entity.Staff); isStaff && !staff.IsActive() {
		s.metrics.Login(string(kind), metrics.ResultDenied)
		s.logSecurity(ctx, &account.ID, kind, input.IPAddress, entity.LoginFailed, map[string]any{"reason": "inactive"})
		return nil, &Error{Kind: ErrAuth, Message: MsgStaffInactive}
	}

	if !s.passwordHash.Verify(account.PasswordHash, input.Password) {
		s.metrics.Login(string(kind), metrics.ResultInvalid)
		s.logSecurity(ctx, &account.ID, kind, input.IPAddress, entity.LoginFailed, map[string]any{"email": email})
		return nil, invalidCredentials()
	}

	token, expiresIn, err := s.accessTokens.IssueAccessToken(Identity{UserID: account.ID, Role: kind})
	if err != nil {
		s.metrics.Login(string(kind), metrics.ResultError)
		return nil, &Error{Kind: ErrAuth, Message: MsgInternal, Err: err}
	}

	s.metrics.Login(string(kind), metrics.ResultSuccess)
	s.logSecurity(ctx, &account.ID, kind, input.IPAddress, entity.LoginSuccess, nil)
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(expiresIn.Seconds()),
		User:      user.Sanitized(),
	}, nil
}

func (s *AuthService) VerifyToken(token string) (Identity, error) {
	identity, err := s.accessTokens.VerifyAccessToken(token)
	if err != nil {
		return Identity{}, &Error{Kind: ErrInvalidToken, Message: "Invalid token", Err: err}
	}
	return identity, nil
}

// RequestPasswordReset answers with MsgResetRequested whether or not the
// email belongs to an account. Only the token's hash is stored.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return "", validationError("email is required")
	}

	user, store, err := s.resolver.FindUserByEmail(ctx, email)
	if err != nil {
		s.metrics.PasswordReset("request", metrics.ResultError)
		return "", persistenceError("resolve account", err)
	}
	if user == nil {
		s.metrics.PasswordReset("request", metrics.ResultSuccess)
		return MsgResetRequested, nil
	}

	token, err := utils.GenerateRandomToken(resetTokenBytes)
	if err != nil {
		s.metrics.PasswordReset("request", metrics.ResultError)
		return "", &Error{Kind: ErrPersistence, Message: MsgInternal, Err: err}
	}

	account := user.Base()
	expiresAt := s.now().Add(s.resetTokenTTL())
	if err := store.SetResetToken(ctx, account.ID, utils.HashToken(token), expiresAt); err != nil {
		s.metrics.PasswordReset("request", metrics.ResultError)
		return "", persistenceError("store reset token", err)
	}

	if s.emailSender == nil {
		s.metrics.PasswordReset("request", metrics.ResultError)
		return "", &Error{Kind: ErrNotification, Message: MsgInternal, Err: errors.New("email sender not configured")}
	}
	if err := s.emailSender.SendPasswordResetEmail(ctx, account.Email, token); err != nil {
		s.metrics.PasswordReset("request", metrics.ResultError)
		return "", &Error{Kind: ErrNotification, Message: MsgInternal, Err: err}
	}

	s.metrics.PasswordReset("request", metrics.ResultSuccess)
	s.logSecurity(ctx, &account.ID, store.Kind(), nil, entity.ResetRequested, nil)
	return MsgResetRequested, nil
}

// ResetPassword consumes a reset token at most once. The store only swaps the
// password while the hashed token still matches and is unexpired, so two
// concurrent calls cannot both succeed.
func (s *AuthService) ResetPassword(ctx context.Context, token string, newPassword string) (string, error) {
	if strings.TrimSpace(token) == "" || newPassword == "" {
		return "", validationError("token and password are required")
	}

	tokenHash := utils.HashToken(token)
	now := s.now()

	var (
		user  entity.User
		store repository.AccountStore
	)
	for _, candidate := range s.directories.Ordered() {
		found, err := candidate.FindByResetToken(ctx, tokenHash, now)
		if err != nil {
			s.metrics.PasswordReset("consume", metrics.ResultError)
			return "", persistenceError("find by reset token", err)
		}
		if found != nil {
			user, store = found, candidate
			break
		}
	}
	if user == nil {
		s.metrics.PasswordReset("consume", metrics.ResultInvalid)
		return "", &Error{Kind: ErrInvalidToken, Message: MsgResetInvalid}
	}

	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		s.metrics.PasswordReset("consume", metrics.ResultError)
		return "", &Error{Kind: ErrValidation, Message: "password cannot be hashed", Err: err}
	}

	account := user.Base()
	consumed, err := store.ConsumeReset(ctx, account.ID, tokenHash, hash, now)
	if err != nil {
		s.metrics.PasswordReset("consume", metrics.ResultError)
		return "", persistenceError("consume reset token", err)
	}
	if !consumed {
		s.metrics.PasswordReset("consume", metrics.ResultInvalid)
		return "", &Error{Kind: ErrInvalidToken, Message: MsgResetInvalid}
	}

	s.metrics.PasswordReset("consume", metrics.ResultSuccess)
	s.logSecurity(ctx, &account.ID, store.Kind(), nil, entity.Reset, map[string]any{"source": "password_reset"})
	return MsgResetCompleted, nil
}

func (s *AuthService) logSecurity(
	ctx context.Context,
	userID *uuid.UUID,
	kind entity.UserKind,
	ipAddress *string,
	action entity.SecurityAction,
	metadata map[string]any,
) {
	if s.securityLogs == nil {
		return
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			s.logger.WithError(err).Warn("security log metadata")
			return
		}
		payload = datatypes.JSON(bytes)
	}

	log := &entity.SecurityLog{
		UserID:    userID,
		UserKind:  kind,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	if err := s.securityLogs.Log(ctx, log); err != nil {
		s.logger.WithError(err).WithField("action", action).Warn("security log write failed")
	}
}

func (s *AuthService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func (s *AuthService) resetTokenTTL() time.Duration {
	if s.config.ResetTokenTTL > 0 {
		return s.config.ResetTokenTTL
	}
	return 10 * time.Minute
}

func missingFields(input RegisterInput) []string {
	var missing []string
	if strings.TrimSpace(input.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(input.LastName) == "" {
		missing = append(missing, "last_name")
	}
	if input.Password == "" {
		missing = append(missing, "password")
	}
	return missing
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
