package repository

import (
	"context"
	"errors"
	"time"

	"petadopt/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDuplicateEmail = errors.New("duplicate email")

// AccountStore is the kind-erased view of a directory used by workflows that
// search across every kind.
type AccountStore interface {
	Kind() entity.UserKind
	FindAccountByEmail(ctx context.Context, email string) (entity.User, error)
	FindAccountByID(ctx context.Context, id uuid.UUID) (entity.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (entity.User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (entity.User, error)
	// ConsumeReset swaps the password only while the stored token still
	// matches and is unexpired. It reports false when another caller won.
	ConsumeReset(ctx context.Context, id uuid.UUID, tokenHash string, passwordHash string, now time.Time) (bool, error)
}

type Directory[P entity.User] interface {
	AccountStore
	FindByEmail(ctx context.Context, email string) (P, error)
	FindByID(ctx context.Context, id uuid.UUID) (P, error)
	Create(ctx context.Context, user P) error
	List(ctx context.Context) ([]P, error)
}

type account[E any] interface {
	*E
	entity.User
}

type directory[E any, P account[E]] struct {
	db   *gorm.DB
	kind entity.UserKind
}

func NewDirectory[E any, P account[E]](db *gorm.DB) Directory[P] {
	var probe E
	return &directory[E, P]{db: db, kind: P(&probe).Kind()}
}

func (r *directory[E, P]) Kind() entity.UserKind {
	return r.kind
}

func (r *directory[E, P]) FindByEmail(ctx context.Context, email string) (P, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *directory[E, P]) FindByID(ctx context.Context, id uuid.UUID) (P, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *directory[E, P]) Create(ctx context.Context, user P) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *directory[E, P]) List(ctx context.Context) ([]P, error) {
	var records []E
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	users := make([]P, 0, len(records))
	for i := range records {
		users = append(users, P(&records[i]))
	}
	return users, nil
}

func (r *directory[E, P]) FindAccountByEmail(ctx context.Context, email string) (entity.User, error) {
	user, err := r.FindByEmail(ctx, email)
	return erase(user, err)
}

func (r *directory[E, P]) FindAccountByID(ctx context.Context, id uuid.UUID) (entity.User, error) {
	user, err := r.FindByID(ctx, id)
	return erase(user, err)
}

func (r *directory[E, P]) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (entity.User, error) {
	delete(fields, "role")
	if len(fields) > 0 {
		result := r.db.WithContext(ctx).
			Model(P(new(E))).
			Where("id = ?", id).
			Omit("role").
			Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, nil
		}
	}
	return r.FindAccountByID(ctx, id)
}

func (r *directory[E, P]) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(P(new(E))).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_reset_token":   tokenHash,
			"password_reset_expires": expiresAt,
		}).
		Error
}

func (r *directory[E, P]) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (entity.User, error) {
	user, err := r.first(ctx, "password_reset_token = ? AND password_reset_expires > ?", tokenHash, now)
	return erase(user, err)
}

func (r *directory[E, P]) ConsumeReset(
	ctx context.Context,
	id uuid.UUID,
	tokenHash string,
	passwordHash string,
	now time.Time,
) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(P(new(E))).
		Where("id = ? AND password_reset_token = ? AND password_reset_expires > ?", id, tokenHash, now).
		Updates(map[string]any{
			"password_hash":          passwordHash,
			"password_reset_token":   nil,
			"password_reset_expires": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *directory[E, P]) first(ctx context.Context, query string, args ...any) (P, error) {
	var record E
	err := r.db.WithContext(ctx).
		Where(query, args...).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return P(&record), nil
}

// erase keeps a missing record as a nil interface rather than a typed nil.
func erase[P entity.User](user P, err error) (entity.User, error) {
	if err != nil {
		return nil, err
	}
	var zero P
	if any(user) == any(zero) {
		return nil, nil
	}
	return user, nil
}
