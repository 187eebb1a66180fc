// Package repotest holds in-memory repositories for tests.
package repotest

import (
	"context"
	"sync"
	"time"

	"petadopt/internal/entity"
	"petadopt/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type record[E any] interface {
	*E
	entity.User
}

func clone[E any, P record[E]](p P) P {
	c := *p
	return P(&c)
}

// MemoryDirectory is an in-memory repository.Directory for tests. Reads
// return copies; the Err fields make the matching calls fail.
type MemoryDirectory[E any, P record[E]] struct {
	mu      sync.Mutex
	kind    entity.UserKind
	records []P

	FindErr     error
	CreateErr   error
	SetResetErr error
	ConsumeErr  error
	ListErr     error
}

func NewMemoryDirectory[E any, P record[E]]() *MemoryDirectory[E, P] {
	var probe E
	return &MemoryDirectory[E, P]{kind: P(&probe).Kind()}
}

func (f *MemoryDirectory[E, P]) Kind() entity.UserKind { return f.kind }

func (f *MemoryDirectory[E, P]) FindByEmail(ctx context.Context, email string) (P, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	for _, r := range f.records {
		if r.Base().Email == email {
			return clone[E, P](r), nil
		}
	}
	return nil, nil
}

func (f *MemoryDirectory[E, P]) FindByID(ctx context.Context, id uuid.UUID) (P, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	if r := f.byID(id); r != nil {
		return clone[E, P](r), nil
	}
	return nil, nil
}

func (f *MemoryDirectory[E, P]) Create(ctx context.Context, user P) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	for _, r := range f.records {
		if r.Base().Email == user.Base().Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.Base().ID == uuid.Nil {
		user.Base().ID = uuid.New()
	}
	user.Base().CreatedAt = time.Now()
	f.records = append(f.records, clone[E, P](user))
	return nil
}

func (f *MemoryDirectory[E, P]) List(ctx context.Context) ([]P, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]P, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, clone[E, P](r))
	}
	return out, nil
}

func (f *MemoryDirectory[E, P]) FindAccountByEmail(ctx context.Context, email string) (entity.User, error) {
	user, err := f.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, err
	}
	return user, nil
}

func (f *MemoryDirectory[E, P]) FindAccountByID(ctx context.Context, id uuid.UUID) (entity.User, error) {
	user, err := f.FindByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	return user, nil
}

func (f *MemoryDirectory[E, P]) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (entity.User, error) {
	f.mu.Lock()
	r := f.byID(id)
	if r == nil {
		f.mu.Unlock()
		return nil, nil
	}
	base := r.Base()
	for column, value := range fields {
		switch column {
		case "first_name":
			base.FirstName = value.(string)
		case "last_name":
			base.LastName = value.(string)
		case "phone":
			base.Phone = value.(*string)
		}
		switch typed := any(r).(type) {
		case *entity.Adopter:
			switch column {
			case "living_situation":
				typed.LivingSituation = value.(string)
			case "pet_experience":
				typed.PetExperience = value.(pq.StringArray)
			}
		case *entity.Staff:
			if column == "status" {
				typed.Status = value.(entity.StaffStatus)
			}
		case *entity.Volunteer:
			switch column {
			case "availability":
				typed.Availability = value.(pq.StringArray)
			case "activities":
				typed.Activities = value.(pq.StringArray)
			}
		}
	}
	f.mu.Unlock()
	return f.FindAccountByID(ctx, id)
}

func (f *MemoryDirectory[E, P]) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetResetErr != nil {
		return f.SetResetErr
	}
	if r := f.byID(id); r != nil {
		r.Base().PasswordResetToken = &tokenHash
		r.Base().PasswordResetExpires = &expiresAt
	}
	return nil
}

func (f *MemoryDirectory[E, P]) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	for _, r := range f.records {
		if tokenMatches(r.Base(), tokenHash, now) {
			return clone[E, P](r), nil
		}
	}
	return nil, nil
}

func (f *MemoryDirectory[E, P]) ConsumeReset(ctx context.Context, id uuid.UUID, tokenHash string, passwordHash string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ConsumeErr != nil {
		return false, f.ConsumeErr
	}
	r := f.byID(id)
	if r == nil || !tokenMatches(r.Base(), tokenHash, now) {
		return false, nil
	}
	base := r.Base()
	base.PasswordHash = passwordHash
	base.PasswordResetToken = nil
	base.PasswordResetExpires = nil
	return true, nil
}

// Stored returns the live record, for assertions and test setup.
func (f *MemoryDirectory[E, P]) Stored(email string) P {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.Base().Email == email {
			return r
		}
	}
	return nil
}

func (f *MemoryDirectory[E, P]) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

func (f *MemoryDirectory[E, P]) byID(id uuid.UUID) P {
	for _, r := range f.records {
		if r.Base().ID == id {
			return r
		}
	}
	return nil
}

func tokenMatches(account *entity.Account, tokenHash string, now time.Time) bool {
	return account.PasswordResetToken != nil &&
		*account.PasswordResetToken == tokenHash &&
		account.PasswordResetExpires != nil &&
		account.PasswordResetExpires.After(now)
}
