package service

import (
	"context"

	"petadopt/internal/entity"
	"petadopt/internal/repository"
)

type Directories struct {
	Adopters   repository.Directory[*entity.Adopter]
	Volunteers repository.Directory[*entity.Volunteer]
	Staff      repository.Directory[*entity.Staff]
}

// Ordered returns the stores in resolution order: adopter, volunteer, staff.
func (d Directories) Ordered() []repository.AccountStore {
	return []repository.AccountStore{d.Adopters, d.Volunteers, d.Staff}
}

func (d Directories) Store(kind entity.UserKind) (repository.AccountStore, bool) {
	switch kind {
	case entity.KindAdopter:
		return d.Adopters, d.Adopters != nil
	case entity.KindVolunteer:
		return d.Volunteers, d.Volunteers != nil
	case entity.KindStaff:
		return d.Staff, d.Staff != nil
	}
	return nil, false
}

// AccountResolver finds an account by email across every directory. The same
// email may exist in more than one kind; the first kind in order wins.
type AccountResolver struct {
	stores []repository.AccountStore
}

func NewAccountResolver(stores ...repository.AccountStore) *AccountResolver {
	return &AccountResolver{stores: stores}
}

func (r *AccountResolver) FindUserByEmail(ctx context.Context, email string) (entity.User, repository.AccountStore, error) {
	for _, store := range r.stores {
		user, err := store.FindAccountByEmail(ctx, email)
		if err != nil {
			return nil, nil, err
		}
		if user != nil {
			return user, store, nil
		}
	}
	return nil, nil, nil
}
