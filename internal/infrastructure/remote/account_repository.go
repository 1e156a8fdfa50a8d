package remote

import (
	"context"
	"fmt"

	"github.com/oksasatya/yatter-client/internal/auth"
	"github.com/oksasatya/yatter-client/internal/domain"
	"github.com/oksasatya/yatter-client/internal/domain/entity"
	repo "github.com/oksasatya/yatter-client/internal/domain/repository"
)

var _ repo.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	API       *Client
	Converter Converter
	Session   repo.SessionStore
	Tokens    auth.Provider
}

func NewAccountRepository(api *Client, session repo.SessionStore, tokens auth.Provider) *AccountRepository {
	return &AccountRepository{API: api, Converter: NewConverter(api.BaseURL), Session: session, Tokens: tokens}
}

// FindMe re-fetches the stored username. No stored or an empty username
// yields nil.
func (r *AccountRepository) FindMe(ctx context.Context) (*entity.Me, error) {
	username, ok, err := r.Session.GetUsername(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok || username == "" {
		return nil, nil
	}
	account, err := r.FindByUsername(ctx, entity.NewUsername(username))
	if err != nil {
		return nil, err
	}
	me := entity.NewMe(account)
	return &me, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username entity.Username) (entity.Account, error) {
	j, err := r.API.GetAccount(ctx, username.Value())
	if err != nil {
		return entity.Account{}, err
	}
	return r.convertAccount("get account", j)
}

func (r *AccountRepository) Create(ctx context.Context, username entity.Username, password entity.Password) (entity.Me, error) {
	j, err := r.API.CreateAccount(ctx, CreateAccountJSON{Username: username.Value(), Password: password.Value()})
	if err != nil {
		return entity.Me{}, err
	}
	account, err := r.convertAccount("create account", j)
	if err != nil {
		return entity.Me{}, err
	}
	return entity.NewMe(account), nil
}

func (r *AccountRepository) Update(ctx context.Context, me entity.Me, in repo.UpdateAccountInput) (entity.Me, error) {
	token, err := r.Tokens.Provide(ctx)
	if err != nil {
		return entity.Me{}, err
	}
	j, err := r.API.UpdateCredentials(ctx, token, UpdateCredentialsJSON{
		DisplayName: in.DisplayName,
		Note:        in.Note,
		Avatar:      in.Avatar,
		Header:      in.Header,
	})
	if err != nil {
		return entity.Me{}, err
	}
	account, err := r.convertAccount("update credentials", j)
	if err != nil {
		return entity.Me{}, err
	}
	if !account.Equal(me.Account) {
		return entity.Me{}, &domain.RemoteError{Op: "update credentials", Message: "server returned a different account"}
	}
	return entity.NewMe(account), nil
}

func (r *AccountRepository) convertAccount(op string, j AccountJSON) (entity.Account, error) {
	a, err := r.Converter.Account(j)
	if err != nil {
		return entity.Account{}, &domain.RemoteError{Op: op, Err: err}
	}
	return a, nil
}
