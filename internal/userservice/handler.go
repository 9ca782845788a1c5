package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hazelko/inkpost/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("user cannot be verified")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, adminEmail string) *UserService {
	return &UserService{
		m:          newUserModel(db),
		mb:         mb,
		adminEmail: adminEmail,
	}
}

// CreateUser registers a new account, stores only the bcrypt hash of the
// password and publishes a user.created event. The account is assigned the
// admin role when the email matches the configured admin address.
func (s *UserService) CreateUser(ctx context.Context, email, password string) (*User, error) {
	v := common.NewValidator()
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Email: email,
		Role:  RoleUser,
	}
	if s.adminEmail != "" && email == s.adminEmail {
		u.Role = RoleAdmin
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	event, err := json.Marshal(UserCreatedEvent{Email: u.Email})
	if err != nil {
		return nil, err
	}

	err = s.mb.Publish(ctx, event, common.UserCreatedKey, common.UserExchange)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Verify checks the credentials against the stored hash. An unknown email and
// a wrong password both come back as ErrAuthenticationFailure so callers
// cannot tell the two apart.
func (s *UserService) Verify(ctx context.Context, email, password string) (*User, error) {
	user, err := s.m.getByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return user, nil
}

// GetUsers returns every user. Password hashes are not selected.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.getAll(ctx)
}

// DeleteUser deletes a user account and, through the cascade, every blog the
// user owns.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.delete(ctx, id)
}

// UpdateEmail replaces the email only when a non-nil, non-empty value was
// supplied; otherwise the record is left untouched and returned as is.
func (s *UserService) UpdateEmail(ctx context.Context, id int, email *string) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if email == nil || *email == "" {
		return user, nil
	}

	validateEmail(v, *email)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.m.updateEmail(ctx, id, *email); err != nil {
		return nil, err
	}

	user.Email = *email
	return user, nil
}

// UpdatePassword rehashes and replaces the stored password.
func (s *UserService) UpdatePassword(ctx context.Context, id int, password string) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := user.Password.set(password); err != nil {
		return nil, err
	}

	if err := s.m.updatePassword(ctx, id, user.Password); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
