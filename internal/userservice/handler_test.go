package userservice

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/hazelko/inkpost/internal/common"
)

const testAdminEmail = "admin@example.com"

// recordingProducer captures published messages instead of touching a real
// broker.
type recordingProducer struct {
	messages [][]byte
}

func (p *recordingProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.messages = append(p.messages, msg)
	return nil
}

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, *recordingProducer) {
	db := common.TestDB("file://../../migrations", t)
	producer := &recordingProducer{}

	return NewUserService(db, producer, testAdminEmail), db, producer
}

func insertTestUser(db *sql.DB, email, password string) (*int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	var id int
	err = db.QueryRow("INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id", email, hash).Scan(&id)
	if err != nil {
		return nil, err
	}

	return &id, nil
}

func TestCreateUser(t *testing.T) {
	s, db, producer := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		email       string
		password    string
		setup       func(db *sql.DB) error
		wantRole    Role
		expectedErr error
	}{
		{
			name:     "valid user",
			email:    "a@x.com",
			password: "p",
			wantRole: RoleUser,
		},
		{
			name:     "admin email gets admin role",
			email:    testAdminEmail,
			password: "Secret123!",
			wantRole: RoleAdmin,
		},
		{
			name:     "duplicate email",
			email:    "a@x.com",
			password: "p",
			setup: func(db *sql.DB) error {
				_, err := insertTestUser(db, "a@x.com", "p")
				return err
			},
			expectedErr: ErrDuplicateEmail,
		},
		{
			name:        "empty password",
			email:       "a@x.com",
			password:    "",
			expectedErr: common.ValidationError{Errors: map[string]string{"password": "must be provided"}},
		},
		{
			name:        "invalid email",
			email:       "not-an-email",
			password:    "p",
			expectedErr: common.ValidationError{Errors: map[string]string{"email": "must be a valid email address"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				err := tc.setup(db)
				assert.NoError(t, err)
			}

			published := len(producer.messages)

			user, err := s.CreateUser(context.Background(), tc.email, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotZero(t, user.ID)
				assert.Equal(t, tc.email, user.Email)
				assert.Equal(t, tc.wantRole, user.Role)
				assert.Equal(t, published+1, len(producer.messages))

				// the stored column must never hold the plaintext
				var stored []byte
				qErr := db.QueryRow("SELECT password FROM users WHERE id = $1", user.ID).Scan(&stored)
				assert.NoError(t, qErr)
				assert.NotEqual(t, tc.password, string(stored))
				assert.NoError(t, bcrypt.CompareHashAndPassword(stored, []byte(tc.password)))
			}

			t.Cleanup(func() {
				_, err := db.Exec("DELETE FROM users")
				assert.NoError(t, err)
			})
		})
	}
}

func TestVerify(t *testing.T) {
	s, _, _ := setupTestEnvironment(t)

	_, err := s.CreateUser(context.Background(), "known@example.com", "Correct_1234!")
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		email       string
		password    string
		expectedErr error
	}{
		{
			name:     "correct credentials",
			email:    "known@example.com",
			password: "Correct_1234!",
		},
		{
			name:        "wrong password",
			email:       "known@example.com",
			password:    "Wrong_1234!",
			expectedErr: ErrAuthenticationFailure,
		},
		{
			name:        "unknown email",
			email:       "nobody@example.com",
			password:    "Correct_1234!",
			expectedErr: ErrAuthenticationFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := s.Verify(context.Background(), tc.email, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.Equal(t, tc.email, user.Email)
			}
		})
	}
}

func TestVerifyAdminRole(t *testing.T) {
	s, _, _ := setupTestEnvironment(t)

	_, err := s.CreateUser(context.Background(), testAdminEmail, "Magic_Word1!")
	assert.NoError(t, err)

	_, err = s.CreateUser(context.Background(), "plain@example.com", "Magic_Word1!")
	assert.NoError(t, err)

	admin, err := s.Verify(context.Background(), testAdminEmail, "Magic_Word1!")
	assert.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	plain, err := s.Verify(context.Background(), "plain@example.com", "Magic_Word1!")
	assert.NoError(t, err)
	assert.False(t, plain.IsAdmin())
}

func TestGetUsers(t *testing.T) {
	s, db, _ := setupTestEnvironment(t)

	users, err := s.GetUsers(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, users)

	_, err = insertTestUser(db, "first@example.com", "p")
	assert.NoError(t, err)
	_, err = insertTestUser(db, "second@example.com", "p")
	assert.NoError(t, err)

	users, err = s.GetUsers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "first@example.com", users[0].Email)
}

func TestDeleteUser(t *testing.T) {
	s, db, _ := setupTestEnvironment(t)

	id, err := insertTestUser(db, "owner@example.com", "p")
	assert.NoError(t, err)

	_, err = db.Exec("INSERT INTO blogs (date, title, body, status, user_id) VALUES ($1, $2, $3, $4, $5)",
		"2024-01-01", "Owned Post", "body", "published", *id)
	assert.NoError(t, err)

	testCases := []struct {
		name        string
		id          int
		expectedErr error
	}{
		{
			name: "existing user cascades to blogs",
			id:   *id,
		},
		{
			name:        "missing user",
			id:          999,
			expectedErr: ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.DeleteUser(context.Background(), tc.id)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				var count int
				qErr := db.QueryRow("SELECT COUNT(*) FROM blogs WHERE user_id = $1", tc.id).Scan(&count)
				assert.NoError(t, qErr)
				assert.Zero(t, count)
			}
		})
	}
}

func TestUpdateEmail(t *testing.T) {
	s, db, _ := setupTestEnvironment(t)

	strptr := func(s string) *string { return &s }

	testCases := []struct {
		name        string
		email       *string
		wantEmail   string
		missingUser bool
		expectedErr error
	}{
		{
			name:      "replaces email",
			email:     strptr("new@example.com"),
			wantEmail: "new@example.com",
		},
		{
			name:      "nil email leaves record untouched",
			email:     nil,
			wantEmail: "old@example.com",
		},
		{
			name:      "empty email leaves record untouched",
			email:     strptr(""),
			wantEmail: "old@example.com",
		},
		{
			name:        "missing user",
			email:       strptr("new@example.com"),
			missingUser: true,
			expectedErr: ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id := 999
			if !tc.missingUser {
				created, err := insertTestUser(db, "old@example.com", "p")
				assert.NoError(t, err)
				id = *created
			}

			user, err := s.UpdateEmail(context.Background(), id, tc.email)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.Equal(t, tc.wantEmail, user.Email)

				var stored string
				qErr := db.QueryRow("SELECT email FROM users WHERE id = $1", id).Scan(&stored)
				assert.NoError(t, qErr)
				assert.Equal(t, tc.wantEmail, stored)
			}

			t.Cleanup(func() {
				_, err := db.Exec("DELETE FROM users")
				assert.NoError(t, err)
			})
		})
	}
}

func TestUpdateEmailDuplicate(t *testing.T) {
	s, db, _ := setupTestEnvironment(t)

	_, err := insertTestUser(db, "taken@example.com", "p")
	assert.NoError(t, err)

	id, err := insertTestUser(db, "old@example.com", "p")
	assert.NoError(t, err)

	taken := "taken@example.com"
	_, err = s.UpdateEmail(context.Background(), *id, &taken)
	assert.Equal(t, ErrDuplicateEmail, err)
}

func TestUpdatePassword(t *testing.T) {
	s, db, _ := setupTestEnvironment(t)

	id, err := insertTestUser(db, "user@example.com", "old")
	assert.NoError(t, err)

	user, err := s.UpdatePassword(context.Background(), *id, "new-password")
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)

	var stored []byte
	err = db.QueryRow("SELECT password FROM users WHERE id = $1", *id).Scan(&stored)
	assert.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(stored, []byte("new-password")))
	assert.Error(t, bcrypt.CompareHashAndPassword(stored, []byte("old")))

	_, err = s.UpdatePassword(context.Background(), 999, "new-password")
	assert.Equal(t, ErrNotFound, err)
}
