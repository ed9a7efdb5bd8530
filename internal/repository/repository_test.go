package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Prabhugems/AMASI-management-sub013/internal/domain"
	"github.com/Prabhugems/AMASI-management-sub013/internal/domain/vo"
	sharedseq "github.com/Prabhugems/AMASI-management-sub013/internal/shared/seq"
)

func newSQLXMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mockDB, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return sqlx.NewDb(sqlDB, "sqlmock"), mockDB
}

type AbstractRepositorySuite struct{ suite.Suite }

func (s *AbstractRepositorySuite) TestNextAbstractSequence_TableDriven() {
	queryErr := errors.New("counter query failed")

	tests := []struct {
		name      string
		eventCode string
		setupMock func(sqlmock.Sqlmock)
		assertion func(int64, error)
	}{
		{
			name:      "invalid when event code empty",
			eventCode: "   ",
			assertion: func(_ int64, err error) {
				require.Error(s.T(), err)
				assert.ErrorContains(s.T(), err, "event code is required")
			},
		},
		{
			name:      "wraps counter errors",
			eventCode: "121",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectQuery(regexp.QuoteMeta("INSERT INTO abstract_counters")).
					WithArgs("121").
					WillReturnError(queryErr)
			},
			assertion: func(_ int64, err error) {
				require.Error(s.T(), err)
				assert.ErrorContains(s.T(), err, "next abstract sequence failed")
				assert.ErrorIs(s.T(), err, queryErr)
			},
		},
		{
			name:      "returns advanced value",
			eventCode: "121",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"last_value"}).AddRow(int64(1005))
				mockDB.ExpectQuery(regexp.QuoteMeta("INSERT INTO abstract_counters")).
					WithArgs("121").
					WillReturnRows(rows)
			},
			assertion: func(value int64, err error) {
				require.NoError(s.T(), err)
				assert.Equal(s.T(), int64(1005), value)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			db, mockDB := newSQLXMock(s.T())
			repo := NewAbstractRepository(db)
			if tc.setupMock != nil {
				tc.setupMock(mockDB)
			}

			value, err := repo.NextAbstractSequence(context.Background(), tc.eventCode)
			tc.assertion(value, err)
			require.NoError(s.T(), mockDB.ExpectationsWereMet())
		})
	}
}

func (s *AbstractRepositorySuite) TestInsertAbstract_TableDriven() {
	abstract := domain.Abstract{
		ID:             "a-1",
		EventCode:      "121",
		AbstractNo:     "121A1005",
		Title:          "Laparoscopic outcomes",
		Category:       "A",
		PresenterName:  "Dr. Rao",
		PresenterEmail: "rao@example.com",
		Status:         "submitted",
	}
	insertErr := errors.New("insert failed")

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		assertion func(error)
	}{
		{
			name: "duplicate abstract number is a retryable conflict",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO abstracts")).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: abstractNoConstraint})
			},
			assertion: func(err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, sharedseq.ErrIdentifierConflict)
			},
		},
		{
			name: "duplicate on unrelated constraint is not a conflict",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO abstracts")).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "abstracts_presenter_email_key"})
			},
			assertion: func(err error) {
				require.Error(s.T(), err)
				assert.NotErrorIs(s.T(), err, sharedseq.ErrIdentifierConflict)
				assert.ErrorContains(s.T(), err, "insert abstract failed")
			},
		},
		{
			name: "wraps other insert errors",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO abstracts")).
					WillReturnError(insertErr)
			},
			assertion: func(err error) {
				require.Error(s.T(), err)
				assert.NotErrorIs(s.T(), err, sharedseq.ErrIdentifierConflict)
				assert.ErrorIs(s.T(), err, insertErr)
			},
		},
		{
			name: "success",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO abstracts")).
					WithArgs(
						abstract.ID,
						abstract.EventCode,
						abstract.AbstractNo,
						abstract.Title,
						abstract.Category,
						abstract.PresenterName,
						abstract.PresenterEmail,
						abstract.Status,
					).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			assertion: func(err error) {
				require.NoError(s.T(), err)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			db, mockDB := newSQLXMock(s.T())
			repo := NewAbstractRepository(db)
			tc.setupMock(mockDB)

			err := repo.InsertAbstract(context.Background(), abstract)
			tc.assertion(err)
			require.NoError(s.T(), mockDB.ExpectationsWereMet())
		})
	}
}

func (s *AbstractRepositorySuite) TestListAbstractsByEvent() {
	db, mockDB := newSQLXMock(s.T())
	repo := NewAbstractRepository(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "event_code", "abstract_no", "title", "category", "presenter_name", "presenter_email", "status", "created_at",
	}).AddRow("a-1", "121", "121A1001", "Title one", "A", "Dr. Rao", "rao@example.com", "submitted", now)

	mockDB.ExpectQuery(regexp.QuoteMeta("SELECT id::text AS id, event_code, abstract_no")).
		WithArgs("121").
		WillReturnRows(rows)

	abstracts, err := repo.ListAbstractsByEvent(context.Background(), "121")
	require.NoError(s.T(), err)
	require.Len(s.T(), abstracts, 1)
	assert.Equal(s.T(), "121A1001", abstracts[0].AbstractNo)
	assert.Equal(s.T(), now, abstracts[0].CreatedAt)
	require.NoError(s.T(), mockDB.ExpectationsWereMet())
}

func TestAbstractRepositorySuite(t *testing.T) {
	suite.Run(t, new(AbstractRepositorySuite))
}

type RegistrationRepositorySuite struct{ suite.Suite }

func (s *RegistrationRepositorySuite) TestListRegistrationNumbersByPrefix_TableDriven() {
	queryErr := errors.New("scan query failed")

	tests := []struct {
		name      string
		eventCode string
		setupMock func(sqlmock.Sqlmock)
		assertion func([]string, error)
	}{
		{
			name:      "invalid when event code empty",
			eventCode: "",
			assertion: func(_ []string, err error) {
				require.Error(s.T(), err)
				assert.ErrorContains(s.T(), err, "event code is required")
			},
		},
		{
			name:      "wraps query errors",
			eventCode: "FMAS108",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectQuery(regexp.QuoteMeta("SELECT registration_no")).
					WithArgs("FMAS108", "FMAS108-").
					WillReturnError(queryErr)
			},
			assertion: func(_ []string, err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, queryErr)
			},
		},
		{
			name:      "returns matching numbers",
			eventCode: "FMAS108",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"registration_no"}).
					AddRow("FMAS108-1001").
					AddRow("FMAS108-1003")
				mockDB.ExpectQuery(regexp.QuoteMeta("SELECT registration_no")).
					WithArgs("FMAS108", "FMAS108-").
					WillReturnRows(rows)
			},
			assertion: func(numbers []string, err error) {
				require.NoError(s.T(), err)
				assert.Equal(s.T(), []string{"FMAS108-1001", "FMAS108-1003"}, numbers)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			db, mockDB := newSQLXMock(s.T())
			repo := NewRegistrationRepository(db)
			if tc.setupMock != nil {
				tc.setupMock(mockDB)
			}

			numbers, err := repo.ListRegistrationNumbersByPrefix(context.Background(), tc.eventCode, "FMAS108-")
			tc.assertion(numbers, err)
			require.NoError(s.T(), mockDB.ExpectationsWereMet())
		})
	}
}

func (s *RegistrationRepositorySuite) TestInsertRegistration_TableDriven() {
	registration := domain.Registration{
		ID:             "r-1",
		EventCode:      "FMAS108",
		RegistrationNo: "FMAS108-1004",
		FullName:       "A. Kumar",
		Email:          "kumar@example.com",
	}

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		assertion func(error)
	}{
		{
			name: "duplicate registration number is a retryable conflict",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO registrations")).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: registrationNoConstraint})
			},
			assertion: func(err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, sharedseq.ErrIdentifierConflict)
			},
		},
		{
			name: "duplicate email is not a conflict",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO registrations")).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "registrations_email_key"})
			},
			assertion: func(err error) {
				require.Error(s.T(), err)
				assert.NotErrorIs(s.T(), err, sharedseq.ErrIdentifierConflict)
			},
		},
		{
			name: "success",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO registrations")).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			assertion: func(err error) {
				require.NoError(s.T(), err)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			db, mockDB := newSQLXMock(s.T())
			repo := NewRegistrationRepository(db)
			tc.setupMock(mockDB)

			err := repo.InsertRegistration(context.Background(), registration)
			tc.assertion(err)
			require.NoError(s.T(), mockDB.ExpectationsWereMet())
		})
	}
}

func TestRegistrationRepositorySuite(t *testing.T) {
	suite.Run(t, new(RegistrationRepositorySuite))
}

type AuthLoginRepositorySuite struct{ suite.Suite }

func (s *AuthLoginRepositorySuite) TestGetUserAuthByEmail_TableDriven() {
	repoErr := errors.New("query failed")

	tests := []struct {
		name      string
		email     string
		setupMock func(sqlmock.Sqlmock)
		assertion func(error)
	}{
		{
			name:  "invalid when email empty",
			email: "   ",
			assertion: func(err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, vo.ErrInvalidCredentials)
			},
		},
		{
			name:  "invalid when user not found",
			email: "organiser@example.com",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectQuery(regexp.QuoteMeta("SELECT id::text AS id, email, password_hash, role, status")).
					WithArgs("organiser@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			assertion: func(err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, vo.ErrInvalidCredentials)
			},
		},
		{
			name:  "wraps query errors",
			email: "organiser@example.com",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				mockDB.ExpectQuery(regexp.QuoteMeta("SELECT id::text AS id, email, password_hash, role, status")).
					WithArgs("organiser@example.com").
					WillReturnError(repoErr)
			},
			assertion: func(err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, repoErr)
			},
		},
		{
			name:  "invalid when status not active",
			email: "organiser@example.com",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "status"}).
					AddRow("user-1", "organiser@example.com", "hashed", "organiser", "disabled")
				mockDB.ExpectQuery(regexp.QuoteMeta("SELECT id::text AS id, email, password_hash, role, status")).
					WithArgs("organiser@example.com").
					WillReturnRows(rows)
			},
			assertion: func(err error) {
				require.Error(s.T(), err)
				assert.ErrorIs(s.T(), err, vo.ErrInvalidCredentials)
			},
		},
		{
			name:  "success",
			email: "organiser@example.com",
			setupMock: func(mockDB sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "status"}).
					AddRow("user-1", "organiser@example.com", "hashed", "organiser", "active")
				mockDB.ExpectQuery(regexp.QuoteMeta("SELECT id::text AS id, email, password_hash, role, status")).
					WithArgs("organiser@example.com").
					WillReturnRows(rows)
			},
			assertion: func(err error) {
				require.NoError(s.T(), err)
			},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			db, mockDB := newSQLXMock(s.T())
			repo := NewAuthLoginRepository(db)
			if tc.setupMock != nil {
				tc.setupMock(mockDB)
			}

			result, err := repo.GetUserAuthByEmail(context.Background(), tc.email)
			tc.assertion(err)
			if err == nil {
				assert.Equal(s.T(), "user-1", result.ID)
				assert.Equal(s.T(), "organiser@example.com", result.Email)
				assert.Equal(s.T(), "organiser", result.Role)
			}
			require.NoError(s.T(), mockDB.ExpectationsWereMet())
		})
	}
}

func TestAuthLoginRepositorySuite(t *testing.T) {
	suite.Run(t, new(AuthLoginRepositorySuite))
}
