package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Prabhugems/AMASI-management-sub013/internal/domain/vo"
	"github.com/Prabhugems/AMASI-management-sub013/internal/services"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func performRequest(app *fiber.App, method, path, contentType string, body []byte) (*http.Response, map[string]interface{}) {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}

	resp, err := app.Test(req)
	if err != nil {
		return nil, nil
	}

	defer resp.Body.Close()
	rawBody, _ := io.ReadAll(resp.Body)
	parsed := map[string]interface{}{}
	_ = json.Unmarshal(rawBody, &parsed)

	return resp, parsed
}

type fakeAbstractService struct {
	submit func(ctx context.Context, eventCode string, input services.SubmitAbstractInput) (vo.AbstractSubmission, error)
	list   func(ctx context.Context, eventCode string) ([]vo.AbstractSubmission, error)
}

func (f *fakeAbstractService) Submit(ctx context.Context, eventCode string, input services.SubmitAbstractInput) (vo.AbstractSubmission, error) {
	return f.submit(ctx, eventCode, input)
}

func (f *fakeAbstractService) ListByEvent(ctx context.Context, eventCode string) ([]vo.AbstractSubmission, error) {
	return f.list(ctx, eventCode)
}

type AbstractHandlerSuite struct {
	suite.Suite

	service *fakeAbstractService
	app     *fiber.App
}

func (s *AbstractHandlerSuite) SetupTest() {
	s.service = &fakeAbstractService{}
	s.app = fiber.New()
	NewAbstractHandler(s.service, newTestLogger()).Register(s.app)
}

func (s *AbstractHandlerSuite) TestSubmit_TableDriven() {
	serviceErr := errors.New("service error")
	validBody := []byte(`{"title":"T","category":"A","presenter_name":"Dr. Rao","presenter_email":"rao@example.com"}`)

	tests := []struct {
		name      string
		body      []byte
		submit    func(context.Context, string, services.SubmitAbstractInput) (vo.AbstractSubmission, error)
		status    int
		errorText string
	}{
		{
			name:      "invalid body",
			body:      []byte(`{"title":`),
			status:    fiber.StatusBadRequest,
			errorText: "invalid request body",
		},
		{
			name: "invalid submission",
			body: validBody,
			submit: func(context.Context, string, services.SubmitAbstractInput) (vo.AbstractSubmission, error) {
				return vo.AbstractSubmission{}, vo.ErrInvalidSubmission
			},
			status: fiber.StatusBadRequest,
		},
		{
			name: "allocation exhausted maps to conflict",
			body: validBody,
			submit: func(context.Context, string, services.SubmitAbstractInput) (vo.AbstractSubmission, error) {
				return vo.AbstractSubmission{}, vo.ErrAbstractNumberExhausted
			},
			status:    fiber.StatusConflict,
			errorText: "could not allocate a unique abstract number, try again",
		},
		{
			name: "internal error",
			body: validBody,
			submit: func(context.Context, string, services.SubmitAbstractInput) (vo.AbstractSubmission, error) {
				return vo.AbstractSubmission{}, serviceErr
			},
			status:    fiber.StatusInternalServerError,
			errorText: "internal server error",
		},
		{
			name: "created",
			body: validBody,
			submit: func(_ context.Context, eventCode string, input services.SubmitAbstractInput) (vo.AbstractSubmission, error) {
				assert.Equal(s.T(), "121", eventCode)
				assert.Equal(s.T(), "T", input.Title)
				return vo.AbstractSubmission{EventCode: "121", AbstractNo: "121A1005"}, nil
			},
			status: fiber.StatusCreated,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.service.submit = tc.submit

			resp, payload := performRequest(s.app, fiber.MethodPost, "/events/121/abstracts", fiber.MIMEApplicationJSON, tc.body)
			require.NotNil(s.T(), resp)
			assert.Equal(s.T(), tc.status, resp.StatusCode)
			if tc.errorText != "" {
				assert.Equal(s.T(), tc.errorText, payload["error"])
			}
			if tc.status == fiber.StatusCreated {
				assert.Equal(s.T(), "121A1005", payload["abstract_no"])
			}
		})
	}
}

func (s *AbstractHandlerSuite) TestList() {
	s.service.list = func(_ context.Context, eventCode string) ([]vo.AbstractSubmission, error) {
		assert.Equal(s.T(), "121", eventCode)
		return []vo.AbstractSubmission{{AbstractNo: "121A1001"}}, nil
	}

	resp, payload := performRequest(s.app, fiber.MethodGet, "/events/121/abstracts", "", nil)
	require.NotNil(s.T(), resp)
	assert.Equal(s.T(), fiber.StatusOK, resp.StatusCode)
	abstracts, ok := payload["abstracts"].([]interface{})
	require.True(s.T(), ok)
	assert.Len(s.T(), abstracts, 1)
}

func TestAbstractHandlerSuite(t *testing.T) {
	suite.Run(t, new(AbstractHandlerSuite))
}

type fakeImportService struct {
	importFn func(ctx context.Context, eventCode string, csvData io.Reader) (vo.ImportSummary, error)
}

func (f *fakeImportService) Import(ctx context.Context, eventCode string, csvData io.Reader) (vo.ImportSummary, error) {
	return f.importFn(ctx, eventCode, csvData)
}

type RegistrationImportHandlerSuite struct {
	suite.Suite

	service *fakeImportService
	app     *fiber.App
}

func (s *RegistrationImportHandlerSuite) SetupTest() {
	s.service = &fakeImportService{}
	s.app = fiber.New()
	NewRegistrationImportHandler(s.service, newTestLogger()).Register(s.app)
}

func (s *RegistrationImportHandlerSuite) TestHandle_TableDriven() {
	serviceErr := errors.New("service error")
	csvBody := []byte("full_name,email\nA. Kumar,kumar@example.com\n")

	tests := []struct {
		name      string
		body      []byte
		importFn  func(context.Context, string, io.Reader) (vo.ImportSummary, error)
		status    int
		errorText string
	}{
		{
			name:      "empty body",
			body:      nil,
			status:    fiber.StatusBadRequest,
			errorText: "request body must contain CSV data",
		},
		{
			name: "unparseable file",
			body: csvBody,
			importFn: func(context.Context, string, io.Reader) (vo.ImportSummary, error) {
				return vo.ImportSummary{}, vo.ErrInvalidImportFile
			},
			status:    fiber.StatusBadRequest,
			errorText: "import file could not be parsed",
		},
		{
			name: "internal error",
			body: csvBody,
			importFn: func(context.Context, string, io.Reader) (vo.ImportSummary, error) {
				return vo.ImportSummary{}, serviceErr
			},
			status:    fiber.StatusInternalServerError,
			errorText: "internal server error",
		},
		{
			name: "summary returned",
			body: csvBody,
			importFn: func(_ context.Context, eventCode string, _ io.Reader) (vo.ImportSummary, error) {
				assert.Equal(s.T(), "FMAS108", eventCode)
				return vo.ImportSummary{EventCode: "FMAS108", Total: 1, Imported: 1}, nil
			},
			status: fiber.StatusOK,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.service.importFn = tc.importFn

			resp, payload := performRequest(s.app, fiber.MethodPost, "/events/FMAS108/registrations/import", "text/csv", tc.body)
			require.NotNil(s.T(), resp)
			assert.Equal(s.T(), tc.status, resp.StatusCode)
			if tc.errorText != "" {
				assert.Equal(s.T(), tc.errorText, payload["error"])
			}
			if tc.status == fiber.StatusOK {
				assert.Equal(s.T(), float64(1), payload["imported"])
			}
		})
	}
}

func TestRegistrationImportHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegistrationImportHandlerSuite))
}

type fakeAuthLoginService struct {
	login func(ctx context.Context, email, password string) (vo.AuthLogin, error)
}

func (f *fakeAuthLoginService) Login(ctx context.Context, email, password string) (vo.AuthLogin, error) {
	return f.login(ctx, email, password)
}

type AuthLoginHandlerSuite struct {
	suite.Suite

	service *fakeAuthLoginService
	app     *fiber.App
}

func (s *AuthLoginHandlerSuite) SetupTest() {
	s.service = &fakeAuthLoginService{}
	s.app = fiber.New()
	NewAuthLoginHandler(s.service, newTestLogger()).Register(s.app)
}

func (s *AuthLoginHandlerSuite) TestHandle_TableDriven() {
	tests := []struct {
		name      string
		body      []byte
		login     func(context.Context, string, string) (vo.AuthLogin, error)
		status    int
		errorText string
	}{
		{
			name:      "invalid body",
			body:      []byte(`{"email":`),
			status:    fiber.StatusBadRequest,
			errorText: "invalid request body",
		},
		{
			name:      "missing email or password",
			body:      []byte(`{"email":"","password":""}`),
			status:    fiber.StatusBadRequest,
			errorText: "email and password are required",
		},
		{
			name: "invalid credentials",
			body: []byte(`{"email":"organiser@example.com","password":"secret"}`),
			login: func(context.Context, string, string) (vo.AuthLogin, error) {
				return vo.AuthLogin{}, vo.ErrInvalidCredentials
			},
			status:    fiber.StatusUnauthorized,
			errorText: "invalid email or password",
		},
		{
			name: "success",
			body: []byte(`{"email":"organiser@example.com","password":"secret"}`),
			login: func(context.Context, string, string) (vo.AuthLogin, error) {
				return vo.AuthLogin{AccessToken: "token", TokenType: "Bearer", Role: "organiser"}, nil
			},
			status: fiber.StatusOK,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.service.login = tc.login

			resp, payload := performRequest(s.app, fiber.MethodPost, "/auth/login", fiber.MIMEApplicationJSON, tc.body)
			require.NotNil(s.T(), resp)
			assert.Equal(s.T(), tc.status, resp.StatusCode)
			if tc.errorText != "" {
				assert.Equal(s.T(), tc.errorText, payload["error"])
			}
			if tc.status == fiber.StatusOK {
				assert.Equal(s.T(), "token", payload["access_token"])
				assert.Equal(s.T(), "organiser", payload["role"])
			}
		})
	}
}

func TestAuthLoginHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthLoginHandlerSuite))
}
