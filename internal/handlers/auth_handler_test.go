package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"expense-manager/internal/config"
	"expense-manager/internal/database"
	"expense-manager/internal/dto"
	"expense-manager/internal/repositories"
	"expense-manager/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	echo          *echo.Echo
	db            *database.DB
	handler       *AuthHandler
	tokens        services.TokenServiceInterface
	revokedTokens repositories.RevokedTokenRepositoryInterface
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.db = database.SetupTestDB(s.T())

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.tokens = services.NewTokenService(&config.JWTConfig{
		AccessTokenDuration: time.Hour,
		PrivateKey:          privateKey,
		PublicKey:           publicKey,
		Issuer:              "expense-manager-test",
	})
	s.revokedTokens = repositories.NewRevokedTokenRepository(s.db.DB)
	authService := services.NewAuthService(
		repositories.NewUserRepository(s.db.DB),
		s.revokedTokens,
		services.NewPasswordService(4, 8),
		s.tokens,
	)
	s.handler = NewAuthHandler(authService, s.tokens)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AuthHandlerTestSuite) postJSON(target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *AuthHandlerTestSuite) register() {
	c, rec := s.postJSON("/api/v1/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"secure123"}`)
	s.Require().NoError(s.handler.Register(c))
	s.Require().Equal(http.StatusCreated, rec.Code)
}

func (s *AuthHandlerTestSuite) TestRegister() {
	c, rec := s.postJSON("/api/v1/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"secure123"}`)

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), `"username":"alice"`)
	s.NotContains(rec.Body.String(), "secure123")
}

func (s *AuthHandlerTestSuite) TestRegister_Duplicate() {
	s.register()

	c, rec := s.postJSON("/api/v1/auth/register",
		`{"username":"alice","email":"other@example.com","password":"secure123"}`)

	s.NoError(s.handler.Register(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("USER_002", resp.Error.Code)
}

func (s *AuthHandlerTestSuite) TestRegister_InvalidBody() {
	c, _ := s.postJSON("/api/v1/auth/register",
		`{"username":"al","email":"not-an-email","password":"short"}`)

	// validator errors bubble up to the HTTP error handler
	s.Error(s.handler.Register(c))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	s.register()

	c, rec := s.postJSON("/api/v1/auth/login", `{"login":"alice","password":"secure123"}`)
	s.NoError(s.handler.Login(c))
	s.Equal(http.StatusOK, rec.Code)

	var tokens dto.TokenResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &tokens))
	s.NotEmpty(tokens.AccessToken)
	s.Equal("Bearer", tokens.TokenType)
}

func (s *AuthHandlerTestSuite) TestLogin_BadCredentials() {
	s.register()

	c, rec := s.postJSON("/api/v1/auth/login", `{"login":"alice","password":"wrong"}`)
	s.NoError(s.handler.Login(c))
	s.Equal(http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("AUTH_001", resp.Error.Code)
}

func (s *AuthHandlerTestSuite) login() *dto.TokenResponse {
	s.register()
	c, rec := s.postJSON("/api/v1/auth/login",
		`{"login":"alice","password":"secure123"}`)
	s.Require().NoError(s.handler.Login(c))
	s.Require().Equal(http.StatusOK, rec.Code)

	var tokens dto.TokenResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &tokens))
	return &tokens
}

func (s *AuthHandlerTestSuite) TestLogout() {
	tokens := s.login()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.Logout(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Logout successful")

	jti, err := s.tokens.GetJTI(tokens.AccessToken)
	s.Require().NoError(err)
	revoked, err := s.revokedTokens.IsRevoked(jti)
	s.Require().NoError(err)
	s.True(revoked)
}

func (s *AuthHandlerTestSuite) TestLogout_MissingHeader() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(s.handler.Logout(c))
	s.Equal(http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("AUTH_002", resp.Error.Code)
}
