package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"minigram/internal/entity"
	"minigram/internal/usecase"
	"minigram/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthUseCase is a mock implementation of usecase.AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(name, email, username, password, passwordAgain string) (*entity.User, string, error) {
	args := m.Called(name, email, username, password, passwordAgain)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Login(email, password string) (*entity.User, string, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) GetUser(userID uint) (*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// flashMessage decodes the flash cookie set on the response, if any.
func flashMessage(w *httptest.ResponseRecorder) string {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flash" {
			once, _ := url.QueryUnescape(ck.Value)
			msg, _ := url.QueryUnescape(once)
			return msg
		}
	}
	return ""
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "session" {
			return ck
		}
	}
	return nil
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestLogin_SetsSessionAndRedirects(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/", handler.Login)

	mockUseCase.On("Login", "alice@example.com", "password123").
		Return(&entity.User{ID: 1, Username: "alice"}, "jwt-token", nil)

	w := postForm(router, "/", url.Values{
		"email":    {"alice@example.com"},
		"password": {"password123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "logged in", flashMessage(w))

	session := sessionCookie(w)
	assert.NotNil(t, session)
	assert.Equal(t, "jwt-token", session.Value)
	assert.True(t, session.HttpOnly)

	mockUseCase.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/", handler.Login)

	mockUseCase.On("Login", "alice@example.com", "bad").
		Return(nil, "", entity.ErrWrongPassword)

	w := postForm(router, "/", url.Values{
		"email":    {"alice@example.com"},
		"password": {"bad"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, "wrong password", flashMessage(w))
	assert.Nil(t, sessionCookie(w))

	mockUseCase.AssertExpectations(t)
}

func TestLogin_UserNotFound(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/", handler.Login)

	mockUseCase.On("Login", "nobody@example.com", "password123").
		Return(nil, "", entity.ErrUserNotFound)

	w := postForm(router, "/", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"password123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, "user not found", flashMessage(w))

	mockUseCase.AssertExpectations(t)
}

func TestRegister_Success(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	mockUseCase.On("Register", "Alice", "alice@example.com", "alice", "password123", "password123").
		Return(&entity.User{ID: 1, Username: "alice"}, "jwt-token", nil)

	w := postForm(router, "/register", url.Values{
		"name":           {"Alice"},
		"email":          {"alice@example.com"},
		"username":       {"alice"},
		"password":       {"password123"},
		"password_again": {"password123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "successfully registered", flashMessage(w))
	assert.NotNil(t, sessionCookie(w))

	mockUseCase.AssertExpectations(t)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	mockUseCase.On("Register", "Alice", "alice@example.com", "alice", "password123", "different").
		Return(nil, "", entity.ErrPasswordMismatch)

	w := postForm(router, "/register", url.Values{
		"name":           {"Alice"},
		"email":          {"alice@example.com"},
		"username":       {"alice"},
		"password":       {"password123"},
		"password_again": {"different"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))
	assert.Equal(t, "passwords do not match", flashMessage(w))

	mockUseCase.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	mockUseCase.On("Register", "Alice", "alice@example.com", "alice", "password123", "password123").
		Return(nil, "", entity.ErrUsernameTaken)

	w := postForm(router, "/register", url.Values{
		"name":           {"Alice"},
		"email":          {"alice@example.com"},
		"username":       {"alice"},
		"password":       {"password123"},
		"password_again": {"password123"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))
	assert.Equal(t, "username already exists", flashMessage(w))

	mockUseCase.AssertExpectations(t)
}

func TestLogout_ClearsSession(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/logout", handler.Logout)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/logout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	session := sessionCookie(w)
	assert.NotNil(t, session)
	assert.Less(t, session.MaxAge, 0)
}

func TestLoginPage_DescribesForm(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/login", handler.LoginPage)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/login", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	form := response["form"].(map[string]interface{})
	assert.Equal(t, "/", form["action"])
}
