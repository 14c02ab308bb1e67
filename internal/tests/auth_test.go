// internal/tests/auth_test.go
package tests

import (
	"net/http"
)

func (suite *APITestSuite) TestHealth() {
	w, _ := suite.request(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *APITestSuite) TestUserRegistration() {
	userID := suite.register("alice", "secret123")
	suite.NotZero(userID)

	w, response := suite.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
		"password": "another1",
	}, "")
	suite.Equal(http.StatusConflict, w.Code)
	suite.False(response.Success)
	suite.Equal("CONFLICT", response.Error.Code)
}

func (suite *APITestSuite) TestRegistrationValidation() {
	w, response := suite.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "al",
		"password": "123",
	}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", response.Error.Code)
	suite.NotNil(response.Error.Details)
}

func (suite *APITestSuite) TestUserLogin() {
	suite.register("alice", "secret123")

	w, response := suite.request(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("UNAUTHORIZED", response.Error.Code)

	token := suite.login("alice", "secret123")

	w, response = suite.request(http.MethodGet, "/api/auth/profile", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code)
	var profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	suite.decode(response.Data, &profile)
	suite.Equal("alice", profile.Username)
	suite.Equal("client", profile.Role)
}

func (suite *APITestSuite) TestProfileRequiresToken() {
	w, response := suite.request(http.MethodGet, "/api/auth/profile", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.False(response.Success)

	w, _ = suite.request(http.MethodGet, "/api/auth/profile", nil, "not-a-jwt")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestUpdateProfile() {
	_, token := suite.client("alice")

	w, response := suite.request(http.MethodPut, "/api/auth/profile", map[string]string{
		"firstName": "Alice",
		"email":     "alice@example.com",
	}, token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var profile struct {
		FirstName string `json:"firstName"`
		Email     string `json:"email"`
	}
	suite.decode(response.Data, &profile)
	suite.Equal("Alice", profile.FirstName)
	suite.Equal("alice@example.com", profile.Email)

	w, _ = suite.request(http.MethodPut, "/api/auth/profile", map[string]string{"email": "nope"}, token)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestChangePassword() {
	_, token := suite.client("alice")

	w, _ := suite.request(http.MethodPost, "/api/auth/change-password", map[string]string{
		"oldPassword": "secret123",
		"newPassword": "changed456",
	}, token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	suite.login("alice", "changed456")
}
