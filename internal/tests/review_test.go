// internal/tests/review_test.go
package tests

import (
	"fmt"
	"net/http"
)

func (suite *APITestSuite) TestReviewLifecycle() {
	_, alice := suite.client("alice")
	_, bob := suite.client("bob")
	productID := suite.createProduct("Sofa", "300.00", 2)
	productPath := fmt.Sprintf("/api/reviews/%d", productID)

	w, response := suite.request(http.MethodPost, productPath, map[string]interface{}{
		"rating":  5,
		"comment": "Comfortable",
	}, alice)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var review struct {
		ID uint `json:"id"`
	}
	suite.decode(response.Data, &review)

	w, _ = suite.request(http.MethodPost, productPath, map[string]interface{}{"rating": 3}, alice)
	suite.Equal(http.StatusConflict, w.Code)

	w, _ = suite.request(http.MethodPost, productPath, map[string]interface{}{"rating": 6}, bob)
	suite.Equal(http.StatusBadRequest, w.Code)

	reviewPath := fmt.Sprintf("/api/reviews/%d", review.ID)
	w, _ = suite.request(http.MethodPut, reviewPath, map[string]interface{}{"rating": 1}, bob)
	suite.Equal(http.StatusForbidden, w.Code)

	w, response = suite.request(http.MethodGet, productPath, nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	var page struct {
		Reviews []struct {
			Rating int `json:"rating"`
			User   struct {
				Username string `json:"username"`
			} `json:"User"`
		} `json:"reviews"`
		TotalItems int64 `json:"totalItems"`
	}
	suite.decode(response.Data, &page)
	suite.Equal(int64(1), page.TotalItems)
	suite.Require().Len(page.Reviews, 1)
	suite.Equal("alice", page.Reviews[0].User.Username)

	w, response = suite.request(http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	var product struct {
		ReviewCount int `json:"reviewCount"`
	}
	suite.decode(response.Data, &product)
	suite.Equal(1, product.ReviewCount)

	w, _ = suite.request(http.MethodDelete, reviewPath, nil, suite.adminToken)
	suite.Require().Equal(http.StatusOK, w.Code)

	w, response = suite.request(http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	var reset struct {
		AverageRating *string `json:"averageRating"`
		ReviewCount   int     `json:"reviewCount"`
	}
	suite.decode(response.Data, &reset)
	suite.Zero(reset.ReviewCount)
	suite.Nil(reset.AverageRating)
}

func (suite *APITestSuite) TestReviewsForMissingProduct() {
	w, _ := suite.request(http.MethodGet, "/api/reviews/4242", nil, "")
	suite.Equal(http.StatusNotFound, w.Code)

	_, token := suite.client("alice")
	w, _ = suite.request(http.MethodPost, "/api/reviews/4242", map[string]interface{}{"rating": 4}, token)
	suite.Equal(http.StatusNotFound, w.Code)
}
