// internal/tests/catalog_test.go
package tests

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
)

func (suite *APITestSuite) TestCatalogAdminOnlyWrites() {
	_, token := suite.client("alice")

	w, _ := suite.request(http.MethodPost, "/api/categories", map[string]string{"name": "Chairs"}, token)
	suite.Equal(http.StatusForbidden, w.Code)

	w, response := suite.request(http.MethodPost, "/api/categories", map[string]string{"name": "Chairs"}, suite.adminToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var category struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	suite.decode(response.Data, &category)
	suite.Equal("Chairs", category.Name)

	w, response = suite.request(http.MethodGet, "/api/categories", nil, "")
	suite.Require().Equal(http.StatusOK, w.Code)
	var categories []struct {
		Name string `json:"name"`
	}
	suite.decode(response.Data, &categories)
	suite.Len(categories, 1)

	w, _ = suite.request(http.MethodPost, "/api/products", map[string]interface{}{
		"name":        "Stool",
		"price":       "12.00",
		"stock":       4,
		"categoryIds": []uint{category.ID},
	}, suite.adminToken)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w, response = suite.request(http.MethodDelete, fmt.Sprintf("/api/categories/%d", category.ID), nil, suite.adminToken)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("CONFLICT", response.Error.Code)

	w, _ = suite.request(http.MethodPost, "/api/materials", map[string]string{"name": "  "}, suite.adminToken)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestProductWritesRequireAdmin() {
	_, token := suite.client("alice")

	w, _ := suite.request(http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Desk", "price": "99.00", "stock": 1,
	}, token)
	suite.Equal(http.StatusForbidden, w.Code)

	w, _ = suite.request(http.MethodPost, "/api/products", map[string]interface{}{
		"name": "Desk", "price": "99.00", "stock": 1,
	}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w, _ = suite.request(http.MethodGet, "/api/products/abc", nil, "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestFavorites() {
	_, token := suite.client("alice")
	productID := suite.createProduct("Rug", "45.00", 3)
	path := fmt.Sprintf("/api/favorites/%d", productID)

	w, _ := suite.request(http.MethodPost, path, nil, token)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w, _ = suite.request(http.MethodPost, path, nil, token)
	suite.Equal(http.StatusConflict, w.Code)

	w, response := suite.request(http.MethodGet, "/api/favorites", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code)
	var products []struct {
		ID uint `json:"id"`
	}
	suite.decode(response.Data, &products)
	suite.Require().Len(products, 1)
	suite.Equal(productID, products[0].ID)

	w, response = suite.request(http.MethodDelete, path, nil, token)
	suite.Require().Equal(http.StatusOK, w.Code)
	var removed struct {
		Removed int64 `json:"removed"`
	}
	suite.decode(response.Data, &removed)
	suite.Equal(int64(1), removed.Removed)

	w, response = suite.request(http.MethodDelete, path, nil, token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(response.Data, &removed)
	suite.Zero(removed.Removed)
}

func (suite *APITestSuite) TestUploadImages() {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("images", "photo.png")
	suite.Require().NoError(err)
	_, err = part.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n', 0, 0, 0, 0})
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	req, err := http.NewRequest(http.MethodPost, "/api/upload", body)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+suite.adminToken)

	w, response := suite.serve(req)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var data struct {
		ImageURLs []string `json:"imageUrls"`
	}
	suite.decode(response.Data, &data)
	suite.Require().Len(data.ImageURLs, 1)
	suite.True(strings.HasPrefix(data.ImageURLs[0], "/uploads/products/"), data.ImageURLs[0])
}
