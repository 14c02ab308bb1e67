// internal/tests/order_test.go
package tests

import (
	"fmt"
	"net/http"
)

func checkout(productID uint, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"customerInfo": map[string]string{"name": "Jane Doe", "email": "jane@example.com"},
		"cartItems":    []map[string]interface{}{{"id": productID, "quantity": quantity}},
	}
}

func (suite *APITestSuite) TestPlaceOrder() {
	_, token := suite.client("alice")
	productID := suite.createProduct("Table", "20.00", 3)

	w, response := suite.request(http.MethodPost, "/api/orders", checkout(productID, 2), token)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Message string `json:"message"`
		OrderID uint   `json:"orderId"`
	}
	suite.decode(response.Data, &data)
	suite.NotZero(data.OrderID)
	suite.NotEmpty(data.Message)
	suite.Equal(1, suite.productStock(productID))

	w, response = suite.request(http.MethodGet, "/api/orders/my", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code)
	var orders []struct {
		ID          uint   `json:"id"`
		TotalAmount string `json:"totalAmount"`
		Items       []struct {
			Quantity int `json:"quantity"`
		} `json:"OrderItems"`
	}
	suite.decode(response.Data, &orders)
	suite.Require().Len(orders, 1)
	suite.Equal(data.OrderID, orders[0].ID)
	suite.Require().Len(orders[0].Items, 1)
	suite.Equal(2, orders[0].Items[0].Quantity)
}

func (suite *APITestSuite) TestPlaceOrderInsufficientStock() {
	_, token := suite.client("alice")
	productID := suite.createProduct("Table", "20.00", 1)

	w, response := suite.request(http.MethodPost, "/api/orders", checkout(productID, 2), token)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("CONFLICT", response.Error.Code)
	suite.Contains(response.Error.Message, "Table")
	suite.Equal(1, suite.productStock(productID))
}

func (suite *APITestSuite) TestPlaceOrderUnknownProduct() {
	w, response := suite.request(http.MethodPost, "/api/orders", checkout(999, 1), "")
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", response.Error.Code)
}

func (suite *APITestSuite) TestPlaceOrderValidation() {
	w, response := suite.request(http.MethodPost, "/api/orders", map[string]interface{}{
		"customerInfo": map[string]string{"name": "Jane"},
		"cartItems":    []map[string]interface{}{},
	}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.False(response.Success)
}

func (suite *APITestSuite) TestGuestOrderIgnoresClaimedUser() {
	aliceID, _ := suite.client("alice")
	productID := suite.createProduct("Lamp", "15.50", 5)

	body := checkout(productID, 1)
	body["userId"] = aliceID
	w, response := suite.request(http.MethodPost, "/api/orders", body, "")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var placed struct {
		OrderID uint `json:"orderId"`
	}
	suite.decode(response.Data, &placed)

	w, response = suite.request(http.MethodGet, fmt.Sprintf("/api/orders/%d", placed.OrderID), nil, suite.adminToken)
	suite.Require().Equal(http.StatusOK, w.Code)
	var order struct {
		UserID *uint `json:"userId"`
	}
	suite.decode(response.Data, &order)
	suite.Nil(order.UserID)
}

func (suite *APITestSuite) TestOrderForAnotherUserIsForbidden() {
	_, token := suite.client("alice")
	bobID, _ := suite.client("bob")
	productID := suite.createProduct("Lamp", "15.50", 5)

	body := checkout(productID, 1)
	body["userId"] = bobID
	w, _ := suite.request(http.MethodPost, "/api/orders", body, token)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal(5, suite.productStock(productID))
}

func (suite *APITestSuite) TestAdminOrderManagement() {
	_, token := suite.client("alice")
	productID := suite.createProduct("Chair", "10.00", 10)

	w, response := suite.request(http.MethodPost, "/api/orders", checkout(productID, 1), token)
	suite.Require().Equal(http.StatusCreated, w.Code)
	var placed struct {
		OrderID uint `json:"orderId"`
	}
	suite.decode(response.Data, &placed)

	w, _ = suite.request(http.MethodGet, "/api/orders", nil, token)
	suite.Equal(http.StatusForbidden, w.Code)

	w, response = suite.request(http.MethodGet, "/api/orders?page=1&limit=5", nil, suite.adminToken)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page struct {
		Orders      []struct{ ID uint } `json:"orders"`
		TotalPages  int                 `json:"totalPages"`
		CurrentPage int                 `json:"currentPage"`
	}
	suite.decode(response.Data, &page)
	suite.Len(page.Orders, 1)
	suite.Equal(1, page.TotalPages)
	suite.Equal(1, page.CurrentPage)

	statusPath := fmt.Sprintf("/api/orders/%d/status", placed.OrderID)
	w, response = suite.request(http.MethodPut, statusPath, map[string]string{"status": "shipped"}, suite.adminToken)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var order struct {
		Status string `json:"status"`
	}
	suite.decode(response.Data, &order)
	suite.Equal("shipped", order.Status)

	w, response = suite.request(http.MethodPut, statusPath, map[string]string{"status": "lost"}, suite.adminToken)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", response.Error.Code)

	w, _ = suite.request(http.MethodGet, "/api/orders/9999", nil, suite.adminToken)
	suite.Equal(http.StatusNotFound, w.Code)
}
