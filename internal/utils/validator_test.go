package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string   `json:"username" validate:"required,username"`
	Status   string   `json:"status" validate:"required,order_status"`
	Items    []string `json:"items" validate:"required,min=1"`
}

func TestValidateStruct(t *testing.T) {
	valid := sampleRequest{Username: "alice_1", Status: "shipped", Items: []string{"a"}}
	assert.NoError(t, ValidateStruct(valid))

	err := ValidateStruct(sampleRequest{Username: "a!", Status: "lost", Items: []string{}})
	require.Error(t, err)

	errs := GetValidationErrors(err)
	require.Len(t, errs, 3)

	byField := map[string]ValidationError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "username", byField["username"].Tag)
	assert.Equal(t, "order_status", byField["status"].Tag)
	assert.Equal(t, "min", byField["items"].Tag)
	assert.Contains(t, byField["items"].Message, "item(s)")
}

func TestGetValidationErrorsIgnoresOtherErrors(t *testing.T) {
	assert.Empty(t, GetValidationErrors(assert.AnError))
}
