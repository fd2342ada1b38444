package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type samplePayload struct {
	FirstName string       `validate:"required"`
	Email     string       `validate:"required,email"`
	Items     []sampleItem `validate:"required,min=1,dive"`
}

type sampleItem struct {
	Product  string `validate:"required,uuid"`
	Quantity int    `validate:"required,min=1"`
}

func TestValidateStructValid(t *testing.T) {
	payload := samplePayload{
		FirstName: "Jane",
		Email:     "jane@example.com",
		Items: []sampleItem{
			{Product: "7b8e6a9e-58b0-4c2f-9f2a-0f1f2b3c4d5e", Quantity: 1},
		},
	}

	assert.Nil(t, ValidateStruct(payload))
}

func TestValidateStructFieldNames(t *testing.T) {
	errs := ValidateStruct(samplePayload{})
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "items")
	assert.Equal(t, "this field is required", errs["first_name"])
}

func TestValidateStructNestedItems(t *testing.T) {
	payload := samplePayload{
		FirstName: "Jane",
		Email:     "jane@example.com",
		Items: []sampleItem{
			{Product: "not-a-uuid", Quantity: 0},
		},
	}

	errs := ValidateStruct(payload)
	assert.Equal(t, "must be a valid uuid", errs["items[0].product"])
	assert.Contains(t, errs, "items[0].quantity")
}
