package utils

import (
	"Food-Quality-Registry/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstInvalidField_FollowsDeclarationOrder(t *testing.T) {
	InitValidator()

	err := Validate.Struct(domain.FoodProductForm{ExpiryDate: "bad"})
	require.Error(t, err)
	assert.Equal(t, "ProductName", FirstInvalidField(err))

	err = Validate.Struct(domain.FoodProductForm{ProductName: "a", BatchCode: "b", InspectionStatus: "c", ProductionDate: "2024-13-01"})
	require.Error(t, err)
	assert.Equal(t, "ProductionDate", FirstInvalidField(err))

	assert.NoError(t, Validate.Struct(domain.FoodProductForm{ProductName: "a", BatchCode: "b", InspectionStatus: "c"}))
	assert.Empty(t, FirstInvalidField(errors.New("other")))
}
