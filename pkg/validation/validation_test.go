package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "govos/pkg/domain-errors"
)

type chatRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

type copiesRequest struct {
	Copies   int    `json:"copies" validate:"gte=1,lte=10"`
	Delivery string `json:"delivery" validate:"omitempty,oneof=print fax"`
}

func TestValidate(t *testing.T) {
	t.Run("blank text is rejected", func(t *testing.T) {
		err := Validate(&chatRequest{Text: "   "})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "text must not be blank", err.Error())
	})

	t.Run("missing text reports required", func(t *testing.T) {
		err := Validate(&chatRequest{})
		require.Error(t, err)
		assert.Equal(t, "text is required", err.Error())
	})

	t.Run("range and enum tags", func(t *testing.T) {
		err := Validate(&copiesRequest{Copies: 0})
		require.Error(t, err)
		assert.Equal(t, "copies must be greater than or equal to 1", err.Error())

		err = Validate(&copiesRequest{Copies: 1, Delivery: "pigeon"})
		require.Error(t, err)
		assert.Equal(t, "delivery must be one of [print fax]", err.Error())
	})

	t.Run("valid struct passes", func(t *testing.T) {
		assert.NoError(t, Validate(&copiesRequest{Copies: 2, Delivery: "fax"}))
	})
}
