package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Name    string `form:"first_name" validate:"required,max=5"`
	Country int64  `form:"country_id" validate:"gte=1"`
	Year    int    `query:"year" validate:"omitempty,min=1901"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(&sampleForm{Name: "Ann", Country: 1}))

	err := ValidateStruct(&sampleForm{Name: strings.Repeat("x", 6), Country: 0, Year: 12})
	require.Error(t, err)

	var fe *FormError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"first_name", "country_id", "year"}, fe.Fields)
	assert.Contains(t, fe.Error(), "first_name must be at most 5 characters")
	assert.Contains(t, fe.Error(), "country_id must be at least 1")
	assert.Contains(t, fe.Error(), "year must be at least 1901")
}

func TestValidateStruct_Required(t *testing.T) {
	err := EchoValidator{}.Validate(&sampleForm{Country: 2})
	require.Error(t, err)
	assert.Equal(t, "first_name is required", err.Error())
}
