package util

import (
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeRating(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
		ok   bool
	}{
		{1, 1, true},
		{5, 5, true},
		{3.3, 3.5, true},
		{4.74, 4.5, true},
		{0.99, 0, false},
		{5.01, 0, false},
		{math.NaN(), 0, false},
		{math.Inf(-1), 0, false},
	}
	for _, c := range cases {
		got, ok := NormalizeRating(c.in)
		assert.Equal(t, c.ok, ok, "in=%v", c.in)
		if c.ok {
			assert.InDelta(t, c.want, got, 1e-9, "in=%v", c.in)
		}
	}
}

func TestNormalizeHighlights(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeHighlights(" a , ,b", 8))
	assert.Equal(t, []string{"a", "b"}, NormalizeHighlights([]any{"a", 1, " b "}, 8))
	assert.Equal(t, []string{"x"}, NormalizeHighlights([]string{"x", "y"}, 1))
	assert.Empty(t, NormalizeHighlights(nil, 8))
	assert.Empty(t, NormalizeHighlights(42, 8))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"外卖", "慢"}, NormalizeTags([]string{" 外卖", "", "外卖 ", "慢"}))
	assert.NotNil(t, NormalizeTags(nil))
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, "", TrimOptional(nil))
	padded := "  x "
	assert.Equal(t, "x", TrimOptional(&padded))
	assert.Equal(t, 3, RuneLen("曝光帖"))
	assert.Equal(t, "bob", EmailPrefix("bob@example.com"))
	assert.Equal(t, "noat", EmailPrefix("noat"))
}

func TestValidateDTO(t *testing.T) {
	type images struct {
		Images []string `json:"images" validate:"omitempty,max=2,dive,url"`
	}
	assert.NoError(t, ValidateDTO(&images{Images: []string{"https://a/b.png"}}))
	assert.NoError(t, ValidateDTO(&images{}))

	err := ValidateDTO(&images{Images: []string{"not a url"}})
	var vErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &vErrs)
	assert.Contains(t, err.Error(), "images[0]")
	assert.Error(t, ValidateDTO(&images{Images: []string{"https://a", "https://b", "https://c"}}))
}
