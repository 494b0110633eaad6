package validators

import (
	"errors"
	"strings"
	"testing"

	"github.com/anonto42/nano-midea/feed/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCreatePostRequestValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.CreatePostRequest{Text: "hello"}))
	assert.NoError(t, v.Validate(models.CreatePostRequest{Img: "data:image/png;base64,AAAA"}))
	assert.NoError(t, v.Validate(models.CreatePostRequest{Text: "hello", Img: "data:image/png;base64,AAAA"}))

	err := v.Validate(models.CreatePostRequest{})
	assert.Error(t, err)
	assert.True(t, IsRequiredViolation(err))

	assert.NoError(t, v.Validate(models.CreatePostRequest{Text: strings.Repeat("x", 5000)}))
}

func TestCreateCommentRequestValidation(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.CreateCommentRequest{Text: "nice"}))
	assert.NoError(t, v.Validate(models.CreateCommentRequest{Text: strings.Repeat("x", 5000)}))

	err := v.Validate(models.CreateCommentRequest{})
	assert.True(t, IsRequiredViolation(err))
}

func TestIsRequiredViolationOtherErrors(t *testing.T) {
	assert.False(t, IsRequiredViolation(nil))
	assert.False(t, IsRequiredViolation(errors.New("boom")))
}
