package apierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAs_UnwrapsThroughFmtErrorf(t *testing.T) {
	base := NotFound("film_service.get_by_id", errors.New("absent"))
	wrapped := fmt.Errorf("handler: %w", base)

	assert.Equal(t, KindNotFound, As(wrapped))
	assert.True(t, Is(wrapped, KindNotFound))
	assert.False(t, Is(wrapped, KindValidation))
}

func TestAs_UnknownForPlainError(t *testing.T) {
	assert.Equal(t, KindUnknown, As(errors.New("boom")))
}

func TestKind_Retryable(t *testing.T) {
	cases := []struct {
		kind      Kind
		retryable bool
	}{
		{KindValidation, false},
		{KindNotFound, false},
		{KindBackendUnavailable, true},
		{KindSourceTransient, true},
		{KindSourceFatal, false},
		{KindCachePoisoned, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.retryable, c.kind.Retryable(), c.kind.String())
	}
}

func TestError_MessageIncludesOpAndKind(t *testing.T) {
	err := Validation("http.validate_page_size", errors.New("must be in [1,100]"))
	assert.Contains(t, err.Error(), "http.validate_page_size")
	assert.Contains(t, err.Error(), "validation")
	assert.Contains(t, err.Error(), "must be in [1,100]")
}
