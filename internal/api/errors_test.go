package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/scry-match/internal/api/shared"
	"github.com/phrazzld/scry-match/internal/domain"
	"github.com/phrazzld/scry-match/internal/game"
	"github.com/phrazzld/scry-match/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"session not found", game.ErrSessionNotFound, http.StatusNotFound},
		{"wrapped card not found", fmt.Errorf("%w: %q", game.ErrCardNotFound, "x"), http.StatusNotFound},
		{"store not found", store.ErrBlobNotFound, http.StatusNotFound},
		{"session closed", game.ErrSessionClosed, http.StatusGone},
		{"validation", fmt.Errorf("%w: bad id", domain.ErrValidation), http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"insufficient content", domain.ErrInsufficientContent, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Game not found", GetSafeErrorMessage(game.ErrSessionNotFound))
	assert.Equal(t, "Card not found", GetSafeErrorMessage(fmt.Errorf("%w: %q", game.ErrCardNotFound, "x")))
	assert.Equal(t, "Game has ended", GetSafeErrorMessage(game.ErrSessionClosed))
	assert.Equal(t, "Game content is unavailable",
		GetSafeErrorMessage(fmt.Errorf("%w: need 8 concepts, have 3", domain.ErrInsufficientContent)))

	raw := errors.New("open /var/lib/scry/scores.json: permission denied")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(raw))
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(&SelectCardRequest{})
	assert.Equal(t, "Invalid CardID: required field", SanitizeValidationError(err))

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	err = shared.ValidateRequest(&SelectCardRequest{CardID: string(long)})
	assert.Equal(t, "Invalid CardID: too long", SanitizeValidationError(err))

	err = shared.ValidateRequest(&SelectCardRequest{CardID: "front-ç1"})
	assert.Equal(t, "Invalid CardID: invalid characters", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
