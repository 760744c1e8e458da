package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskdash/internal/service"
)

func TestAPIErrorUnwrap(t *testing.T) {
	assert.ErrorIs(t, &service.APIError{StatusCode: 401}, service.ErrUnauthorized)
	assert.ErrorIs(t, &service.APIError{StatusCode: 403}, service.ErrUnauthorized)
	assert.ErrorIs(t, &service.APIError{StatusCode: 404}, service.ErrNotFound)

	err := &service.APIError{StatusCode: 500, Message: "boom"}
	assert.NotErrorIs(t, err, service.ErrUnauthorized)
	assert.NotErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, "boom", err.Error())
}

func TestMessage(t *testing.T) {
	apiErr := &service.APIError{StatusCode: 400, Message: "Invalid email or password."}
	assert.Equal(t, "Invalid email or password.", service.Message(apiErr, "fallback"))

	// Wrapped API errors still surface their message.
	wrapped := fmt.Errorf("login: %w", apiErr)
	assert.Equal(t, "Invalid email or password.", service.Message(wrapped, "fallback"))

	assert.Equal(t, "fallback", service.Message(errors.New("dial tcp"), "fallback"))
	assert.Equal(t, "fallback", service.Message(&service.APIError{StatusCode: 500}, "fallback"))
}
