package exception_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tigerroll/flclient/pkg/flclient/support/util/exception"
)

func TestNewCallbackError(t *testing.T) {
	originalErr := errors.New("db connection refused")
	ce := exception.NewCallbackError("history", "failed to save", originalErr)

	assert.Equal(t, "history", ce.Module)
	assert.Equal(t, "failed to save", ce.Message)
	assert.Equal(t, originalErr, ce.Unwrap())
	assert.Equal(t, "[history] failed to save: db connection refused", ce.Error())
}

func TestNewCallbackErrorf(t *testing.T) {
	// Case 1: Only message args
	ce1 := exception.NewCallbackErrorf("factory", "unknown ref '%s'", "foo")
	assert.Nil(t, ce1.Unwrap())
	assert.Equal(t, "[factory] unknown ref 'foo'", ce1.Error())

	// Case 2: Message args + originalErr
	originalErr := errors.New("io error")
	ce2 := exception.NewCallbackErrorf("history", "failed to save record %s", "r-1", originalErr)
	assert.Equal(t, originalErr, ce2.Unwrap())
	assert.Equal(t, "failed to save record r-1", ce2.Message)
}

func TestIsCallbackError(t *testing.T) {
	ce := exception.NewCallbackError("config", "invalid", nil)
	wrapped := fmt.Errorf("startup: %w", ce)

	assert.True(t, exception.IsCallbackError(ce))
	assert.True(t, exception.IsCallbackError(wrapped))
	assert.False(t, exception.IsCallbackError(errors.New("plain")))
	assert.False(t, exception.IsCallbackError(nil))
}

func TestExtractErrorMessage(t *testing.T) {
	ce := exception.NewCallbackError("config", "invalid sampling rate", errors.New("1.5"))

	assert.Equal(t, "invalid sampling rate", exception.ExtractErrorMessage(fmt.Errorf("wrap: %w", ce)))
	assert.Equal(t, "plain", exception.ExtractErrorMessage(errors.New("plain")))
	assert.Equal(t, "", exception.ExtractErrorMessage(nil))
}
