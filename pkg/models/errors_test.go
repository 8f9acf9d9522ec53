package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorMessageIsVerbatim(t *testing.T) {
	err := &APIError{Operation: "login", StatusCode: 401, Message: "Invalid credentials"}
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestAPIErrorUnwrap(t *testing.T) {
	assert.ErrorIs(t, &APIError{StatusCode: 404}, ErrNotFound)
	assert.ErrorIs(t, &APIError{StatusCode: 422}, ErrBadRequest)
	assert.Nil(t, (&APIError{StatusCode: 500}).Unwrap())

	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("fetch users: %w", &APIError{Message: "boom", Err: cause})
	assert.ErrorIs(t, wrapped, cause)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("user u-1")
	assert.Equal(t, "user u-1 not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnums(t *testing.T) {
	assert.True(t, AdminRoleGenie.Valid())
	assert.False(t, AdminRole("ROOT").Valid())
	assert.True(t, AdminRoleSuper.CanCurateDates())
	assert.False(t, AdminRoleSupport.CanCurateDates())

	assert.True(t, DateStatusCancelled.Valid())
	assert.False(t, DateStatus("postponed").Valid())
}

func TestRequestState(t *testing.T) {
	assert.Equal(t, RequestIdle, Idle().Kind)
	assert.True(t, Pending(OpFetchUsers).IsPending())

	failed := Failed(OpLogin, "Invalid credentials")
	assert.True(t, failed.IsError())
	assert.Equal(t, OpLogin, failed.Op)
	assert.Equal(t, "Invalid credentials", failed.Message)
}
