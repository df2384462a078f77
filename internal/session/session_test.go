package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	admin := Session{UserID: uuid.New(), Role: RoleAdmin}
	operator := Session{UserID: uuid.New(), Role: RoleOperator}

	assert.NoError(t, admin.Require(RoleAdmin))
	assert.NoError(t, operator.Require(RoleAdmin, RoleOperator))
	assert.ErrorIs(t, operator.Require(RoleAdmin), ErrForbidden)

	assert.ErrorIs(t, Session{}.Require(RoleAdmin), ErrUnauthenticated)
	assert.ErrorIs(t, Session{UserID: uuid.New(), Role: "viewer"}.Require(RoleOperator), ErrUnauthenticated)
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := Session{UserID: uuid.New(), Role: RoleOperator}
	got, ok := FromContext(NewContext(context.Background(), s))
	assert.True(t, ok)
	assert.Equal(t, s, got)
	assert.False(t, got.IsAdmin())
}
