// internal/conversation/manager_test.go
package conversation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-assistant/internal/catalog"
	"loan-assistant/internal/common/auth"
	apperrors "loan-assistant/internal/common/errors"
	"loan-assistant/internal/common/logger"
	"loan-assistant/internal/common/scheduler"
)

func TestManager_SessionsAreIndependent(t *testing.T) {
	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	s := scheduler.NewManual(epoch)

	m := NewManager(Deps{
		Identity:  auth.NewStaticProvider(john),
		Scheduler: s,
		Logger:    logger.NewTestLogger(t),
	}.WithCatalog(cat))
	defer m.CloseAll()

	first, err := m.Open(context.Background(), nil)
	require.NoError(t, err)
	second, err := m.Open(context.Background(), auth.NewStaticProvider(priya))
	require.NoError(t, err)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "CUST001", first.User().ID)
	assert.Equal(t, "CUST002", second.User().ID)
	assert.NotEqual(t, first.ID(), second.ID())

	require.NoError(t, first.Submit("apply"))
	require.NoError(t, first.Submit("personal"))
	require.NoError(t, second.Submit("apply"))

	assert.True(t, m.Close(first.ID()))
	assert.False(t, m.Close(first.ID()))
	s.RunUntilIdle(100)

	assert.True(t, first.Closed())
	assert.Equal(t, StepLoanTypeSelection, first.Step(), "closed sessions never advance")
	assert.Equal(t, StepLoanTypeSelection, second.Step())

	got, err := m.Get(second.ID())
	require.NoError(t, err)
	assert.Same(t, second, got)

	_, err = m.Get(first.ID())
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionClosed))
	assert.Equal(t, []string{second.ID()}, m.IDs())

	m.CloseAll()
	assert.Zero(t, m.Len())
	assert.True(t, second.Closed())
}

func TestManager_OpenFailsWithoutUser(t *testing.T) {
	cat, err := catalog.LoadEmbedded()
	require.NoError(t, err)

	m := NewManager(Deps{Scheduler: scheduler.NewManual(epoch)}.WithCatalog(cat))
	_, err = m.Open(context.Background(), auth.NewOTPLogin(john))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnauthenticated))
	assert.Zero(t, m.Len())
}
