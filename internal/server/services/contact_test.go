package services

import (
	"context"
	"testing"

	"github.com/knothost/siteapi/internal/common"
	"github.com/knothost/siteapi/internal/logging"
	"github.com/knothost/siteapi/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSubmit(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := NewContactService(nil, rm, logging.Nop())

	msg, err := s.Submit(context.Background(), ContactInput{Name: " Bob ", Email: "bob@x.com", Details: "New deck"})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Bob", msg.Name)
	assert.Empty(t, msg.Phone)
	assert.Equal(t, 1, rm.MessageCount())
}

func TestContactSubmit_Validation(t *testing.T) {
	rm := memory.NewRepositoryManager()
	s := NewContactService(nil, rm, logging.Nop())

	for _, in := range []ContactInput{
		{Email: "bob@x.com", Details: "d"},
		{Name: "Bob", Details: "d"},
		{Name: "Bob", Email: "bob@x.com", Details: "  "},
	} {
		_, err := s.Submit(context.Background(), in)
		var ve *common.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Name, email, and details are required", ve.Message)
	}
	assert.Zero(t, rm.MessageCount())
}

func TestContactSubmit_StoreFailure(t *testing.T) {
	s := NewContactService(nil, failingManager{errDB}, logging.Nop())

	_, err := s.Submit(context.Background(), ContactInput{Name: "Bob", Email: "bob@x.com", Details: "d"})
	assert.ErrorIs(t, err, common.ErrorInternal)
}
