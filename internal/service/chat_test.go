package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/pageza/recipe-finder/backend/internal/service"
	"github.com/pageza/recipe-finder/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChatService_Ask(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	gen := new(testhelpers.MockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Recipe Assistant") && strings.Contains(p, `"how do I make risotto?"`)
	})).Return("```\n## Risotto\nYou will need **arborio rice** and stock.\n```", nil)

	chat := service.NewChatService(db, newLLM(gen))
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "cook@example.com")

	msg, err := chat.Ask(ctx, user.ID, "  how do I make risotto?  ")
	require.NoError(t, err)
	assert.Equal(t, "Risotto\nYou will need arborio rice and stock.", msg.Response)

	history, err := chat.History(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "how do I make risotto?", history[0].Message)
	assert.Equal(t, msg.Response, history[0].Response)

	removed, err := chat.ClearHistory(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	gen.AssertExpectations(t)
}

func TestChatService_AskValidation(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	gen := new(testhelpers.MockGenerator)
	chat := service.NewChatService(db, newLLM(gen))
	user := testhelpers.CreateUser(t, db, "cook@example.com")

	_, err := chat.Ask(context.Background(), user.ID, " ")
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = chat.Ask(context.Background(), user.ID, strings.Repeat("a", 2001))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestChatService_EmptyReply(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	gen := new(testhelpers.MockGenerator)
	gen.Reply("```\n```")
	chat := service.NewChatService(db, newLLM(gen))
	user := testhelpers.CreateUser(t, db, "cook@example.com")

	_, err := chat.Ask(context.Background(), user.ID, "pancakes")
	assert.ErrorIs(t, err, service.ErrInvalidAIFormat)

	history, err := chat.History(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}
