package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pageza/recipe-finder/backend/internal/ai"
	"github.com/pageza/recipe-finder/backend/internal/model"
	"gorm.io/gorm"
)

const (
	maxChatMessageLength = 2000
	chatHistoryLimit     = 20
)

// ChatService answers free-form cooking questions in plain text.
type ChatService struct {
	db  *gorm.DB
	llm *LLMService
}

func NewChatService(db *gorm.DB, llm *LLMService) *ChatService {
	return &ChatService{db: db, llm: llm}
}

// Ask answers message and records the exchange. A failure to record it is
// logged and does not fail the request.
func (s *ChatService) Ask(ctx context.Context, userID uuid.UUID, message string) (*model.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(message) > maxChatMessageLength {
		return nil, fmt.Errorf("%w: message is longer than %d characters", ErrInvalidInput, maxChatMessageLength)
	}

	response, err := s.llm.Text(ctx, "chat", ai.ChatPrompt(message))
	if err != nil {
		return nil, err
	}

	chat := &model.ChatMessage{UserID: userID, Message: message, Response: response}
	if err := s.db.WithContext(ctx).Create(chat).Error; err != nil {
		log.Printf("[ChatService] failed to store chat history: %v", err)
	}
	return chat, nil
}

// History returns the user's latest exchanges, newest first.
func (s *ChatService) History(ctx context.Context, userID uuid.UUID) ([]model.ChatMessage, error) {
	messages := []model.ChatMessage{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(chatHistoryLimit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return messages, nil
}

func (s *ChatService) ClearHistory(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ChatMessage{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear chat history: %w", res.Error)
	}
	return res.RowsAffected, nil
}
