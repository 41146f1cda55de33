package service

import (
	"context"
	"errors"

	"contract-iq-be/internal/config"
	"contract-iq-be/internal/constant"
	"contract-iq-be/internal/dto"
	"contract-iq-be/internal/pkg/apperrors"
	"contract-iq-be/internal/pkg/logger"
	"contract-iq-be/pkg/llm"
	"contract-iq-be/pkg/llm/failover"
)

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	completion *failover.Client
	cfg        *config.Config
	logger     logger.ILogger
}

func NewChatService(completion *failover.Client, cfg *config.Config, log logger.ILogger) IChatService {
	return &chatService{
		completion: completion,
		cfg:        cfg,
		logger:     log,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.App.RequestTimeout)
	defer cancel()

	messages := make([]llm.Message, 0, len(req.Messages)+1)
	messages = append(messages, llm.Message{
		Role:    llm.RoleSystem,
		Content: constant.ChatSystemPrompt,
	})
	for _, m := range req.Messages {
		role := m.Role
		// frontend sends "bot" for assistant turns
		if role == "bot" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: m.Content})
	}

	text, degraded, err := s.completion.CompleteWithFallback(ctx, constant.UseCaseChat, messages,
		llm.WithModel(s.cfg.Ai.ChatModel),
		llm.WithMaxTokens(800),
		llm.WithTemperature(0.7),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, apperrors.Timeout("chat timed out")
		}
		if errors.Is(err, failover.ErrNoCredentials) {
			return nil, apperrors.ServiceUnavailable("completion service is not configured")
		}
		s.logger.Warn("chat", "completion failed, using canned response", map[string]interface{}{"error": err.Error()})
		return &dto.ChatResponse{
			Message:  constant.CannedChatResponse,
			Degraded: true,
		}, nil
	}

	return &dto.ChatResponse{
		Message:  text,
		Degraded: degraded,
	}, nil
}
