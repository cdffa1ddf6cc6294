package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"story-weaver/internal/model"
	"story-weaver/internal/prompt"
)

// downloadFilePrefix — фиксированный префикс имени скачиваемого файла.
const downloadFilePrefix = "sgu_story_"

// StoryService оркестрирует один цикл: валидация идеи, сборка промта,
// один вызов AI, классификация ошибок. Никакого состояния между запросами.
type StoryService struct {
	builder *prompt.Builder
	ai      AIClient // nil, если ключ API не загружен
	logger  *zap.Logger
	now     func() time.Time // Подменяется в тестах для детерминированных имен файлов
}

// NewStoryService создает новый StoryService. ai может быть nil —
// тогда каждая генерация возвращает ошибку конфигурации.
func NewStoryService(builder *prompt.Builder, ai AIClient, logger *zap.Logger) *StoryService {
	if builder == nil {
		panic("prompt builder is nil for StoryService")
	}
	return &StoryService{
		builder: builder,
		ai:      ai,
		logger:  logger.Named("StoryService"),
		now:     time.Now,
	}
}

// DownloadFileName возвращает имя файла вида sgu_story_20250101_120000.txt.
func (s *StoryService) DownloadFileName() string {
	return fmt.Sprintf("%s%s.txt", downloadFilePrefix, s.now().Format("20060102_150405"))
}

// GenerateStory выполняет один запрос на генерацию. Пустая идея возвращает
// ErrEmptyIdea без обращения к AI. Все остальные ошибки не пробрасываются,
// а складываются в StoryResult.ErrorKind/ErrorDetails для отображения.
func (s *StoryService) GenerateStory(ctx context.Context, idea string) (*model.StoryResult, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}

	req := model.StoryRequest{
		UserIdea:      idea,
		CampusContext: prompt.CampusContext,
	}

	result := &model.StoryResult{FileName: s.DownloadFileName()}

	if s.ai == nil {
		// Ключ не был загружен при старте
		s.logger.Warn("Generation requested but AI client is not configured")
		result.ErrorKind = model.ErrorKindConfiguration
		result.ErrorDetails = ErrAPIKeyMissing.Error()
		return result, nil
	}

	storyPrompt := s.builder.Build(req.UserIdea)

	startTime := time.Now()
	text, usage, err := s.ai.GenerateStory(ctx, storyPrompt)
	result.ProcessingTime = time.Since(startTime)

	if err != nil {
		kind, details := classifyError(err)
		s.logger.Warn("Story generation failed",
			zap.String("error_kind", string(kind)),
			zap.Duration("duration", result.ProcessingTime),
			zap.Error(err),
		)
		result.ErrorKind = kind
		result.ErrorDetails = details
		return result, nil
	}

	s.logger.Info("Story generated",
		zap.Duration("duration", result.ProcessingTime),
		zap.Int("story_len", len(text)),
		zap.Int("total_tokens", usage.TotalTokens),
	)

	result.Text = text
	return result, nil
}

// classifyError сводит ошибки AI клиента к трем видам из спецификации.
func classifyError(err error) (model.ErrorKind, string) {
	switch {
	case errors.Is(err, ErrAPIKeyMissing), errors.Is(err, ErrAPIKeyInvalid):
		return model.ErrorKindConfiguration, err.Error()
	case errors.Is(err, ErrContentBlocked):
		return model.ErrorKindContentBlocked, err.Error()
	default:
		return model.ErrorKindService, err.Error()
	}
}
