package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkoukk/tiktoken-go"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"story-weaver/internal/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Параметры генерации фиксированы: подобраны под короткие истории
// и не настраиваются пользователем.
const (
	genTemperature     = 0.75
	genTopP            = 0.85
	genTopK            = 40
	genMaxOutputTokens = 2048
)

// Ошибки клиента AI. Обработчик превращает их в сообщения трех видов:
// проблема конфигурации, блокировка контента, ошибка сервиса.
var (
	ErrAPIKeyMissing      = errors.New("AI API key is missing")
	ErrAPIKeyInvalid      = errors.New("AI API key is invalid")
	ErrContentBlocked     = errors.New("generation blocked by safety settings")
	ErrAIGenerationFailed = errors.New("AI text generation failed")
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_weaver_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"model", "status"}, // Labels: model used, success/error/blocked
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_weaver_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_weaver_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20), // 250, 500, ..., 5000
		},
		[]string{"model"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_weaver_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20), // 100, 200, ..., 2000
		},
		[]string{"model"},
	)
)

// UsageInfo содержит информацию об использовании токенов.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// AIClient интерфейс для взаимодействия с AI API.
type AIClient interface {
	// GenerateStory выполняет один блокирующий запрос к сервису генерации.
	// Возвращает сгенерированный текст, информацию об использовании и ошибку.
	// Без ретраев и без стриминга: пользователь либо получает историю,
	// либо понятное сообщение об ошибке.
	GenerateStory(ctx context.Context, prompt string) (string, UsageInfo, error)
	// Close освобождает ресурсы клиента.
	Close() error
}

// estimatePromptTokens оценивает размер промта в токенах для логов и метрик
// до отправки запроса. Используем cl100k_base как универсальное приближение:
// точные значения все равно приходят в usage ответа.
func estimatePromptTokens(text string) int {
	tke, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return 0
	}
	return len(tke.Encode(text, nil, nil))
}

// --- Gemini Client Implementation ---

// geminiClient реализует AIClient поверх google/generative-ai-go.
type geminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func newGeminiClient(cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.AIAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiClient{
		client:  client,
		model:   cfg.AIModel,
		timeout: cfg.AITimeout,
		logger:  logger.Named("GeminiClient"),
	}, nil
}

func (c *geminiClient) Close() error {
	return c.client.Close()
}

func (c *geminiClient) GenerateStory(ctx context.Context, prompt string) (string, UsageInfo, error) {
	usageInfo := UsageInfo{}

	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: prompt is empty", ErrAIGenerationFailed)
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(genTemperature)
	model.SetTopP(genTopP)
	model.SetTopK(genTopK)
	model.SetMaxOutputTokens(genMaxOutputTokens)
	// Фильтры безопасности как в исходном приложении: средний порог по всем
	// четырем категориям.
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	c.logger.Debug("Sending request to Gemini",
		zap.String("model", c.model),
		zap.Int("prompt_bytes", len(prompt)),
		zap.Int("prompt_tokens_estimate", estimatePromptTokens(prompt)),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	duration := time.Since(startTime)

	if err != nil {
		c.logger.Warn("Gemini API error", zap.Duration("duration", duration), zap.Error(err))
		// Невалидный ключ приходит как googleapi.Error с кодом 400/401/403
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && (gerr.Code == 400 || gerr.Code == 401 || gerr.Code == 403) {
			aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_auth"}).Inc()
			return "", usageInfo, fmt.Errorf("%w: %v", ErrAPIKeyInvalid, err)
		}
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	// Промт заблокирован фильтрами еще до генерации
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "blocked"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %s", ErrContentBlocked, resp.PromptFeedback.BlockReason.String())
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: empty response", ErrAIGenerationFailed)
	}

	candidate := resp.Candidates[0]
	// Генерация оборвана фильтрами безопасности
	if candidate.FinishReason == genai.FinishReasonSafety {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "blocked"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %s", ErrContentBlocked, candidate.FinishReason.String())
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	generatedText := sb.String()
	if generatedText == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: response contains no text parts", ErrAIGenerationFailed)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	if resp.UsageMetadata != nil {
		usageInfo.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		usageInfo.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		usageInfo.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
		aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.PromptTokens))
		aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.CompletionTokens))
	}

	c.logger.Info("Gemini response received",
		zap.Duration("duration", duration),
		zap.Int("text_len", len(generatedText)),
		zap.Int("total_tokens", usageInfo.TotalTokens),
	)

	return generatedText, usageInfo, nil
}

// --- OpenAI-compatible Client Implementation ---

// openAIClient реализует AIClient для OpenAI-совместимых endpoint'ов
// (OpenRouter и т.п.) с использованием go-openai.
type openAIClient struct {
	client  *openaigo.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func newOpenAIClient(cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	clientCfg := openaigo.DefaultConfig(cfg.AIAPIKey)
	if cfg.AIBaseURL != "" {
		clientCfg.BaseURL = cfg.AIBaseURL
	}
	return &openAIClient{
		client:  openaigo.NewClientWithConfig(clientCfg),
		model:   cfg.AIModel,
		timeout: cfg.AITimeout,
		logger:  logger.Named("OpenAIClient"),
	}, nil
}

func (c *openAIClient) Close() error { return nil }

func (c *openAIClient) GenerateStory(ctx context.Context, prompt string) (string, UsageInfo, error) {
	usageInfo := UsageInfo{}

	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: prompt is empty", ErrAIGenerationFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	c.logger.Debug("Sending request to AI",
		zap.String("model", c.model),
		zap.Int("prompt_bytes", len(prompt)),
		zap.Int("prompt_tokens_estimate", estimatePromptTokens(prompt)),
	)

	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: genTemperature,
		TopP:        genTopP,
		MaxTokens:   genMaxOutputTokens,
	})
	duration := time.Since(startTime)

	if err != nil {
		c.logger.Warn("AI API error", zap.Duration("duration", duration), zap.Error(err))
		var apiErr *openaigo.APIError
		if errors.As(err, &apiErr) && (apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403) {
			aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_auth"}).Inc()
			return "", usageInfo, fmt.Errorf("%w: %v", ErrAPIKeyInvalid, err)
		}
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: empty response", ErrAIGenerationFailed)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openaigo.FinishReasonContentFilter {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "blocked"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: content filter", ErrContentBlocked)
	}
	if choice.Message.Content == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: empty response", ErrAIGenerationFailed)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	if resp.Usage.TotalTokens > 0 {
		usageInfo.PromptTokens = resp.Usage.PromptTokens
		usageInfo.CompletionTokens = resp.Usage.CompletionTokens
		usageInfo.TotalTokens = resp.Usage.TotalTokens
		aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.PromptTokens))
		aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.CompletionTokens))
	}

	c.logger.Info("AI response received",
		zap.Duration("duration", duration),
		zap.Int("text_len", len(choice.Message.Content)),
		zap.Int("total_tokens", usageInfo.TotalTokens),
	)

	return choice.Message.Content, usageInfo, nil
}

// --- Factory ---

// NewAIClient создает AIClient по типу из конфигурации.
// Возвращает ErrAPIKeyMissing, если ключ не загружен: сервис при этом
// продолжает работать, но генерация недоступна.
func NewAIClient(cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	if !cfg.HasAPIKey() {
		return nil, ErrAPIKeyMissing
	}

	switch cfg.AIClientType {
	case "gemini":
		return newGeminiClient(cfg, logger)
	case "openai":
		return newOpenAIClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown AI client type: '%s'", cfg.AIClientType)
	}
}
