package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"story-weaver/internal/model"
	"story-weaver/internal/prompt"
	"story-weaver/internal/service"
	"story-weaver/internal/web"
)

// Максимальная длина идеи, как в исходной форме.
const maxIdeaChars = 500

var (
	storiesGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "story_weaver_stories_generated_total",
		Help: "Total number of successfully generated stories.",
	})
	storiesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "story_weaver_stories_failed_total",
		Help: "Total number of failed story generations by error kind.",
	}, []string{"kind"})
	storyDownloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "story_weaver_story_downloads_total",
		Help: "Total number of story downloads served.",
	})
)

// StoryHandler обрабатывает HTTP запросы страницы и API генерации.
type StoryHandler struct {
	service *service.StoryService
	logger  *zap.Logger
}

// NewStoryHandler создает новый StoryHandler.
func NewStoryHandler(s *service.StoryService, logger *zap.Logger) *StoryHandler {
	return &StoryHandler{
		service: s,
		logger:  logger.Named("StoryHandler"),
	}
}

// RegisterRoutes регистрирует маршруты. rateLimitMiddleware применяется
// только к генерации: страница и скачивание дешевые.
func (h *StoryHandler) RegisterRoutes(router *gin.Engine, rateLimitMiddleware gin.HandlerFunc) {
	router.SetHTMLTemplate(web.Templates())
	router.GET("/", h.showIndexPage)

	api := router.Group("/api/story")
	api.POST("/generate", rateLimitMiddleware, h.handleGenerate)
	api.POST("/download", h.handleDownload)
	api.GET("/ideas", h.handleIdeas)
}

// showIndexPage отдает единственную страницу приложения.
func (h *StoryHandler) showIndexPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"MaxIdeaChars": maxIdeaChars,
		"Ideas":        prompt.ExampleIdeas,
	})
}

// handleGenerate принимает идею, запускает генерацию и возвращает историю
// или классифицированную ошибку. Вызов синхронный: ответ приходит только
// после завершения или отказа внешнего сервиса.
func (h *StoryHandler) handleGenerate(c *gin.Context) {
	var req GenerateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body."})
		return
	}
	if len(req.Idea) > maxIdeaChars {
		c.JSON(http.StatusBadRequest, APIError{Message: fmt.Sprintf("Story idea must be at most %d characters.", maxIdeaChars)})
		return
	}

	result, err := h.service.GenerateStory(c.Request.Context(), req.Idea)
	if err != nil {
		// Единственная ошибка уровня сервиса: пустая идея
		c.JSON(http.StatusBadRequest, APIError{Message: "Story idea must not be empty."})
		return
	}

	if result.ErrorKind != model.ErrorKindNone {
		storiesFailedTotal.With(prometheus.Labels{"kind": string(result.ErrorKind)}).Inc()
		status, apiErr := errorResponse(result)
		c.JSON(status, apiErr)
		return
	}

	storiesGeneratedTotal.Inc()
	c.JSON(http.StatusOK, GenerateStoryResponse{
		Story:    result.Text,
		FileName: result.FileName,
	})
}

// errorResponse подбирает HTTP статус и человекочитаемое сообщение
// для каждого вида ошибки. Три вида различимы для пользователя.
func errorResponse(result *model.StoryResult) (int, APIError) {
	switch result.ErrorKind {
	case model.ErrorKindConfiguration:
		return http.StatusServiceUnavailable, APIError{
			Kind:    string(result.ErrorKind),
			Message: "Story generation is not configured: the AI API key is missing or invalid. Please contact the administrator.",
		}
	case model.ErrorKindContentBlocked:
		return http.StatusUnprocessableEntity, APIError{
			Kind:    string(result.ErrorKind),
			Message: fmt.Sprintf("Story generation was blocked by safety settings (%s). Please rephrase your idea and avoid sensitive topics.", result.ErrorDetails),
		}
	default:
		return http.StatusBadGateway, APIError{
			Kind:    string(result.ErrorKind),
			Message: "No story was generated due to a service problem. Please try again or rephrase your idea.",
		}
	}
}

// handleDownload отдает присланный текст как скачиваемый .txt файл.
// Ничего не сохраняется на сервере: артефакт формируется из тела запроса.
func (h *StoryHandler) handleDownload(c *gin.Context) {
	var req DownloadStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Story == "" {
		c.JSON(http.StatusBadRequest, APIError{Message: "Nothing to download: story text is empty."})
		return
	}

	fileName := h.service.DownloadFileName()
	storyDownloadsTotal.Inc()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(req.Story))
}

// handleIdeas возвращает примеры идей (страница показывает их как подсказки).
func (h *StoryHandler) handleIdeas(c *gin.Context) {
	c.JSON(http.StatusOK, IdeasResponse{Ideas: prompt.ExampleIdeas})
}
