package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"story-weaver/internal/handler"
	"story-weaver/internal/mocks"
	"story-weaver/internal/prompt"
	"story-weaver/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testStory = "A calm evening settled over the Central Library..."

// setupRouter собирает gin router с реальным StoryService поверх мока AI.
// Rate limiter заменен сквозным middleware: его поведение не предмет тестов.
func setupRouter(t *testing.T, ai service.AIClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewStoryService(prompt.NewBuilder(zap.NewNop()), ai, zap.NewNop())
	h := handler.NewStoryHandler(svc, zap.NewNop())

	router := gin.New()
	h.RegisterRoutes(router, func(c *gin.Context) { c.Next() })
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleGenerate_Success(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateStory", mock.Anything, mock.Anything).
		Return(testStory, service.UsageInfo{TotalTokens: 100}, nil).Once()

	router := setupRouter(t, mockAI)
	w := postJSON(router, "/api/story/generate", handler.GenerateStoryRequest{Idea: "a library friendship"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.GenerateStoryResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testStory, resp.Story)
	assert.Regexp(t, `^sgu_story_\d{8}_\d{6}\.txt$`, resp.FileName)
	mockAI.AssertExpectations(t)
}

func TestHandleGenerate_EmptyIdea(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	router := setupRouter(t, mockAI)

	for _, idea := range []string{"", "   "} {
		w := postJSON(router, "/api/story/generate", handler.GenerateStoryRequest{Idea: idea})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	// Сетевой вызов не выполнялся
	mockAI.AssertNotCalled(t, "GenerateStory", mock.Anything, mock.Anything)
}

func TestHandleGenerate_IdeaTooLong(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	router := setupRouter(t, mockAI)

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	w := postJSON(router, "/api/story/generate", handler.GenerateStoryRequest{Idea: string(long)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAI.AssertNotCalled(t, "GenerateStory", mock.Anything, mock.Anything)
}

func TestHandleGenerate_ConfigurationError(t *testing.T) {
	// Клиент AI не создан (нет ключа)
	router := setupRouter(t, nil)

	w := postJSON(router, "/api/story/generate", handler.GenerateStoryRequest{Idea: "any idea"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var apiErr handler.APIError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, "configuration", apiErr.Kind)
	assert.Contains(t, apiErr.Message, "not configured")
}

func TestHandleGenerate_ContentBlocked(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateStory", mock.Anything, mock.Anything).
		Return("", service.UsageInfo{}, fmt.Errorf("%w: SAFETY", service.ErrContentBlocked)).Once()

	router := setupRouter(t, mockAI)
	w := postJSON(router, "/api/story/generate", handler.GenerateStoryRequest{Idea: "something edgy"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var apiErr handler.APIError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, "content_blocked", apiErr.Kind)
	assert.Contains(t, apiErr.Message, "safety settings")
	assert.Contains(t, apiErr.Message, "SAFETY")
}

func TestHandleGenerate_ServiceError(t *testing.T) {
	mockAI := mocks.NewMockAIClient(t)
	mockAI.On("GenerateStory", mock.Anything, mock.Anything).
		Return("", service.UsageInfo{}, fmt.Errorf("%w: connection refused", service.ErrAIGenerationFailed)).Once()

	router := setupRouter(t, mockAI)
	w := postJSON(router, "/api/story/generate", handler.GenerateStoryRequest{Idea: "a normal idea"})

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var apiErr handler.APIError
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, "service", apiErr.Kind)
	// Сообщение о сервисной ошибке не упоминает блокировку и конфигурацию
	assert.NotContains(t, apiErr.Message, "safety settings")
	assert.NotContains(t, apiErr.Message, "not configured")
}

func TestHandleDownload(t *testing.T) {
	router := setupRouter(t, nil)

	w := postJSON(router, "/api/story/download", handler.DownloadStoryRequest{Story: testStory})
	assert.Equal(t, http.StatusOK, w.Code)
	// Содержимое артефакта байт в байт совпадает с текстом истории
	assert.Equal(t, testStory, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Regexp(t, `attachment; filename="sgu_story_\d{8}_\d{6}\.txt"`, w.Header().Get("Content-Disposition"))
}

func TestHandleDownload_EmptyStory(t *testing.T) {
	router := setupRouter(t, nil)

	w := postJSON(router, "/api/story/download", handler.DownloadStoryRequest{Story: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleIdeas(t *testing.T) {
	router := setupRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/story/ideas", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.IdeasResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, prompt.ExampleIdeas, resp.Ideas)
}

func TestShowIndexPage(t *testing.T) {
	router := setupRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SGU Story Weaver")
	assert.Contains(t, w.Body.String(), "Sanjay Ghodawat University")
}
