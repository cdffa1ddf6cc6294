package handler

// GenerateStoryRequest — тело POST /api/story/generate.
type GenerateStoryRequest struct {
	Idea string `json:"idea"` // Идея пользователя (непустая после trim)
}

// GenerateStoryResponse — успешный ответ генерации.
type GenerateStoryResponse struct {
	Story    string `json:"story"`
	FileName string `json:"file_name"` // Имя для скачивания (sgu_story_<timestamp>.txt)
}

// DownloadStoryRequest — тело POST /api/story/download. Сервис не хранит
// результаты, поэтому страница присылает текущий текст обратно.
type DownloadStoryRequest struct {
	Story string `json:"story"`
}

// IdeasResponse — список примеров идей для страницы.
type IdeasResponse struct {
	Ideas []string `json:"ideas"`
}

// APIError представляет стандартизированный ответ об ошибке.
type APIError struct {
	Kind    string `json:"kind,omitempty"` // configuration | content_blocked | service
	Message string `json:"message"`
}
