package model

import "time"

// ErrorKind классифицирует причину неудачной генерации для отображения
// пользователю. Пустое значение означает успех.
type ErrorKind string

const (
	ErrorKindNone           ErrorKind = ""
	ErrorKindConfiguration  ErrorKind = "configuration"   // Ключ API отсутствует или невалиден
	ErrorKindContentBlocked ErrorKind = "content_blocked" // Сервис отказал по соображениям безопасности
	ErrorKindService        ErrorKind = "service"         // Сетевая или иная ошибка сервиса
)

// StoryRequest представляет один запрос на генерацию истории.
// Создается на каждую отправку формы и нигде не сохраняется.
type StoryRequest struct {
	UserIdea      string // Идея пользователя (непустая)
	CampusContext string // Статический блок фактов о кампусе
}

// StoryResult представляет результат одной генерации. Живет только в рамках
// текущего ответа: не кэшируется и не версионируется.
type StoryResult struct {
	Text           string        // Сгенерированный текст истории
	FileName       string        // Имя файла для скачивания (sgu_story_<timestamp>.txt)
	ProcessingTime time.Duration // Время обработки запроса
	ErrorKind      ErrorKind     // Классификация ошибки, если Text пуст
	ErrorDetails   string        // Детали ошибки (например, причина блокировки)
}
