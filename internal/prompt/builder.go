package prompt

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"
)

// Builder собирает финальный промт для генерации: факты о кампусе,
// стилистические требования и идея пользователя.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a new Builder.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		log.Fatal().Msg("Logger is nil for prompt Builder")
	}
	return &Builder{logger: logger.Named("PromptBuilder")}
}

// Build возвращает промт для непустой идеи. Валидация идеи (непустая строка)
// выполняется вызывающей стороной до сетевого вызова.
func (b *Builder) Build(idea string) string {
	idea = strings.TrimSpace(idea)
	b.logger.Debug("Building story prompt", zap.Int("idea_len", len(idea)))

	var sb strings.Builder
	sb.WriteString("You are a creative storyteller. Write a short, engaging story (around 250-400 words)\n")
	sb.WriteString("that takes place entirely on the campus of Sanjay Ghodawat University (SGU), Kolhapur.\n")
	sb.WriteString("You should explain the whole story in simple English so that any age group can read the story easily.\n\n")

	sb.WriteString("**SGU Campus Details:**\n")
	sb.WriteString(CampusContext)
	sb.WriteString("\n\n")

	sb.WriteString("**User's Story Idea:**\n")
	sb.WriteString(idea)
	sb.WriteString("\n\n")

	sb.WriteString("**Instructions:**\n")
	sb.WriteString("1. Make the story feel authentic to the SGU campus experience.\n")
	sb.WriteString(fmt.Sprintf("2. Mention at least 2-3 specific SGU locations (e.g., %s).\n", strings.Join(CampusLocations, ", ")))
	sb.WriteString("3. Ensure the story is appropriate for all audiences and positive in tone.\n")
	sb.WriteString("4. Generate *only* the story text, using clear paragraphs. Do not add a title.\n")
	sb.WriteString("5. Please make sure that the story is easy to read by any age group.\n\n")

	sb.WriteString("**Story:**\n")
	return sb.String()
}
