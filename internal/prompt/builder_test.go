package prompt_test

import (
	"strings"
	"testing"

	"story-weaver/internal/prompt"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBuilder_Build_ContainsIdeaAndLocations(t *testing.T) {
	b := prompt.NewBuilder(zap.NewNop())

	ideas := []string{
		"A first-year student feeling nervous on their way to class.",
		"Две подруги готовятся к экзамену.",
		"x",
	}

	for _, idea := range ideas {
		p := b.Build(idea)

		// Идея пользователя присутствует как подстрока
		assert.Contains(t, p, idea)

		// Все локации кампуса из статического контекста присутствуют
		for _, loc := range prompt.CampusLocations {
			assert.Contains(t, p, loc, "prompt must mention campus location %q", loc)
		}

		// Статический контекст вставлен целиком
		assert.Contains(t, p, prompt.CampusContext)
	}
}

func TestBuilder_Build_TrimsIdea(t *testing.T) {
	b := prompt.NewBuilder(zap.NewNop())

	p := b.Build("   a quiet evening near the Stadium   \n")
	assert.Contains(t, p, "a quiet evening near the Stadium")
	// Идея попадает в блок без окружающих пробелов
	assert.Contains(t, p, "**User's Story Idea:**\na quiet evening near the Stadium\n")
}

func TestBuilder_Build_StyleDirectives(t *testing.T) {
	b := prompt.NewBuilder(zap.NewNop())
	p := b.Build("any idea")

	// Стилистические требования: простой английский, длина, без заголовка
	assert.Contains(t, p, "simple English")
	assert.Contains(t, p, "250-400 words")
	assert.Contains(t, p, "Do not add a title")
	assert.True(t, strings.HasSuffix(p, "**Story:**\n"))
}
