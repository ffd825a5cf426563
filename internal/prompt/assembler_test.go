package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abitbot/abit-advisor-go/internal/genai"
	"github.com/abitbot/abit-advisor-go/internal/storage"
)

func sampleCorpus() []storage.Program {
	return []storage.Program{{
		Slug:            "ai",
		ProgramID:       15840,
		Title:           "AI",
		ExamDates:       json.RawMessage(`[{"date":"2026-07-15"}]`),
		AdmissionQuotas: json.RawMessage(`{"budget":25}`),
		StudyPlanURL:    "https://api.itmo.su/constructor-ep/api/v1/static/programs/15840/plan/abit/pdf",
		StudyPlanText:   "elective: NLP",
	}}
}

func TestBuildRecommendationPrompt(t *testing.T) {
	t.Parallel()
	messages := Build(sampleCorpus(), UserInput{
		Background: "CS degree",
		Interests:  "machine learning",
	}, FlowRecommendation)

	require.Len(t, messages, 4)

	assert.Equal(t, genai.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "эксперт по магистерским программам")

	assert.Equal(t, genai.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "CS degree")
	assert.Contains(t, messages[1].Content, "machine learning")

	assert.Equal(t, genai.RoleUser, messages[2].Role)
	assert.Contains(t, messages[2].Content, "slug: ai")
	assert.Contains(t, messages[2].Content, "title: AI")
	assert.Contains(t, messages[2].Content, "study_plan_text: elective: NLP")

	assert.Equal(t, genai.RoleUser, messages[3].Role)
	assert.Contains(t, messages[3].Content, "Порекомендуй программу")
}

func TestBuildQuestionPrompt(t *testing.T) {
	t.Parallel()
	messages := Build(sampleCorpus(), UserInput{Question: "When are exams?"}, FlowQuestion)

	require.Len(t, messages, 3) // no closing instruction

	assert.Contains(t, messages[0].Content, "Если вопрос не связан с программой")
	assert.Contains(t, messages[1].Content, "Вопрос: When are exams?")

	program := messages[2].Content
	assert.Contains(t, program, "study_plan_url: https://api.itmo.su/")
	assert.NotContains(t, program, "study_plan_text")
}

func TestBuildRecommendationSystemMessageOmitsDomainDisclosure(t *testing.T) {
	t.Parallel()
	messages := Build(nil, UserInput{}, FlowRecommendation)
	assert.NotContains(t, messages[0].Content, "Если вопрос не связан")
}

func TestBuildFieldOrderIsFixed(t *testing.T) {
	t.Parallel()
	messages := Build(sampleCorpus(), UserInput{}, FlowRecommendation)
	lines := strings.Split(messages[2].Content, "\n")
	require.GreaterOrEqual(t, len(lines), 6)

	assert.True(t, strings.HasPrefix(lines[0], "slug: "))
	assert.True(t, strings.HasPrefix(lines[1], "id: "))
	assert.True(t, strings.HasPrefix(lines[2], "title: "))
	assert.True(t, strings.HasPrefix(lines[3], "exam_dates: "))
	assert.True(t, strings.HasPrefix(lines[4], "admission_quotas: "))
	assert.True(t, strings.HasPrefix(lines[5], "study_plan_text: "))
}

func TestBuildEmptyCorpus(t *testing.T) {
	t.Parallel()
	messages := Build(nil, UserInput{Background: "bg", Interests: "int"}, FlowRecommendation)

	require.Len(t, messages, 3)
	assert.Equal(t, genai.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[2].Content, "Порекомендуй")
}

func TestBuildMultipleProgramsOneBlockEach(t *testing.T) {
	t.Parallel()
	corpus := append(sampleCorpus(), storage.Program{
		Slug: "ai_product", ProgramID: 15841, Title: "AI Product",
	})
	messages := Build(corpus, UserInput{Question: "q"}, FlowQuestion)

	require.Len(t, messages, 4)
	assert.Contains(t, messages[2].Content, "slug: ai")
	assert.Contains(t, messages[3].Content, "slug: ai_product")
}

func TestTruncatePlanTextKeepsFront(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("я", MaxPlanTextChars+500)
	got := truncatePlanText("НАЧАЛО " + long)

	assert.True(t, strings.HasPrefix(got, "НАЧАЛО "))
	assert.Contains(t, got, truncationNotice)
	assert.Equal(t, MaxPlanTextChars, len([]rune(got))-len([]rune("\n"+truncationNotice)))
}

func TestTruncatePlanTextShortTextUntouched(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "elective: NLP", truncatePlanText("elective: NLP"))
}

func TestTruncationAppliedInRecommendationBlock(t *testing.T) {
	t.Parallel()
	corpus := sampleCorpus()
	corpus[0].StudyPlanText = strings.Repeat("a", MaxPlanTextChars+1)

	messages := Build(corpus, UserInput{}, FlowRecommendation)
	assert.Contains(t, messages[2].Content, truncationNotice)

	// Question flow never renders the text, truncated or not.
	messages = Build(corpus, UserInput{Question: "q"}, FlowQuestion)
	assert.NotContains(t, messages[2].Content, truncationNotice)
}
