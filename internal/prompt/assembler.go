// Package prompt assembles grounded LLM prompts from the program
// corpus and one flow's user input. Assembly is pure: no I/O, no
// provider knowledge, just ordered role-tagged messages.
package prompt

import (
	"fmt"
	"strings"

	"github.com/abitbot/abit-advisor-go/internal/genai"
	"github.com/abitbot/abit-advisor-go/internal/storage"
)

// FlowKind selects which conversation flow a prompt serves.
type FlowKind string

const (
	FlowRecommendation FlowKind = "recommendation"
	FlowQuestion       FlowKind = "question"
)

// MaxPlanTextChars is the per-program budget for study plan text in
// recommendation prompts, counted in runes. Text beyond the budget is
// cut from the end, keeping the front of the plan, and the omission is
// noted in the rendered block.
const MaxPlanTextChars = 12000

// truncationNotice marks a study plan cut at MaxPlanTextChars.
const truncationNotice = "[текст учебного плана усечён]"

// UserInput carries the free-text answers collected by one flow.
type UserInput struct {
	Background string // recommendation flow
	Interests  string // recommendation flow
	Question   string // question flow
}

const (
	systemBase        = "Вы эксперт по магистерским программам ITMO."
	systemOutOfDomain = "Если вопрос не связан с программой, скажите об этом."

	closingInstruction = "Порекомендуй программу и предложи ключевые элективы."
)

// Build assembles the ordered message list for one model invocation.
// Order: system instruction, the flow's user input, one block per
// program, and (recommendation only) a closing instruction. An empty
// record set still produces a valid prompt.
func Build(records []storage.Program, input UserInput, kind FlowKind) []genai.Message {
	messages := make([]genai.Message, 0, len(records)+3)

	system := systemBase
	if kind == FlowQuestion {
		system += " " + systemOutOfDomain
	}
	messages = append(messages, genai.Message{Role: genai.RoleSystem, Content: system})

	var userBlock string
	if kind == FlowQuestion {
		userBlock = "Вопрос: " + input.Question
	} else {
		userBlock = fmt.Sprintf("Академический фон абитуриента: %s\nИнтересы и цели: %s",
			input.Background, input.Interests)
	}
	messages = append(messages, genai.Message{Role: genai.RoleUser, Content: userBlock})

	for i := range records {
		messages = append(messages, genai.Message{
			Role:    genai.RoleUser,
			Content: renderProgram(&records[i], kind),
		})
	}

	if kind == FlowRecommendation {
		messages = append(messages, genai.Message{Role: genai.RoleUser, Content: closingInstruction})
	}
	return messages
}

// renderProgram renders one program as label: value lines in a fixed
// field order. The recommendation flow carries the plan text; the
// question flow carries the plan URL instead.
func renderProgram(p *storage.Program, kind FlowKind) string {
	var b strings.Builder
	fmt.Fprintf(&b, "slug: %s\n", p.Slug)
	fmt.Fprintf(&b, "id: %d\n", p.ProgramID)
	fmt.Fprintf(&b, "title: %s\n", p.Title)
	fmt.Fprintf(&b, "exam_dates: %s\n", string(p.ExamDates))
	fmt.Fprintf(&b, "admission_quotas: %s\n", string(p.AdmissionQuotas))
	if kind == FlowQuestion {
		fmt.Fprintf(&b, "study_plan_url: %s", p.StudyPlanURL)
	} else {
		fmt.Fprintf(&b, "study_plan_text: %s", truncatePlanText(p.StudyPlanText))
	}
	return b.String()
}

// truncatePlanText applies the MaxPlanTextChars budget, keeping the
// front of the text. Counting is rune-based so multi-byte text is
// never split mid-character.
func truncatePlanText(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxPlanTextChars {
		return text
	}
	return string(runes[:MaxPlanTextChars]) + "\n" + truncationNotice
}
