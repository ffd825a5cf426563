package bot

// Menu intents recognized in the choosing state. The transport renders
// them as keyboard buttons; matching is on the exact message text.
const (
	IntentRecommend = "Рекомендовать программу"
	IntentAsk       = "Спросить о программе"
)

// Fixed user-facing messages.
const (
	MsgGreeting      = "Привет! Выберите действие:"
	MsgChooseAction  = "Выберите действие:"
	MsgAskBackground = "Расскажите, пожалуйста, о вашем академическом фоне:"
	MsgAskInterests  = "Какие темы и направления вас интересуют, какие цели после магистратуры?"
	MsgAskQuestion   = "Введите ваш вопрос по программе:"
	MsgGoodbye       = "Всего доброго!"

	MsgRecommendFailed = "Ошибка при получении рекомендации. Попробуйте позже."
	MsgQuestionFailed  = "Ошибка при обработке вопроса. Попробуйте позже."
	MsgRateLimited     = "Слишком много запросов. Пожалуйста, подождите немного и попробуйте снова."
)
