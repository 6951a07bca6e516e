package gemini

// ReportPromptTemplate is the analysis instruction sent to the model.
// Placeholders, in order: group title, period label, total message count,
// unique user count, rendered message log, period label again.
const ReportPromptTemplate = `
Проанализируй сообщения курьеров в Telegram группе "%s" за %s.

СТАТИСТИКА:
- Всего сообщений: %d
- Уникальных пользователей: %d

СООБЩЕНИЯ (последние до 200):
%s

Составь КРАТКИЙ отчёт простыми словами, как будто ты рассказываешь коллеге что было в группе.

Формат:

Отчёт за %s:
[Расскажи простым языком что происходило. Пиши как обычный человек, без официоза. 2-3 абзаца.]

Что было:
- [Какие проблемы были]
- [О чем спрашивали]
- [На что жаловались]
- [Какое настроение]

ВАЖНО:
- Пиши простым разговорным языком, без канцелярщины
- Вместо "поступали обращения" - пиши "курьеры спрашивали"
- Вместо "наблюдался сбой" - пиши "не работал", "сломался"
- Вместо "технические проблемы" - пиши "глюки", "баги", "не грузится"
- Группируй похожие вопросы
- Коротко - максимум 150 слов
- НЕ используй символы форматирования: *, **, #, _, ~
- Если ничего важного не было - так и напиши "всё спокойно"
`
