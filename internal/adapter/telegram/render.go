package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lead-triage-telegram-bot/internal/domain"
)

// Идентификаторы кнопок под карточкой анкеты
const (
	cbNoAnswer      = "no_answer"
	cbNotInterested = "not_interested"
	cbInterested    = "interested"
	cbComment       = "comment"
)

const (
	msgNeedNext      = "Сначала получите анкету командой /next"
	msgNoNewLeads    = "Нет новых анкет."
	msgNextHint      = "Для следующей анкеты нажмите /next"
	msgAccessDenied  = "Доступ запрещен"
	msgGenericError  = "Произошла ошибка, попробуйте позже."
	msgStatusUpdated = "Статус обновлён."
	msgEnterComment  = "Введите комментарий:"
	msgCommentSaved  = "Комментарий сохранён."
	msgClientAdded   = "Клиент добавлен."
	msgClientDeleted = "Клиент удалён."
	msgNoClients     = "Нет клиентов."
	msgBadStatus     = "Недопустимый статус"

	usageAddClient     = "Формат: /add_client\nИмя\nТелефон\nКомпания\nКомментарий"
	usageDeleteClient  = "Формат: /delete_client <id>"
	usageConfirmDelete = "Формат: /confirm_delete <id>"
	usageSetStatus     = "Формат: /set_status <id> <new|no_answer|not_interested|interested>"
)

func dispositionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📞 Нет ответа", cbNoAnswer)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Не интересно", cbNotInterested)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("✅ Интересует", cbInterested)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💬 Комментарий", cbComment)),
	)
}

// leadCard — карточка анкеты для оператора (HTML)
func leadCard(l *domain.Lead) string {
	return fmt.Sprintf("<b>%s</b>\n📞 %s\n🏢 %s\n💬 %s",
		html.EscapeString(l.Name), html.EscapeString(l.Phone),
		html.EscapeString(l.Company), html.EscapeString(l.Comments))
}

// interestedNotification — уведомление админу о заинтересованном клиенте (HTML)
func interestedNotification(l *domain.Lead, operator string) string {
	comments := l.Comments
	if comments == "" {
		comments = "-"
	}
	return fmt.Sprintf(
		"👀 <b>Интересует</b> от %s\nID клиента: <code>%d</code>\n<b>%s</b>\n\n📞 %s\n\n🏢 %s\n\n💬 %s",
		html.EscapeString(operator), l.ID, html.EscapeString(l.Name),
		html.EscapeString(l.Phone), html.EscapeString(l.Company), html.EscapeString(comments))
}

// leadListLine — строка списка /all_clients
func leadListLine(l domain.Lead) string {
	return fmt.Sprintf("%d: %s | %s | %s", l.ID, l.Name, l.Phone, l.Status)
}

// parseAddClient разбирает тело /add_client: после строки команды идут
// имя, телефон, компания и (опционально) комментарий; лишние строки
// склеиваются в комментарий
func parseAddClient(text string) (name, phone, company, comments string, ok bool) {
	parts := strings.Split(text, "\n")
	if len(parts) < 4 {
		return "", "", "", "", false
	}
	name, phone, company = parts[1], parts[2], parts[3]
	comments = strings.Join(parts[4:], "\n")
	return name, phone, company, comments, true
}

func operatorDisplayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		name = u.UserName
	}
	return name
}
