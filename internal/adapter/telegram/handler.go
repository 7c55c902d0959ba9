package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lead-triage-telegram-bot/internal/domain"
	"lead-triage-telegram-bot/internal/usecase"
)

// Bot — используемая обработчиком часть API бота; *tgbotapi.BotAPI
// подходит как есть, в тестах подменяется фейком
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type Handler struct {
	bot       Bot
	store     domain.LeadStore
	allowlist domain.Allowlist
	review    *usecase.Review
	stats     *usecase.Stats
	adminID   int64
	logger    *slog.Logger
}

func NewHandler(bot Bot, store domain.LeadStore, allowlist domain.Allowlist, review *usecase.Review, stats *usecase.Stats, adminID int64, logger *slog.Logger) *Handler {
	return &Handler{
		bot:       bot,
		store:     store,
		allowlist: allowlist,
		review:    review,
		stats:     stats,
		adminID:   adminID,
		logger:    logger,
	}
}

func (h *Handler) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := h.bot.GetUpdatesChan(u)
	for update := range updates {
		h.handleUpdate(update)
	}
}

// handleUpdate — граница отказа: сбой одного события не должен
// останавливать цикл обработки
func (h *Handler) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("update handler panic", "panic", rec)
		}
	}()
	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(update.Message)
	}
}

func (h *Handler) handleMessage(m *tgbotapi.Message) {
	if m.From == nil {
		return
	}
	ctx := context.Background()
	userID := m.From.ID
	chatID := m.Chat.ID

	if m.IsCommand() {
		// команда прерывает ожидание комментария
		h.review.CancelComment(userID)
		switch m.Command() {
		case "add_client":
			h.cmdAddClient(ctx, chatID, userID, m.Text)
		case "delete_client":
			h.cmdDeleteClient(chatID, userID, m.Text)
		case "confirm_delete":
			h.cmdConfirmDelete(ctx, chatID, userID, m.Text)
		case "all_clients":
			h.cmdAllClients(ctx, chatID, userID)
		case "set_status":
			h.cmdSetStatus(ctx, chatID, userID, m.Text)
		case "stats":
			h.cmdStats(ctx, chatID, userID)
		case "next":
			h.cmdNext(ctx, chatID, m.From)
		}
		return
	}

	if h.review.AwaitingComment(userID) {
		h.saveComment(ctx, chatID, userID, m.Text)
	}
}

// --- Команды админа; проверяются только по ADMIN_ID, чужие молча игнорируем

func (h *Handler) cmdAddClient(ctx context.Context, chatID, userID int64, text string) {
	if !h.requireAdmin(userID, "add_client") {
		return
	}
	name, phone, company, comments, ok := parseAddClient(text)
	if !ok {
		h.sendText(chatID, usageAddClient)
		return
	}
	if err := h.store.Insert(ctx, name, phone, company, comments); err != nil {
		h.reportError(chatID, "insert failed", err)
		return
	}
	h.logger.Info("client added", "name", name)
	h.sendText(chatID, msgClientAdded)
}

func (h *Handler) cmdDeleteClient(chatID, userID int64, text string) {
	if !h.requireAdmin(userID, "delete_client") {
		return
	}
	id, ok := parseIDArg(text)
	if !ok {
		h.sendText(chatID, usageDeleteClient)
		return
	}
	// само удаление — только после /confirm_delete
	h.sendText(chatID, "Подтвердите удаление клиента ID "+strconv.FormatInt(id, 10)+
		", отправив команду /confirm_delete "+strconv.FormatInt(id, 10))
}

func (h *Handler) cmdConfirmDelete(ctx context.Context, chatID, userID int64, text string) {
	if !h.requireAdmin(userID, "confirm_delete") {
		return
	}
	id, ok := parseIDArg(text)
	if !ok {
		h.sendText(chatID, usageConfirmDelete)
		return
	}
	if err := h.store.Delete(ctx, id); err != nil {
		h.reportError(chatID, "delete failed", err)
		return
	}
	h.logger.Info("client deleted", "id", id)
	h.sendText(chatID, msgClientDeleted)
}

func (h *Handler) cmdAllClients(ctx context.Context, chatID, userID int64) {
	if !h.requireAdmin(userID, "all_clients") {
		return
	}
	leads, err := h.store.ListAll(ctx)
	if err != nil {
		h.reportError(chatID, "list failed", err)
		return
	}
	if len(leads) == 0 {
		h.sendText(chatID, msgNoClients)
		return
	}
	lines := make([]string, 0, len(leads))
	for _, l := range leads {
		lines = append(lines, leadListLine(l))
	}
	h.sendText(chatID, strings.Join(lines, "\n"))
}

func (h *Handler) cmdSetStatus(ctx context.Context, chatID, userID int64, text string) {
	if !h.requireAdmin(userID, "set_status") {
		return
	}
	parts := strings.Fields(text)
	if len(parts) != 3 {
		h.sendText(chatID, usageSetStatus)
		return
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		h.sendText(chatID, usageSetStatus)
		return
	}
	status, ok := domain.ParseStatus(parts[2])
	if !ok {
		h.sendText(chatID, msgBadStatus)
		return
	}
	if err := h.store.UpdateFields(ctx, id, map[string]string{"status": string(status)}); err != nil {
		h.reportError(chatID, "set_status failed", err)
		return
	}
	h.sendText(chatID, msgStatusUpdated)
}

func (h *Handler) cmdStats(ctx context.Context, chatID, userID int64) {
	if !h.requireAdmin(userID, "stats") {
		return
	}
	labels, values, err := h.stats.GraphData(ctx)
	if err != nil {
		h.reportError(chatID, "stats failed", err)
		return
	}
	if err := h.sendStatusChart(chatID, labels, values); err != nil {
		h.logger.Error("status chart failed", "error", err)
		text, err := h.stats.Chart(ctx)
		if err != nil {
			h.reportError(chatID, "stats failed", err)
			return
		}
		h.sendText(chatID, text)
	}
}

// --- Разбор анкет

func (h *Handler) cmdNext(ctx context.Context, chatID int64, from *tgbotapi.User) {
	if !h.isAllowed(ctx, from.ID) {
		h.logger.Warn("access denied", "user_id", from.ID)
		h.sendText(chatID, msgAccessDenied)
		return
	}
	lead, err := h.store.NextNew(ctx)
	if err != nil {
		h.reportError(chatID, "next lead fetch failed", err)
		return
	}
	if lead == nil {
		h.sendText(chatID, msgNoNewLeads)
		return
	}
	if err := h.review.Assign(from.ID, lead.ID); err != nil {
		h.reportError(chatID, "assign failed", err)
		return
	}
	msg := tgbotapi.NewMessage(chatID, leadCard(lead))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = dispositionKeyboard()
	_, _ = h.bot.Send(msg)
}

func (h *Handler) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	ctx := context.Background()
	switch cb.Data {
	case cbComment:
		if err := h.review.StartComment(cb.From.ID); err != nil {
			h.answerCallback(cb.ID, msgNeedNext)
			return
		}
		h.answerCallback(cb.ID, "")
		h.sendText(cb.Message.Chat.ID, msgEnterComment)
	case cbNoAnswer, cbNotInterested, cbInterested:
		h.handleDisposition(ctx, cb)
	}
}

func (h *Handler) handleDisposition(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	leadID, ok := h.review.Current(cb.From.ID)
	if !ok {
		h.answerCallback(cb.ID, msgNeedNext)
		return
	}
	status, _ := domain.ParseStatus(cb.Data)
	if err := h.store.UpdateFields(ctx, leadID, map[string]string{"status": string(status)}); err != nil {
		h.logger.Error("status update failed", "lead_id", leadID, "error", err)
		h.answerCallback(cb.ID, msgGenericError)
		return
	}
	if status == domain.StatusInterested {
		h.notifyAdmin(ctx, leadID, operatorDisplayName(cb.From))
	}
	// убираем кнопки у карточки; повторное нажатие уже не пройдет
	edit := tgbotapi.NewEditMessageReplyMarkup(cb.Message.Chat.ID, cb.Message.MessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
	_, _ = h.bot.Send(edit)
	h.answerCallback(cb.ID, msgStatusUpdated)
	h.sendText(cb.Message.Chat.ID, msgNextHint)
}

// notifyAdmin — PATCH уже прошел; сбой здесь только логируем,
// компенсации по спецификации нет
func (h *Handler) notifyAdmin(ctx context.Context, leadID int64, operator string) {
	lead, err := h.store.GetOne(ctx, leadID)
	if err != nil {
		h.logger.Error("interested lead fetch failed", "lead_id", leadID, "error", err)
		return
	}
	if lead == nil {
		return
	}
	msg := tgbotapi.NewMessage(h.adminID, interestedNotification(lead, operator))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("admin notify failed", "lead_id", leadID, "error", err)
	}
}

func (h *Handler) saveComment(ctx context.Context, chatID, userID int64, text string) {
	leadID, ok := h.review.FinishComment(userID)
	if !ok {
		h.sendText(chatID, msgNeedNext)
		return
	}
	// текст сохраняется как есть, без обрезки и ограничений
	if err := h.store.UpdateFields(ctx, leadID, map[string]string{"comments": text}); err != nil {
		h.reportError(chatID, "comment save failed", err)
		return
	}
	h.sendText(chatID, msgCommentSaved)
}

// --- Доступ

func (h *Handler) requireAdmin(userID int64, command string) bool {
	if userID == h.adminID {
		return true
	}
	h.logger.Warn("admin command denied", "command", command, "user_id", userID)
	return false
}

// isAllowed — админ или удаленный список операторов; ошибка проверки
// трактуется как запрет
func (h *Handler) isAllowed(ctx context.Context, userID int64) bool {
	if userID == h.adminID {
		return true
	}
	ok, err := h.allowlist.IsAllowed(ctx, userID)
	if err != nil {
		h.logger.Error("allowlist check failed", "user_id", userID, "error", err)
		return false
	}
	return ok
}

// --- Отправка

func (h *Handler) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("send failed", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) answerCallback(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Error("callback answer failed", "error", err)
	}
}

func (h *Handler) reportError(chatID int64, what string, err error) {
	h.logger.Error(what, "error", err)
	h.sendText(chatID, msgGenericError)
}

func parseIDArg(text string) (int64, bool) {
	parts := strings.Fields(text)
	if len(parts) != 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
