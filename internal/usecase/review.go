package usecase

import "errors"

// Состояния разбора анкет, независимые от Telegram

type ReviewState string

const (
	StateIdle            ReviewState = "idle"
	StateHasAssignment   ReviewState = "has_assignment"
	StateAwaitingComment ReviewState = "awaiting_comment"
)

// ReviewSession — текущая анкета оператора и режим ввода комментария
type ReviewSession struct {
	State  ReviewState
	LeadID int64
}

// SessionStore хранит сессии по идентификатору оператора.
// Реализации: память (по умолчанию) и SQLite.
type SessionStore interface {
	Get(operatorID int64) (ReviewSession, bool)
	Put(operatorID int64, s ReviewSession) error
}

var ErrNoAssignment = errors.New("нет активной анкеты")

// Review — машина состояний разбора: Idle / HasAssignment / AwaitingComment.
// Все переходы проходят через этот тип; ключ — оператор, поэтому блокировки
// сверх тех, что дает SessionStore, не нужны.
type Review struct {
	store SessionStore
}

func NewReview(store SessionStore) *Review { return &Review{store: store} }

// Assign перезаписывает текущую анкету оператора. Последнее назначение
// выигрывает; от назначения одной анкеты двум операторам не защищаемся.
func (r *Review) Assign(operatorID, leadID int64) error {
	return r.store.Put(operatorID, ReviewSession{State: StateHasAssignment, LeadID: leadID})
}

// Current возвращает анкету, назначенную оператору; false — нужно /next
func (r *Review) Current(operatorID int64) (int64, bool) {
	s, ok := r.store.Get(operatorID)
	if !ok || s.State == StateIdle {
		return 0, false
	}
	return s.LeadID, true
}

// StartComment переводит оператора в режим ожидания комментария
func (r *Review) StartComment(operatorID int64) error {
	s, ok := r.store.Get(operatorID)
	if !ok || s.State == StateIdle {
		return ErrNoAssignment
	}
	s.State = StateAwaitingComment
	return r.store.Put(operatorID, s)
}

func (r *Review) AwaitingComment(operatorID int64) bool {
	s, ok := r.store.Get(operatorID)
	return ok && s.State == StateAwaitingComment
}

// FinishComment выходит из режима комментария и возвращает анкету,
// к которой комментарий относится
func (r *Review) FinishComment(operatorID int64) (int64, bool) {
	s, ok := r.store.Get(operatorID)
	if !ok || s.State != StateAwaitingComment {
		return 0, false
	}
	s.State = StateHasAssignment
	if err := r.store.Put(operatorID, s); err != nil {
		return 0, false
	}
	return s.LeadID, true
}

// CancelComment сбрасывает режим комментария без сохранения текста.
// Вызывается при любой команде: оператор не может застрять в ожидании.
func (r *Review) CancelComment(operatorID int64) {
	s, ok := r.store.Get(operatorID)
	if !ok || s.State != StateAwaitingComment {
		return
	}
	s.State = StateHasAssignment
	_ = r.store.Put(operatorID, s)
}
