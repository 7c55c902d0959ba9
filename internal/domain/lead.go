package domain

import "context"

// Status — этап обработки анкеты клиента
type Status string

const (
	StatusNew           Status = "new"
	StatusNoAnswer      Status = "no_answer"
	StatusNotInterested Status = "not_interested"
	StatusInterested    Status = "interested"
)

// Statuses возвращает все статусы в фиксированном порядке воронки
func Statuses() []Status {
	return []Status{StatusNew, StatusNoAnswer, StatusNotInterested, StatusInterested}
}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNew, StatusNoAnswer, StatusNotInterested, StatusInterested:
		return Status(s), true
	}
	return "", false
}

// Lead — анкета клиента; хранится только в удаленной таблице
type Lead struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Comments string `json:"comments"`
	Status   Status `json:"status"`
}

type LeadStore interface {
	Insert(ctx context.Context, name, phone, company, comments string) error
	NextNew(ctx context.Context) (*Lead, error)
	ListAll(ctx context.Context) ([]Lead, error)
	GetOne(ctx context.Context, id int64) (*Lead, error)
	UpdateFields(ctx context.Context, id int64, patch map[string]string) error
	Delete(ctx context.Context, id int64) error
}
