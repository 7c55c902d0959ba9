package usecase

import (
	"context"
	"fmt"
	"strings"

	"lead-triage-telegram-bot/internal/domain"
)

type LeadLister interface {
	ListAll(ctx context.Context) ([]domain.Lead, error)
}

// Stats — распределение анкет по статусам для админского отчета
type Stats struct {
	leads LeadLister
	order []domain.Status
}

func NewStats(leads LeadLister) *Stats {
	return &Stats{leads: leads, order: domain.Statuses()}
}

func (s *Stats) Counts(ctx context.Context) (map[domain.Status]int, error) {
	all, err := s.leads.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.Status]int, len(s.order))
	for _, l := range all {
		counts[l.Status]++
	}
	return counts, nil
}

func (s *Stats) Chart(ctx context.Context) (string, error) {
	counts, err := s.Counts(ctx)
	if err != nil {
		return "", err
	}
	var total int
	for _, st := range s.order {
		total += counts[st]
	}
	if total == 0 {
		return "Анкет пока нет", nil
	}
	var b strings.Builder
	b.WriteString("Анкеты по статусам:\n")
	for _, st := range s.order {
		c := counts[st]
		fmt.Fprintf(&b, "- %s: %d | %3d%% %s\n", statusLabel(st), c, percent(c, total), bar20(c, total))
	}
	fmt.Fprintf(&b, "Всего: %d", total)
	return b.String(), nil
}

// GraphData возвращает метки и значения по порядку статусов для построения графика
func (s *Stats) GraphData(ctx context.Context) ([]string, []int, error) {
	counts, err := s.Counts(ctx)
	if err != nil {
		return nil, nil, err
	}
	labels := make([]string, 0, len(s.order))
	values := make([]int, 0, len(s.order))
	for _, st := range s.order {
		labels = append(labels, statusLabel(st))
		values = append(values, counts[st])
	}
	return labels, values, nil
}

func percent(a, b int) int {
	if b <= 0 {
		return 0
	}
	return int((100 * a) / b)
}

func bar20(val, max int) string {
	if max <= 0 {
		return ""
	}
	filled := (20 * val) / max
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", 20-filled) + "]"
}

func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusNew:
		return "Новые"
	case domain.StatusNoAnswer:
		return "Нет ответа"
	case domain.StatusNotInterested:
		return "Не интересно"
	case domain.StatusInterested:
		return "Интересует"
	default:
		return string(s)
	}
}
