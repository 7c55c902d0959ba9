package domain

import "context"

// Allowlist — удаленный список операторов, которым разрешен разбор анкет
type Allowlist interface {
	IsAllowed(ctx context.Context, userID int64) (bool, error)
}
