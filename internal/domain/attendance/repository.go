package attendance

import (
	"context"
)

// PayloadSource fetches the raw monthly attendance payload of one user from
// the upstream backend. Implementations own retries; parsing is left to
// ParsePayload.
type PayloadSource interface {
	FetchMonthly(ctx context.Context, userID string, year int, month int) ([]byte, error)
}
