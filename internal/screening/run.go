package screening

import (
	"time"

	"github.com/google/uuid"

	"github.com/wonny/screener/internal/contracts"
)

// Run is the persisted record of one screening call
type Run struct {
	ID           uuid.UUID                  `json:"id"`
	Mode         contracts.Mode             `json:"mode"`
	QueryText    string                     `json:"query_text"`
	Request      contracts.ScreeningRequest `json:"request"`
	Outcome      string                     `json:"outcome"`
	RowCount     int                        `json:"row_count"`
	ErrorMessage string                     `json:"error_message,omitempty"`
	Duration     time.Duration              `json:"duration"`
	CreatedAt    time.Time                  `json:"created_at"`
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
