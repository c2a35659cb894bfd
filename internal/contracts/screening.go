package contracts

import "context"

// ScreeningBackend executes one query submission against the market-data service
// ⭐ SSOT: 외부 스크리닝 서비스 경계
type ScreeningBackend interface {
	Screen(ctx context.Context, sub Submission) ([]Row, error)
}

// FallbackResponder answers the raw user query when screening fails
type FallbackResponder interface {
	Respond(ctx context.Context, query string) (string, error)
}

// CurrencyConverter converts an amount between two currency codes
type CurrencyConverter interface {
	Convert(amount float64, from, to string) (float64, error)
}
