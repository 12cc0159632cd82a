package tournament

import "context"

// TournamentClient defines the interface for interacting with the tournament backend.
// This allows for mock implementations to be used in tests.
type TournamentClient interface {
	GetCategory(ctx context.Context, categoryID string) (*CategoryPayload, error)
	StoreSetScore(ctx context.Context, score SetScore) error
	GetGameDetail(ctx context.Context, gameID int) (*GameDetail, error)
}
