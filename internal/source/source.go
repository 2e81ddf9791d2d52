package source

import (
	"context"
	"errors"

	"github.com/claimlens/claimlens/internal/model"
)

// ErrAuth signals rejected credentials. The orchestrator treats it as
// fatal: the whole run aborts instead of producing an empty report.
var ErrAuth = errors.New("source authentication failed")

// Searcher is the source-connector boundary: it returns raw discussion
// items for a search topic. Implementations classify their failures via
// the fault package (auth → fatal, rate limit / network → transient).
type Searcher interface {
	// Name returns the connector name recorded on each RawItem
	Name() string

	// Search returns up to limit items matching the topic
	Search(ctx context.Context, topic string, limit int) ([]model.RawItem, error)
}
