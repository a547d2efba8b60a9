package generations

import "context"

// Repo is the append-only run log. Records are returned in insertion order.
type Repo interface {
	Append(ctx context.Context, record RunRecord) error
	List(ctx context.Context) ([]RunRecord, error)
}
