package codes

import (
	"context"

	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
)

// Repository defines persistence for the per-(kind, branch) counters.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// NextSeq atomically increments and returns the counter for the pair.
	// The increment must be a single statement so concurrent callers never
	// observe the same value.
	NextSeq(ctx context.Context, key, branch string) (int64, error)
}

// Generator allocates human-readable business codes.
type Generator interface {
	Generate(ctx context.Context, kind enums.CodeKind, branch string) (string, error)
}
