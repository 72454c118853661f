package codes

import (
	"context"

	"gorm.io/gorm"

	"github.com/rexbugcalao2025-netizen/fmh-backend/internal/repo"
)

type repository struct {
	base repo.Base
}

// NewRepository builds a counters repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.Rebind(tx)}
}

const nextSeqSQL = `
INSERT INTO counters (key, branch, seq, created_at, updated_at)
VALUES (?, ?, 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT (key, branch)
DO UPDATE SET seq = counters.seq + 1, updated_at = CURRENT_TIMESTAMP
RETURNING seq`

func (r *repository) NextSeq(ctx context.Context, key, branch string) (int64, error) {
	var seq int64
	if err := r.base.DB(ctx).Raw(nextSeqSQL, key, branch).Scan(&seq).Error; err != nil {
		return 0, err
	}
	return seq, nil
}
