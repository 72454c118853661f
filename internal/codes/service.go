package codes

import (
	"context"
	"fmt"
	"strings"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
	pkgerrors "github.com/rexbugcalao2025-netizen/fmh-backend/pkg/errors"
)

const codePrefix = "FMH"

type generator struct {
	repo          Repository
	defaultBranch string
}

// NewGenerator builds a business-code generator.
func NewGenerator(repo Repository, defaultBranch string) (Generator, error) {
	if repo == nil {
		return nil, fmt.Errorf("codes repository required")
	}
	if strings.TrimSpace(defaultBranch) == "" {
		return nil, fmt.Errorf("default branch required")
	}
	return &generator{
		repo:          repo,
		defaultBranch: strings.ToUpper(strings.TrimSpace(defaultBranch)),
	}, nil
}

// Generate allocates the next code for the kind/branch pair, formatted as
// FMHC-DVO-00001 for clients and FMHE-DVO-00001 for employees.
func (g *generator) Generate(ctx context.Context, kind enums.CodeKind, branch string) (string, error) {
	if !kind.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid code kind %q", kind))
	}

	branch = strings.ToUpper(strings.TrimSpace(branch))
	if branch == "" {
		branch = g.defaultBranch
	}

	seq, err := g.repo.NextSeq(ctx, kind.String(), branch)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "incrementing code counter")
	}

	return fmt.Sprintf("%s%s-%s-%05d", codePrefix, kind.Letter(), branch, seq), nil
}
