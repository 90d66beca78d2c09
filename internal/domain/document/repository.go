package document

import (
	"context"

	"github.com/sfgnexus/backend/internal/domain/audit"
	"github.com/sfgnexus/backend/internal/domain/shared"
)

// Repository is the persistence port for documents.
//
// CommitConversion is the single-transaction commit of a stage
// progression: the successor is inserted, the predecessor is saved as
// converted and the audit entry is appended, all or nothing.
type Repository interface {
	shared.Repository[Document]
	FindByFullNumber(ctx context.Context, fullNumber string) (*Document, error)
	FindByBaseNumber(ctx context.Context, baseNumber string) ([]*Document, error)
	SaveWithAudit(ctx context.Context, doc *Document, entry *audit.Entry) error
	CommitConversion(ctx context.Context, predecessor, successor *Document, entry *audit.Entry) error
	ExistsByFullNumber(ctx context.Context, fullNumber string) (bool, error)
}
