package catalog

import (
	"context"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// ModelLister fetches the foundation model catalog.
type ModelLister interface {
	ListModels(ctx context.Context) ([]domain.FoundationModel, error)
}
