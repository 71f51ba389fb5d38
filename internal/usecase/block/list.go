package block

import (
	"context"

	domain "github.com/bienestar-studio/studio-scheduler/internal/domain/schedule"
	"github.com/bienestar-studio/studio-scheduler/internal/models"
)

type ListBlocks struct {
	repo domain.Repository
}

func NewListBlocks(repo domain.Repository) *ListBlocks {
	return &ListBlocks{repo: repo}
}

func (uc *ListBlocks) Execute(ctx context.Context) ([]models.BlockedSlot, error) {
	return uc.repo.ListBlocks(ctx)
}
