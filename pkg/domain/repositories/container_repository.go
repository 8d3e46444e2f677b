package repositories

import (
	"context"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
)

// ContainerRepository provides access to container masters
type ContainerRepository interface {
	GetContainer(ctx context.Context, id entities.ContainerID) (*entities.Container, error)
	GetAllContainers(ctx context.Context) ([]*entities.Container, error)
}
