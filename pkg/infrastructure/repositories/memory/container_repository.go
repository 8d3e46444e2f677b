package memory

import (
	"context"
	"fmt"

	"github.com/kaimen83/lunchlab/pkg/domain/entities"
	"github.com/kaimen83/lunchlab/pkg/domain/repositories"
)

// ContainerRepository provides in-memory container master storage
type ContainerRepository struct {
	containers []entities.Container
	indexByID  map[entities.ContainerID]int
}

// NewContainerRepository creates a new in-memory container repository
func NewContainerRepository() *ContainerRepository {
	return &ContainerRepository{
		indexByID: make(map[entities.ContainerID]int),
	}
}

// Verify interface compliance
var _ repositories.ContainerRepository = (*ContainerRepository)(nil)

// AddContainer adds a container master record
func (r *ContainerRepository) AddContainer(container entities.Container) {
	if index, exists := r.indexByID[container.ID]; exists {
		r.containers[index] = container
		return
	}
	r.indexByID[container.ID] = len(r.containers)
	r.containers = append(r.containers, container)
}

// RemoveContainer deletes a container master, simulating a master deleted
// after meal plans referencing it were created
func (r *ContainerRepository) RemoveContainer(id entities.ContainerID) {
	index, exists := r.indexByID[id]
	if !exists {
		return
	}
	r.containers = append(r.containers[:index], r.containers[index+1:]...)
	delete(r.indexByID, id)
	for i := index; i < len(r.containers); i++ {
		r.indexByID[r.containers[i].ID] = i
	}
}

// GetContainer returns a container master record by id
func (r *ContainerRepository) GetContainer(
	ctx context.Context,
	id entities.ContainerID,
) (*entities.Container, error) {
	index, exists := r.indexByID[id]
	if !exists {
		return nil, fmt.Errorf("container %s: %w", id, repositories.ErrNotFound)
	}
	return &r.containers[index], nil
}

// GetAllContainers returns all container master records
func (r *ContainerRepository) GetAllContainers(ctx context.Context) ([]*entities.Container, error) {
	containers := make([]*entities.Container, 0, len(r.containers))
	for i := range r.containers {
		containers = append(containers, &r.containers[i])
	}
	return containers, nil
}
