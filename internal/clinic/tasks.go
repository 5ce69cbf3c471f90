package clinic

import (
	"context"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

// TasksService wraps /tasks.
type TasksService struct {
	r gateway.Requester
}

func (s *TasksService) List(ctx context.Context) ([]Task, error) {
	return list[Task](ctx, s.r, "/tasks")
}

// Personal lists tasks assigned to the logged-in user.
func (s *TasksService) Personal(ctx context.Context) ([]Task, error) {
	return list[Task](ctx, s.r, "/tasks/personal")
}

func (s *TasksService) Completed(ctx context.Context) ([]Task, error) {
	return list[Task](ctx, s.r, "/tasks/completed")
}

func (s *TasksService) Create(ctx context.Context, t Task) (Task, error) {
	return send[Task](ctx, s.r, gateway.Post, "/tasks", t)
}

func (s *TasksService) Update(ctx context.Context, id ID, t Task) (Task, error) {
	return send[Task](ctx, s.r, gateway.Put, pathf("/tasks/%s", id), t)
}

func (s *TasksService) Delete(ctx context.Context, id ID) error {
	return remove(ctx, s.r, pathf("/tasks/%s", id))
}

type TaskStatusesService struct {
	r gateway.Requester
}

func (s *TaskStatusesService) List(ctx context.Context) ([]TaskStatus, error) {
	return list[TaskStatus](ctx, s.r, "/task-status")
}

type TaskPrioritiesService struct {
	r gateway.Requester
}

func (s *TaskPrioritiesService) List(ctx context.Context) ([]TaskPriority, error) {
	return list[TaskPriority](ctx, s.r, "/task-priority")
}
