package tasks

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"calcapi/internal/models"
)

var (
	// ErrNotFound задача с таким id не существует (или уже удалена)
	ErrNotFound = errors.New("Task not found")

	// ErrValidation пустой или отсутствующий заголовок
	ErrValidation = errors.New("Field 'title' is required")
)

// Store хранит задачи в памяти процесса.
// Все мутации идут под одной блокировкой на запись, чтения под блокировкой
// на чтение, наружу отдаются только копии.
type Store struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
	order []string
	newID func() string
}

// NewStore создает пустое хранилище задач
func NewStore() *Store {
	return &Store{
		tasks: make(map[string]models.Task),
		newID: func() string { return uuid.New().String() },
	}
}

// Create добавляет задачу с новым уникальным id и done=false
func (s *Store) Create(title string) (models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return models.Task{}, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for {
		if _, exists := s.tasks[id]; !exists {
			break
		}
		id = s.newID()
	}

	task := models.Task{ID: id, Title: title, Done: false}
	s.tasks[id] = task
	s.order = append(s.order, id)

	return task, nil
}

// List возвращает все задачи в порядке создания. Никогда не возвращает nil.
func (s *Store) List() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Task, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.tasks[id])
	}
	return result
}

func (s *Store) Get(id string) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return task, nil
}

// Update перезаписывает только переданные поля. id не меняется никогда.
func (s *Store) Update(id string, patch models.TaskPatch) (models.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Task{}, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Done != nil {
		task.Done = *patch.Done
	}
	s.tasks[id] = task

	return task, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}

	delete(s.tasks, id)
	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

// Stats считает агрегаты проходом по живым задачам
func (s *Store) Stats() models.TaskStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.TaskStats
	for _, task := range s.tasks {
		stats.Total++
		if task.Done {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed

	return stats
}

// Len количество живых задач
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}
