package models

import "time"

// Task задача списка дел
type Task struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// CreateTaskRequest тело POST /tasks
type CreateTaskRequest struct {
	Title string `json:"title"`
}

// TaskPatch тело PUT /tasks/{id}: nil означает "поле не передано"
type TaskPatch struct {
	Title *string `json:"title,omitempty"`
	Done  *bool   `json:"done,omitempty"`
}

type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// OperationResult тело успешного ответа арифметических эндпоинтов
type OperationResult struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
}

// Computation запись истории вычислений
type Computation struct {
	ID        string    `json:"id"`
	Operation string    `json:"operation"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
	Result    float64   `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

type ComputationList struct {
	Computations []Computation `json:"computations"`
}
