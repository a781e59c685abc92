package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"

	"calcapi/internal/models"
)

// MemoryDSN база в памяти процесса, живёт до закрытия History
const MemoryDSN = ":memory:"

// History журнал успешных вычислений поверх SQLite
type History struct {
	db *sql.DB
}

// Open открывает журнал по dsn и создает таблицы
func Open(dsn string) (*History, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу данных: %w", err)
	}

	// каждое новое соединение к :memory: видит свою пустую базу
	if isMemory(dsn) {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	h := &History{db: db}
	if err := h.createTables(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return h, nil
}

func isMemory(dsn string) bool {
	return dsn == MemoryDSN || strings.Contains(dsn, "mode=memory")
}

func (h *History) createTables(ctx context.Context) error {
	_, err := h.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS computations (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT UNIQUE NOT NULL,
			operation TEXT NOT NULL,
			a REAL NOT NULL,
			b REAL NOT NULL,
			result REAL NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ошибка создания таблицы computations: %w", err)
	}
	return nil
}

// SaveComputation сохраняет вычисление; пустые ID и CreatedAt заполняются
func (h *History) SaveComputation(ctx context.Context, c models.Computation) (models.Computation, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := h.db.ExecContext(ctx,
		"INSERT INTO computations (id, operation, a, b, result, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		c.ID, c.Operation, c.A, c.B, c.Result, c.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return models.Computation{}, fmt.Errorf("ошибка сохранения вычисления: %w", err)
	}

	return c, nil
}

// RecentComputations возвращает до limit последних вычислений, новые первыми
func (h *History) RecentComputations(ctx context.Context, limit int) ([]models.Computation, error) {
	rows, err := h.db.QueryContext(ctx,
		"SELECT id, operation, a, b, result, created_at FROM computations ORDER BY seq DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории: %w", err)
	}
	defer rows.Close()

	computations := []models.Computation{}
	for rows.Next() {
		var (
			c         models.Computation
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.Operation, &c.A, &c.B, &c.Result, &createdAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения вычисления: %w", err)
		}
		c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("некорректная дата вычисления %s: %w", c.ID, err)
		}
		computations = append(computations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения истории: %w", err)
	}

	return computations, nil
}

// Ping проверяет доступность базы
func (h *History) Ping(ctx context.Context) error {
	return h.db.PingContext(ctx)
}

func (h *History) Close() error {
	return h.db.Close()
}
