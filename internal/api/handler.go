package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"calcapi/internal/calculator"
	"calcapi/internal/logging"
	"calcapi/internal/models"
	"calcapi/internal/parser"
)

// HistoryStore журнал вычислений (database.History в рабочем процессе)
type HistoryStore interface {
	SaveComputation(ctx context.Context, c models.Computation) (models.Computation, error)
	RecentComputations(ctx context.Context, limit int) ([]models.Computation, error)
}

type CalculatorHandler struct {
	logger       *slog.Logger
	history      HistoryStore
	historyLimit int
}

// NewCalculatorHandler создает обработчик арифметики. history может быть nil.
func NewCalculatorHandler(logger *slog.Logger, history HistoryStore, historyLimit int) *CalculatorHandler {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &CalculatorHandler{
		logger:       logger,
		history:      history,
		historyLimit: historyLimit,
	}
}

// Operation возвращает обработчик GET /api/{op.Name}?a=..&b=..
func (h *CalculatorHandler) Operation(op calculator.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, b, err := parser.ParseOperands(r.URL.Query())
		if err != nil {
			SendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := op.Apply(a, b)
		if err != nil {
			if errors.Is(err, calculator.ErrDivisionByZero) || errors.Is(err, calculator.ErrResultOutOfRange) {
				SendErrorResponse(w, http.StatusBadRequest, err.Error())
				return
			}
			h.logger.Error("operation failed", "operation", op.Name, "error", err)
			SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		h.logger.Info("computation",
			slog.String("operation", op.Name),
			slog.Float64("a", a),
			slog.Float64("b", b),
			slog.Float64("result", result))

		h.record(r.Context(), models.Computation{Operation: op.Name, A: a, B: b, Result: result})

		SendSuccessResponse(w, http.StatusOK, models.OperationResult{
			Operation: op.Name,
			A:         a,
			B:         b,
			Result:    result,
		})
	}
}

// record пишет вычисление в историю; ошибка журнала не влияет на ответ
func (h *CalculatorHandler) record(ctx context.Context, c models.Computation) {
	if h.history == nil {
		return
	}
	if _, err := h.history.SaveComputation(ctx, c); err != nil {
		h.logger.Warn("failed to save computation", "operation", c.Operation, "error", err)
	}
}

// History обрабатывает GET /api/history?limit=N
func (h *CalculatorHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		SendErrorResponse(w, http.StatusNotFound, "Endpoint not found")
		return
	}

	limit := h.historyLimit
	if raw, ok := r.URL.Query()["limit"]; ok {
		n, err := strconv.Atoi(raw[0])
		if err != nil || n <= 0 {
			SendErrorResponse(w, http.StatusBadRequest, "Query parameter 'limit' must be a positive integer")
			return
		}
		if n < limit {
			limit = n
		}
	}

	computations, err := h.history.RecentComputations(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to read history", "error", err)
		SendErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	SendSuccessResponse(w, http.StatusOK, models.ComputationList{Computations: computations})
}
