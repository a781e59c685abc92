package parser

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

// Kind классифицирует ошибку разбора параметра
type Kind int

const (
	MissingParameter Kind = iota + 1
	InvalidNumber
)

func (k Kind) String() string {
	switch k {
	case MissingParameter:
		return "missing_parameter"
	case InvalidNumber:
		return "invalid_number"
	default:
		return "unknown"
	}
}

// ParamError описывает дефект входного параметра запроса.
// Error() возвращает сообщение, которое отдаётся клиенту как есть.
type ParamError struct {
	Kind Kind
	Name string
}

func (e *ParamError) Error() string {
	if e.Kind == MissingParameter {
		return fmt.Sprintf("Missing query parameter '%s'", e.Name)
	}
	return fmt.Sprintf("Query parameter '%s' must be a number", e.Name)
}

// ParseNumber извлекает параметр name из query и преобразует его в float64.
//
// Принимаются те же литералы, что и strconv.ParseFloat: знак, десятичная
// точка, экспонента. Пустая строка и хвостовой мусор отклоняются.
// NaN, Inf и переполнение ("1e400") тоже считаются InvalidNumber:
// параметр обязан быть конечным числом.
func ParseNumber(query url.Values, name string) (float64, error) {
	values, ok := query[name]
	if !ok || len(values) == 0 {
		return 0, &ParamError{Kind: MissingParameter, Name: name}
	}

	value, err := strconv.ParseFloat(values[0], 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &ParamError{Kind: InvalidNumber, Name: name}
	}

	return value, nil
}

// ParseOperands разбирает пару операндов "a" и "b", возвращая первую ошибку
func ParseOperands(query url.Values) (a, b float64, err error) {
	if a, err = ParseNumber(query, "a"); err != nil {
		return 0, 0, err
	}
	if b, err = ParseNumber(query, "b"); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
