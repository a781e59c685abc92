package calculator

import (
	"errors"
	"math"
)

var (
	// ErrDivisionByZero возвращается при делении на точный ноль
	ErrDivisionByZero = errors.New("Division by zero is not allowed")

	// ErrResultOutOfRange возвращается, если результат не помещается в float64
	ErrResultOutOfRange = errors.New("Result is out of range")
)

// Operation описывает бинарную арифметическую операцию
type Operation struct {
	Name   string
	Symbol string
	fn     func(a, b float64) (float64, error)
}

var (
	Add      = Operation{Name: "add", Symbol: "+", fn: add}
	Subtract = Operation{Name: "subtract", Symbol: "-", fn: subtract}
	Multiply = Operation{Name: "multiply", Symbol: "*", fn: multiply}
	Divide   = Operation{Name: "divide", Symbol: "/", fn: divide}
)

var operations = []Operation{Add, Subtract, Multiply, Divide}

// Operations возвращает все поддерживаемые операции в порядке регистрации маршрутов
func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

// Lookup ищет операцию по имени ("add", "divide", ...)
func Lookup(name string) (Operation, bool) {
	for _, op := range operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// Apply вычисляет a <op> b. Операнды должны быть конечными.
func (o Operation) Apply(a, b float64) (float64, error) {
	if o.fn == nil {
		return 0, errors.New("unknown operation")
	}

	result, err := o.fn(a, b)
	if err != nil {
		return 0, err
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, ErrResultOutOfRange
	}

	return result, nil
}

func add(a, b float64) (float64, error) {
	return a + b, nil
}

func subtract(a, b float64) (float64, error) {
	return a - b, nil
}

func multiply(a, b float64) (float64, error) {
	return a * b, nil
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}
