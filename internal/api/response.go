package api

import (
	"encoding/json"
	"net/http"
)

// Envelope единый формат ответа API: ровно одно из Data/Error не равно null
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

// SendSuccessResponse отправляет {"success":true,"data":...,"error":null}
func SendSuccessResponse(w http.ResponseWriter, status int, data any) {
	if data == nil {
		data = struct{}{}
	}
	SendJSON(w, status, Envelope{Success: true, Data: data})
}

// SendErrorResponse отправляет {"success":false,"data":null,"error":message}
func SendErrorResponse(w http.ResponseWriter, status int, message string) {
	SendJSON(w, status, Envelope{Success: false, Error: &message})
}

// SendJSON сериализует v до записи заголовков. При ошибке сериализации
// отвечает 500 с Envelope.
func SendJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"success":false,"data":null,"error":"Internal server error"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}
