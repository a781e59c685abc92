package api

import (
	"fmt"
	"net/http"
	"strings"

	"calcapi/internal/calculator"
)

// HealthHandler проба живости, ответ не оборачивается в Envelope
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	SendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	SendErrorResponse(w, http.StatusNotFound, "Endpoint not found")
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	SendErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// HomeHandler простая HTML-страница для проверки деплоя в браузере
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	var links strings.Builder
	for _, op := range calculator.Operations() {
		fmt.Fprintf(&links, "\t\t\t<li>/api/%s?a=10&amp;b=2</li>\n", op.Name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, homePage, links.String())
}

const homePage = `<html>
	<head><title>calcapi</title></head>
	<body>
		<h1>calcapi</h1>
		<p>Status: running</p>
		<ul>
%s			<li>/api/history</li>
			<li>/tasks</li>
			<li>/stats</li>
			<li>/health</li>
		</ul>
	</body>
</html>
`
