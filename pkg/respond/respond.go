package respond

import (
	"encoding/json"
	"net/http"
)

// Envelope - единый формат ответа: заполнено ровно одно из полей
type Envelope struct {
	Result any     `json:"result"`
	Error  *string `json:"error"`
}

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func Result(w http.ResponseWriter, r *http.Request, code int, result any) {
	JSON(w, r, code, Envelope{Result: result})
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, Envelope{Error: &message})
}
