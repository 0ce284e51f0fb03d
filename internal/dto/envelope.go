package dto

// Envelope is the uniform response shape used by every endpoint:
// { code, status, message, data? }.
type Envelope struct {
	Code    int         `json:"code"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success wraps data in a success envelope.
func Success(code int, message string, data interface{}) Envelope {
	return Envelope{Code: code, Status: "success", Message: message, Data: data}
}

// Error wraps a message in an error envelope.
func Error(code int, message string) Envelope {
	return Envelope{Code: code, Status: "error", Message: message}
}
