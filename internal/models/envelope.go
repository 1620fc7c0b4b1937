package models

// Envelope is the backend's uniform response wrapper. Status reports
// application-level success independently of the HTTP status code.
type Envelope[T any] struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Status     bool   `json:"status"`
	Data       T      `json:"data"`
}
