package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse estado del servicio y del almacén.
type HealthResponse struct {
	Status string `json:"status"`
	Driver string `json:"driver"`
	Store  string `json:"store"`
}
