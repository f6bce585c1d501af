package dto

import "github.com/jhoicas/invoice-studio/internal/domain/billing"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse cuerpo de error de validación: una entrada por
// campo ofensor, para que el front las muestre junto a cada campo.
type ValidationErrorResponse struct {
	Code   string               `json:"code"`
	Fields []billing.FieldError `json:"fields"`
}
