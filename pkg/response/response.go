package response

import "errors"

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

//Error Codes
type ErrCode string

var (
	FAILED_REQUEST ErrCode = "REQUEST_FAILED"
	BAD_REQUEST    ErrCode = "FAILED_TO_DECODE"
	VALIDATION     ErrCode = "VALIDATION_FAILED"
	INVALID_RANGE  ErrCode = "INVALID_RANGE"
	OVERLAP        ErrCode = "SLOT_OVERLAP"
	NOT_FOUND      ErrCode = "NOT_FOUND"
	NOT_AUTHORIZED ErrCode = "NOT_AUTHORIZED"
	LOCKED         ErrCode = "LOCKED"
	CONFLICT       ErrCode = "CONFLICT"
	SLOT_CONFLICT  ErrCode = "SLOT_CONFLICT"
	PAYMENT_FAILED ErrCode = "PAYMENT_FAILED"
)

var (
	ErrBadRequest        = errors.New("bad request")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidRange      = errors.New("start time must be before end time")
	ErrOverlap           = errors.New("slot overlaps an existing slot")
	ErrNotFound          = errors.New("resource not found")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrLocked            = errors.New("resource is locked")
	ErrConflict          = errors.New("conflict")
	ErrSlotConflict      = errors.New("slot already booked")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPayment           = errors.New("payment failed")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}
