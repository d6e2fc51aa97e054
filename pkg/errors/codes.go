package errors

// CodeSuccess is returned on every successful response
const (
	CodeSuccess = 200
)

// HTTP-level error codes (400-599)
const (
	CodeInvalidParam = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeServerError  = 500
)
