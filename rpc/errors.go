package rpc

import "fmt"

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message) }

func ErrorMethodNotFound(method string) *Error {
	return &Error{Code: -32601, Message: fmt.Sprintf("method not found: %s", method)}
}

func ErrorInternal(err error) *Error {
	return &Error{Code: -32000, Message: err.Error()}
}

var (
	ErrParse         = &Error{Code: -32700, Message: "parse error"}
	ErrInvalidParams = &Error{Code: -32602, Message: "invalid params"}
)
