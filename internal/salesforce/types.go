package salesforce

import (
	"fmt"
	"strings"
)

// QueryResult is the payload of a SOQL query. Records are raw field maps;
// callers pick out the fields their query selected.
type QueryResult struct {
	TotalSize int              `json:"totalSize"`
	Done      bool             `json:"done"`
	Records   []map[string]any `json:"records"`
}

// StringField reads a string field from a query record, tolerating missing
// or non-string values.
func StringField(record map[string]any, name string) string {
	v, _ := record[name].(string)
	return v
}

// SaveError is one entry in a create response's error list.
type SaveError struct {
	StatusCode string   `json:"statusCode"`
	Message    string   `json:"message"`
	Fields     []string `json:"fields"`
}

func (e SaveError) String() string {
	if e.StatusCode == "" {
		return e.Message
	}
	return e.StatusCode + ": " + e.Message
}

// SaveResult is the outcome of a create call.
type SaveResult struct {
	ID      string      `json:"id"`
	Success bool        `json:"success"`
	Errors  []SaveError `json:"errors"`
}

// restError is the element shape of Salesforce REST error bodies.
type restError struct {
	ErrorCode string   `json:"errorCode"`
	Message   string   `json:"message"`
	Fields    []string `json:"fields"`
}

// APIError is a non-2xx REST response. Its Error string keeps the platform
// error codes (DUPLICATE_USERNAME etc) verbatim so callers can match them.
type APIError struct {
	StatusCode int
	Errors     []restError
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("salesforce: request failed with status %d", e.StatusCode)
	}
	parts := make([]string, len(e.Errors))
	for i, re := range e.Errors {
		if re.ErrorCode != "" {
			parts[i] = re.ErrorCode + ": " + re.Message
		} else {
			parts[i] = re.Message
		}
	}
	return strings.Join(parts, "; ")
}

// EscapeSOQL escapes a value for interpolation inside single quotes in a
// SOQL literal.
func EscapeSOQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
