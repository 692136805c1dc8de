package responses

// DataResponse wraps a single resource.
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// ListResponse wraps a collection.
type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}

func NewList[T any](items []T, total int64) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Total: total}
}

// ErrorResponse documents the error envelope in swagger.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message   string       `json:"message"`
	Type      string       `json:"type"`
	Code      string       `json:"code,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
	Fields    []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
