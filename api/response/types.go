package response

// RequestIDKey is the gin context key for the request ID.
const RequestIDKey = "request_id"

// Response is the envelope for all non-paginated replies.
//
//	success: { success: true, data: {...}, message: "...", code: 2xx, request_id: "..." }
//	failure: { success: false, error: "ERROR_CODE", message: "...", code: 4xx/5xx, request_id: "..." }
//
// Error carries the stable error code, never internal detail; real errors go
// to the log only.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// PaginatedResponse is the envelope for list replies.
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Message    string      `json:"message"`
	Code       int         `json:"code"`
	RequestID  string      `json:"request_id,omitempty"`
}

// Pagination carries paging metadata.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}
