package errors

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail carries the user-facing message (the first hint on the error
// chain) and any reportable details attached with WithReportableDetails.
type ErrorDetail struct {
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
