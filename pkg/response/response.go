package response

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the envelope every endpoint writes.
type Response struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func Success(statusCode int, data interface{}) Response {
	return Response{Status: StatusSuccess, StatusCode: statusCode, Data: data}
}

func Error(statusCode int, err string) Response {
	return Response{Status: StatusError, StatusCode: statusCode, Error: err}
}

// Failure is an error envelope that also carries structured detail, e.g. the
// stock shortages behind a rejected approval.
func Failure(statusCode int, err string, detail interface{}) Response {
	r := Error(statusCode, err)
	r.Data = detail
	return r
}

// OK reports whether the envelope describes a successful call.
func (r Response) OK() bool {
	return r.Status == StatusSuccess
}
