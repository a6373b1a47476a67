package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorBody is the error envelope returned for every failure.
type ErrorBody struct {
	Error     bool              `json:"error"`
	Code      ErrCode           `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

// Success sends data as the JSON body. Successful responses carry the raw
// resource or store result, without an envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Text sends a plain text body.
func Text(c *gin.Context, statusCode int, body string) {
	c.String(statusCode, body)
}

// Fail sends an error response with an error code and no field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, build(c, code, GetMessage(code), nil))
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, build(c, code, GetMessage(code), fields))
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, build(c, code, GetMessage(code), nil))
}

func build(c *gin.Context, code ErrCode, message string, fields map[string]string) ErrorBody {
	return ErrorBody{
		Error:     true,
		Code:      code,
		Message:   message,
		Fields:    fields,
		RequestID: RequestID(c),
	}
}

// RequestID returns the id assigned by RequestIDMiddleware, or a fresh one.
func RequestID(c *gin.Context) string {
	reqID, _ := c.Get(ContextKeyRequestID)
	id, ok := reqID.(string)
	if !ok || id == "" {
		id = uuid.New().String()
	}
	return id
}
