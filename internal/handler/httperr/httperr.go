package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// Reasoner is implemented by details that carry a machine-readable rejection reason.
type Reasoner interface {
	RejectionReason() string
}

// AbortWithError writes the response and records err on the context so the
// logging and error middleware still see the cause.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Last returns the most recent response recorded by AbortWithError along with
// its cause. cause is nil when nothing was recorded.
func Last(c *gin.Context) (resp Response, cause error) {
	for i := len(c.Errors) - 1; i >= 0; i-- {
		e := c.Errors[i]
		if !e.IsType(gin.ErrorTypePublic) {
			continue
		}
		if resp, ok := e.Meta.(Response); ok {
			return resp, e.Err
		}
	}
	return Response{}, nil
}

// RejectionReason returns the rejection reason of the last aborted response, if any.
func RejectionReason(c *gin.Context) string {
	resp, cause := Last(c)
	if cause == nil {
		return ""
	}
	if r, ok := resp.Detail.(Reasoner); ok {
		return r.RejectionReason()
	}
	return ""
}
