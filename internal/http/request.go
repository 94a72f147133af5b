package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"job-board/internal/apperr"
)

// flexString accepts a JSON string or number. Phone numbers arrive as both.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// UnmarshalParam lets gin's form binding fill a flexString.
func (f *flexString) UnmarshalParam(param string) error {
	*f = flexString(param)
	return nil
}

// flexInt accepts a JSON number or a numeric string. Empty values stay nil.
type flexInt struct {
	v *int64
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		f.v = nil
		return nil
	}
	return f.UnmarshalParam(string(data))
}

func (f *flexInt) UnmarshalParam(param string) error {
	if param == "" {
		f.v = nil
		return nil
	}
	n, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return err
	}
	f.v = &n
	return nil
}

type registerRequest struct {
	Name     string     `json:"name" form:"name"`
	Email    string     `json:"email" form:"email"`
	Phone    flexString `json:"phone" form:"phone"`
	Password string     `json:"password" form:"password"`
	Role     string     `json:"role" form:"role"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type postJobRequest struct {
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	Category    string  `json:"category" form:"category"`
	Country     string  `json:"country" form:"country"`
	City        string  `json:"city" form:"city"`
	Location    string  `json:"location" form:"location"`
	FixedSalary flexInt `json:"fixedSalary" form:"fixedSalary"`
	SalaryFrom  flexInt `json:"salaryFrom" form:"salaryFrom"`
	SalaryTo    flexInt `json:"salaryTo" form:"salaryTo"`
}

// bind decodes a JSON or form body into dst. An empty body leaves dst zero
// so the service reports which fields are missing.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBind(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Wrap(apperr.KindValidation, "Invalid request body.", err)
	}
	return nil
}
