package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jonwraymond/studentops/observe"
	"github.com/jonwraymond/studentops/students"
)

type handlers struct {
	title    string
	version  string
	students *students.Service
	logger   observe.Logger
}

func (h *handlers) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"title": h.title, "version": h.version})
}

func (h *handlers) listStudents(c *gin.Context) {
	ages, err := h.students.List(c.Request.Context())
	if err != nil {
		h.apiFailure(c, err, students.MsgConnectFailed)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"students": ages,
		"message":  students.MsgListSucceeded,
	})
}

func (h *handlers) studentDetails(c *gin.Context) {
	roster, err := h.students.Details(c.Request.Context())
	if err != nil {
		h.apiFailure(c, err, students.MsgConnectFailed)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// createBody accepts both the JSON field names and the legacy HTML form
// field names (student_name, student_age).
type createBody struct {
	Name        string  `json:"name" form:"name"`
	StudentName string  `json:"student_name" form:"student_name"`
	Age         flexInt `json:"age" form:"age"`
	StudentAge  flexInt `json:"student_age" form:"student_age"`
}

func (b createBody) name() string {
	if b.Name != "" {
		return b.Name
	}
	return b.StudentName
}

func (b createBody) age() int {
	if b.Age.set {
		return b.Age.n
	}
	return b.StudentAge.n
}

func (h *handlers) createStudent(c *gin.Context) {
	var body createBody
	if err := c.ShouldBind(&body); err != nil {
		h.logger.Debug(c.Request.Context(), "create body rejected", observe.F("error", err))
		abortJSON(c, http.StatusBadRequest, students.MsgInvalidInput)
		return
	}

	created, err := h.students.Create(c.Request.Context(), body.name(), body.age())
	if err != nil {
		if errors.Is(err, students.ErrValidation) {
			abortJSON(c, http.StatusBadRequest, students.UserMessage(err, students.MsgInvalidInput))
			return
		}
		h.apiFailure(c, err, students.MsgCreateFailed)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// apiFailure maps a student API failure to 502 with a generic message.
func (h *handlers) apiFailure(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	abortJSON(c, http.StatusBadGateway, students.UserMessage(err, fallback))
}

// flexInt decodes an integer given as a JSON number, a numeric string or
// a form value.
type flexInt struct {
	n   int
	set bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		if x != float64(int(x)) {
			return errors.New("age must be a whole number")
		}
		f.n, f.set = int(x), true
		return nil
	case string:
		return f.UnmarshalParam(x)
	default:
		return errors.New("age must be a number")
	}
}

// UnmarshalParam implements binding.BindUnmarshaler for form values.
func (f *flexInt) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		return nil
	}
	n, err := strconv.Atoi(param)
	if err != nil {
		return errors.New("age must be a whole number")
	}
	f.n, f.set = n, true
	return nil
}
