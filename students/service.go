package students

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonwraymond/studentops/apiclient"
	"github.com/jonwraymond/studentops/observe"
)

// API is the subset of *apiclient.Client the service needs.
type API interface {
	Get(ctx context.Context, path, operation string) apiclient.CallResult
	PostJSON(ctx context.Context, path, operation string, body any) apiclient.CallResult
}

// Endpoints are the student API paths relative to the base URL.
type Endpoints struct {
	Create  string
	Ages    string
	Details string
}

// DefaultEndpoints returns the paths served by the student API.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Create:  "/pozos/api/v1.0/students",
		Ages:    "/pozos/api/v1.0/get_student_ages",
		Details: "/pozos/api/v1.0/students",
	}
}

// Age bounds accepted by Create.
const (
	MinAge = 1
	MaxAge = 120
)

type createRequest struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"gte=1,lte=120"`
}

// Option configures a Service.
type Option func(*Service)

// WithEndpoints overrides the API paths.
func WithEndpoints(e Endpoints) Option {
	return func(s *Service) { s.endpoints = e }
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(l observe.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// Service performs student operations. It is safe for concurrent use.
type Service struct {
	api       API
	endpoints Endpoints
	logger    observe.Logger
	validate  *validator.Validate
}

// NewService creates a Service backed by api.
func NewService(api API, opts ...Option) *Service {
	s := &Service{
		api:       api,
		endpoints: DefaultEndpoints(),
		logger:    observe.NewNopLogger(),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a student. The name is trimmed; name and age are
// validated before any call is made.
func (s *Service) Create(ctx context.Context, name string, age int) (Created, error) {
	req := createRequest{Name: strings.TrimSpace(name), Age: age}
	if err := s.validateCreate(req); err != nil {
		s.logger.Debug(ctx, "student rejected", observe.F("error", err))
		return Created{}, err
	}

	res := s.api.PostJSON(ctx, s.endpoints.Create, "create_student", req)
	switch res.Kind() {
	case apiclient.KindTransportFailure:
		return Created{}, s.fail(ctx, "create_student", MsgConnectFailed, res)
	case apiclient.KindDecodeFailure:
		return Created{}, s.fail(ctx, "create_student", MsgCreateFailed, res)
	}

	created, err := res.Payload().StringField("name")
	if err != nil {
		apiErr := &APIError{
			Op:          "create_student",
			UserMessage: MsgCreateFailed,
			Detail:      apiErrorDetail(res.Payload()),
			Err:         err,
		}
		s.logger.Warn(ctx, "student not created", observe.F("status", res.StatusCode), observe.F("error", apiErr))
		return Created{}, apiErr
	}

	s.logger.Info(ctx, "student created", observe.F("name", created))
	return Created{Name: created, Message: fmt.Sprintf(msgCreatedPattern, created)}, nil
}

func (s *Service) validateCreate(req createRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: strings.ToLower(fe.Field()), Reason: describe(fe)}
	}
	return &ValidationError{Field: "input", Reason: err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}

// List returns every student's age keyed by name. A payload without a
// student_ages field yields an empty map.
func (s *Service) List(ctx context.Context) (map[string]int, error) {
	res := s.api.Get(ctx, s.endpoints.Ages, "list_student_ages")
	if err := s.checkResult(ctx, "list_student_ages", res); err != nil {
		return nil, err
	}

	ages := make(map[string]int)
	field, ok := res.Payload().Field("student_ages")
	if !ok || field.IsNull() {
		return ages, nil
	}
	entries, err := field.AsObject()
	if err != nil {
		return nil, s.malformed(ctx, "list_student_ages", res, err)
	}
	for name, v := range entries {
		age, err := v.AsInt()
		if err != nil {
			return nil, s.malformed(ctx, "list_student_ages", res, fmt.Errorf("age of %q: %w", name, err))
		}
		ages[name] = age
	}
	return ages, nil
}

// Details returns full student records.
func (s *Service) Details(ctx context.Context) (Roster, error) {
	res := s.api.Get(ctx, s.endpoints.Details, "list_students")
	if err := s.checkResult(ctx, "list_students", res); err != nil {
		return Roster{}, err
	}

	field, err := res.Payload().Require("students")
	if err != nil {
		return Roster{}, s.malformed(ctx, "list_students", res, err)
	}
	items, err := field.AsArray()
	if err != nil {
		return Roster{}, s.malformed(ctx, "list_students", res, err)
	}

	roster := Roster{Students: make([]Student, 0, len(items))}
	for i, item := range items {
		st, err := decodeStudent(item)
		if err != nil {
			return Roster{}, s.malformed(ctx, "list_students", res, fmt.Errorf("student %d: %w", i, err))
		}
		roster.Students = append(roster.Students, st)
	}

	roster.Count = len(roster.Students)
	if c, ok := res.Payload().Field("count"); ok {
		if n, err := c.AsInt(); err == nil {
			roster.Count = n
		}
	}
	return roster, nil
}

func (s *Service) checkResult(ctx context.Context, op string, res apiclient.CallResult) error {
	switch res.Kind() {
	case apiclient.KindSuccess:
		return nil
	case apiclient.KindDecodeFailure:
		return s.fail(ctx, op, MsgInvalidJSON, res)
	default:
		return s.fail(ctx, op, MsgConnectFailed, res)
	}
}

func (s *Service) fail(ctx context.Context, op, msg string, res apiclient.CallResult) error {
	err := &APIError{Op: op, UserMessage: msg, Err: res.Err()}
	s.logger.Warn(ctx, "student api call failed",
		observe.F("operation", op),
		observe.F("kind", res.Kind().String()),
		observe.F("error", err),
	)
	return err
}

func (s *Service) malformed(ctx context.Context, op string, res apiclient.CallResult, cause error) error {
	err := &APIError{
		Op:          op,
		UserMessage: MsgInvalidJSON,
		Detail:      apiErrorDetail(res.Payload()),
		Err:         cause,
	}
	s.logger.Warn(ctx, "unexpected student api payload",
		observe.F("operation", op),
		observe.F("status", res.StatusCode),
		observe.F("error", err),
	)
	return err
}

// apiErrorDetail extracts the API's {"error": "..."} message, if present.
func apiErrorDetail(v apiclient.Value) string {
	msg, err := v.StringField("error")
	if err != nil {
		return ""
	}
	return msg
}
