// Package handlers implements the request handlers of the annotator API.
package handlers

import (
	"encoding/json"

	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/clonobrowser/annotator/pkg/compiler"
	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/clonobrowser/annotator/pkg/rendering"
	"github.com/clonobrowser/annotator/pkg/uifilter"
	"github.com/clonobrowser/annotator/pkg/validation"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Server holds the dependencies of the request handlers
type Server struct {
	compiler compiler.Service
	engine   *rendering.TemplateEngine
	log      logrus.FieldLogger
}

// NewServer creates a new API server instance
func NewServer(compilerService compiler.Service, engine *rendering.TemplateEngine, log logrus.FieldLogger) *Server {
	return &Server{
		compiler: compilerService,
		engine:   engine,
		log:      log.WithField("component", "api.handlers"),
	}
}

// RegisterHandlers mounts every handler on router
func RegisterHandlers(router fiber.Router, s *Server) {
	router.Post("/compile", s.Compile)
	router.Post("/parse", s.Parse)
	router.Post("/validate", s.Validate)
	router.Post("/describe", s.Describe)
	router.Post("/resolve", s.Resolve)
	router.Post("/columns/derive", s.DeriveColumn)
	router.Get("/operators", s.ListOperators)
}

// CompileResponse is returned by POST /compile
type CompileResponse struct {
	Script     filter.Script      `json:"script"`
	Digest     string             `json:"digest"`
	Cached     bool               `json:"cached"`
	Validation ValidationResponse `json:"validation"`
}

// ValidationResponse is returned by POST /validate
type ValidationResponse struct {
	Valid        bool     `json:"valid"`
	Reason       string   `json:"reason"`
	TwoAxisSteps []int    `json:"twoAxisSteps"`
	Errors       []string `json:"errors,omitempty"`
}

func newValidationResponse(result validation.Result) ValidationResponse {
	resp := ValidationResponse{
		Valid:        result.Valid,
		Reason:       result.Reason,
		TwoAxisSteps: result.TwoAxisSteps,
	}

	if resp.TwoAxisSteps == nil {
		resp.TwoAxisSteps = []int{}
	}

	for _, err := range result.Errors {
		resp.Errors = append(resp.Errors, err.Error())
	}

	return resp
}

// Compile handles POST /api/v1/compile
func (s *Server) Compile(c fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return ErrEmptyBody
	}

	script, err := uifilter.UnmarshalScript(body)
	if err != nil {
		return toHTTPError(err)
	}

	compiled, err := s.compiler.Compile(c.Context(), script)
	if err != nil {
		return toHTTPError(err)
	}

	result := s.compiler.Validate(c.Context(), compiled.Script)

	return c.Status(fiber.StatusOK).JSON(CompileResponse{
		Script:     compiled.Script,
		Digest:     compiled.Digest,
		Cached:     compiled.Cached,
		Validation: newValidationResponse(result),
	})
}

// Parse handles POST /api/v1/parse
func (s *Server) Parse(c fiber.Ctx) error {
	script, err := s.canonicalScript(c)
	if err != nil {
		return err
	}

	parsed, err := s.compiler.Parse(c.Context(), script)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(parsed)
}

// Validate handles POST /api/v1/validate
func (s *Server) Validate(c fiber.Ctx) error {
	script, err := s.canonicalScript(c)
	if err != nil {
		return err
	}

	result := s.compiler.Validate(c.Context(), script)

	return c.Status(fiber.StatusOK).JSON(newValidationResponse(result))
}

// Describe handles POST /api/v1/describe. With ?format=text the report is
// rendered as plain text.
func (s *Server) Describe(c fiber.Ctx) error {
	format := c.Query("format", "json")
	if format != "json" && format != "text" {
		return ErrUnknownFormat
	}

	script, err := s.canonicalScript(c)
	if err != nil {
		return err
	}

	report, err := s.compiler.Describe(c.Context(), script, uifilter.ColumnLabel)
	if err != nil {
		return toHTTPError(err)
	}

	if format == "json" {
		return c.Status(fiber.StatusOK).JSON(report)
	}

	text, err := s.engine.RenderReport("", report)
	if err != nil {
		s.log.WithError(err).Error("Failed to render report")
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.Status(fiber.StatusOK).SendString(text)
}

// ResolveRequest is accepted by POST /resolve
type ResolveRequest struct {
	Script  json.RawMessage `json:"script"`
	Matched []int           `json:"matched"`
}

// Resolve handles POST /api/v1/resolve. Matched lists the indexes of the
// steps a record satisfied; the response is the label it receives.
func (s *Server) Resolve(c fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return ErrEmptyBody
	}

	var req ResolveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return toHTTPError(err)
	}

	if len(req.Script) == 0 {
		return ErrEmptyBody
	}

	script, err := filter.UnmarshalScript(req.Script)
	if err != nil {
		return toHTTPError(err)
	}

	resolution, err := compiler.Resolve(script, req.Matched)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(resolution)
}

// DeriveColumn handles POST /api/v1/columns/derive
func (s *Server) DeriveColumn(c fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return ErrEmptyBody
	}

	var req compiler.ColumnRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return toHTTPError(err)
	}

	derived, err := compiler.DeriveColumn(req)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(derived)
}

// ListOperators handles GET /api/v1/operators. ?valueType= narrows the list
// to the operators applicable to a column of that type.
func (s *Server) ListOperators(c fiber.Ctx) error {
	operators := uifilter.Catalog()

	if vt := column.ValueType(c.Query("valueType")); vt != "" {
		if !vt.IsNumeric() && !vt.IsString() {
			return ErrUnknownValueType
		}

		operators = uifilter.OptionsFor(vt)
	}

	return c.Status(fiber.StatusOK).JSON(map[string]interface{}{
		"operators": operators,
		"total":     len(operators),
	})
}

func (s *Server) canonicalScript(c fiber.Ctx) (filter.Script, error) {
	body := c.Body()
	if len(body) == 0 {
		return filter.Script{}, ErrEmptyBody
	}

	script, err := filter.UnmarshalScript(body)
	if err != nil {
		return filter.Script{}, toHTTPError(err)
	}

	return script, nil
}
