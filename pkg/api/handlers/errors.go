package handlers

import (
	"encoding/json"
	"errors"

	"github.com/clonobrowser/annotator/pkg/column"
	"github.com/clonobrowser/annotator/pkg/compiler"
	"github.com/clonobrowser/annotator/pkg/filter"
	"github.com/clonobrowser/annotator/pkg/uifilter"
	"github.com/gofiber/fiber/v3"
)

// ErrEmptyBody is returned when a request carries no script
var ErrEmptyBody = fiber.NewError(fiber.StatusBadRequest, "request body must contain a script")

// ErrUnknownValueType is returned for an unknown valueType query parameter
var ErrUnknownValueType = fiber.NewError(fiber.StatusBadRequest, "unknown column value type, expected one of Int, Long, Float, Double, String")

// ErrUnknownFormat is returned for an unknown format query parameter
var ErrUnknownFormat = fiber.NewError(fiber.StatusBadRequest, "unknown format, expected json or text")

// toHTTPError maps domain errors onto HTTP errors. Scripts the editor cannot
// represent are well-formed, so they get 422 rather than 400.
func toHTTPError(err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return err
	}

	switch {
	case errors.Is(err, uifilter.ErrUnsupportedFilterShape):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, uifilter.ErrUnrecognizedFilterTag),
		errors.Is(err, filter.ErrUnrecognizedTag),
		errors.Is(err, filter.ErrConstantComparison),
		errors.Is(err, filter.ErrInvalidOperand),
		errors.Is(err, filter.ErrUnknownTransformer),
		errors.Is(err, filter.ErrUnknownPredicate),
		errors.Is(err, filter.ErrMissingFilter),
		errors.Is(err, filter.ErrMissingColumn),
		errors.Is(err, filter.ErrInvalidMode),
		errors.Is(err, filter.ErrInvalidFilterObject),
		errors.Is(err, uifilter.ErrMissingFilter),
		errors.Is(err, uifilter.ErrNonFiniteNumber),
		errors.Is(err, compiler.ErrStepOutOfRange),
		errors.Is(err, column.ErrEmptyColumnName),
		errors.Is(err, uifilter.ErrInvalidFilterObject):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fiber.NewError(fiber.StatusBadRequest, "malformed JSON: "+err.Error())
	}

	return err
}
