package service

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pdfmanager/internal/config"
)

const msgPositiveInt = "must be a positive integer"

var idRules = []validation.Rule{
	validation.Required.Error(msgPositiveInt),
	validation.Min(int64(1)).Error(msgPositiveInt),
}

// RenameRequest is the validated input of Rename. Label is a pointer so an
// omitted field can be told apart from a present one; it is still mandatory.
type RenameRequest struct {
	ID    int64   `json:"id"`
	Label *string `json:"label"`
}

// Validate checks the id and the label length (2 to 100 characters).
func (r RenameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, idRules...),
		validation.Field(&r.Label,
			validation.Required.Error("Label is required"),
			utf16Length(config.MinRenameLabelLength, config.MaxRenameLabelLength),
		),
	)
}

// utf16Length bounds a string by UTF-16 code units, so a character outside
// the Basic Multilingual Plane counts twice.
func utf16Length(min, max int) validation.Rule {
	return validation.By(func(value interface{}) error {
		iv, _ := validation.Indirect(value)
		v, ok := iv.(string)
		if !ok || v == "" {
			return nil
		}
		n := len(utf16.Encode([]rune(v)))
		if n < min || n > max {
			return validation.ErrLengthOutOfRange.SetParams(map[string]interface{}{"min": min, "max": max})
		}
		return nil
	})
}

// ValidateID checks that id is a positive integer.
func ValidateID(id int64) error {
	return validation.Errors{"id": validation.Validate(id, idRules...)}.Filter()
}

// ParseID converts a path parameter into a validated document id. Any
// numeric spelling of a whole number is accepted, so "7", " 7", "7.0" and
// "7e0" all give 7.
func ParseID(raw string) (int64, error) {
	notInt := validation.Errors{"id": validation.NewError("validation_id_not_integer", msgPositiveInt)}

	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, notInt
	}
	// float64(math.MaxInt64) rounds up to 2^63
	if f >= float64(math.MaxInt64) {
		return 0, notInt
	}
	id := int64(f)
	if err := ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// uploadRecord carries the values that end up in a new row.
type uploadRecord struct {
	Label     string `json:"label"`
	PDFPath   string `json:"file"`
	ThumbPath string `json:"thumbnail"`
}

func (u uploadRecord) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Label, validation.RuneLength(1, config.MaxLabelLength)),
		validation.Field(&u.PDFPath, validation.RuneLength(1, config.MaxPathLength).Error("file name is too long")),
		validation.Field(&u.ThumbPath, validation.RuneLength(1, config.MaxPathLength).Error("file name is too long")),
	)
}

// IsValidationError reports whether err came from input validation and
// should be answered with 400.
func IsValidationError(err error) bool {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return true
	}
	var e validation.Error
	return errors.As(err, &e)
}
