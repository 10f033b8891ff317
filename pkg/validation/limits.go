package validation

import (
	"fmt"
	"unicode/utf8"

	dErrors "govos/pkg/domain-errors"
)

// HTTP body limits
const (
	// MaxBodySize is the maximum allowed request body size (64 KB).
	MaxBodySize = 64 * 1024
)

// Slice element count limits
const (
	// MaxSelectedRecords bounds the history records a single document may carry.
	MaxSelectedRecords = 64

	// MaxExcelCellsPerUpdate bounds one spreadsheet edit batch.
	MaxExcelCellsPerUpdate = 75
)

// String element length limits, counted in runes since most input is Korean.
const (
	// MaxChatLength is the maximum length of one messenger line.
	MaxChatLength = 500

	// MaxFieldLength is the maximum length of a portal form field.
	MaxFieldLength = 200

	// MaxMailReplyLength is the maximum length of a mail reply body.
	MaxMailReplyLength = 2000

	// MaxExcelCellLength is the maximum length of a spreadsheet cell.
	MaxExcelCellLength = 100
)

// CheckSliceCount rejects batches larger than max.
func CheckSliceCount(fieldName string, count, max int) error {
	if count > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("too many %s: max %d allowed", fieldName, max))
	}
	return nil
}

// CheckStringLength rejects text longer than max runes.
func CheckStringLength(fieldName, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max length of %d", fieldName, max))
	}
	return nil
}
