// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package preprocessors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrorType represents different types of extraction errors
type ErrorType string

const (
	// File-related errors
	ErrorTypeFileAccess ErrorType = "file_access"
	ErrorTypeFileSize   ErrorType = "file_size"

	// Format-related errors
	ErrorTypeUnsupportedFormat ErrorType = "unsupported_format"
	ErrorTypeInvalidFormat     ErrorType = "invalid_format"

	// Processing-related errors
	ErrorTypeOpenFailed       ErrorType = "open_failed"
	ErrorTypeExtractionFailed ErrorType = "extraction_failed"

	// Context-related errors
	ErrorTypeCancelled ErrorType = "cancelled"

	ErrorTypeUnknown ErrorType = "unknown"
)

// ExtractionError is a document-level failure to produce page text
type ExtractionError struct {
	FilePath  string
	FileType  string
	ErrorType ErrorType
	Message   string
	Cause     error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	parts := []string{fmt.Sprintf("text extraction failed for %s", e.FilePath)}

	if e.FileType != "" {
		parts = append(parts, fmt.Sprintf("type=%s", e.FileType))
	}
	parts = append(parts, fmt.Sprintf("error=%s", e.ErrorType))
	if e.Message != "" {
		parts = append(parts, fmt.Sprintf("message=%s", e.Message))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Cause))
	}

	return strings.Join(parts, " ")
}

// Unwrap returns the underlying error
func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// NewExtractionError creates a new extraction error
func NewExtractionError(filePath, fileType string, errorType ErrorType, message string, cause error) *ExtractionError {
	return &ExtractionError{
		FilePath:  filePath,
		FileType:  fileType,
		ErrorType: errorType,
		Message:   message,
		Cause:     cause,
	}
}

// TypeOf returns the ErrorType carried by err, classifying untyped errors
func TypeOf(err error) ErrorType {
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr.ErrorType
	}
	return NewErrorClassifier().ClassifyError(err)
}

// ErrorClassifier classifies errors into appropriate types
type ErrorClassifier struct{}

// NewErrorClassifier creates a new error classifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// ClassifyError classifies an error into an appropriate ErrorType
func (ec *ErrorClassifier) ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrorTypeCancelled
	}
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
		return ErrorTypeFileAccess
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "no such file") || strings.Contains(errStr, "permission denied") {
		return ErrorTypeFileAccess
	}
	if strings.Contains(errStr, "file too large") || strings.Contains(errStr, "size limit") {
		return ErrorTypeFileSize
	}
	if strings.Contains(errStr, "unsupported") {
		return ErrorTypeUnsupportedFormat
	}
	if strings.Contains(errStr, "invalid format") || strings.Contains(errStr, "not a pdf") ||
		strings.Contains(errStr, "malformed") || strings.Contains(errStr, "corrupt") {
		return ErrorTypeInvalidFormat
	}
	if strings.Contains(errStr, "failed to extract") || strings.Contains(errStr, "extraction failed") {
		return ErrorTypeExtractionFailed
	}

	return ErrorTypeUnknown
}
