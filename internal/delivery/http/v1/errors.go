package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"resume-analyzer-backend/internal/domain"
	"resume-analyzer-backend/pkg/apperror"
	"resume-analyzer-backend/pkg/validation"
)

// toAppError translates usecase errors into HTTP errors. Unknown errors are
// returned unchanged so ErrorHandler renders them as 500.
func toAppError(err error, maxUploadMB int64) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	document := domain.DocumentResume
	reason := ""
	var docErr *domain.DocumentError
	if errors.As(err, &docErr) {
		document = docErr.Document
		reason = docErr.Reason
	}

	switch {
	case errors.Is(err, domain.ErrMissingDocument):
		return apperror.BadRequest("Both resume and job description files are required.")
	case errors.Is(err, domain.ErrMissingEmail):
		return apperror.BadRequest("Recipient email is required.")
	case errors.Is(err, domain.ErrPayloadTooLarge):
		return apperror.PayloadTooLarge(maxUploadMB)
	case errors.Is(err, domain.ErrInfectedDocument):
		return apperror.UnprocessableEntity(fmt.Sprintf("The %s file was rejected by the malware scan.", document), err)
	case errors.Is(err, domain.ErrInvalidDocument):
		msg := fmt.Sprintf("The %s file is not a supported document.", document)
		if reason != "" {
			msg = fmt.Sprintf("The %s file was rejected: %s.", document, reason)
		}
		return apperror.UnsupportedMediaType(msg, err)
	case errors.Is(err, domain.ErrBlankResume):
		return apperror.UnprocessableEntity("Could not read text from the resume PDF.", err)
	case errors.Is(err, domain.ErrExtraction):
		return apperror.UnprocessableEntity(fmt.Sprintf("Could not read text from the %s.", document), err)
	case errors.Is(err, domain.ErrEmailNotConfigured):
		return apperror.ServiceUnavailable("Email service temporarily unavailable")
	case errors.Is(err, domain.ErrDeliveryFailed):
		return apperror.BadGateway("Failed to send report email. Please try again later.", err)
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return apperror.New(http.StatusBadRequest, err.Error()+" (use xlsx or csv)", err)
	}
	return err
}

// bindError translates request decoding failures.
func bindError(err error, maxUploadMB int64) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperror.PayloadTooLarge(maxUploadMB)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return apperror.BadRequest("Invalid request body").WithDetails(validation.FormatValidationErrors(err))
	}
	return apperror.New(http.StatusBadRequest, "Invalid request body", err)
}
