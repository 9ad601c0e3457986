// Marquee - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package validation provides request validation for the HTTP API using
go-playground/validator v10.

A single validator instance is shared by all handlers. It caches struct
metadata after the first call, so validating the same request type repeatedly
is cheap.

# Custom Tags

  - movieid: a catalog document id. Must not be blank and must not contain
    control characters or path separators.

# Error Format

ValidateStruct returns *RequestValidationError. ToAPIError converts it to the
VALIDATION_ERROR shape used in API responses:

	{
	    "code": "VALIDATION_ERROR",
	    "message": "Size must be at most 100",
	    "details": {"field": "Size", "tag": "max", "value": 500}
	}

When several fields fail, details.fields lists each failure.

# Usage

	type similarParams struct {
	    MovieID string `validate:"required,max=512,movieid"`
	    Size    int    `validate:"min=1,max=100"`
	}

	if verr := validation.ValidateStruct(&params); verr != nil {
	    apiErr := verr.ToAPIError()
	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
	    return
	}
*/
package validation
