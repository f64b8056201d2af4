// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Jawbreaker", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeGenericBadRequest, ae.Code)

				fields, ok := ae.Data.(map[string][]apperr.FieldError)
				require.True(t, ok)
				require.NotEmpty(t, fields["fields"])
				assert.Equal(t, tt.field, fields["fields"][0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "mod@pointercrate-rs.example", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "mod@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("name", "Bibi").
		MinLen("name", "Bibi", 3).
		MaxLen("name", "Bibi", 10).
		Email("email", "bibi@pointercrate-rs.example").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").           // Fails
		MinLen("name", "a", 5).         // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	fields, ok := ae.Data.(map[string][]apperr.FieldError)
	require.True(t, ok)
	assert.Len(t, fields["fields"], 3)
}

/*
TestValidator_Range tests inclusive boundary checking.
*/
func TestValidator_Range(t *testing.T) {
	v := &validate.Validator{}
	v.Range("progress", 100, 0, 100)
	v.Range("progress", 0, 0, 100)
	assert.False(t, v.HasErrors())

	v2 := &validate.Validator{}
	v2.Range("progress", 101, 0, 100)
	assert.True(t, v2.HasErrors())
}

/*
TestValidator_OneOf tests allowed-set membership checking.
*/
func TestValidator_OneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OneOf("status", "APPROVED", "APPROVED", "REJECTED", "SUBMITTED", "UNDER_CONSIDERATION")
	assert.False(t, v.HasErrors())

	v2 := &validate.Validator{}
	v2.OneOf("status", "BOGUS", "APPROVED", "REJECTED")
	assert.True(t, v2.HasErrors())
}
