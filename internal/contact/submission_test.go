package contact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/agencysite/internal/foundation/errors"
)

func validSubmission() Submission {
	return Submission{
		Name:    "Dana Reyes",
		Email:   "dana@example.com",
		Company: "Reyes Bakery",
		Service: "SEO",
		Message: "We need help ranking for local searches.",
	}
}

func TestSubmission_IsSpam(t *testing.T) {
	require.False(t, validSubmission().IsSpam())

	for _, mutate := range []func(*Submission){
		func(s *Submission) { s.Website = "http://spam.example" },
		func(s *Submission) { s.PhoneNumber = "555" },
		func(s *Submission) { s.URLField = "x" },
	} {
		s := validSubmission()
		mutate(&s)
		require.True(t, s.IsSpam())
	}

	s := validSubmission()
	s.Website = "   "
	require.False(t, s.IsSpam())
}

func TestSubmission_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Submission)
		field  string
	}{
		{"missing name", func(s *Submission) { s.Name = "  " }, "name"},
		{"missing email", func(s *Submission) { s.Email = "" }, "email"},
		{"missing message", func(s *Submission) { s.Message = "\n" }, "message"},
		{"bad email", func(s *Submission) { s.Email = "dana@" }, "email"},
		{"display name email", func(s *Submission) { s.Email = "Dana <dana@example.com>" }, "email"},
		{"dotless domain", func(s *Submission) { s.Email = "dana@localhost" }, "email"},
		{"long name", func(s *Submission) { s.Name = strings.Repeat("a", 101) }, "name"},
		{"long message", func(s *Submission) { s.Message = strings.Repeat("é", 5001) }, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSubmission()
			tt.mutate(&s)

			err := s.Validate()
			require.Error(t, err)
			require.True(t, errors.HasCategory(err, errors.CategoryValidation))
			c, _ := errors.AsClassified(err)
			field, _ := c.Context().Get("field")
			require.Equal(t, tt.field, field)
		})
	}
}

func TestSubmission_ValidateAcceptsTrimmedInput(t *testing.T) {
	s := validSubmission()
	s.Email = "  dana@example.com "
	s.Message = strings.Repeat("é", 5000)
	require.NoError(t, s.Validate())
	require.Equal(t, "dana@example.com", s.Normalized().Email)
}
