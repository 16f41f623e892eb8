package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shareloop/rental-backend/internal/pkg/apperror"
)

func TestParseStateFilter(t *testing.T) {
	cases := []struct {
		in   string
		want StateFilter
	}{
		{"ALL", FilterAll},
		{"CURRENT", FilterCurrent},
		{"PAST", FilterPast},
		{"FUTURE", FilterFuture},
		{"WAITING", FilterWaiting},
		{"REJECTED", FilterRejected},
		{"all", FilterAll},
		{"current", FilterCurrent},
		{"Rejected", FilterRejected},
		{"wAiTiNg", FilterWaiting},
	}

	for _, tc := range cases {
		got, err := ParseStateFilter(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseStateFilter_Invalid(t *testing.T) {
	for _, in := range []string{"", "SOMEDAY", "APPROVED ", "ALL "} {
		_, err := ParseStateFilter(in)
		require.Error(t, err, "input %q", in)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr), "input %q", in)
		assert.Equal(t, apperror.KindInvalidRequest, appErr.Kind)
		assert.Equal(t, ReasonBadStateFilter, appErr.Reason)
		// The message names the accepted values so the client can fix the call.
		assert.Contains(t, appErr.Message, "ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED")
	}
}
