package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var doc any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestValidateHistory_Valid(t *testing.T) {
	doc := decode(t, `{
		"days": [
			{"date": 1, "weekday": 1, "avg_engagement": 4.2, "post_count": 3, "views": 1200, "reactions": 51},
			{"date": 2, "weekday": 2}
		]
	}`)
	require.Nil(t, ValidateHistory(doc))
}

func TestValidateHistory_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing_days", `{}`},
		{"days_not_array", `{"days": 3}`},
		{"date_out_of_range", `{"days": [{"date": 32, "weekday": 1}]}`},
		{"weekday_out_of_range", `{"days": [{"date": 1, "weekday": 7}]}`},
		{"negative_views", `{"days": [{"date": 1, "weekday": 1, "views": -5}]}`},
		{"missing_date", `{"days": [{"weekday": 1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateHistory(decode(t, tt.raw))
			if len(errs) == 0 {
				t.Errorf("expected validation errors for %s", tt.raw)
			}
		})
	}
}

func TestValidateBestTimes(t *testing.T) {
	valid := decode(t, `{"best_times": {"1": ["09:00", "19:30"], "5": []}}`)
	require.Nil(t, ValidateBestTimes(valid))

	tests := []struct {
		name string
		raw  string
	}{
		{"bad_weekday_key", `{"best_times": {"9": ["09:00"]}}`},
		{"bad_time_format", `{"best_times": {"1": ["9am"]}}`},
		{"hour_out_of_range", `{"best_times": {"1": ["25:00"]}}`},
		{"missing_field", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateBestTimes(decode(t, tt.raw))
			if len(errs) == 0 {
				t.Errorf("expected validation errors for %s", tt.raw)
			}
		})
	}
}

func TestValidateStats(t *testing.T) {
	valid := decode(t, `{"subscribers": 15400, "posts_per_week": 5.5, "avg_views": 3200, "engagement_rate": 4.1}`)
	require.Nil(t, ValidateStats(valid))

	errs := ValidateStats(decode(t, `{"posts_per_week": 5.5}`))
	if len(errs) == 0 {
		t.Error("expected error for missing subscribers")
	}

	errs = ValidateStats(decode(t, `{"subscribers": -1}`))
	if len(errs) == 0 {
		t.Error("expected error for negative subscribers")
	}
}
