package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", "2024-02-29"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", "2023-02-29", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"09:00", "17:30:15", "00:00", "23:59:59"}
	invalid := []string{"24:00", "9:00", "09:60", "09:00:60", "0900", ""}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.Error()
	want := "email: invalid; phone: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "invalid"},
		{Field: "phone", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"email": "invalid", "phone": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestDateRange(t *testing.T) {
	start, end, errs := DateRange("2024-01-01", "2024-01-31")
	require.Empty(t, errs)
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, 31, end.Day())

	start, end, errs = DateRange("2024-01-31", "2024-01-01")
	require.Empty(t, errs, "order is left to the caller")
	assert.True(t, end.Before(start))

	_, _, errs = DateRange("2024-01-01", "31-01-2024")
	require.Len(t, errs, 1)
	assert.Equal(t, "end_date", errs[0].Field)
}

type bulkItem struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	Status     string `json:"status" validate:"required,oneof=Present Absent"`
}

type bulkRequest struct {
	Date    string     `json:"date" validate:"required,datetime=2006-01-02"`
	Email   string     `json:"email,omitempty" validate:"omitempty,email"`
	Records []bulkItem `json:"records" validate:"required,min=1,dive"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := bulkRequest{
			Date:    "2024-03-01",
			Records: []bulkItem{{EmployeeID: "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", Status: "Present"}},
		}
		assert.NoError(t, Struct(req))
	})

	t.Run("field paths use json names", func(t *testing.T) {
		req := bulkRequest{
			Date:  "03/01/2024",
			Email: "nope",
			Records: []bulkItem{
				{EmployeeID: "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", Status: "Present"},
				{EmployeeID: "x", Status: "Sleeping"},
			},
		}
		err := Struct(req)
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		m := verrs.ToMap()
		assert.Equal(t, "must be a date in YYYY-MM-DD format", m["date"])
		assert.Equal(t, "must be a valid email", m["email"])
		assert.Equal(t, "must be a valid UUID", m["records[1].employee_id"])
		assert.Equal(t, "must be one of: Present Absent", m["records[1].status"])
	})
}

func TestMerge(t *testing.T) {
	errs := ValidationErrors{{Field: "a", Message: "x"}}

	merged, err := Merge(errs, ValidationErrors{{Field: "b", Message: "y"}})
	require.NoError(t, err)
	assert.Len(t, merged, 2)

	merged, err = Merge(errs, nil)
	require.NoError(t, err)
	assert.Len(t, merged, 1)
}
