package pipeline

import (
	"math/rand"
	"testing"

	"runner-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(date, person, miles string) model.RawRow {
	return model.RawRow{"date": date, "person": person, "miles": miles}
}

var canonicalHeaders = []string{"date", "person", "miles"}

func TestValidateWellFormedRow(t *testing.T) {
	headers := []string{"Date", "Person", "Miles"}
	rows := []model.RawRow{{"Date": "2024-01-05", "Person": "Amy", "Miles": "3.1"}}

	result := Validate(rows, headers)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []model.Record{{Date: "2024-01-05", Person: "Amy", Miles: 3.1}}, result.Data)
}

func TestValidateHeaders(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		result := Validate([]model.RawRow{{"date": "2024-01-05", "miles": "3"}}, []string{"date", "miles"})

		assert.False(t, result.IsValid)
		assert.Empty(t, result.Data)
		assert.Equal(t, []model.ValidationError{{
			Row:     0,
			Field:   "headers",
			Message: "Missing required columns: person. Expected: date, person, miles",
		}}, result.Errors)
	})

	t.Run("several missing columns keep required order", func(t *testing.T) {
		result := Validate(nil, []string{"Miles", "notes"})

		require.Len(t, result.Errors, 1)
		assert.Equal(t, "Missing required columns: date, person. Expected: date, person, miles", result.Errors[0].Message)
	})

	t.Run("no headers", func(t *testing.T) {
		result := Validate(nil, nil)

		assert.False(t, result.IsValid)
		assert.Equal(t, []model.ValidationError{{Row: 0, Field: "headers", Message: "CSV file has no headers"}}, result.Errors)
	})

	t.Run("rows are not checked when headers fail", func(t *testing.T) {
		rows := []model.RawRow{{"date": "nope", "miles": "-1"}}
		result := Validate(rows, []string{"date", "miles"})

		require.Len(t, result.Errors, 1)
		assert.Equal(t, "headers", result.Errors[0].Field)
	})

	t.Run("headers are trimmed and case folded", func(t *testing.T) {
		headers := []string{" DATE ", "Person", "miles "}
		rows := []model.RawRow{{" DATE ": "2024-03-01", "Person": " Bo ", "miles ": "4"}}

		result := Validate(rows, headers)

		require.True(t, result.IsValid, "errors: %v", result.Errors)
		assert.Equal(t, []model.Record{{Date: "2024-03-01", Person: "Bo", Miles: 4}}, result.Data)
	})
}

func TestValidateFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		row  model.RawRow
		want []model.ValidationError
	}{
		{
			name: "invalid calendar date",
			row:  row("13/45/2024", "Bo", "5"),
			want: []model.ValidationError{{Row: 2, Field: "date", Message: `Invalid date format: "13/45/2024". Use YYYY-MM-DD or MM/DD/YYYY`}},
		},
		{
			name: "negative miles",
			row:  row("2024-01-05", "Cy", "-2"),
			want: []model.ValidationError{{Row: 2, Field: "miles", Message: "Miles cannot be negative: -2"}},
		},
		{
			name: "unrealistic miles",
			row:  row("2024-01-05", "Cy", "200.5"),
			want: []model.ValidationError{{Row: 2, Field: "miles", Message: "Miles value seems unrealistic: 200.5. Please verify."}},
		},
		{
			name: "non numeric miles",
			row:  row("2024-01-05", "Cy", "abc"),
			want: []model.ValidationError{{Row: 2, Field: "miles", Message: `Invalid miles value: "abc". Must be a number`}},
		},
		{
			name: "missing values in field order",
			row:  row(" ", "", ""),
			want: []model.ValidationError{
				{Row: 2, Field: "date", Message: "Date is required"},
				{Row: 2, Field: "person", Message: "Person name is required"},
				{Row: 2, Field: "miles", Message: "Miles value is required"},
			},
		},
		{
			name: "absent keys read as empty",
			row:  model.RawRow{"date": "2024-01-05"},
			want: []model.ValidationError{
				{Row: 2, Field: "person", Message: "Person name is required"},
				{Row: 2, Field: "miles", Message: "Miles value is required"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate([]model.RawRow{tt.row}, canonicalHeaders)

			assert.False(t, result.IsValid)
			assert.Empty(t, result.Data)
			assert.Equal(t, tt.want, result.Errors)
		})
	}
}

func TestValidateMilesLeadingNumber(t *testing.T) {
	tests := map[string]float64{
		"5 miles": 5,
		"3.5km":   3.5,
		" 7":      7,
		".5":      0.5,
		"200":     200,
		"0":       0,
		"1e2":     100,
	}
	for input, want := range tests {
		result := Validate([]model.RawRow{row("2024-01-05", "Amy", input)}, canonicalHeaders)

		require.True(t, result.IsValid, "%q: %v", input, result.Errors)
		assert.Equal(t, want, result.Data[0].Miles, input)
	}
}

func TestValidateNormalizesDates(t *testing.T) {
	rows := []model.RawRow{
		row("1/5/2024", "Amy", "1"),
		row("01/06/2024", "Amy", "1"),
		row("1-7-2024", "Amy", "1"),
		row("2024/1/8", "Amy", "1"),
	}

	result := Validate(rows, canonicalHeaders)

	require.True(t, result.IsValid, "errors: %v", result.Errors)
	dates := make([]string, 0, len(result.Data))
	for _, rec := range result.Data {
		dates = append(dates, rec.Date)
	}
	assert.Equal(t, []string{"2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08"}, dates)
}

func TestValidateFailClosed(t *testing.T) {
	rows := []model.RawRow{
		row("2024-01-05", "Amy", "3"),
		row("2024-01-06", "Bo", "oops"),
		row("2024-01-07", "Cy", "4"),
		row("2024-01-08", "", "5"),
	}

	result := Validate(rows, canonicalHeaders)

	assert.False(t, result.IsValid)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, 5, result.Errors[1].Row)
}

func TestValidateNoRows(t *testing.T) {
	result := Validate([]model.RawRow{}, canonicalHeaders)

	assert.False(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Data)
}

func TestValidateHeaderPermutations(t *testing.T) {
	values := map[string][3]string{
		"2024-01-05": {"2024-01-05", "Amy", "3.1"},
		"2024-01-06": {"01/06/2024", "Bo", "6"},
	}
	build := func(names [3]string) ([]model.RawRow, []string) {
		headers := []string{names[0], names[1], names[2]}
		var rows []model.RawRow
		for _, key := range []string{"2024-01-05", "2024-01-06"} {
			v := values[key]
			rows = append(rows, model.RawRow{names[0]: v[0], names[1]: v[1], names[2]: v[2]})
		}
		return rows, headers
	}

	want := Validate(build([3]string{"date", "person", "miles"})).Data
	require.Len(t, want, 2)

	rng := rand.New(rand.NewSource(1))
	variants := [][3]string{
		{"DATE", "PERSON", "MILES"},
		{"Date", "person", "Miles"},
		{"dAtE", "PeRsOn", "mIlEs"},
	}
	for _, names := range variants {
		rows, headers := build(names)
		rng.Shuffle(len(headers), func(i, j int) { headers[i], headers[j] = headers[j], headers[i] })

		got := Validate(rows, headers)
		assert.True(t, got.IsValid, "headers %v", headers)
		assert.Equal(t, want, got.Data, "headers %v", headers)
	}
}

func TestLookupFieldPrefersExactKey(t *testing.T) {
	headers := []string{"Person", "person"}
	r := model.RawRow{"Person": "Upper", "person": "lower"}

	assert.Equal(t, "lower", lookupField(r, headers, "person"))
	assert.Equal(t, "Upper", lookupField(model.RawRow{"Person": "Upper"}, headers, "person"))
	assert.Equal(t, "", lookupField(model.RawRow{}, headers, "miles"))
}

func TestValidateRowKeysDifferInCaseFromHeaders(t *testing.T) {
	rows := []model.RawRow{{"DATE": "2024-01-05", "PERSON": "x", "MILES": "1"}}

	result := Validate(rows, canonicalHeaders)

	require.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Equal(t, []model.Record{{Date: "2024-01-05", Person: "x", Miles: 1}}, result.Data)
}

func TestLookupFieldRowKeyFallbackIsDeterministic(t *testing.T) {
	r := model.RawRow{"Miles": "3", "MILES": "4", " miles ": "5"}

	for i := 0; i < 20; i++ {
		assert.Equal(t, "5", lookupField(r, nil, "miles"))
	}
}
