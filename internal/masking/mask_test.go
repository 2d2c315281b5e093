package masking

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propertyRecord() map[string]any {
	return map[string]any{
		"id":           float64(42),
		"street_num":   "1024",
		"street_name":  "Elm Street",
		"city":         "Austin",
		"state":        "TX",
		"zip":          "78701",
		"price":        float64(450000),
		"beds":         float64(3),
		"baths":        float64(2),
		"listing_date": "2024-05-17T00:00:00Z",
		"description":  "Charming bungalow with huge backyard",
		"est_value":    float64(512000),
	}
}

func TestMask_Property(t *testing.T) {
	rec := propertyRecord()
	masked := Mask(rec, SchemaProperty)

	// Чувствительные поля заменены по правилам.
	assert.Equal(t, "***", masked["street_num"])
	assert.Equal(t, "***", masked["street_name"])
	assert.Equal(t, "78***", masked["zip"])
	assert.Equal(t, "******", masked["price"])
	assert.Equal(t, "******", masked["est_value"])
	assert.Equal(t, "2024", masked["listing_date"])
	assert.Equal(t, UpsellText, masked["description"])

	// Публичные поля не изменились.
	assert.Equal(t, float64(42), masked["id"])
	assert.Equal(t, "Austin", masked["city"])
	assert.Equal(t, "TX", masked["state"])
	assert.Equal(t, float64(3), masked["beds"])

	// Синтетические поля присутствуют и детерминированы.
	assert.Equal(t, "medium", masked[FieldEquityRange])
	score, ok := masked[FieldLeadScore].(int)
	require.True(t, ok)
	assert.GreaterOrEqual(t, score, 0)
	assert.Less(t, score, 100)
	assert.Equal(t, LeadScore(float64(42)), score)
}

func TestMask_SensitiveNeverEqualsOriginal(t *testing.T) {
	records := map[Schema]map[string]any{
		SchemaProperty: propertyRecord(),
		SchemaAuction: {
			"id":           float64(7),
			"auction_id":   "AU-2024-0017",
			"auction_date": "2024-09-03T00:00:00Z",
			"opening_bid":  float64(125000),
			"courthouse":   "Travis County Courthouse",
			"trustee_name": "Meridian Trustee Services",
			"case_number":  "C-88341",
		},
		SchemaOwner: {
			"id":              float64(9),
			"first_name":      "Maria",
			"last_name":       "Ramirez",
			"mailing_address": "PO Box 112, Austin TX",
			"phone":           "5125550123",
			"email":           "maria@example.com",
			"owner_type":      "individual",
			"notes":           "Motivated seller",
		},
		SchemaLoan: {
			"id":               float64(4),
			"lender_name":      "Wells Fargo",
			"loan_amount":      float64(310000),
			"interest_rate":    float64(6.75),
			"origination_date": "2019-03-12T00:00:00Z",
			"loan_type":        "conventional",
			"position":         float64(1),
		},
	}

	for schema, rec := range records {
		masked := Mask(rec, schema)
		for field := range Rules(schema) {
			assert.NotEqual(t, rec[field], masked[field],
				"sensitive field %s of %s must change", field, schema)
		}
		for field, v := range rec {
			if _, sensitive := Rules(schema)[field]; !sensitive {
				assert.Equal(t, v, masked[field],
					"public field %s of %s must not change", field, schema)
			}
		}
	}
}

func TestMask_Idempotent(t *testing.T) {
	records := map[Schema]map[string]any{
		SchemaProperty: propertyRecord(),
		SchemaAuction: {
			"auction_id":   "AU-2024-0017",
			"auction_date": "2024-09-03T00:00:00Z",
			"opening_bid":  float64(125000),
			"case_number":  "C-88341",
			"trustee_name": "Meridian Trustee Services",
		},
		SchemaOwner: {
			"first_name": "Maria",
			"last_name":  "Ramirez",
			"phone":      "5125550123",
			"email":      "maria@example.com",
			"notes":      "Motivated seller",
		},
		SchemaLoan: {
			"lender_name":      "Wells Fargo",
			"loan_amount":      float64(310000),
			"interest_rate":    float64(6.75),
			"origination_date": "2019-03-12T00:00:00Z",
		},
	}

	for schema, rec := range records {
		once := Mask(rec, schema)
		twice := Mask(once, schema)
		assert.Equal(t, once, twice, "double masking of %s must be a no-op", schema)
	}
}

func TestMask_IdempotentShortValues(t *testing.T) {
	// Значения короче открытого префикса: "7" -> "7***", и повторное
	// маскирование не должно съедать звёздочку в префикс ("7****").
	rec := map[string]any{
		"street_num": "7",
		"zip":        "7",
	}
	once := Mask(rec, SchemaProperty)
	assert.Equal(t, "7***", once["zip"])

	twice := Mask(once, SchemaProperty)
	assert.Equal(t, once, twice)
}

func TestMask_PartialMultibytePrefix(t *testing.T) {
	rec := map[string]any{"zip": "łódź 90-001"}
	masked := Mask(rec, SchemaProperty)

	got, ok := masked["zip"].(string)
	require.True(t, ok)
	assert.Equal(t, "łó***", got)
	assert.True(t, utf8.ValidString(got))
}

func TestMask_DoesNotMutateInput(t *testing.T) {
	rec := propertyRecord()
	want := propertyRecord()

	_ = Mask(rec, SchemaProperty)

	assert.Equal(t, want, rec)
}

func TestMask_NumericWidth(t *testing.T) {
	rec := map[string]any{"street_num": "1", "price": float64(9)}
	masked := Mask(rec, SchemaProperty)
	assert.Equal(t, "*", masked["price"])

	rec["price"] = float64(1250000)
	masked = Mask(rec, SchemaProperty)
	assert.Equal(t, "*******", masked["price"])
}

func TestLeadScore_Deterministic(t *testing.T) {
	first := LeadScore("42")
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, LeadScore("42"))
	}
	// Разные идентификаторы в общем случае дают разные оценки.
	assert.NotEqual(t, LeadScore("42"), LeadScore("43"))
}

func TestTransform_Envelope(t *testing.T) {
	payload := map[string]any{
		"status": "OK",
		"data": map[string]any{
			"list_count": float64(1),
			"properties": []any{propertyRecord()},
		},
	}

	out, counts := Transform(payload)
	require.Equal(t, 1, counts[SchemaProperty])

	data := out.(map[string]any)["data"].(map[string]any)
	props := data["properties"].([]any)
	masked := props[0].(map[string]any)
	assert.Equal(t, "***", masked["street_num"])
	assert.Equal(t, "78***", masked["zip"])
	assert.Equal(t, float64(1), data["list_count"])
	assert.Equal(t, "OK", out.(map[string]any)["status"])
}

func TestTransform_UnrecognizedPassesThrough(t *testing.T) {
	payload := map[string]any{
		"status": "Error",
		"error":  "could not read property",
	}
	out, counts := Transform(payload)
	assert.Empty(t, counts)
	assert.Equal(t, payload, out)
}
