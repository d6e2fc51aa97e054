package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeGenerator is a canned JSONGenerator recording the last call
type fakeGenerator struct {
	text   string
	err    error
	calls  int
	prompt string
	schema *genai.Schema
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	f.calls++
	f.prompt = prompt
	f.schema = schema
	return f.text, f.err
}

const validMappingJSON = `{
	"address": "Street Address",
	"property": "Building",
	"unit": "Apt",
	"tenant": "Renter Name",
	"lease_start": "Start",
	"lease_end": "End",
	"sqft": null,
	"monthly_payment": "Rent"
}`

func TestParseColumnMappingValid(t *testing.T) {
	mapping, err := parseColumnMapping(validMappingJSON)
	require.NoError(t, err)
	require.NotNil(t, mapping.Address)
	assert.Equal(t, "Street Address", *mapping.Address)
	assert.Nil(t, mapping.Sqft)
	require.NotNil(t, mapping.MonthlyPayment)
	assert.Equal(t, "Rent", *mapping.MonthlyPayment)
}

func TestParseColumnMappingRejectsMissingKey(t *testing.T) {
	// monthly_payment absent
	_, err := parseColumnMapping(`{
		"address": null, "property": null, "unit": null, "tenant": null,
		"lease_start": null, "lease_end": null, "sqft": null
	}`)
	assert.ErrorIs(t, err, ErrMappingFailed)
}

func TestParseColumnMappingRejectsExtraKey(t *testing.T) {
	_, err := parseColumnMapping(`{
		"address": null, "property": null, "unit": null, "tenant": null,
		"lease_start": null, "lease_end": null, "sqft": null,
		"monthly_payment": null, "surprise": "x"
	}`)
	assert.ErrorIs(t, err, ErrMappingFailed)
}

func TestParseColumnMappingRejectsWrongType(t *testing.T) {
	_, err := parseColumnMapping(`{
		"address": 42, "property": null, "unit": null, "tenant": null,
		"lease_start": null, "lease_end": null, "sqft": null,
		"monthly_payment": null
	}`)
	assert.ErrorIs(t, err, ErrMappingFailed)
}

func TestParseColumnMappingRejectsNonJSON(t *testing.T) {
	_, err := parseColumnMapping("I could not find a mapping, sorry!")
	assert.ErrorIs(t, err, ErrMappingFailed)
}

func TestMapColumnsSuccess(t *testing.T) {
	llm := &fakeGenerator{text: validMappingJSON}
	svc := NewColumnMapperService(llm, nil)

	headers := []string{"Street Address", "Building", "Apt", "Renter Name", "Start", "End", "Rent"}
	mapping, err := svc.MapColumns(context.Background(), headers)
	require.NoError(t, err)
	require.NotNil(t, mapping.Tenant)
	assert.Equal(t, "Renter Name", *mapping.Tenant)

	// the prompt carries every raw header and the generation is
	// schema-constrained on the model side
	for _, header := range headers {
		assert.Contains(t, llm.prompt, header)
	}
	assert.Equal(t, columnMappingResponseSchema, llm.schema)
}

func TestMapColumnsModelFailure(t *testing.T) {
	llm := &fakeGenerator{err: errors.New("boom")}
	svc := NewColumnMapperService(llm, nil)

	_, err := svc.MapColumns(context.Background(), []string{"A"})
	assert.ErrorIs(t, err, ErrMappingFailed)
}

func TestMapColumnsMalformedResponse(t *testing.T) {
	llm := &fakeGenerator{text: `{"address": "x"}`}
	svc := NewColumnMapperService(llm, nil)

	_, err := svc.MapColumns(context.Background(), []string{"A"})
	assert.ErrorIs(t, err, ErrMappingFailed)
}

func TestMapColumnsNoHeaders(t *testing.T) {
	llm := &fakeGenerator{text: validMappingJSON}
	svc := NewColumnMapperService(llm, nil)

	_, err := svc.MapColumns(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMappingFailed)
	assert.Zero(t, llm.calls, "no model call for an empty header set")
}

func TestMapColumnsNoClient(t *testing.T) {
	svc := NewColumnMapperService(nil, nil)

	_, err := svc.MapColumns(context.Background(), []string{"A"})
	assert.ErrorIs(t, err, ErrMappingFailed)
}

func TestHeadersCacheKeyOrderIndependent(t *testing.T) {
	a := headersCacheKey([]string{"Unit", "Tenant", "Rent"})
	b := headersCacheKey([]string{"Rent", "Unit", "Tenant"})
	c := headersCacheKey([]string{"Rent", "Unit"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
