package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"leadroll/pkg/cache"
	"leadroll/pkg/logger"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

// JSONGenerator is the model surface the import and ranking paths call.
// Implementations must return the raw response text of a JSON-constrained
// generation, or an error when no usable response was produced.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

// ErrMappingFailed marks a column-mapping inference failure. An import that
// hits it fails atomically before any row is touched, and callers can report
// it separately from an insert failure.
var ErrMappingFailed = errors.New("column mapping inference failed")

// ColumnMapping maps each canonical rent-roll field to the raw CSV header
// that supplies it, or nil when no header matches. Computed once per import,
// never persisted.
type ColumnMapping struct {
	Address        *string `json:"address"`
	Property       *string `json:"property"`
	Unit           *string `json:"unit"`
	Tenant         *string `json:"tenant"`
	LeaseStart     *string `json:"lease_start"`
	LeaseEnd       *string `json:"lease_end"`
	Sqft           *string `json:"sqft"`
	MonthlyPayment *string `json:"monthly_payment"`
}

// columnMappingSchemaJSON validates the model response: all 8 keys present,
// each a string or null, nothing else. Fail closed on any mismatch; malformed
// model output is never repaired.
const columnMappingSchemaJSON = `{
	"type": "object",
	"properties": {
		"address": {"type": ["string", "null"]},
		"property": {"type": ["string", "null"]},
		"unit": {"type": ["string", "null"]},
		"tenant": {"type": ["string", "null"]},
		"lease_start": {"type": ["string", "null"]},
		"lease_end": {"type": ["string", "null"]},
		"sqft": {"type": ["string", "null"]},
		"monthly_payment": {"type": ["string", "null"]}
	},
	"required": ["address", "property", "unit", "tenant", "lease_start", "lease_end", "sqft", "monthly_payment"],
	"additionalProperties": false
}`

// columnMappingResponseSchema constrains the generation on the model side
var columnMappingResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"address":         {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"property":        {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"unit":            {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"tenant":          {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"lease_start":     {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"lease_end":       {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"sqft":            {Type: genai.TypeString, Nullable: genai.Ptr(true)},
		"monthly_payment": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
	},
	Required: []string{"address", "property", "unit", "tenant", "lease_start", "lease_end", "sqft", "monthly_payment"},
}

const mappingCacheTTL = 24 * time.Hour

// ColumnMapperService infers a ColumnMapping for a set of raw CSV headers
// with the model as oracle. Mappings for a given header set are cached in
// Redis so repeated imports of the same source format skip the model call.
type ColumnMapperService struct {
	llm      JSONGenerator
	mapCache *cache.RedisCache
}

func NewColumnMapperService(llm JSONGenerator, mapCache *cache.RedisCache) *ColumnMapperService {
	return &ColumnMapperService{
		llm:      llm,
		mapCache: mapCache,
	}
}

// MapColumns resolves the raw headers of an uploaded CSV to a full
// ColumnMapping, or returns ErrMappingFailed
func (s *ColumnMapperService) MapColumns(ctx context.Context, headers []string) (*ColumnMapping, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no headers supplied", ErrMappingFailed)
	}

	if mapping := s.fromCache(ctx, headers); mapping != nil {
		return mapping, nil
	}

	if s.llm == nil {
		return nil, fmt.Errorf("%w: no model client configured", ErrMappingFailed)
	}

	text, err := s.llm.GenerateJSON(ctx, buildMappingPrompt(headers), columnMappingResponseSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingFailed, err)
	}

	mapping, err := parseColumnMapping(text)
	if err != nil {
		logger.GetLogger().Errorf("Incorrect mapping supplied by model: %s", text)
		return nil, err
	}

	s.toCache(ctx, headers, mapping)
	return mapping, nil
}

func buildMappingPrompt(headers []string) string {
	return fmt.Sprintf(`Given the following raw CSV column headers, produce a JSON object mapping each
raw column name to the appropriate standardized column name.

%s

Only return valid JSON that matches the provided schema. If an appropriate header does not exist
in the CSV headers that matches the desired schema, use null.`, strings.Join(headers, ", "))
}

// parseColumnMapping validates the response text against the mapping schema
// and decodes it
func parseColumnMapping(text string) (*ColumnMapping, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(columnMappingSchemaJSON),
		gojsonschema.NewStringLoader(text),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingFailed, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: response does not match mapping schema", ErrMappingFailed)
	}

	var mapping ColumnMapping
	if err := json.Unmarshal([]byte(text), &mapping); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMappingFailed, err)
	}
	return &mapping, nil
}

// headersCacheKey derives a stable cache key from the header set,
// independent of column order
func headersCacheKey(headers []string) string {
	sorted := make([]string, len(headers))
	copy(sorted, headers)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "\x00")))
	return "colmap:" + hex.EncodeToString(sum[:])
}

func (s *ColumnMapperService) fromCache(ctx context.Context, headers []string) *ColumnMapping {
	if s.mapCache == nil {
		return nil
	}
	value, err := s.mapCache.Get(ctx, headersCacheKey(headers))
	if err != nil {
		if !cache.IsMiss(err) {
			logger.GetLogger().Warnf("Column mapping cache read failed: %v", err)
		}
		return nil
	}
	mapping, err := parseColumnMapping(value)
	if err != nil {
		logger.GetLogger().Warnf("Discarding malformed cached column mapping: %v", err)
		return nil
	}
	return mapping
}

func (s *ColumnMapperService) toCache(ctx context.Context, headers []string, mapping *ColumnMapping) {
	if s.mapCache == nil {
		return
	}
	data, err := json.Marshal(mapping)
	if err != nil {
		return
	}
	if err := s.mapCache.Set(ctx, headersCacheKey(headers), string(data), mappingCacheTTL); err != nil {
		logger.GetLogger().Warnf("Column mapping cache write failed: %v", err)
	}
}
