package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"leadroll/internal/database"
	"leadroll/internal/models"
	"leadroll/pkg/logger"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

var (
	// ErrNoBracket means no input lead carries an employee-count bracket,
	// so no seniority table can be selected
	ErrNoBracket = errors.New("no lead with employee count")
	// ErrNoUsableResponse means the model produced no response that passes
	// the ranking schema
	ErrNoUsableResponse = errors.New("no usable ranking response")
)

// RankOutcome distinguishes a ranking run that assigned ranks from one where
// the model answered but could not order any lead
type RankOutcome int

const (
	OutcomeRanked RankOutcome = iota
	OutcomeNoRankable
)

const rankingSchemaJSON = `{"type": "array", "items": {"type": "integer"}}`

var rankingResponseSchema = &genai.Schema{
	Type:  genai.TypeArray,
	Items: &genai.Schema{Type: genai.TypeInteger},
}

// LeadRankerService orders a batch of leads by job-title seniority with the
// model as oracle and persists the resulting rank values.
type LeadRankerService struct {
	db  *gorm.DB
	llm JSONGenerator
}

func NewLeadRankerService(llm JSONGenerator) *LeadRankerService {
	return &LeadRankerService{
		db:  database.GetDB(),
		llm: llm,
	}
}

// RankLeads ranks the given leads for one owner. The seniority table is
// selected from the first lead that carries a bracket; a batch spanning
// several brackets is ranked against that single table, so callers should
// partition by bracket first. Rank persistence is best effort per lead:
// an update failure is logged and skipped, the rest of the batch commits.
func (s *LeadRankerService) RankLeads(ctx context.Context, userID uint, leads []models.Lead) (RankOutcome, error) {
	bracket := firstBracket(leads)
	if bracket == "" {
		return 0, ErrNoBracket
	}
	table, ok := SeniorityTable(bracket)
	if !ok {
		return 0, fmt.Errorf("%w: unknown bracket %q", ErrNoBracket, bracket)
	}

	if s.llm == nil {
		return 0, fmt.Errorf("%w: no model client configured", ErrNoUsableResponse)
	}

	prompt, err := buildRankingPrompt(leads, table)
	if err != nil {
		return 0, err
	}

	text, err := s.llm.GenerateJSON(ctx, prompt, rankingResponseSchema)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoUsableResponse, err)
	}

	ranking, err := parseRanking(text)
	if err != nil {
		logger.GetLogger().Errorf("Malformed ranking supplied by model: %s", text)
		return 0, err
	}

	if len(ranking) == 0 {
		return OutcomeNoRankable, nil
	}

	s.persistRanks(userID, rankByID(leads, ranking))
	return OutcomeRanked, nil
}

// firstBracket returns the employee bracket of the first lead that has one
func firstBracket(leads []models.Lead) string {
	for _, lead := range leads {
		if lead.Employees != nil && *lead.Employees != "" {
			return *lead.Employees
		}
	}
	return ""
}

func buildRankingPrompt(leads []models.Lead, table map[string]int) (string, error) {
	leadsJSON, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return "", err
	}
	tableJSON, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Please rank the following leads:

%s

Use the following ranking of titles to help with ranking the leads:

%s

Where 1 represents the highest rank, and the highest number represents the lowest rank.

If a lead's position does not represent one of these titles, do not include them in the rankings.
The title does not have to exactly match, but should be more or less the same thing.

Example: "Head of Sales" and "VP of Sales" are interchangeable

Return ONLY a JSON array of lead ids where the order of the items in the array represents the ranking of the leads.

Do not return anything else.

Example:
[3, 4, 8, 2]

This example would represent the leads with ids 3, 4, 8, and 2 ranked in that order.`, leadsJSON, tableJSON), nil
}

// parseRanking validates the response text as an array of integer lead ids
func parseRanking(text string) ([]int64, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(rankingSchemaJSON),
		gojsonschema.NewStringLoader(text),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoUsableResponse, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: response does not match ranking schema", ErrNoUsableResponse)
	}

	var ranking []int64
	if err := json.Unmarshal([]byte(text), &ranking); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoUsableResponse, err)
	}
	return ranking, nil
}

// rankByID re-associates returned ids with their input leads, preserving
// ranking order. Ids not present in the input are dropped; a duplicate id is
// applied once, because the first occurrence consumes the lead.
func rankByID(leads []models.Lead, ranking []int64) []models.Lead {
	byID := make(map[int64]models.Lead, len(leads))
	for _, lead := range leads {
		byID[int64(lead.ID)] = lead
	}

	result := make([]models.Lead, 0, len(ranking))
	for _, id := range ranking {
		lead, ok := byID[id]
		if !ok {
			continue
		}
		result = append(result, lead)
		delete(byID, id)
	}
	return result
}

// persistRanks writes rank = position+1 for each ranked lead. Updates run
// concurrently and independently; there is no ordering guarantee and no
// atomicity across the batch.
func (s *LeadRankerService) persistRanks(userID uint, ranked []models.Lead) {
	var wg sync.WaitGroup
	for idx, lead := range ranked {
		wg.Add(1)
		go func(rank int, leadID uint) {
			defer wg.Done()
			err := s.db.Model(&models.Lead{}).
				Where("user_id = ? AND id = ?", userID, leadID).
				Update("rank", rank).Error
			if err != nil {
				logger.GetLogger().Warnf("Error updating rank of lead %d: %v", leadID, err)
			}
		}(idx+1, lead.ID)
	}
	wg.Wait()
}
