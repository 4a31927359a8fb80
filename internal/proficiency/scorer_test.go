package proficiency

import (
	"errors"
	"math"
	"testing"

	"github.com/abhisek/studycore/internal/errs"
)

func threeQuestionCatalog() []Question {
	return []Question{
		{ID: "q1", Tier: TierNovice, Points: 10, CorrectOptionIndex: 0},
		{ID: "q2", Tier: TierIntermediate, Points: 10, CorrectOptionIndex: 2},
		{ID: "q3", Tier: TierProfessional, Points: 10, CorrectOptionIndex: 1},
	}
}

func TestScore_TwoOfThree(t *testing.T) {
	responses := []Response{
		{QuestionID: "q1", SelectedOptionIndex: 0},
		{QuestionID: "q2", SelectedOptionIndex: 1},
		{QuestionID: "q3", SelectedOptionIndex: 1},
	}
	res, err := Score(responses, threeQuestionCatalog())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(res.Percentage-66.67) > 0.01 {
		t.Errorf("Percentage = %.4f, want ~66.67", res.Percentage)
	}
	if res.Tier != TierAdvanced {
		t.Errorf("Tier = %v, want advanced", res.Tier)
	}
}

func TestScore_WeightedPoints(t *testing.T) {
	catalog := []Question{
		{ID: "a", Points: 1, CorrectOptionIndex: 0},
		{ID: "b", Points: 3, CorrectOptionIndex: 0},
	}
	res, err := Score([]Response{{QuestionID: "b", SelectedOptionIndex: 0}}, catalog)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Percentage != 75 {
		t.Errorf("Percentage = %v, want 75", res.Percentage)
	}
}

func TestScore_EmptyCatalog(t *testing.T) {
	res, err := Score([]Response{{QuestionID: "q1"}}, nil)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Percentage != 0 || res.Tier != TierNovice {
		t.Errorf("got %+v, want 0%% novice", res)
	}
	if len(res.Ignored) != 1 || res.Ignored[0] != "q1" {
		t.Errorf("Ignored = %v, want [q1]", res.Ignored)
	}
}

func TestScore_UnknownQuestionIgnored(t *testing.T) {
	responses := []Response{
		{QuestionID: "q1", SelectedOptionIndex: 0},
		{QuestionID: "retired", SelectedOptionIndex: 0},
		{QuestionID: "q3", SelectedOptionIndex: 1},
		{QuestionID: "q2", SelectedOptionIndex: 2},
	}
	res, err := Score(responses, threeQuestionCatalog())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Percentage != 100 {
		t.Errorf("Percentage = %v, want 100", res.Percentage)
	}
	refs := res.UnknownReferences()
	if len(refs) != 1 || !errors.Is(refs[0], errs.ErrUnknownReference) {
		t.Errorf("UnknownReferences = %v", refs)
	}
}

func TestScore_OrderIndependent(t *testing.T) {
	catalog := threeQuestionCatalog()
	responses := []Response{
		{QuestionID: "x", SelectedOptionIndex: 0},
		{QuestionID: "q1", SelectedOptionIndex: 0},
		{QuestionID: "y", SelectedOptionIndex: 0},
		{QuestionID: "q3", SelectedOptionIndex: 1},
	}
	want, err := Score(responses, catalog)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	reversedResp := make([]Response, len(responses))
	for i, r := range responses {
		reversedResp[len(responses)-1-i] = r
	}
	reversedCat := []Question{catalog[2], catalog[0], catalog[1]}

	got, err := Score(reversedResp, reversedCat)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if got.Percentage != want.Percentage || got.Tier != want.Tier {
		t.Errorf("reordered = %+v, want %+v", got, want)
	}
	if len(got.Ignored) != 2 || got.Ignored[0] != "x" || got.Ignored[1] != "y" {
		t.Errorf("Ignored = %v, want [x y]", got.Ignored)
	}
}

func TestScore_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		responses []Response
		catalog   []Question
	}{
		{"zero points", nil, []Question{{ID: "a", Points: 0}}},
		{"missing id", nil, []Question{{Points: 1}}},
		{"duplicate catalog id", nil, []Question{{ID: "a", Points: 1}, {ID: "a", Points: 2}}},
		{"duplicate response", []Response{{QuestionID: "a"}, {QuestionID: "a"}}, []Question{{ID: "a", Points: 1}}},
		{"empty response id", []Response{{}}, []Question{{ID: "a", Points: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.responses, tt.catalog)
			if !errors.Is(err, errs.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
