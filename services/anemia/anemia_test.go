package anemia

import (
	"errors"
	"gizi-go-worker/enums"
	"reflect"
	"testing"
)

func boolPtr(b bool) *bool { return &b }

// lowRisk 每題都回答不加分的答案
func lowRisk() Responses {
	r := Responses{}
	for _, q := range Questions {
		r[q.ID] = boolPtr(q.Reverse)
	}
	return r
}

func withScore(n int) Responses {
	r := lowRisk()
	for i := 0; i < n; i++ {
		q := Questions[i]
		r[q.ID] = boolPtr(!q.Reverse)
	}
	return r
}

func TestScore_Polarity(t *testing.T) {
	assessment, err := Score(lowRisk())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if assessment.Score != 0 {
		t.Fatalf("Expected score 0, got %d", assessment.Score)
	}

	for _, q := range Questions {
		t.Run(q.ID, func(t *testing.T) {
			r := lowRisk()
			r[q.ID] = boolPtr(!q.Reverse)
			got, err := Score(r)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got.Score != 1 {
				t.Errorf("Expected flipping %s to add exactly 1, got %d", q.ID, got.Score)
			}
		})
	}
}

func TestScore_ReversedQuestions(t *testing.T) {
	var reversed []string
	for _, q := range Questions {
		if q.Reverse {
			reversed = append(reversed, q.ID)
		}
	}
	if !reflect.DeepEqual(reversed, []string{"q8", "q9", "q10"}) {
		t.Errorf("unexpected reversed questions %v", reversed)
	}

	// 全部回答「是」: 8 題一般題加分，3 題保護因子不加分
	r := Responses{}
	for _, q := range Questions {
		r[q.ID] = boolPtr(true)
	}
	got, _ := Score(r)
	if got.Score != 8 {
		t.Errorf("Expected 8 for all-yes, got %d", got.Score)
	}
}

func TestScore_Tiers(t *testing.T) {
	cases := []struct {
		score int
		level string
		risk  bool
	}{
		{0, enums.RiskLow, false},
		{3, enums.RiskLow, false},
		{4, enums.RiskMedium, true},
		{7, enums.RiskMedium, true},
		{8, enums.RiskHigh, true},
		{11, enums.RiskHigh, true},
	}
	for _, c := range cases {
		got, err := Score(withScore(c.score))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Score != c.score || got.Level != c.level || got.Risk != c.risk {
			t.Errorf("score %d: got %+v", c.score, got)
		}
	}
}

func TestScore_Incomplete(t *testing.T) {
	r := lowRisk()
	delete(r, "q3")
	r["q10"] = nil

	_, err := Score(r)
	var incomplete *IncompleteResponseError
	if !errors.As(err, &incomplete) {
		t.Fatalf("Expected IncompleteResponseError, got %v", err)
	}
	if !reflect.DeepEqual(incomplete.Missing, []string{"q3", "q10"}) {
		t.Errorf("Expected missing [q3 q10], got %v", incomplete.Missing)
	}

	if _, err := Score(nil); err == nil {
		t.Error("Expected an error for empty responses, got nil")
	}
}

func TestScore_IgnoresUnknownQuestions(t *testing.T) {
	r := withScore(2)
	r["q99"] = boolPtr(true)
	got, err := Score(r)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Score != 2 {
		t.Errorf("Expected 2, got %d", got.Score)
	}
}
