package service

import (
	"testing"

	"github.com/pptuition/tuition-backend/internal/model"
)

func practiceQuestions() []model.Question {
	return []model.Question{
		{Text: "q1", Options: []string{"a", "b", "c", "d"}, CorrectOption: 0, Explanation: "e1"},
		{Text: "q2", Options: []string{"a", "b", "c", "d"}, CorrectOption: 1, Explanation: "e2"},
		{Text: "q3", Options: []string{"a", "b", "c", "d"}, CorrectOption: 2, Explanation: "e3"},
	}
}

func TestGradeAttemptScoring(t *testing.T) {
	// Correct, wrong, correct.
	records, review := gradeAttempt(practiceQuestions(), []int{0, 3, 2})

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if len(review) != 3 {
		t.Fatalf("got %d review entries, want 3", len(review))
	}

	result := model.ComputeResult(records, 3)
	if result.CorrectCount != 2 || result.Percentage != 67 {
		t.Errorf("result = %+v, want 2/3 (67%%)", result)
	}

	if !review[0].Correct || review[1].Correct || !review[2].Correct {
		t.Errorf("review grading = %+v", review)
	}
	// The review reveals what the pre-attempt view withholds.
	if review[1].CorrectOption != 1 || review[1].Explanation != "e2" {
		t.Errorf("review[1] missing answer reveal: %+v", review[1])
	}
}

func TestGradeAttemptSkippedCountsAgainstScore(t *testing.T) {
	// One answered correctly, two skipped.
	records, review := gradeAttempt(practiceQuestions(), []int{0, SkippedOption, SkippedOption})

	if len(records) != 1 {
		t.Fatalf("skipped questions produced records: %d", len(records))
	}

	result := model.ComputeResult(records, 3)
	if result.CorrectCount != 1 || result.TotalQuestions != 3 || result.Percentage != 33 {
		t.Errorf("result = %+v, want 1/3 (33%%)", result)
	}

	if review[0].Skipped || !review[1].Skipped || !review[2].Skipped {
		t.Errorf("skip flags = %+v", review)
	}
}

func TestGradeAttemptOutOfRangeTreatedAsSkip(t *testing.T) {
	records, review := gradeAttempt(practiceQuestions(), []int{9, -5, 1})

	if len(records) != 1 {
		t.Fatalf("out-of-range selections produced records: %d", len(records))
	}
	if !review[0].Skipped || !review[1].Skipped {
		t.Errorf("out-of-range selections not marked skipped: %+v", review)
	}
	if review[0].Selected != SkippedOption || review[1].Selected != SkippedOption {
		t.Errorf("out-of-range selections not normalized: %+v", review)
	}
	if !review[2].Correct {
		t.Errorf("valid selection graded wrong: %+v", review[2])
	}
}
