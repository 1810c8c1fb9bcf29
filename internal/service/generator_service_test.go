package service

import (
	"errors"
	"strings"
	"testing"
)

func TestParseGeneratedQuestions(t *testing.T) {
	raw := "```json\n" + `{
		"questions": [
			{
				"question": "What is the SI unit of force?",
				"options": ["Joule", "Newton", "Watt", "Pascal"],
				"correctAnswer": 1,
				"explanation": "Force is measured in Newtons."
			},
			{
				"question": "Which gas is essential for respiration?",
				"options": ["CO2", "N2", "O2", "H2"],
				"correctAnswer": 2,
				"explanation": "Oxygen drives cellular respiration."
			}
		]
	}` + "\n```\nHere are your questions!"

	questions, err := parseGeneratedQuestions(raw)
	if err != nil {
		t.Fatalf("parseGeneratedQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].CorrectOption != 1 {
		t.Errorf("q0 correct option = %d, want 1", questions[0].CorrectOption)
	}
	if questions[1].Text != "Which gas is essential for respiration?" {
		t.Errorf("q1 text = %q", questions[1].Text)
	}
	if len(questions[0].Options) != 4 {
		t.Errorf("q0 has %d options, want 4", len(questions[0].Options))
	}
}

func TestParseGeneratedQuestionsRejectsBadOutput(t *testing.T) {
	cases := map[string]string{
		"no json":            "I could not generate questions.",
		"empty list":         `{"questions": []}`,
		"not json":           "{this is not json}",
		"wrong option count": `{"questions": [{"question": "q?", "options": ["a", "b"], "correctAnswer": 0}]}`,
		"answer out of range": `{"questions": [{"question": "q?",
			"options": ["a", "b", "c", "d"], "correctAnswer": 7}]}`,
		"missing question text": `{"questions": [{"question": "",
			"options": ["a", "b", "c", "d"], "correctAnswer": 0}]}`,
	}

	for name, raw := range cases {
		if _, err := parseGeneratedQuestions(raw); !errors.Is(err, ErrBadModelOutput) {
			t.Errorf("%s: got %v, want ErrBadModelOutput", name, err)
		}
	}
}

func TestBuildPromptIncludesMaterialAndCount(t *testing.T) {
	prompt := buildPrompt("Photosynthesis converts light energy.", 7, 9, "Hard")

	for _, want := range []string{
		"Class 9",
		"exactly 7 multiple choice questions",
		"Difficulty Level: Hard",
		"Photosynthesis converts light energy.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
