package service

import "testing"

func TestNormalizeAnswerText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Cool; stylish; charismatic", "Cool"},
		{"REALLY GOOD", "Really good"},
		{"r", "R"},
		{"", ""},
		{"   ", ""},
		{"charisma", "Charisma"},
		{"to suddenly cut off contact", "To suddenly cut off contact"},
		{"  bitter or upset ; resentful", "Bitter or upset"},
		{";leading separator", ""},
	}
	for _, c := range cases {
		if got := NormalizeAnswerText(c.in); got != c.want {
			t.Errorf("NormalizeAnswerText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeAnswerText_Idempotent(t *testing.T) {
	inputs := []string{
		"Cool; stylish; charismatic",
		"REALLY GOOD",
		"r",
		"",
		"Mediocre",
		"stylish outfit",
		"ALL CAPS; WITH CLAUSES",
	}
	for _, in := range inputs {
		once := NormalizeAnswerText(in)
		twice := NormalizeAnswerText(once)
		if once != twice {
			t.Errorf("normalize not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}
