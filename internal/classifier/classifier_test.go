package classifier

import (
	"strings"
	"testing"

	"github.com/vitormoschetta/rameezbot/internal/persona"
)

func replyFor(t *testing.T, name string) string {
	t.Helper()
	for _, r := range persona.Default().Rules {
		if r.Name == name {
			return r.Reply
		}
	}
	t.Fatalf("rule %s not found", name)
	return ""
}

func TestClassifyBuckets(t *testing.T) {
	c := FromPersona(persona.Default())

	tests := []struct {
		name    string
		message string
		bucket  string
	}{
		{"greeting", "hello there", persona.RuleGreeting},
		{"greeting upper case", "HEY", persona.RuleGreeting},
		{"identity", "who is he?", persona.RuleIdentity},
		{"projects", "show me your portfolio", persona.RuleProjects},
		{"skills", "what tech stack does he use", persona.RuleSkills},
		{"contact", "send an email", persona.RuleContact},
		{"hiring", "are you recruiting", persona.RuleHiring},
		{"work goes to projects first", "work", persona.RuleProjects},
		{"projects declared before contact", "show me your portfolio and email", persona.RuleProjects},
		// "his" contains "hi", so the greeting bucket wins
		{"substring match on short keyword", "tell me about his projects and contact", persona.RuleGreeting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.message)
			if want := replyFor(t, tt.bucket); got != want {
				t.Fatalf("expected %s reply, got %q", tt.bucket, got)
			}
			bucket, ok := c.Match(tt.message)
			if !ok || bucket != tt.bucket {
				t.Fatalf("expected match %s, got %q (ok=%v)", tt.bucket, bucket, ok)
			}
		})
	}
}

func TestClassifyDefaultEchoesMessage(t *testing.T) {
	c := FromPersona(persona.Default())

	got := c.Classify("xyzzy")
	if !strings.Contains(got, "xyzzy") {
		t.Fatalf("expected default reply to contain the input, got %q", got)
	}
	if _, ok := c.Match("xyzzy"); ok {
		t.Fatal("expected no bucket match for xyzzy")
	}

	got = c.Classify("XYZZY Plugh")
	if !strings.Contains(got, "'XYZZY Plugh'") {
		t.Fatalf("expected echo to preserve case, got %q", got)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	c := FromPersona(persona.Default())
	inputs := []string{"a", "?", "12345", "ñandú", "%d %s %v", "   padded   ", strings.Repeat("z", 2000)}
	for _, in := range inputs {
		if got := c.Classify(in); got == "" {
			t.Fatalf("expected non-empty reply for %q", in)
		}
	}
}

func TestClassifyHonorsDeclarationOrder(t *testing.T) {
	rules := []persona.KeywordRule{
		{Name: "second", Keywords: []string{"beta"}, Reply: "B"},
		{Name: "first", Keywords: []string{"alpha"}, Reply: "A"},
	}
	c := New(rules, "none: %s")

	if got := c.Classify("alpha and beta"); got != "B" {
		t.Fatalf("expected first declared rule to win, got %q", got)
	}
	if got := c.Classify("Alpha"); got != "A" {
		t.Fatalf("expected case-insensitive match, got %q", got)
	}
	if got := c.Classify("gamma"); got != "none: gamma" {
		t.Fatalf("unexpected default reply %q", got)
	}
}

func TestNewLowercasesKeywordsAndCopiesRules(t *testing.T) {
	rules := []persona.KeywordRule{{Name: "loud", Keywords: []string{"SHOUT"}, Reply: "quiet please"}}
	c := New(rules, "%s")
	rules[0].Reply = "mutated"

	if got := c.Classify("why do you shout"); got != "quiet please" {
		t.Fatalf("expected copied rule reply, got %q", got)
	}
}
