package slug

import "testing"

func TestGenerate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café Müller!!", "cafe-muller"},
		{"Stem AI", "stem-ai"},
		{"Voice AI", "voice-ai"},
		{"  Hello   World  ", "hello-world"},
		{"already-a-slug", "already-a-slug"},
		{"Über--cool___thing", "uber-coolthing"},
		{"AI & Automatisering", "ai-automatisering"},
		{"!!!", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := Generate(c.in); got != c.want {
			t.Fatalf("Generate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGenerateIdempotent(t *testing.T) {
	inputs := []string{"Café Müller!!", "Stem AI", "voice-ai", "Één appèl", "A  B  C"}
	for _, in := range inputs {
		once := Generate(in)
		if twice := Generate(once); twice != once {
			t.Fatalf("Generate not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestGenerateOutputsAreValid(t *testing.T) {
	inputs := []string{"Café Müller!!", "Stem AI", "Zo'n  rare -- titel", "x y"}
	for _, in := range inputs {
		out := Generate(in)
		if out == "" {
			continue
		}
		if !IsValid(out) {
			t.Fatalf("Generate(%q) = %q which fails IsValid", in, out)
		}
	}
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"voice-ai", true},
		{"ai", true},
		{"a1-b2-c3", true},
		{"", false},
		{"a", false},
		{"-voice", false},
		{"voice-", false},
		{"voice--ai", false},
		{"Voice-AI", false},
		{"voice_ai", false},
		{"voice ai", false},
	}
	for _, c := range cases {
		if got := IsValid(c.in); got != c.want {
			t.Fatalf("IsValid(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
