package llm

import "testing"

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading whitespace", "  \n```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"unclosed fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFence(tc.in); got != tc.want {
				t.Fatalf("StripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanAndParseJSON(t *testing.T) {
	obj, ok := CleanAndParseJSON("```json\n{\"question\":\"什么学科？\"}\n```")
	if !ok {
		t.Fatal("expected fenced JSON to parse")
	}
	if obj["question"] != "什么学科？" {
		t.Fatalf("unexpected value: %v", obj["question"])
	}
}

func TestCleanAndParseJSON_Malformed(t *testing.T) {
	for _, in := range []string{"", "not json", "```json\n{broken\n```", "[1,2,3]"} {
		if _, ok := CleanAndParseJSON(in); ok {
			t.Fatalf("expected %q to fail", in)
		}
	}
}
