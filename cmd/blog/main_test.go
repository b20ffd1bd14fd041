package main

import (
	"reflect"
	"testing"
)

func TestRunRejectsUnknownCommand(t *testing.T) {
	if err := run([]string{"publish"}); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRunRequiresCommand(t *testing.T) {
	if err := run(nil); err == nil {
		t.Fatal("expected usage error for missing command")
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"a", []string{"a"}},
		{"a,b", []string{"a", "b"}},
		{" a , ,b ", []string{"a", "b"}},
	}
	for _, tc := range cases {
		if got := splitList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("BLOG_TEST_KEY", "from-env")
	if got := envOr("BLOG_TEST_KEY", "fallback"); got != "from-env" {
		t.Errorf("envOr() = %q, want from-env", got)
	}
	if got := envOr("BLOG_TEST_KEY_MISSING", "fallback"); got != "fallback" {
		t.Errorf("envOr() = %q, want fallback", got)
	}
}
