package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseBullets(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		level int
		want  []string
	}{
		{
			"hyphen bullets",
			"- first point\n- second point",
			5,
			[]string{"first point", "second point"},
		},
		{
			"mixed markers and blanks",
			"* one\n\n- two\n• three\n",
			5,
			[]string{"one", "two", "three"},
		},
		{
			"doubled hyphens",
			"- - nested marker",
			5,
			[]string{"nested marker"},
		},
		{
			"mixed doubled markers",
			"• - one\n-- two\n*\t- three",
			5,
			[]string{"one", "two", "three"},
		},
		{
			"truncates to level",
			"- a\n- b\n- c\n- d",
			2,
			[]string{"a", "b"},
		},
		{
			"unmarked lines kept",
			"plain sentence",
			3,
			[]string{"plain sentence"},
		},
		{
			"empty input",
			"\n\n",
			3,
			nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ParseBullets(test.raw, test.level)
			if len(got) != len(test.want) {
				t.Fatalf("Expected %d bullets, got %d: %v", len(test.want), len(got), got)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Errorf("Bullet %d: expected %q, got %q", i, test.want[i], got[i])
				}
			}
		})
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status    int
		wantKind  Kind
		retryable bool
	}{
		{401, KindAuth, false},
		{403, KindAuth, false},
		{429, KindRateLimit, true},
		{500, KindRemote, true},
		{503, KindRemote, true},
		{400, KindRemote, false},
		{404, KindRemote, false},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("status_%d", test.status), func(t *testing.T) {
			err := FromStatus("openai", test.status, "boom")
			if err.Kind != test.wantKind {
				t.Errorf("Expected kind %v, got %v", test.wantKind, err.Kind)
			}
			if err.Retryable() != test.retryable {
				t.Errorf("Expected retryable=%v, got %v", test.retryable, err.Retryable())
			}
		})
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(errors.New("plain error")) {
		t.Error("Plain errors must not be retryable")
	}
	if !Retryable(&Error{Kind: KindRemote, Status: 0}) {
		t.Error("Transport failures (no status) must be retryable")
	}
	wrapped := fmt.Errorf("summarize slide 3: %w", &Error{Kind: KindRateLimit})
	if !Retryable(wrapped) {
		t.Error("Wrapped provider errors must keep their classification")
	}
	if Retryable(&Error{Kind: KindInvalidResponse}) {
		t.Error("Invalid responses must not be retryable")
	}
}
