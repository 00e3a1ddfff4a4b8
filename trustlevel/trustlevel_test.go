package trustlevel

import (
	"fmt"
	"testing"
)

func TestOrdering(t *testing.T) {
	orderedLevels := []Level{Never, Unknown, Marginal, Full, Ultimate}

	for i := 0; i < len(orderedLevels)-1; i++ {
		lower, higher := orderedLevels[i], orderedLevels[i+1]

		t.Run(fmt.Sprintf("%s < %s", lower, higher), func(t *testing.T) {
			if Compare(lower, higher) >= 0 {
				t.Fatalf("expected %s to compare below %s", lower, higher)
			}
			if got := Min(lower, higher); got != lower {
				t.Fatalf("expected Min to return %s, got %s", lower, got)
			}
			if got := Min(higher, lower); got != lower {
				t.Fatalf("expected Min to return %s, got %s", lower, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	var tests = []struct {
		input         string
		expectedLevel Level
		expectError   bool
	}{
		{"never", Never, false},
		{"unknown", Unknown, false},
		{"marginal", Marginal, false},
		{"full", Full, false},
		{"ultimate", Ultimate, false},
		{"Ultimate", Unknown, true},
		{"", Unknown, true},
		{"trusted", Unknown, true},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("for input '%s'", test.input), func(t *testing.T) {
			gotLevel, err := Parse(test.input)

			if test.expectError {
				if err == nil {
					t.Fatalf("expected an error, but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("got an error but didn't want one: %v", err)
			}
			if gotLevel != test.expectedLevel {
				t.Fatalf("expected %s, got %s", test.expectedLevel, gotLevel)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, level := range []Level{Never, Unknown, Marginal, Full, Ultimate} {
		t.Run(level.String(), func(t *testing.T) {
			parsed, err := Parse(level.String())
			if err != nil {
				t.Fatalf("got an error but didn't want one: %v", err)
			}
			if parsed != level {
				t.Fatalf("expected %d, got %d", level, parsed)
			}
		})
	}
}

func TestMarshalText(t *testing.T) {
	text, err := Marginal.MarshalText()
	if err != nil {
		t.Fatalf("got an error but didn't want one: %v", err)
	}
	if string(text) != "marginal" {
		t.Fatalf("expected 'marginal', got '%s'", text)
	}

	var level Level
	if err := level.UnmarshalText([]byte("ultimate")); err != nil {
		t.Fatalf("got an error but didn't want one: %v", err)
	}
	if level != Ultimate {
		t.Fatalf("expected ultimate, got %s", level)
	}

	if err := level.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatalf("expected an error, but got none")
	}
}

func TestCanCertify(t *testing.T) {
	var tests = []struct {
		level    Level
		expected bool
	}{
		{Never, false},
		{Unknown, false},
		{Marginal, false},
		{Full, true},
		{Ultimate, true},
	}

	for _, test := range tests {
		t.Run(test.level.String(), func(t *testing.T) {
			if got := test.level.CanCertify(); got != test.expected {
				t.Fatalf("expected %v, got %v", test.expected, got)
			}
		})
	}
}
