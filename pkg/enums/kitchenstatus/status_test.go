package kitchenstatus

import "testing"

func TestByName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		found bool
	}{
		{name: "queued", input: "queued", found: true},
		{name: "cooking", input: "cooking", found: true},
		{name: "bumped", input: "bumped", found: true},
		{name: "unknown", input: "ready", found: false},
		{name: "empty", input: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ByName(tt.input)
			if (got != nil) != tt.found {
				t.Fatalf("ByName(%q) found = %v, want %v", tt.input, got != nil, tt.found)
			}
			if got != nil && got.Code() != tt.input {
				t.Errorf("ByName(%q).Code() = %q", tt.input, got.Code())
			}
		})
	}
}

func TestOrdering(t *testing.T) {
	if !Statuses.Cooking.After(Statuses.Queued) {
		t.Error("cooking should come after queued")
	}
	if !Statuses.Bumped.After(Statuses.Cooking) {
		t.Error("bumped should come after cooking")
	}
	if Statuses.Queued.After(Statuses.Bumped) {
		t.Error("queued should not come after bumped")
	}
	if !Statuses.Bumped.Terminal() || Statuses.Cooking.Terminal() {
		t.Error("only bumped is terminal")
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(""); got != Statuses.Queued {
		t.Errorf("Normalize(\"\") = %v, want queued", got)
	}
	if got := Normalize("cooking"); got != Statuses.Cooking {
		t.Errorf("Normalize(\"cooking\") = %v, want cooking", got)
	}
}

func TestLabel(t *testing.T) {
	if got := Statuses.Bumped.Label(); got != "Bumped" {
		t.Errorf("Label() = %q, want %q", got, "Bumped")
	}
}
