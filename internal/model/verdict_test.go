package model

import "testing"

func TestCoerceLabel(t *testing.T) {
	tests := []struct {
		input string
		want  Label
	}{
		{"TRUE", LabelTrue},
		{"FALSE", LabelFalse},
		{"UNVERIFIABLE", LabelUnverifiable},
		{"true", LabelTrue},
		{" False ", LabelFalse},
		{"mostly true", LabelUnverifiable},
		{"", LabelUnverifiable},
		{"UNKNOWN", LabelUnverifiable},
	}

	for _, tt := range tests {
		if got := CoerceLabel(tt.input); got != tt.want {
			t.Errorf("CoerceLabel(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
