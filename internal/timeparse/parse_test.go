package timeparse

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2h", 7200},
		{"30m", 1800},
		{"2h 30m", 9000},
		{"1.5h", 5400},
		{"0h", 0},
		{"", 0},
		{"  2h  30m  ", 9000},
		{"1H 15M", 4500},
		{"soon", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestSimple(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "2h", want: 7200},
		{input: "90m", want: 5400},
		{input: "1d", want: 86400},
		{input: "45", want: 2700},
		{input: "1.5h", want: 5400},
		{input: " 3H ", want: 10800},
		{input: "2H", want: 7200},
		{input: "0m", want: 0},
		{input: "abc", wantErr: true},
		{input: "2h 30m", wantErr: true},
		{input: "h", wantErr: true},
		{input: "", wantErr: true},
		{input: "-2h", wantErr: true},
		{input: "infh", wantErr: true},
		{input: "1e20h", wantErr: true},
		{input: "1e300", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Simple(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Simple(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Simple(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Simple(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{9000, "2h 30m"},
		{7200, "2h"},
		{1800, "30m"},
		{0, "0m"},
	}
	for _, tt := range tests {
		if got := Format(tt.seconds); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
