package runs

import "testing"

func TestParseRunID(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    int64
		wantErr bool
	}{
		{name: "plain number", arg: "12", want: 12},
		{name: "trailing garbage", arg: "12abc", wantErr: true},
		{name: "not a number", arg: "latest", wantErr: true},
		{name: "empty", arg: "", wantErr: true},
		{name: "negative", arg: "-3", want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRunID(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseRunID(%q) = %d, want error", tt.arg, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRunID(%q) error = %v", tt.arg, err)
			}
			if got != tt.want {
				t.Errorf("parseRunID(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}
