package env

import (
	"testing"
	"time"
)

type sample struct {
	Name     string        `env:"SAMPLE_NAME,required"`
	Size     int           `env:"SAMPLE_SIZE" envDefault:"10"`
	Ratio    float64       `env:"SAMPLE_RATIO"`
	Enabled  bool          `env:"SAMPLE_ENABLED"`
	Timeout  time.Duration `env:"SAMPLE_TIMEOUT"`
	Chats    []int64       `env:"SAMPLE_CHATS"`
	Untagged string
	hidden   string `env:"SAMPLE_HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	tests := []struct {
		name  string
		input *sample
		all   bool
		want  string
	}{
		{
			name:  "skips zero values",
			input: &sample{Name: "condo", Size: 3},
			want:  "SAMPLE_NAME=condo\nSAMPLE_SIZE=3\n",
		},
		{
			name:  "formats durations and slices",
			input: &sample{Timeout: 2 * time.Minute, Chats: []int64{1, -2}},
			want:  "SAMPLE_TIMEOUT=2m0s\nSAMPLE_CHATS=1,-2\n",
		},
		{
			name:  "quotes values with spaces",
			input: &sample{Name: "my condo"},
			want:  "SAMPLE_NAME=\"my condo\"\n",
		},
		{
			name:  "empty struct",
			input: &sample{},
			want:  "",
		},
		{
			name:  "all fields",
			input: &sample{Ratio: 0.5, Enabled: true},
			all:   true,
			want: "SAMPLE_NAME=\nSAMPLE_SIZE=0\nSAMPLE_RATIO=0.5\nSAMPLE_ENABLED=true\n" +
				"SAMPLE_TIMEOUT=0s\nSAMPLE_CHATS=\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := MarshalEnv
			if tt.all {
				fn = MarshalEnvAll
			}
			got, err := fn(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestMarshalEnvRejectsNonStruct(t *testing.T) {
	if _, err := MarshalEnv(42); err == nil {
		t.Error("expected error for non-struct input")
	}
}
