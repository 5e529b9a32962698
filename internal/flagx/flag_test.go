package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setArgs swaps os.Args for the test and returns a restore func.
func setArgs(args []string) func() {
	orig := os.Args
	os.Args = args
	return func() { os.Args = orig }
}

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", "http://x"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"--config=conf.json", "-a=http://x"},
			allowed: []string{"--config"},
			want:    []string{"--config=conf.json"},
		},
		{
			name:    "flag without value",
			args:    []string{"-v", "-c", "conf.json"},
			allowed: []string{"-v"},
			want:    []string{"-v"},
		},
		{
			name:    "value that looks like a flag is not consumed",
			args:    []string{"-c", "-other"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "http://x", "-t", "10s"},
			allowed: nil,
			want:    []string{},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short flag", []string{"cli", "-c", "conf.json"}, "conf.json"},
		{"long flag", []string{"cli", "-config", "conf.json"}, "conf.json"},
		{"equals form", []string{"cli", "-config=conf.json"}, "conf.json"},
		{"absent", []string{"cli", "-a", "http://x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(setArgs(tt.args))
			assert.Equal(t, tt.want, JsonConfigFlags())
		})
	}
}
