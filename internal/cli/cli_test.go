package cli

import (
	"testing"

	"github.com/koushik255/chip8go/internal/options"
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "defaults",
			args: []string{"pong.ch8"},
			want: options.Program{ROM: "pong.ch8", Frontend: options.FrontendWindow, Scale: 10, Speed: 10},
		},
		{
			name: "debug shorthand",
			args: []string{"-d", "pong.ch8"},
			want: options.Program{ROM: "pong.ch8", Debug: true, Frontend: options.FrontendWindow, Scale: 10, Speed: 10},
		},
		{
			name: "all options",
			args: []string{"-debug", "-q", "-compat", "-frontend", "Terminal", "-scale", "4", "-speed", "20", "pong.ch8"},
			want: options.Program{
				ROM:      "pong.ch8",
				Debug:    true,
				Quiet:    true,
				Compat:   true,
				Frontend: options.FrontendTerminal,
				Scale:    4,
				Speed:    20,
			},
		},
		{
			name: "compat shorthand",
			args: []string{"-c", "pong.ch8"},
			want: options.Program{ROM: "pong.ch8", Compat: true, Frontend: options.FrontendWindow, Scale: 10, Speed: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlags_UsageError(t *testing.T) {
	tests := []struct {
		name string
		args []string
		msg  string
	}{
		{"no rom", nil, "no ROM file given"},
		{"help", []string{"-h"}, ""},
		{"long help", []string{"-help"}, ""},
		{"unknown flag", []string{"-x", "pong.ch8"}, "flag provided but not defined: -x"},
		{"flag after rom", []string{"pong.ch8", "-d"}, "unexpected argument -d after ROM file, options have to be passed before the ROM file"},
		{"invalid frontend", []string{"-frontend", "sdl", "pong.ch8"}, "unsupported frontend: sdl. Valid options: window, terminal"},
		{"invalid scale", []string{"-scale", "0", "pong.ch8"}, "invalid scale 0, has to be positive"},
		{"invalid speed", []string{"-speed", "-1", "pong.ch8"}, "invalid speed -1, has to be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFlags(tt.args)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
			assert.Equal(t, tt.msg, usageErr.Error())
		})
	}
}
