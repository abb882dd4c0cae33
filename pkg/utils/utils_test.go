package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRoundedUnit(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{59, "59s"},
		{-30, "30s"},
		{60, "1m"},
		{601, "10m"},
		{3600, "60m"},
		{7200, "2h"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRoundedUnit(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestNormalizeProcessName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Windows executable", "VLC.exe", "vlc"},
		{"Upper-case extension", "PotPlayerMini64.EXE", "potplayermini64"},
		{"Windows path", `C:\Program Files\GHelper\GHelper.exe`, "ghelper"},
		{"Unix path", "/usr/bin/mpv", "mpv"},
		{"Plain name", "chrome", "chrome"},
		{"Dotted name", "soffice.bin", "soffice.bin"},
		{"Surrounding space", "  Discord \n", "discord"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeProcessName(tt.input))
		})
	}
}
