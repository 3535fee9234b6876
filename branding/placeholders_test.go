package branding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ocm.software/open-component-model/webassets/branding"
)

func TestPlaceholders_Substitute(t *testing.T) {
	tests := []struct {
		name         string
		placeholders branding.Placeholders
		in           string
		want         string
	}{
		{
			name:         "all tokens",
			placeholders: branding.Placeholders{ApplicationName: "Foo", ApplicationVersion: "1.0", ToolVersion: "2.0"},
			in:           `.title::after { content: "{applicationName} {applicationVersion} (powered by {toolVersion})"; }`,
			want:         `.title::after { content: "Foo 1.0 (powered by 2.0)"; }`,
		},
		{
			name: "unset values become empty",
			in:   "{applicationName}|{applicationVersion}|{toolVersion}",
			want: "||",
		},
		{
			name:         "repeated tokens",
			placeholders: branding.Placeholders{ApplicationName: "Foo"},
			in:           "{applicationName}-{applicationName}",
			want:         "Foo-Foo",
		},
		{
			name:         "values are not expanded again",
			placeholders: branding.Placeholders{ApplicationName: "{toolVersion}", ToolVersion: "2.0"},
			in:           "{applicationName}",
			want:         "{toolVersion}",
		},
		{
			name: "text without tokens",
			in:   "body { color: #4695eb; }",
			want: "body { color: #4695eb; }",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.placeholders.Substitute(tt.in))
		})
	}
}
