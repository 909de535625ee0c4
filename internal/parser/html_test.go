package parser

import "testing"

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "title tag",
			body: `<html><head><title>My Blog</title></head><body></body></html>`,
			want: "My Blog",
		},
		{
			name: "title preferred over og:title",
			body: `<html><head><title>Real Title</title><meta property="og:title" content="OG Title"></head></html>`,
			want: "Real Title",
		},
		{
			name: "og:title fallback",
			body: `<html><head><meta property="og:title" content="OG Title"></head></html>`,
			want: "OG Title",
		},
		{
			name: "html entities decoded",
			body: `<html><head><title>Tom &amp; Jerry</title></head></html>`,
			want: "Tom & Jerry",
		},
		{
			name: "surrounding whitespace trimmed",
			body: "<html><head><title>  Parked Domain \n</title></head></html>",
			want: "Parked Domain",
		},
		{
			name: "no title",
			body: `<html><body>hello</body></html>`,
			want: "",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractTitle(tt.body); got != tt.want {
				t.Errorf("ExtractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
