package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "generations/abc/resume.pdf", want: "generations/abc/resume.pdf"},
		{name: "simple prefix", prefix: "artifacts", key: "generations/abc/resume.pdf", want: "artifacts/generations/abc/resume.pdf"},
		{name: "prefix trailing slash", prefix: "artifacts/", key: "generations/abc/resume.tex", want: "artifacts/generations/abc/resume.tex"},
		{name: "prefix and key slashes", prefix: "/artifacts/", key: "/generations/abc/cover_letter.pdf", want: "artifacts/generations/abc/cover_letter.pdf"},
		{name: "nested prefix", prefix: "env/prod", key: "generations/abc/resume.pdf", want: "env/prod/generations/abc/resume.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}
