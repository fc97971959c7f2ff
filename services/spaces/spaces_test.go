package spaces

import (
	"strings"
	"testing"
)

func TestGenerateKeyKeepsPrefixAndExtension(t *testing.T) {
	key := GenerateKey("submissions/42", "report.pdf")

	if !strings.HasPrefix(key, "submissions/42/") {
		t.Errorf("key should start with the prefix, got %q", key)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("key should keep the file extension, got %q", key)
	}

	other := GenerateKey("submissions/42", "report.pdf")
	if key == other {
		t.Error("keys for identical filenames should still be unique")
	}
}

func TestGetContentType(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "application/pdf"},
		{"notes.txt", "text/plain"},
		{"essay.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"data.csv", "text/csv"},
		{"photo.jpeg", "image/jpeg"},
		{"archive.bin", "application/octet-stream"},
	}

	for _, tc := range cases {
		if got := GetContentType(tc.filename); got != tc.want {
			t.Errorf("GetContentType(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}
