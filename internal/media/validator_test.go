package media

import "testing"

const testMaxBytes = 10 * 1024 * 1024

func TestValidatorCheck(t *testing.T) {
	v := NewValidator([]string{"png", "jpg", "jpeg", "webp"}, testMaxBytes)

	tests := []struct {
		name     string
		filename string
		size     int64
		want     Verdict
	}{
		{"png accepted", "photo.png", 1024, Accepted},
		{"jpg accepted", "photo.jpg", 1024, Accepted},
		{"jpeg accepted", "photo.jpeg", 1024, Accepted},
		{"webp accepted", "photo.webp", 1024, Accepted},
		{"uppercase extension accepted", "PHOTO.JPG", 1024, Accepted},
		{"mixed case accepted", "Photo.PnG", 1024, Accepted},
		{"gif rejected", "photo.gif", 1024, Rejected},
		{"executable rejected", "payload.exe", 1024, Rejected},
		{"no extension rejected", "photo", 1024, Rejected},
		{"trailing dot rejected", "photo.", 1024, Rejected},
		{"empty filename is no upload", "", 0, NoUpload},
		{"exactly at limit accepted", "big.png", testMaxBytes, Accepted},
		{"one byte over rejected", "big.png", testMaxBytes + 1, Rejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := v.Check(tt.filename, tt.size)
			if got != tt.want {
				t.Errorf("Check(%q, %d) = %v, want %v", tt.filename, tt.size, got, tt.want)
			}
			if got == Rejected && reason == "" {
				t.Error("rejection carried no reason")
			}
			if got == Accepted && reason != "" {
				t.Errorf("acceptance carried reason %q", reason)
			}
		})
	}
}

func TestValidatorRejectionMessages(t *testing.T) {
	v := NewValidator([]string{"png", "jpg", "jpeg", "webp"}, testMaxBytes)

	_, reason := v.Check("photo.gif", 100)
	if reason != "Invalid file type. Only JPG, PNG, and WEBP files are allowed." {
		t.Errorf("type rejection message = %q", reason)
	}

	_, reason = v.Check("big.png", testMaxBytes+1)
	if reason != "File size too large. Maximum size is 10MB." {
		t.Errorf("size rejection message = %q", reason)
	}
}

func TestValidatorNormalizesConfiguredExtensions(t *testing.T) {
	// Dotted and uppercased config entries describe the same set.
	v := NewValidator([]string{".PNG", "Jpg"}, testMaxBytes)
	if got, _ := v.Check("a.png", 1); got != Accepted {
		t.Errorf("Check(a.png) = %v, want Accepted", got)
	}
	if got, _ := v.Check("a.jpg", 1); got != Accepted {
		t.Errorf("Check(a.jpg) = %v, want Accepted", got)
	}
	if got, _ := v.Check("a.webp", 1); got != Rejected {
		t.Errorf("Check(a.webp) = %v, want Rejected", got)
	}
}
