// Package validate implements the client-side checks performed before a
// form is submitted: credential rules, text length bounds, and image
// file constraints. The server remains the authority; these checks only
// save a round trip and produce friendlier messages.
package validate

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

const (
	// MinPasswordLen is the minimum accepted password length.
	MinPasswordLen = 8

	// NameMinLen and NameMaxLen bound the display name.
	NameMinLen = 2
	NameMaxLen = 100

	// FeedbackMinLen and FeedbackMaxLen bound trimmed feedback text.
	FeedbackMinLen = 10
	FeedbackMaxLen = 2000

	// MessageMaxLen bounds trimmed message and reply text.
	MessageMaxLen = 1000

	// MaxImageBytes is the largest accepted image upload (5 MiB).
	MaxImageBytes = 5 << 20
)

var nameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// Password checks the composite rule: at least MinPasswordLen characters
// with one lowercase, one uppercase, one digit, and one character that is
// none of those.
func Password(password string) error {
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if len(password) < MinPasswordLen || !lower || !upper || !digit || !special {
		return errors.New("password must be at least 8 characters with one uppercase letter, one lowercase letter, one number, and one special character")
	}
	return nil
}

// Confirmation checks that the password confirmation matches.
func Confirmation(password, confirm string) error {
	if password != confirm {
		return errors.New("passwords do not match")
	}
	return nil
}

// Name checks length bounds and the letters-and-spaces-only rule.
func Name(name string) error {
	if len(name) < NameMinLen || len(name) > NameMaxLen {
		return fmt.Errorf("name must be between %d and %d characters", NameMinLen, NameMaxLen)
	}
	if !nameRe.MatchString(name) {
		return errors.New("name should only contain letters and spaces")
	}
	return nil
}

// Feedback checks the trimmed feedback length bounds.
func Feedback(text string) error {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < FeedbackMinLen {
		return fmt.Errorf("feedback must be at least %d characters long", FeedbackMinLen)
	}
	if len(trimmed) > FeedbackMaxLen {
		return fmt.Errorf("feedback cannot exceed %d characters", FeedbackMaxLen)
	}
	return nil
}

// Message checks that trimmed message text is present and within bounds.
func Message(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return errors.New("please enter a message")
	}
	if len(trimmed) > MessageMaxLen {
		return fmt.Errorf("message cannot exceed %d characters", MessageMaxLen)
	}
	return nil
}

// ImageInfo describes a validated image file, shown as the upload
// preview line.
type ImageInfo struct {
	Name string
	Size int64
	MIME string
}

// ImageFile checks that path names a readable file no larger than
// MaxImageBytes whose sniffed content type is an image. The MIME type is
// detected from the leading bytes, never from the file extension.
func ImageFile(path string) (ImageInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("read image: %w", err)
	}
	if info.IsDir() {
		return ImageInfo{}, fmt.Errorf("%s is a directory, not an image", path)
	}
	if info.Size() > MaxImageBytes {
		return ImageInfo{}, errors.New("image size must not exceed 5MB")
	}

	file, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("read image: %w", err)
	}
	defer func() { _ = file.Close() }()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && n == 0 {
		return ImageInfo{}, fmt.Errorf("read image: %w", err)
	}
	mime := http.DetectContentType(head[:n])
	if !strings.HasPrefix(mime, "image/") {
		return ImageInfo{}, errors.New("only image files are allowed")
	}

	return ImageInfo{
		Name: filepath.Base(path),
		Size: info.Size(),
		MIME: mime,
	}, nil
}
