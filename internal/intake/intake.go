package intake

import (
	"errors"
	"strings"

	"github.com/ishan-kshirsagar0-7/GlycoSight-AI/internal"
)

// MaxUploadBytes is enforced client-side only; the diagnosis service does
// its own checks.
const MaxUploadBytes = int64(4.5 * 1024 * 1024)

var (
	ErrFileTooLarge    = errors.New("file is larger than 4.5MB")
	ErrUnsupportedType = errors.New("file type must be one of: .pdf, .png, .jpg, .jpeg, .dcm")
)

var acceptedExtensions = map[string]bool{
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"dcm":  true,
}

// Accept validates a single dropped or picked file and classifies it. The
// first failing rule is reported; a candidate and an error are mutually
// exclusive.
func Accept(filename string, size int64) (*internal.UploadCandidate, error) {
	if !acceptedExtensions[Extension(filename)] {
		return nil, ErrUnsupportedType
	}
	if size > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}
	return &internal.UploadCandidate{
		Filename:  filename,
		Size:      size,
		InputType: Classify(filename),
	}, nil
}

// Extension returns the lower-cased extension without the dot. A leading-dot
// name like ".pdf" has no extension.
func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx <= 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// Classify maps an extension to an input kind. Anything unrecognized yields
// InputTypeUnknown, which is still forwarded for the remote service to
// reject.
func Classify(filename string) internal.InputType {
	switch Extension(filename) {
	case "pdf":
		return internal.InputTypePDF
	case "png", "jpg", "jpeg":
		return internal.InputTypeImage
	case "dcm":
		return internal.InputTypeDICOM
	default:
		return internal.InputTypeUnknown
	}
}
