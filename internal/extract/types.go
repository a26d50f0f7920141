package extract

import (
	"context"
	"fmt"
)

// Submission is one learner answer as handed to the session. Either Text
// is set, or Image points at non-textual content that must be extracted
// before evaluation.
type Submission struct {
	Text  string
	Image *Image
}

// HasImage reports whether the submission carries non-textual content.
func (s Submission) HasImage() bool {
	return s.Image != nil
}

// Image is a captured photo of handwritten or printed work.
type Image struct {
	// Path is where the image came from, kept for logging.
	Path string

	// Data is the raw image bytes.
	Data []byte

	// MIME is the image media type, e.g. "image/jpeg".
	MIME string
}

// Extractor converts non-textual content into a text candidate.
type Extractor interface {
	// ExtractAnswer pulls the mathematical answer out of an image of the
	// learner's work. When the image shows several steps, the last one is
	// returned.
	ExtractAnswer(ctx context.Context, img *Image) (string, error)

	// ExtractProblem pulls a problem statement out of an image, for
	// starting a session from a photo.
	ExtractProblem(ctx context.Context, img *Image) (*Problem, error)
}

// Problem is an extracted problem statement.
type Problem struct {
	Text    string
	Kind    string
	Context string
}

// ExtractionError indicates non-textual content could not be converted
// to text. Correctness-neutral: it never counts as a wrong answer.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
