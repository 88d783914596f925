package transcriber

import "context"

// Transcriber converts a downloaded audio file into transcript text
type Transcriber interface {
	// Transcribe converts the audio at path to text, chunking long files
	Transcribe(ctx context.Context, audioPath string) (string, error)

	// CheckBinary verifies the speech recognition tool is available
	CheckBinary(ctx context.Context) error
}
