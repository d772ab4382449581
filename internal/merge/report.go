package merge

import "time"

// Report summarizes a completed run. The archive fields are filled in
// by the caller once the output directory has been packed.
type Report struct {
	SourceDir    string          `json:"source_dir"`
	OutputDir    string          `json:"output_dir"`
	Archive      string          `json:"archive,omitempty"`
	ArchiveBytes int64           `json:"archive_bytes,omitempty"`
	Verified     bool            `json:"verified"`
	Chapters     []ChapterResult `json:"chapters"`
	Titles       int             `json:"titles"`
	Pages        int             `json:"pages"`
	Items        int             `json:"items"`
	Failures     int             `json:"failures"`
	Elapsed      time.Duration   `json:"elapsed_ns"`
}

// ChapterResult records what one chapter actually produced. TitleFile
// is empty when the title card failed under ContinueOnError; Errors
// lists that chapter's skipped items.
type ChapterResult struct {
	Name      string   `json:"name"`
	Index     int      `json:"index"`
	TitleFile string   `json:"title_file,omitempty"`
	Pages     int      `json:"pages"`
	Errors    []string `json:"errors,omitempty"`
}
