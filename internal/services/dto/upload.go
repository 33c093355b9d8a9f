package dto

import "io"

// ProgressFunc receives upload progress as a ratio in [0,1]. Reported
// values never decrease and reach 1.0 on success.
type ProgressFunc func(ratio float64)

// UploadRequest describes one candidate file for the upload pipeline.
type UploadRequest struct {
	Owner       string
	FolderID    *string // nil targets the top-level (unfiled) scope
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	Progress    ProgressFunc // optional
}
