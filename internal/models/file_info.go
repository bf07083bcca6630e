package models

import "time"

// MediaTypePDF is the only declared media type accepted at intake.
const MediaTypePDF = "application/pdf"

// SelectedFile is the PDF currently chosen in a workflow.
// The bytes live in the spool store under ID.
type SelectedFile struct {
	ID         string    `json:"id" msgpack:"id"`
	Name       string    `json:"name" msgpack:"name"`
	MediaType  string    `json:"mediaType" msgpack:"mediaType"`
	Size       int64     `json:"size" msgpack:"size"`
	Pages      int       `json:"pages,omitempty" msgpack:"pages,omitempty"` // 0 when the page tree could not be read
	UploadedAt time.Time `json:"uploadedAt" msgpack:"uploadedAt"`
}
