// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// UploadResult acknowledges a spreadsheet upload. The backend parses the
// sheet, analyses each row, and echoes the ingested articles.
type UploadResult struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`

	// TotalCount is the number of rows ingested.
	TotalCount int           `json:"totalCount" yaml:"total_count"`
	Articles   []ArticleData `json:"articles,omitempty" yaml:"articles,omitempty"`
}

// Ack is the backend's plain acknowledgement of a command such as delete-all.
type Ack struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
}
