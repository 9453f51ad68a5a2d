package model

import "time"

// Document describes one uploaded PDF and its thumbnail.
// PDFPath and ThumbPath are storage locations: absolute file paths for the
// local driver, object keys for MinIO.
type Document struct {
	ID        int64     `json:"id"`
	Label     string    `json:"label"`
	PDFPath   string    `json:"pdf_path"`
	ThumbPath string    `json:"thumb_path"`
	CreatedAt time.Time `json:"createdAt"`
}
