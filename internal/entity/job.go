package entity

import (
	"time"

	"github.com/google/uuid"
)

// Job represents a processing job for data transfer between layers.
type Job struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	PDFPath      string     `json:"pdf_path"`
	Format       string     `json:"format"`
	Status       string     `json:"status"`
	DownloadURL  *string    `json:"download_url,omitempty"`
	OutputPath   *string    `json:"output_path,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	WorkerID     *string    `json:"worker_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
