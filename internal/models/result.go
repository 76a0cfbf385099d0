package models

type StoredFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	DetectedType string `json:"detected_type"`
}

type FailedFile struct {
	OriginalName string `json:"original_name"`
	Reason       string `json:"reason"`
}

type UploadResponse struct {
	Message string       `json:"message"`
	Count   int          `json:"count"`
	Stored  []StoredFile `json:"stored"`
	Failed  []FailedFile `json:"failed"`
}

type DocumentListResponse struct {
	Documents []string `json:"documents"`
}

type DeleteRequest struct {
	Filenames []string `json:"filenames" validate:"required,min=1,dive,required"`
}

type DeleteResponse struct {
	Deleted []string `json:"deleted"`
	Missing []string `json:"missing"`
}

type EvaluateRequest struct {
	Filename string `json:"filename" validate:"required"`
}

// EvaluateResponse carries either Evaluation or Error, never both.
type EvaluateResponse struct {
	Filename      string            `json:"filename"`
	ExtractedText string            `json:"extracted_text"`
	Evaluation    *EvaluationResult `json:"evaluation,omitempty"`
	Error         string            `json:"error,omitempty"`
}

type RankRequest struct {
	RoleDescription string `json:"role_description" validate:"required"`
}
