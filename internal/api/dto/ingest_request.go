package dto

// IngestRequest optionally narrows an ingestion run to a subset of the
// configured boards. An empty list means every board.
type IngestRequest struct {
	Boards []string `json:"boards" validate:"omitempty,dive,min=1"`
}
