package dto

type LegalDocumentRequest struct {
	Key      string `json:"key"`
	Version  string `json:"version"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Language string `json:"language"`
	IsActive *bool  `json:"isActive"`
}
