package models

type PaginatedProducts struct {
	Items       []*Product `json:"items"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}
