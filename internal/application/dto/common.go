package dto

// PageRequest paginación para listados (page 1-based).
type PageRequest struct {
	Page int `query:"page" json:"page" validate:"min=0"`
	Size int `query:"size" json:"size" validate:"min=0,max=100"`
}

// Enabled indica si el cliente pidió paginación.
func (p PageRequest) Enabled() bool {
	return p.Page > 0 && p.Size > 0
}

// Offset desplazamiento correspondiente a la página.
func (p PageRequest) Offset() int {
	if !p.Enabled() {
		return 0
	}
	return (p.Page - 1) * p.Size
}

// PageInfo metadatos de página en respuestas.
type PageInfo struct {
	TotalPage      int   `json:"total_page"`
	TotalDataCount int64 `json:"total_data_count"`
	CountPerPage   int   `json:"count_per_page"`
}

// NewPageInfo calcula el total de páginas para total elementos de size por página.
func NewPageInfo(total int64, size int) *PageInfo {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return &PageInfo{TotalPage: pages, TotalDataCount: total, CountPerPage: size}
}

// APIResponse envoltorio común de todas las respuestas JSON.
type APIResponse struct {
	Result   bool      `json:"result"`
	Code     string    `json:"code,omitempty"`
	Message  string    `json:"message"`
	Data     any       `json:"data,omitempty"`
	PageInfo *PageInfo `json:"page_info,omitempty"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Result  bool   `json:"result"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
