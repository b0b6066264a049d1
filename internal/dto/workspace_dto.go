package dto

type WorkspaceStateResponse struct {
	Version          uint64  `json:"version"`
	CurrentPageId    *string `json:"current_page_id"`
	SearchQuery      string  `json:"search_query"`
	SidebarCollapsed bool    `json:"sidebar_collapsed"`
	PageCount        int     `json:"page_count"`
}

type SetSearchQueryRequest struct {
	Query string `json:"query" validate:"max=500"`
}

type SearchResultResponse struct {
	Query string                `json:"query"`
	Pages []PageSummaryResponse `json:"pages"`
}

type SidebarResponse struct {
	Collapsed bool `json:"collapsed"`
}

type SetCurrentPageRequest struct {
	PageId string `json:"page_id" validate:"required"`
}

type PaletteCommandResponse struct {
	Id          string `json:"id"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Group       string `json:"group"`
	PageId      string `json:"page_id,omitempty"`
}

type BlockTypeResponse struct {
	Type        string `json:"type"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type PageColorResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Version   uint64 `json:"version"`
	PageCount int    `json:"page_count"`
	Database  bool   `json:"database"`
	Nats      bool   `json:"nats"`
}
