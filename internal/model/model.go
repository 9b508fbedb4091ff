package model

import "time"

type CellType string

const (
	CellTypeText  CellType = "text"
	CellTypeImage CellType = "image"
)

type SortBy string

const (
	SortByLastUpdated SortBy = "last_updated"
	SortByCreated     SortBy = "created"
	SortByTitle       SortBy = "title"
)

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

type BoardSettings struct {
	Size      int  `json:"size"`
	FreeSpace bool `json:"freeSpace"`
}

type Board struct {
	ID              string  `json:"id"`
	Slug            string  `json:"slug"`
	CreatorID       string  `json:"creatorId"`
	CreatorUsername string  `json:"creatorUsername"`
	CreatedBy       string  `json:"createdBy,omitempty"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	IsPublic        bool    `json:"isPublic"`

	Settings BoardSettings `json:"settings"`

	// Aggregate counters maintained server-side. Completion display must use these,
	// not a recount of whatever cells the client happens to hold.
	CellCount   int `json:"cellCount"`
	MarkedCount int `json:"markedCount"`

	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type Cell struct {
	ID      string   `json:"id"`
	BoardID string   `json:"boardId"`
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	Type    CellType `json:"type"`
	Value   string   `json:"value"`
	Marked  bool     `json:"marked"`
}

type User struct {
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	IsAdmin      bool   `json:"isAdmin"`
	AuthProvider string `json:"authProvider"`
}

// ListQuery is one listing view's fetch window. Offset is cumulative; the
// listing controller owns advancing it.
type ListQuery struct {
	Search    string    `json:"search,omitempty"`
	SortBy    SortBy    `json:"sortBy"`
	SortOrder SortOrder `json:"sortOrder"`
	Limit     int       `json:"limit"`
	Offset    int       `json:"offset"`
}

// BoardSpec is the creation payload. CreatedByName is only ever sent for
// anonymous authors, and never as an empty string.
type BoardSpec struct {
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	Size          int     `json:"size"`
	IsPublic      bool    `json:"isPublic"`
	FreeSpace     bool    `json:"freeSpace"`
	CreatedByName *string `json:"createdByName,omitempty"`
}
