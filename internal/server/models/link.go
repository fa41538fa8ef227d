package models

// Link is one outbound link on a user's page. Ordering is Position ascending
// with ties broken by ascending id (insertion order).
type Link struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Enabled  bool   `json:"enabled"`
	Position int    `json:"position"`
}
