package entity

// NewsItem is one normalized headline. PublishedAt is ISO-8601 in UTC.
type NewsItem struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
}

// Headline is an upstream news item. PublishTime is epoch seconds, 0 when absent.
type Headline struct {
	Title       string
	Summary     string
	Link        string
	Publisher   string
	PublishTime int64
}
