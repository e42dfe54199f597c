package models

import "time"

// VideoStats holds the public counters of a single video. Found is false when
// the platform returned no item for the requested id (private or deleted
// video); the counters are zero in that case.
type VideoStats struct {
	Found        bool  `json:"found"`
	ViewCount    int64 `json:"view_count"`
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
}

// Comment is one top-level comment as returned by the comment thread listing.
type Comment struct {
	Text        string    `json:"text"`
	PublishedAt time.Time `json:"published_at"`
	LikeCount   int64     `json:"like_count"`
}
