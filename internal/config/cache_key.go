package config

import "fmt"

// CacheKeyStruct centralizes Redis key construction so the service layer
// and prewarm path never drift apart.
type CacheKeyStruct struct{}

// ExamOptionsKey returns the cache key for a simulado's exam list and
// available question types.
func (r *CacheKeyStruct) ExamOptionsKey(slug string) string {
	return fmt.Sprintf("simulado:%s:exam_options", slug)
}

// QuestionPoolKey returns the cache key for a simulado's question pool,
// filtered by exam code ("mixed" covers the whole bank).
func (r *CacheKeyStruct) QuestionPoolKey(slug, examCode string) string {
	return fmt.Sprintf("simulado:%s:exam:%s:questions", slug, examCode)
}

var CacheKey = &CacheKeyStruct{}
