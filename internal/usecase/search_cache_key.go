package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"talentflow/internal/repository"
)

type jobListCacheKeyInput struct {
	Search   string `json:"search"`
	Status   string `json:"status"`
	Tag      string `json:"tag"`
	Sort     string `json:"sort"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type candidateListCacheKeyInput struct {
	Search   string `json:"search"`
	Stage    string `json:"stage"`
	JobID    int64  `json:"job_id"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

func hashKey(prefix string, in any) string {
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return prefix + hex.EncodeToString(sum[:])
}

func JobListCacheKey(f repository.JobFilter) string {
	return hashKey("jobs:list:", jobListCacheKeyInput{
		Search:   normalizeSearchValue(f.Search),
		Status:   string(f.Status),
		Tag:      normalizeSearchValue(f.Tag),
		Sort:     f.Sort,
		Page:     f.Page,
		PageSize: f.PageSize,
	})
}

func CandidateListCacheKey(f repository.CandidateFilter) string {
	return hashKey("candidates:list:", candidateListCacheKeyInput{
		Search:   normalizeSearchValue(f.Search),
		Stage:    string(f.Stage),
		JobID:    f.JobID,
		Page:     f.Page,
		PageSize: f.PageSize,
	})
}
