package dto

type CreateJobRequest struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

type UpdateJobRequest struct {
	Title  *string   `json:"title"`
	Status *string   `json:"status"`
	Tags   *[]string `json:"tags"`
}

// ReorderJobRequest moves a job to toOrder; fromOrder is accepted from
// clients but the stored order is authoritative.
type ReorderJobRequest struct {
	FromOrder int `json:"fromOrder"`
	ToOrder   int `json:"toOrder"`
}
