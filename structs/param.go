package structs

type RecommendationQueueParam struct {
	TaskID    uint             `json:"task_id" form:"task_id"`
	SessionID string           `json:"session_id" form:"session_id"`
	Profile   SubjectProfile   `json:"profile" form:"profile"`
	Answers   map[string]*bool `json:"answers" form:"answers"`
	Result    string           `json:"result" form:"result"`
	IsDie     bool             `json:"is_die" form:"is_die"`
	QueueType string           `json:"queue_type" form:"queue_type"`
}

type MismatchQueueResponse struct {
	TaskId uint   `json:"task_id"`
	Queue  string `json:"queue"`
}
