package structs

type ActivityLogJsonModel struct {
	Type      string         `json:"type"`
	TaskID    uint           `json:"task_id"`
	SessionID string         `json:"session_id,omitempty"`
	Result    bool           `json:"result"`
	Statistic StatisticModel `json:"statistic"`
	Message   string         `json:"message"`
	Messages  []ErrorModel   `json:"messages"`
}

type StatisticModel struct {
	DailyCalories  int    `json:"daily_calories"`
	RiskScore      int    `json:"risk_score"`
	RiskLevel      string `json:"risk_level"`
	BreakfastFound bool   `json:"breakfast_found"`
	DinnerFound    bool   `json:"dinner_found"`
	CatalogSize    int    `json:"catalog_size"`
}

type ErrorModel struct {
	SessionID    string `json:"session_id,omitempty"`
	Field        string `json:"field,omitempty"`
	ErrorMessage string `json:"error_message"`
}
