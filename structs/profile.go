package structs

// SubjectProfile 使用者在計算頁填入的資料
type SubjectProfile struct {
	Category         string `json:"category" form:"category"`
	Age              Number `json:"age" form:"age"`
	Weight           Number `json:"weight" form:"weight"`
	Height           Number `json:"height" form:"height"`
	Gender           string `json:"gender,omitempty" form:"gender"`
	Trimester        string `json:"trimester,omitempty" form:"trimester"`
	BreastfeedingAge string `json:"breastfeeding_age,omitempty" form:"breastfeeding_age"`
	ActivityLevel    Number `json:"activity_level,omitempty" form:"activity_level"`
}

// SessionContext 取代前端 localStorage 的訪客 session，由呼叫端明確傳入
type SessionContext struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
}
