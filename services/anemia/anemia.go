// Package anemia scores the eleven-question anemia risk screening.
package anemia

import (
	"fmt"
	"gizi-go-worker/enums"
	"strings"
)

type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	// Reverse 保護因子題目：回答「否」才加分
	Reverse bool `json:"reverse"`
}

// Questions 題目與順序固定
var Questions = []Question{
	{"q1", "Apakah Anda merasa mudah lelah atau lemas sepanjang hari?", false},
	{"q2", "Apakah Anda sering merasa pusing saat melakukan aktivitas ringan?", false},
	{"q3", "Apakah Anda mengalami sesak napas saat melakukan aktivitas ringan?", false},
	{"q4", "Apakah bagian dalam kelopak mata atau bibir Anda terlihat pucat?", false},
	{"q5", "Apakah Anda mengalami kerontokan rambut berlebih atau kuku mudah rapuh?", false},
	{"q6", "Apakah Anda sering melewatkan sarapan?", false},
	{"q7", "Apakah Anda sering minum teh atau kopi bersamaan atau segera setelah makan?", false},
	{"q8", "Apakah Anda rutin mengonsumsi suplemen zat besi, tablet tambah darah, atau multivitamin yang mengandung zat besi?", true},
	{"q9", "Apakah Anda sering mengonsumsi makanan sumber protein hewani (seperti telur, ayam, ikan, daging)?", true},
	{"q10", "Apakah makanan sumber protein hewani tersedia secara rutin di rumah Anda?", true},
	{"q11", "Apakah Anda pernah mengalami infeksi cacing dalam 6 bulan terakhir?", false},
}

const (
	lowMaxScore    = 3
	mediumMaxScore = 7
)

// Responses 題號對應答案，nil 或沒有該題代表尚未作答
type Responses map[string]*bool

type IncompleteResponseError struct {
	Missing []string
}

func (e *IncompleteResponseError) Error() string {
	return fmt.Sprintf("unanswered questions: %s", strings.Join(e.Missing, ", "))
}

type Assessment struct {
	Score int    `json:"score"`
	Level string `json:"level"`
	Risk  bool   `json:"risk"`
	Color string `json:"color"`
}

// Score 全部 11 題都有答案才計分
func Score(responses Responses) (Assessment, error) {
	var missing []string
	score := 0
	for _, q := range Questions {
		answer, ok := responses[q.ID]
		if !ok || answer == nil {
			missing = append(missing, q.ID)
			continue
		}
		if *answer != q.Reverse {
			score++
		}
	}
	if len(missing) > 0 {
		return Assessment{}, &IncompleteResponseError{Missing: missing}
	}
	return Classify(score), nil
}

// Classify 分數對應風險等級
func Classify(score int) Assessment {
	switch {
	case score <= lowMaxScore:
		return Assessment{Score: score, Level: enums.RiskLow, Risk: false, Color: enums.ColorGreen}
	case score <= mediumMaxScore:
		return Assessment{Score: score, Level: enums.RiskMedium, Risk: true, Color: enums.ColorYellow}
	default:
		return Assessment{Score: score, Level: enums.RiskHigh, Risk: true, Color: enums.ColorRed}
	}
}
