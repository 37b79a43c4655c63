package structs

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number 接受 JSON 數字或數字字串，其他內容 (null、空字串、亂碼、NaN、Inf) 一律視為 0
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = finite(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = finite(f)
			return nil
		}
	}

	*n = 0
	return nil
}

func finite(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return Number(f)
}

func (n Number) Float64() float64 {
	return float64(n)
}
