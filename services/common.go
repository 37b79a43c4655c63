package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// HttpRequest 發送 JSON 請求，非 2xx 的回應會回傳錯誤 (body 一併回傳)
func HttpRequest(method, url string, header map[string]string, data interface{}) ([]byte, error) {

	var body *bytes.Buffer = bytes.NewBuffer(nil)

	// 序列化參數
	if data != nil {
		requestBody, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(requestBody)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, element := range header {
		req.Header.Set(key, element)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, fmt.Errorf("%s %s: unexpected status %d", method, url, resp.StatusCode)
	}
	return respBody, nil
}

// Round 四捨五入到整數 (0.5 一律進位)
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// RoundTo 四捨五入到小數點後 places 位
func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(x*p+0.5) / p
}
