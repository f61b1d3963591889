// Package scenario loads valuation scenarios from YAML and evaluates every
// requested calculation and sensitivity grid from one immutable snapshot.
package scenario

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file and returns the validated Scenario with raw bytes.
// ⭐ SSOT: KnownFields(true)로 오타/미사용 필드 즉시 실패
func Load(path string) (*Scenario, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	s, err := Parse(data)
	if err != nil {
		return nil, data, err
	}

	return s, data, nil
}

// Parse decodes and validates one scenario document.
// JSON 본문도 snake_case 키면 그대로 파싱됨
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 알 수 없는 필드 발견 시 에러 반환
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Hash generates SHA256 hash from Scenario (canonical JSON)
// 주의: map 대신 struct 사용으로 해시 재현성 보장
func Hash(s *Scenario) (string, error) {
	jsonBytes, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
