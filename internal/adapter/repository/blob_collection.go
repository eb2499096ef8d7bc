package repository

import (
	"encoding/json"

	"nexusmarket/pkg/errors"
	"nexusmarket/pkg/logger"
)

// decodeList parses a serialized collection. Malformed data yields an empty
// collection and records failing keep are dropped, so one corrupt entry never
// takes the whole collection down.
func decodeList[T any](key string, raw []byte, keep func(*T) bool) []*T {
	if len(raw) == 0 {
		return []*T{}
	}

	var items []*T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("decodeList: %s is malformed, treating as empty: %v", key, err)
		return []*T{}
	}

	valid := items[:0]
	dropped := 0
	for _, item := range items {
		if item == nil || (keep != nil && !keep(item)) {
			dropped++
			continue
		}
		valid = append(valid, item)
	}
	if dropped > 0 {
		logger.Warn("decodeList: dropped %d invalid records from %s", dropped, key)
	}
	return valid
}

func encode(key string, v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Internal("Failed to serialize "+key, err)
	}
	return data, nil
}
