package enum

import (
	"encoding/json"
	"fmt"
)

func scanString(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("enum: cannot scan %T", value)
	}
}

func unmarshalString(data []byte) (string, error) {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return "", fmt.Errorf("enum: expected JSON string, got %s", data)
	}
	return str, nil
}
