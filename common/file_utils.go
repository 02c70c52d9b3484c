package common

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

func LoadJSON[TReturn any](path string) (*TReturn, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %v. error: %w", path, err)
	}

	defer f.Close()

	var value TReturn

	decoder := json.NewDecoder(f)

	err = decoder.Decode(&value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %v. error: %w", path, err)
	}

	return &value, nil
}
