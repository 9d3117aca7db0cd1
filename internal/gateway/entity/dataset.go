package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// DatasetID identifies a dataset (legacy "resource") record.
type DatasetID int64

// ParseDatasetID parses a positive decimal dataset id.
func ParseDatasetID(raw string) (DatasetID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid dataset id %q", raw)
	}
	id := DatasetID(v)
	if !id.Valid() {
		return 0, fmt.Errorf("dataset id must be positive, got %d", v)
	}
	return id, nil
}

func (id DatasetID) Valid() bool {
	return id > 0
}

func (id DatasetID) Int64() int64 {
	return int64(id)
}

func (id DatasetID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
