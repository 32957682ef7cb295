package persistence

import (
	"encoding/json"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/golang/snappy"
)

// encodeSteps stores a trace as snappy compressed JSON. An empty trace encodes
// to nil.
func encodeSteps(steps []models.StepView) ([]byte, error) {
	if len(steps) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(steps)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, raw), nil
}

func decodeSteps(data []byte) ([]models.StepView, error) {
	if len(data) == 0 {
		return nil, nil
	}
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, err
	}
	var steps []models.StepView
	if err := json.Unmarshal(raw, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}
