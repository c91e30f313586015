// Package service orchestrates data retrieval, normalization, and scoring
// passes over the daily slate.
package service

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/diamond-edge/internal/models"
)

var payloadValidator = validator.New()

// DecodeSlatePayload parses and validates a raw slate payload. A payload
// that does not match the documented shape fails fast with a single
// descriptive error; per-item irregularities inside a well-shaped payload
// are left for the engine to skip and report.
func DecodeSlatePayload(data []byte) (*models.SlatePayload, error) {
	payload := &models.SlatePayload{}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	return payload, nil
}

// DecodePropsPayload parses and validates a raw props payload.
func DecodePropsPayload(data []byte) (*models.PropsPayload, error) {
	payload := &models.PropsPayload{}
	if err := json.Unmarshal(data, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	return payload, nil
}
