package client

import (
	"context"
	"fmt"
	"net/http"
)

// DeviationsService accesses snapshot ingestion and deviation queries
type DeviationsService struct {
	client *Client
}

// RecordSnapshot ingests a newly retrieved configuration for the device
func (s *DeviationsService) RecordSnapshot(ctx context.Context, deviceID int64, text string) (*RecordResult, error) {
	var res RecordResult
	err := s.client.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("/devices/%d/snapshots", deviceID),
		map[string]string{"snapshot": text}, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// List returns the device's deviation events, newest first
func (s *DeviationsService) List(ctx context.Context, deviceID int64) ([]DeviationEvent, error) {
	var events []DeviationEvent
	err := s.client.doRequest(ctx, http.MethodGet,
		fmt.Sprintf("/devices/%d/deviations", deviceID), nil, &events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// AddIgnore registers a line-exclusion regex for the device
func (s *DeviationsService) AddIgnore(ctx context.Context, deviceID int64, regex string) (int64, error) {
	var res struct {
		ID int64 `json:"id"`
	}
	err := s.client.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("/devices/%d/ignores", deviceID),
		map[string]string{"regex": regex}, &res)
	if err != nil {
		return 0, err
	}
	return res.ID, nil
}

// ListIgnores returns the device's ignore patterns
func (s *DeviationsService) ListIgnores(ctx context.Context, deviceID int64) ([]IgnorePattern, error) {
	var patterns []IgnorePattern
	err := s.client.doRequest(ctx, http.MethodGet,
		fmt.Sprintf("/devices/%d/ignores", deviceID), nil, &patterns)
	if err != nil {
		return nil, err
	}
	return patterns, nil
}
