package client

import (
	"context"
	"fmt"
	"net/http"
)

// BaselinesService accesses the baseline registry
type BaselinesService struct {
	client *Client
}

// Get returns the device's active baseline
func (s *BaselinesService) Get(ctx context.Context, deviceID int64) (*Baseline, error) {
	var b Baseline
	err := s.client.doRequest(ctx, http.MethodGet,
		fmt.Sprintf("/devices/%d/baseline", deviceID), nil, &b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// History returns the device's replaced baselines, newest first
func (s *BaselinesService) History(ctx context.Context, deviceID int64) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	err := s.client.doRequest(ctx, http.MethodGet,
		fmt.Sprintf("/devices/%d/baseline/history", deviceID), nil, &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
