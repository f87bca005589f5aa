package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ProposalsService accesses the baseline-change workflow
type ProposalsService struct {
	client *Client
}

// CreateProposalRequest is the body for Create
type CreateProposalRequest struct {
	Snapshot string `json:"snapshot"`
	Comment  string `json:"comment,omitempty"`
}

// CreateProposalResult is the response of Create
type CreateProposalResult struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// Create opens a pending proposal for the device
func (s *ProposalsService) Create(ctx context.Context, deviceID int64, req CreateProposalRequest) (*CreateProposalResult, error) {
	var res CreateProposalResult
	err := s.client.doRequest(ctx, http.MethodPost,
		fmt.Sprintf("/devices/%d/baseline/proposals", deviceID), req, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// List returns proposals newest first, optionally filtered by status
func (s *ProposalsService) List(ctx context.Context, status string) ([]Proposal, error) {
	path := "/baseline/proposals"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}

	var list []Proposal
	if err := s.client.doRequest(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Approve approves a pending proposal
func (s *ProposalsService) Approve(ctx context.Context, id int64) (string, error) {
	return s.decide(ctx, id, "approve")
}

// Reject rejects a pending proposal
func (s *ProposalsService) Reject(ctx context.Context, id int64) (string, error) {
	return s.decide(ctx, id, "reject")
}

func (s *ProposalsService) decide(ctx context.Context, id int64, action string) (string, error) {
	var res struct {
		Status string `json:"status"`
	}
	err := s.client.doRequest(ctx, http.MethodPut,
		fmt.Sprintf("/baseline/proposals/%d", id),
		map[string]string{"action": action}, &res)
	if err != nil {
		return "", err
	}
	return res.Status, nil
}
