package app

import (
	"context"

	"tableflip.dev/mindgrid/pkg/link"
	"tableflip.dev/mindgrid/pkg/state"
)

// Audit reports dangling, duplicate, one-sided and conflicting links.
func (s *Service) Audit(ctx context.Context) ([]link.Finding, error) {
	st, err := s.State()
	if err != nil {
		return nil, err
	}
	return link.Audit(st.Graph()), nil
}

// Repair fixes every finding Audit reports and returns what was fixed.
func (s *Service) Repair(ctx context.Context) ([]link.Finding, error) {
	findings, err := s.Audit(ctx)
	if err != nil || len(findings) == 0 {
		return findings, err
	}
	if _, err := s.dispatch(state.RepairLinks{}); err != nil {
		return findings, err
	}
	s.logger().Info("repaired links")
	return findings, nil
}
