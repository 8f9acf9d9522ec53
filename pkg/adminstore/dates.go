package adminstore

import (
	"context"
	"fmt"

	"github.com/genielabs/genie-admin/pkg/models"
)

// FetchGenieDates loads dates matching params. A nil params lists every date.
func (s *Store) FetchGenieDates(ctx context.Context, params *models.ListDatesParams) {
	p := models.ListDatesParams{}
	if params != nil {
		p = *params
	}

	c, ctx, cancel, err := s.begin(ctx, models.OpFetchGenieDates, keyGenieDates)
	if err != nil {
		return
	}
	defer cancel()

	resp, err := s.api.ListDates(ctx, p)
	s.finish(c, err, func(st *Snapshot) {
		dates := resp.Dates
		if dates == nil {
			dates = []models.ScheduledDate{}
		}
		st.GenieDates = dates
		st.TotalGenieDates = resp.TotalCount
	})
}

// CreateDate schedules a date and then refreshes GenieDates for the acting admin. The
// created record is never added locally.
func (s *Store) CreateDate(ctx context.Context, req *models.CreateDateRequest) (*models.ScheduledDate, error) {
	adminID, ok := s.actingAdminID()
	if !ok {
		return nil, s.fail(ctx, models.OpCreateDate, ErrNotAuthenticated)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, s.fail(ctx, models.OpCreateDate, fmt.Errorf("%w: %v", models.ErrBadRequest, err))
	}

	c, callCtx, cancel, err := s.begin(ctx, models.OpCreateDate, "")
	if err != nil {
		return nil, err
	}
	date, err := s.api.CreateDate(callCtx, req)
	cancel()
	if !s.finish(c, err, nil) {
		return nil, ErrDisposed
	}
	if err != nil {
		return nil, err
	}

	s.FetchGenieDates(ctx, &models.ListDatesParams{GenieID: adminID})
	return date, nil
}

// UpdateDateStatus sets a date's status and optional notes, then refreshes GenieDates
// for the acting admin.
func (s *Store) UpdateDateStatus(ctx context.Context, dateID string, status models.DateStatus, notes *string) error {
	adminID, ok := s.actingAdminID()
	if !ok {
		return s.fail(ctx, models.OpUpdateDateStatus, ErrNotAuthenticated)
	}
	req := &models.UpdateDateRequest{Status: status, Notes: notes}
	if err := s.validate.Struct(req); err != nil {
		return s.fail(ctx, models.OpUpdateDateStatus, fmt.Errorf("%w: %v", models.ErrBadRequest, err))
	}

	c, callCtx, cancel, err := s.begin(ctx, models.OpUpdateDateStatus, "")
	if err != nil {
		return err
	}
	_, err = s.api.UpdateDate(callCtx, dateID, req)
	cancel()
	if !s.finish(c, err, nil) {
		return ErrDisposed
	}
	if err != nil {
		return err
	}

	s.FetchGenieDates(ctx, &models.ListDatesParams{GenieID: adminID})
	return nil
}
