package integration

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/memberhub/internal/gymstats/activity"
	"github.com/2beens/memberhub/internal/gymstats/checkins"
)

func (s *IntegrationTestSuite) TestCheckinsDriveStreakAndFrequency() {
	ctx := context.Background()
	member := s.newMember(ctx)
	adminToken := s.adminLogin(ctx)

	now := time.Now().UTC()
	for _, daysAgo := range []int{0, 1, 2, 5} {
		at := now.AddDate(0, 0, -daysAgo)
		var created checkins.Checkin
		status := s.doJSON(ctx, http.MethodPost, "/admin/checkins", adminToken, map[string]any{
			"member_id":     member.TableID,
			"check_in_time": at,
		}, &created)
		s.Require().Equal(http.StatusCreated, status)
		s.Equal(member.TableID, created.MemberID)
	}

	var streak struct {
		Streak int `json:"streak"`
	}
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodGet, "/me/activity/streak", member.Token, nil, &streak))
	s.Equal(3, streak.Streak)

	var frequency struct {
		Buckets []activity.MonthlyCheckinBucket `json:"buckets"`
	}
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodGet, "/me/activity/frequency", member.Token, nil, &frequency))
	total := 0
	for _, b := range frequency.Buckets {
		total += b.VisitCount
	}
	s.Equal(4, total)

	var mine []checkins.Checkin
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodGet, "/me/checkins", member.Token, nil, &mine))
	s.Len(mine, 4)

	// members cannot record check-ins
	s.Equal(http.StatusForbidden, s.doJSON(ctx, http.MethodPost, "/admin/checkins", member.Token, map[string]any{
		"member_id": member.TableID,
	}, nil))
}

func (s *IntegrationTestSuite) TestWorkoutsDrivePersonalRecords() {
	ctx := context.Background()
	member := s.newMember(ctx)
	today := time.Now().UTC()

	for i, exercises := range [][]map[string]any{
		{{"name": "Bench Press", "sets": 3, "reps": 10, "weight": 80}},
		{{"name": "bench press", "sets": 3, "reps": 5, "weight": 90}, {"name": "Squat", "sets": 5, "reps": 5, "weight": 120}},
	} {
		status := s.doJSON(ctx, http.MethodPost, "/me/workouts", member.Token, map[string]any{
			"date":      today.AddDate(0, 0, i-1).Format("2006-01-02"),
			"exercises": exercises,
		}, nil)
		s.Require().Equal(http.StatusCreated, status)
	}

	// malformed set is rejected up front
	s.Equal(http.StatusBadRequest, s.doJSON(ctx, http.MethodPost, "/me/workouts", member.Token, map[string]any{
		"date":      today.Format("2006-01-02"),
		"exercises": []map[string]any{{"name": "Row", "sets": 3, "reps": 0, "weight": 40}},
	}, nil))

	var records struct {
		Records []activity.PersonalRecord `json:"records"`
	}
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodGet, "/me/activity/records", member.Token, nil, &records))
	s.Require().Len(records.Records, 2)
	s.Equal("Bench Press", records.Records[0].Exercise)
	s.Equal(80.0, records.Records[0].MaxWeight)
	s.Equal("Squat", records.Records[1].Exercise)

	adminToken := s.adminLogin(ctx)
	var summary activity.Summary
	path := fmt.Sprintf("/admin/members/%d/activity/summary", member.TableID)
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodGet, path, adminToken, nil, &summary))
	s.Len(summary.Records, 2)
}
