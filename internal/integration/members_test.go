package integration

import (
	"context"
	"net/http"
	"strings"

	"github.com/2beens/memberhub/internal/members"
)

func (s *IntegrationTestSuite) TestProfileAndPlans() {
	ctx := context.Background()
	member := s.newMember(ctx)

	var me members.Member
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodGet, "/me", member.Token, nil, &me))
	s.Equal(member.MemberID, me.MemberID)
	s.Equal(members.StatusActive, me.MembershipStatus)

	var updated members.Member
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodPut, "/me/profile", member.Token, map[string]any{
		"name":         "  Jane Lifter ",
		"phone_number": "+91 98765 43210",
	}, &updated))
	s.Equal("Jane Lifter", updated.Name)
	s.Require().NotNil(updated.PhoneNumber)
	s.Equal(me.Age, updated.Age)

	s.Equal(http.StatusBadRequest, s.doJSON(ctx, http.MethodPut, "/me/profile", member.Token, map[string]any{}, nil))
	s.Equal(http.StatusBadRequest, s.doJSON(ctx, http.MethodPut, "/me/profile", member.Token, map[string]any{"age": 0}, nil))

	var plans []members.Plan
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodGet, "/me/plans", member.Token, nil, &plans))
	s.Require().Len(plans, 2)
	s.Equal("Monthly", plans[0].Name)

	var intent members.PaymentIntent
	s.Require().Equal(http.StatusCreated, s.doJSON(ctx, http.MethodPost, "/me/payments/intent", member.Token, map[string]any{
		"plan_id": plans[0].ID,
	}, &intent))
	s.Equal("irontemple@upi", intent.PayeeVPA)
	s.True(strings.HasPrefix(intent.Link, "upi://pay?pa=irontemple%40upi"))
}

func (s *IntegrationTestSuite) TestEmailChangeWithoutSMTP() {
	ctx := context.Background()
	member := s.newMember(ctx)

	// the seeded gym has no smtp settings, so no code can be mailed
	status := s.doJSON(ctx, http.MethodPost, "/me/email/otp", member.Token, map[string]string{
		"new_email": "new-" + member.Email,
	}, nil)
	s.NotEqual(http.StatusOK, status)

	s.Equal(http.StatusBadRequest, s.doJSON(ctx, http.MethodPost, "/me/email/verify", member.Token, map[string]string{
		"new_email": "new-" + member.Email,
		"code":      "not-a-code",
	}, nil))
}
