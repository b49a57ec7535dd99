package integration

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/2beens/memberhub/internal/announcements"
	"github.com/2beens/memberhub/internal/auth"
	"github.com/2beens/memberhub/internal/messages"
)

func (s *IntegrationTestSuite) TestConversationAndReadMarks() {
	ctx := context.Background()
	member := s.newMember(ctx)
	adminToken := s.adminLogin(ctx)

	var sent messages.Message
	status := s.doJSON(ctx, http.MethodPost, "/me/messages", member.Token, map[string]string{
		"content": "<b>Is the sauna open</b> on Sunday?",
	}, &sent)
	s.Require().Equal(http.StatusCreated, status)
	s.Equal("Is the sauna open on Sunday?", sent.Content)

	path := fmt.Sprintf("/admin/members/%d/messages", member.TableID)
	s.Require().Equal(http.StatusCreated, s.doJSON(ctx, http.MethodPost, path, adminToken, map[string]string{
		"content": "Yes, 8 to 12.",
	}, nil))

	s.Equal(http.StatusBadRequest, s.doJSON(ctx, http.MethodPost, "/me/messages", member.Token, map[string]string{
		"content": "<script>alert(1)</script>",
	}, nil))

	var conversation struct {
		Groups []messages.DateGroup `json:"groups"`
	}
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodGet, "/me/messages", member.Token, nil, &conversation))
	s.Require().Len(conversation.Groups, 1)
	s.Equal(messages.LabelToday, conversation.Groups[0].Label)
	s.Require().Len(conversation.Groups[0].Messages, 2)
	s.Equal(messages.ParticipantMember, conversation.Groups[0].Messages[0].SenderType)
	s.Equal(messages.ParticipantAdmin, conversation.Groups[0].Messages[1].SenderType)

	var marked struct {
		Marked int64 `json:"marked"`
	}
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodPut, "/me/messages/read", member.Token, nil, &marked))
	s.Equal(int64(1), marked.Marked)
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodPut, "/me/messages/read", member.Token, nil, &marked))
	s.Equal(int64(0), marked.Marked)

	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodPut, path+"/read", adminToken, nil, &marked))
	s.Equal(int64(1), marked.Marked)
}

func (s *IntegrationTestSuite) TestStreamDeliversMessagesAndCheckins() {
	ctx := context.Background()
	member := s.newMember(ctx)
	adminToken := s.adminLogin(ctx)

	wsURL := fmt.Sprintf("ws://%s:%d/me/stream?%s=%s", serverHost, serverPort, auth.TokenQueryParam, member.Token)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, http.Header{"User-Agent": {"test-agent"}})
	s.Require().NoError(err)
	defer conn.Close()

	messagesChannel := fmt.Sprintf("memberhub:realtime:messages:%d", member.TableID)
	checkinsChannel := fmt.Sprintf("memberhub:realtime:checkins:%d", member.TableID)
	s.Require().Eventually(func() bool {
		counts, err := s.redisClient.PubSubNumSub(ctx, messagesChannel, checkinsChannel).Result()
		return err == nil && counts[messagesChannel] == 1 && counts[checkinsChannel] == 1
	}, 5*time.Second, 50*time.Millisecond)

	path := fmt.Sprintf("/admin/members/%d/messages", member.TableID)
	s.Require().Equal(http.StatusCreated, s.doJSON(ctx, http.MethodPost, path, adminToken, map[string]string{
		"content": "Your plan renews next week",
	}, nil))
	s.Require().Equal(http.StatusCreated, s.doJSON(ctx, http.MethodPost, "/admin/checkins", adminToken, map[string]any{
		"member_id": member.TableID,
	}, nil))

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))

	// the two subscriptions deliver independently, so the order is not fixed
	received := map[string]messages.StreamEvent{}
	for len(received) < 2 {
		var ev messages.StreamEvent
		s.Require().NoError(conn.ReadJSON(&ev))
		received[ev.Kind] = ev
	}

	msgEvent := received[messages.StreamKindMessage]
	s.Require().NotNil(msgEvent.Message)
	s.Equal("Your plan renews next week", msgEvent.Message.Content)
	s.NotNil(received[messages.StreamKindCheckin].Notification)

	s.Require().NoError(conn.Close())
	s.Eventually(func() bool {
		counts, err := s.redisClient.PubSubNumSub(ctx, messagesChannel).Result()
		return err == nil && counts[messagesChannel] == 0
	}, 5*time.Second, 50*time.Millisecond)
}

func (s *IntegrationTestSuite) TestAnnouncements() {
	ctx := context.Background()
	member := s.newMember(ctx)
	adminToken := s.adminLogin(ctx)

	var created announcements.Announcement
	status := s.doJSON(ctx, http.MethodPost, "/admin/announcements", adminToken, map[string]string{
		"title":   "Holiday hours",
		"content": "We are **closed** on the 25th.\n<script>alert(1)</script>",
	}, &created)
	s.Require().Equal(http.StatusCreated, status)
	s.Contains(created.HTML, "<strong>closed</strong>")

	s.Equal(http.StatusForbidden, s.doJSON(ctx, http.MethodPost, "/admin/announcements", member.Token, map[string]string{
		"title": "x", "content": "y",
	}, nil))

	var list struct {
		Announcements []announcements.Announcement `json:"announcements"`
	}
	s.Require().Equal(http.StatusOK, s.doJSON(ctx, http.MethodGet, "/me/announcements", member.Token, nil, &list))
	s.Require().NotEmpty(list.Announcements)
	s.Equal("Holiday hours", list.Announcements[0].Title)
	s.False(strings.Contains(list.Announcements[0].HTML, "<script"))
}
