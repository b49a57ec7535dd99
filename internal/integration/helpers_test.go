package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

type testMember struct {
	TableID  int64
	MemberID string
	Name     string
	Email    string
	Token    string
}

// newMember inserts a member with fake profile data and logs them in.
func (s *IntegrationTestSuite) newMember(ctx context.Context) testMember {
	m := testMember{
		Name:  gofakeit.Name(),
		Email: strings.ToLower(gofakeit.Email()),
	}
	expiry := time.Now().AddDate(0, 3, 0)
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO members (member_id, name, email, age, gym_id, expiry_date)
		VALUES ('pending-' || md5(random()::text), $1, $2, $3, $4, $5)
		RETURNING id
	`, m.Name, m.Email, gofakeit.Number(18, 70), testGymID, expiry).Scan(&m.TableID)
	s.Require().NoError(err)

	m.MemberID = fmt.Sprintf("GYM1-%04d", m.TableID)
	_, err = s.DB.ExecContext(ctx, `UPDATE members SET member_id = $1 WHERE id = $2`, m.MemberID, m.TableID)
	s.Require().NoError(err)

	var resp struct {
		Token string `json:"token"`
	}
	status := s.doJSON(ctx, http.MethodPost, "/auth/member/login", "", map[string]string{
		// login is case-insensitive on both fields
		"email":     strings.ToUpper(m.Email),
		"member_id": strings.ToLower(m.MemberID),
	}, &resp)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotEmpty(resp.Token)
	m.Token = resp.Token

	return m
}

func (s *IntegrationTestSuite) adminLogin(ctx context.Context) string {
	var resp struct {
		Token string `json:"token"`
	}
	status := s.doJSON(ctx, http.MethodPost, "/auth/admin/login", "", map[string]string{
		"username": testAdminUsername,
		"password": testAdminPassword,
	}, &resp)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

// doJSON sends body as JSON and decodes a JSON response into out when given.
func (s *IntegrationTestSuite) doJSON(ctx context.Context, method, path, token string, body, out any) int {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if out != nil && resp.StatusCode < 300 {
		s.Require().NoError(json.Unmarshal(respBytes, out), string(respBytes))
	}

	return resp.StatusCode
}
