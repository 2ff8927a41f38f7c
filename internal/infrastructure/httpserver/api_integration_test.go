package httpserver_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// APISuite runs against a live deployment and is skipped unless
// TEST_SERVER_URL points at one.
type APISuite struct {
	suite.Suite
	client  *http.Client
	baseURL string
}

func (s *APISuite) SetupSuite() {
	s.baseURL = os.Getenv("TEST_SERVER_URL")
	if s.baseURL == "" {
		s.T().Skip("TEST_SERVER_URL not set")
	}
	s.client = &http.Client{Timeout: 5 * time.Second}
}

func (s *APISuite) request(method, path string, body any) (*http.Response, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.baseURL+path, &buf)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func (s *APISuite) TestHealth() {
	resp, body := s.request(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("healthy", body["status"])
}

func (s *APISuite) TestCreateIsIdempotentPerNaturalKey() {
	payload := map[string]any{
		"name":    fmt.Sprintf("Widget-%d", time.Now().UnixNano()),
		"country": "US",
		"price":   10,
	}

	resp, first := s.request(http.MethodPost, "/productsapi/products/", payload)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Require().NotEmpty(first["id"])
	s.EqualValues(10, first["price"])

	resp, second := s.request(http.MethodPost, "/productsapi/products/", payload)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(first["id"], second["id"])

	resp, fetched := s.request(http.MethodGet, fmt.Sprintf("/productsapi/products/%s", first["id"]), nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(first, fetched)
}

func (s *APISuite) TestRetrieveErrors() {
	resp, _ := s.request(http.MethodGet, "/productsapi/products/not-a-valid-id", nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.request(http.MethodGet, "/productsapi/products/000000000000000000000000", nil)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
