package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-promptcraft-be/internal/dto"
	"ai-promptcraft-be/internal/pkg/apperr"
	"ai-promptcraft-be/internal/pkg/logger"
	"ai-promptcraft-be/internal/pkg/serverutils"
)

type stubRewriteService struct {
	rewriteRes     *dto.RewriteResponse
	selfImproveRes *dto.SelfImproveResponse
	err            error
}

func (s *stubRewriteService) Rewrite(ctx context.Context, req *dto.RewriteRequest) (*dto.RewriteResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rewriteRes, nil
}

func (s *stubRewriteService) SelfImprove(ctx context.Context, req *dto.SelfImproveRequest) (*dto.SelfImproveResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.selfImproveRes, nil
}

func (s *stubRewriteService) Modes() []dto.ModeInfo {
	return []dto.ModeInfo{{Key: "question-research", Name: "Question Research"}}
}

func newTestApp(svc *stubRewriteService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.RequestIdMiddleware())
	app.Use(serverutils.ErrorHandlerMiddleware(logger.NewRecordingLogger()))

	api := app.Group("/api")
	NewRewriteController(svc).RegisterRoutes(api)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bodyBytes, out))
}

func TestRewriteEndpointSuccess(t *testing.T) {
	svc := &stubRewriteService{rewriteRes: &dto.RewriteResponse{
		RewrittenPrompt: "Better prompt.",
		Mode:            "question-research",
		ModeName:        "Question Research",
		WebSources:      []string{},
	}}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/rewrite/v1", dto.RewriteRequest{
		UserPrompt: "make this better",
		Mode:       "question-research",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var body dto.RewriteResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Better prompt.", body.RewrittenPrompt)
	assert.Equal(t, "Question Research", body.ModeName)
	assert.Equal(t, []string{}, body.WebSources)
}

func TestRewriteEndpointEmptyPrompt(t *testing.T) {
	app := newTestApp(&stubRewriteService{})

	resp := postJSON(t, app, "/api/rewrite/v1", dto.RewriteRequest{
		UserPrompt: "",
		Mode:       "question-research",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body["error"])
}

func TestSelfImproveEndpointEmptyOutput(t *testing.T) {
	app := newTestApp(&stubRewriteService{})

	resp := postJSON(t, app, "/api/rewrite/v1/self-improve", dto.SelfImproveRequest{
		CurrentOutput: "",
		Mode:          "question-research",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSelfImproveEndpointSuccess(t *testing.T) {
	svc := &stubRewriteService{selfImproveRes: &dto.SelfImproveResponse{
		ImprovedOutput: "Even better.",
		Mode:           "question-research",
		ModeName:       "Question Research",
	}}
	app := newTestApp(svc)

	resp := postJSON(t, app, "/api/rewrite/v1/self-improve", dto.SelfImproveRequest{
		CurrentOutput: "Better.",
		Mode:          "question-research",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.SelfImproveResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Even better.", body.ImprovedOutput)
}

func TestErrorKindsMapToStatusCodes(t *testing.T) {
	tests := []struct {
		kind apperr.Kind
		want int
	}{
		{apperr.KindInvalidInput, http.StatusBadRequest},
		{apperr.KindMisconfigured, http.StatusUnauthorized},
		{apperr.KindPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{apperr.KindRateLimited, http.StatusTooManyRequests},
		{apperr.KindTimeout, http.StatusServiceUnavailable},
		{apperr.KindServiceUnavailable, http.StatusServiceUnavailable},
		{apperr.KindEmptyResponse, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			app := newTestApp(&stubRewriteService{err: apperr.New(tt.kind, nil)})

			resp := postJSON(t, app, "/api/rewrite/v1", dto.RewriteRequest{
				UserPrompt: "text",
				Mode:       "question-research",
			})
			assert.Equal(t, tt.want, resp.StatusCode)

			var body map[string]string
			decodeBody(t, resp, &body)
			assert.Equal(t, apperr.UserMessage(tt.kind), body["error"])
		})
	}
}

func TestModesEndpoint(t *testing.T) {
	app := newTestApp(&stubRewriteService{})

	req := httptest.NewRequest("GET", "/api/rewrite/v1/modes", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body []dto.ModeInfo
	decodeBody(t, resp, &body)
	require.Len(t, body, 1)
	assert.Equal(t, "question-research", body[0].Key)
}

func TestMalformedJSONBody(t *testing.T) {
	app := newTestApp(&stubRewriteService{})

	req := httptest.NewRequest("POST", "/api/rewrite/v1", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
