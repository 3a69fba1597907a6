package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/hajabot/internal/entity"
	"github.com/xavierca1/hajabot/internal/infra/integration/zapi"
	"github.com/xavierca1/hajabot/internal/infra/memory"
	"github.com/xavierca1/hajabot/internal/usecase"
)

type sentText struct {
	Phone   string
	Message string
}

type fakeGateway struct {
	mu   sync.Mutex
	sent []sentText
	err  error
}

func (g *fakeGateway) SendText(ctx context.Context, phone, message string) (*zapi.SendTextResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.sent = append(g.sent, sentText{phone, message})
	return &zapi.SendTextResponse{ZaapID: "z-1", MessageID: "m-1", ID: "m-1"}, nil
}

type testApp struct {
	leads    *memory.LeadStore
	messages *memory.MessageStore
	gateway  *fakeGateway
	handler  http.Handler
}

func newTestApp(t *testing.T, formLimit int) *testApp {
	t.Helper()

	leads := memory.NewLeadStore()
	messages := memory.NewMessageStore()
	gateway := &fakeGateway{}

	router := Router{
		Health:  NewHealthHandler("memory", nil, nil, true),
		Webhook: NewWebhookHandler(usecase.NewIngestWebhookUseCase(leads, messages, gateway, nil, false)),
		Form:    NewFormHandler(usecase.NewCaptureFormUseCase(leads, nil), formLimit),
		Send:    NewSendHandler(usecase.NewManualDispatchUseCase(gateway, leads, messages)),
		Leads:   NewLeadsHandler(usecase.NewLeadQueryUseCase(leads, messages)),
	}

	return &testApp{leads: leads, messages: messages, gateway: gateway, handler: router.Handler()}
}

func (a *testApp) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestRootLiveness(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"🔥 HajaBot ativo!"}`, rec.Body.String())
}

func TestWebhookCreatesLeadAndThread(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/api/webhook", `{"sender":"5511999999999","senderName":"Ana","message":"Oi"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp WebhookResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Webhook processed successfully", resp.Message)
	require.NotEmpty(t, resp.LeadID)

	leads, _ := app.leads.FindByPhone(context.Background(), "5511999999999")
	require.Len(t, leads, 1)
	assert.Equal(t, "Ana", leads[0].Name)
	assert.Equal(t, entity.LeadStatusNew, leads[0].Status)

	thread, _ := app.messages.ListByLead(context.Background(), resp.LeadID)
	require.Len(t, thread, 2)
	assert.Equal(t, "Oi", thread[0].Text)
	assert.Equal(t, entity.DirectionReceived, thread[0].Direction)
	assert.Equal(t, entity.DirectionSent, thread[1].Direction)
	assert.Contains(t, thread[1].Text, "Ana")

	require.Len(t, app.gateway.sent, 1)
	assert.Equal(t, "5511999999999", app.gateway.sent[0].Phone)
}

func TestWebhookSameSenderTwiceCreatesTwoLeads(t *testing.T) {
	app := newTestApp(t, 0)
	body := `{"sender":"5511999999999","senderName":"Ana","message":"Oi"}`

	first := app.do(t, http.MethodPost, "/api/webhook", body)
	second := app.do(t, http.MethodPost, "/api/webhook", body)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	leads, _ := app.leads.FindByPhone(context.Background(), "5511999999999")
	assert.Len(t, leads, 2)
}

func TestWebhookGatewayFailureReturns500(t *testing.T) {
	app := newTestApp(t, 0)
	app.gateway.err = errors.New("instance disconnected")

	rec := app.do(t, http.MethodPost, "/api/webhook", `{"sender":"5511","senderName":"Ana","message":"Oi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Failed to process webhook", resp.Error)
	assert.Contains(t, resp.Details, "instance disconnected")

	// sem rollback: lead e mensagem recebida continuam gravados
	leads, _ := app.leads.FindByPhone(context.Background(), "5511")
	require.Len(t, leads, 1)
	thread, _ := app.messages.ListByLead(context.Background(), leads[0].ID)
	assert.Len(t, thread, 1)
}

func TestWebhookMissingSender(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/api/webhook", `{"message":"Oi"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Sender é obrigatório"}`, rec.Body.String())
	assert.Equal(t, 0, app.messages.Count())
}

func TestWebhookBadJSON(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/api/webhook", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Invalid JSON", resp.Error)
}

func TestFormCreatesLead(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/api/form", `{"nome":"Bruno","telefone":"5511888888888","cep":"01000-000","plano":"Premium"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp FormResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Lead cadastrado com sucesso", resp.Message)
	require.NotNil(t, resp.Lead)
	assert.Equal(t, "Bruno", resp.Lead.Name)
	assert.Equal(t, "01000-000", resp.Lead.PostalCode)
	assert.Equal(t, "Premium", resp.Lead.Plan)
	assert.Equal(t, entity.LeadStatusNew, resp.Lead.Status)
	assert.Empty(t, app.gateway.sent)
}

func TestFormMissingNameCreatesNothing(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/api/form", `{"telefone":"5511888888888"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Nome e telefone são obrigatórios"}`, rec.Body.String())
	leads, _ := app.leads.List(context.Background(), entity.LeadFilter{})
	assert.Empty(t, leads)
}

func TestFormRateLimited(t *testing.T) {
	app := newTestApp(t, 2)
	body := `{"nome":"Bruno","telefone":"5511"}`

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/form", body).Code)
	}
	rec := app.do(t, http.MethodPost, "/api/form", body)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestManualSendWithoutLeadReportsUnlinked(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/api/send", `{"phone":"5511777777777","message":"Promoção"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp SendResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Success)
	assert.Equal(t, "Message sent successfully", resp.Message)
	assert.False(t, resp.Linked)
	assert.Empty(t, resp.LeadID)
	assert.NotEmpty(t, resp.LinkWarning)
	require.NotNil(t, resp.Result)
	assert.Equal(t, "m-1", resp.Result.MessageID)
	assert.Equal(t, 0, app.messages.Count())
	assert.Len(t, app.gateway.sent, 1)
}

func TestManualSendLinksToExistingLead(t *testing.T) {
	app := newTestApp(t, 0)
	lead := entity.NewLead("Ana", "5511999999999")
	require.NoError(t, app.leads.Create(context.Background(), lead))

	rec := app.do(t, http.MethodPost, "/api/send", `{"phone":"5511999999999","message":"Seu plano foi aprovado"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp SendResponse
	decode(t, rec, &resp)
	assert.True(t, resp.Linked)
	assert.Equal(t, lead.ID, resp.LeadID)

	thread, _ := app.messages.ListByLead(context.Background(), lead.ID)
	require.Len(t, thread, 1)
	assert.Equal(t, entity.DirectionSent, thread[0].Direction)
}

func TestManualSendValidation(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPost, "/api/send", `{"phone":"5511"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Phone e message são obrigatórios"}`, rec.Body.String())
	assert.Empty(t, app.gateway.sent)
}

func TestManualSendGatewayFailure(t *testing.T) {
	app := newTestApp(t, 0)
	app.gateway.err = &zapi.APIError{StatusCode: http.StatusBadRequest, Message: "Instance not connected"}

	rec := app.do(t, http.MethodPost, "/api/send", `{"phone":"5511","message":"oi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp ErrorResponse
	decode(t, rec, &resp)
	assert.Equal(t, "Failed to send message", resp.Error)
	assert.Contains(t, resp.Details, "Instance not connected")
}

func TestListLeadsFilters(t *testing.T) {
	app := newTestApp(t, 0)
	ctx := context.Background()
	ana := entity.NewLead("Ana Souza", "5511999999999")
	bruno := entity.NewLead("Bruno", "5521888888888")
	require.NoError(t, app.leads.Create(ctx, ana))
	require.NoError(t, app.leads.Create(ctx, bruno))
	_, err := app.leads.UpdateStatus(ctx, bruno.ID, entity.LeadStatusDone)
	require.NoError(t, err)

	var all []entity.Lead
	decode(t, app.do(t, http.MethodGet, "/api/leads?status=all", ""), &all)
	assert.Len(t, all, 2)

	var done []entity.Lead
	decode(t, app.do(t, http.MethodGet, "/api/leads?status=concluido", ""), &done)
	require.Len(t, done, 1)
	assert.Equal(t, bruno.ID, done[0].ID)

	var byName []entity.Lead
	decode(t, app.do(t, http.MethodGet, "/api/leads?search=souza", ""), &byName)
	require.Len(t, byName, 1)
	assert.Equal(t, ana.ID, byName[0].ID)

	var byPhone []entity.Lead
	decode(t, app.do(t, http.MethodGet, "/api/leads?search=5521", ""), &byPhone)
	require.Len(t, byPhone, 1)
	assert.Equal(t, bruno.ID, byPhone[0].ID)
}

func TestListLeadsEmptyIsArray(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodGet, "/api/leads", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestLeadMessagesThread(t *testing.T) {
	app := newTestApp(t, 0)
	webhook := app.do(t, http.MethodPost, "/api/webhook", `{"sender":"5511","senderName":"Ana","message":"Oi"}`)
	var created WebhookResponse
	decode(t, webhook, &created)

	rec := app.do(t, http.MethodGet, "/api/leads/"+created.LeadID+"/messages", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var thread []entity.Message
	decode(t, rec, &thread)
	require.Len(t, thread, 2)
	assert.Equal(t, "Oi", thread[0].Text)
	assert.Equal(t, created.LeadID, thread[1].LeadID)
}

func TestUpdateLeadStatus(t *testing.T) {
	app := newTestApp(t, 0)
	lead := entity.NewLead("Ana", "5511")
	require.NoError(t, app.leads.Create(context.Background(), lead))

	rec := app.do(t, http.MethodPut, "/api/leads/"+lead.ID, `{"status":"em_andamento"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated entity.Lead
	decode(t, rec, &updated)
	assert.Equal(t, lead.ID, updated.ID)
	assert.Equal(t, entity.LeadStatusInProgress, updated.Status)
}

func TestUpdateLeadStoresCustomStatus(t *testing.T) {
	app := newTestApp(t, 0)
	created := app.do(t, http.MethodPost, "/api/form", `{"nome":"Ana","telefone":"5511"}`)
	require.Equal(t, http.StatusCreated, created.Code)
	var form FormResponse
	decode(t, created, &form)

	rec := app.do(t, http.MethodPut, "/api/leads/"+form.Lead.ID, `{"status":"em_atendimento"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated entity.Lead
	decode(t, rec, &updated)
	assert.Equal(t, entity.LeadStatus("em_atendimento"), updated.Status)

	var listed []entity.Lead
	decode(t, app.do(t, http.MethodGet, "/api/leads?status=em_atendimento", ""), &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, form.Lead.ID, listed[0].ID)
}

func TestUpdateLeadEmptyStatus(t *testing.T) {
	app := newTestApp(t, 0)
	lead := entity.NewLead("Ana", "5511")
	require.NoError(t, app.leads.Create(context.Background(), lead))

	rec := app.do(t, http.MethodPut, "/api/leads/"+lead.ID, `{"status":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Status inválido"}`, rec.Body.String())
}

func TestEmptyBodyFallsThroughToValidation(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"form", "/api/form", `{"error":"Nome e telefone são obrigatórios"}`},
		{"send", "/api/send", `{"error":"Phone e message são obrigatórios"}`},
		{"webhook", "/api/webhook", `{"error":"Sender é obrigatório"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, 0)

			rec := app.do(t, http.MethodPost, tt.path, "")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestUpdateUnknownLead(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodPut, "/api/leads/does-not-exist", `{"status":"concluido"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Lead não encontrado"}`, rec.Body.String())
}

func TestHealthDegradedWhenStoreDown(t *testing.T) {
	h := NewHealthHandler("supabase", func(ctx context.Context) error {
		return errors.New("timeout")
	}, nil, false)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp HealthResponse
	decode(t, rec, &resp)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unhealthy: timeout", resp.Dependencies["supabase"])
	assert.Equal(t, "not configured", resp.Dependencies["zapi"])
}

type closedConn struct{}

func (closedConn) IsClosed() bool { return true }

func TestHealthReportsClosedRabbitMQ(t *testing.T) {
	h := NewHealthHandler("postgres", func(ctx context.Context) error { return nil }, closedConn{}, true)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	decode(t, rec, &resp)
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "healthy", resp.Dependencies["postgres"])
	assert.Equal(t, "unhealthy: connection closed", resp.Dependencies["rabbitmq"])
}

func TestHealthHealthyInMemory(t *testing.T) {
	app := newTestApp(t, 0)

	rec := app.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	decode(t, rec, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "in-process", resp.Dependencies["memory"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, 0)
	app.do(t, http.MethodGet, "/", "")

	rec := app.do(t, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/form", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", getClientIP(req))

	req.Header.Set("X-Real-IP", "172.16.0.9")
	assert.Equal(t, "172.16.0.9", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(req))
}
