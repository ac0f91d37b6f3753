package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/a2a"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/infrastruture/taskstore"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/service"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/solver"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcResponse keeps the result raw so tests can decode it per method.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *a2a.Error      `json:"error,omitempty"`
}

func newTestServer(t *testing.T) (*gin.Engine, *taskstore.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := taskstore.NewMemory()
	executor, err := service.NewExecutor(service.ExecutorConfig{
		Solver: solver.New(nil),
		Store:  store,
	})
	require.NoError(t, err)

	card := &a2a.AgentCard{
		Name:        "Neophytic Rooms Purple Baseline",
		Description: "test card",
		URL:         "http://localhost:8000/",
		Version:     "1.0.0",
	}
	controller, err := NewA2AController(card, executor, store, nil)
	require.NoError(t, err)

	engine := gin.New()
	controller.Register(engine.Group("/"))
	return engine, store
}

func doRPC(t *testing.T, engine *gin.Engine, body string) rpcResponse {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	request.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response rpcResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestAgentCardEndpoint(t *testing.T) {
	engine, _ := newTestServer(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil)
	engine.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var card a2a.AgentCard
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &card))
	assert.Equal(t, "Neophytic Rooms Purple Baseline", card.Name)
}

func TestMessageSend(t *testing.T) {
	t.Run("grid puzzle round trip", func(t *testing.T) {
		engine, _ := newTestServer(t)

		body := `{
			"jsonrpc": "2.0",
			"id": 1,
			"method": "message/send",
			"params": {
				"message": {
					"kind": "message",
					"messageId": "m1",
					"role": "user",
					"contextId": "ctx-1",
					"parts": [{"kind": "text", "text": "{\"grid\":[[0,0,0],[0,0,0],[0,0,0]],\"start\":[0,0],\"goal\":[2,2]}"}]
				}
			}
		}`
		response := doRPC(t, engine, body)
		require.Nil(t, response.Error)

		var task a2a.Task
		require.NoError(t, json.Unmarshal(response.Result, &task))
		assert.Equal(t, a2a.TaskStateCompleted, task.Status.State)
		assert.Contains(t, task.Status.Message.Text(), "moves")
	})

	t.Run("missing message yields invalid params", func(t *testing.T) {
		engine, _ := newTestServer(t)
		response := doRPC(t, engine, `{"jsonrpc":"2.0","id":2,"method":"message/send","params":{}}`)
		require.NotNil(t, response.Error)
		assert.Equal(t, a2a.CodeInvalidParams, response.Error.Code)
	})

	t.Run("empty message text yields invalid request", func(t *testing.T) {
		engine, _ := newTestServer(t)
		body := `{
			"jsonrpc": "2.0",
			"id": 3,
			"method": "message/send",
			"params": {"message": {"kind": "message", "messageId": "m2", "role": "user", "parts": []}}
		}`
		response := doRPC(t, engine, body)
		require.NotNil(t, response.Error)
		assert.Equal(t, a2a.CodeInvalidRequest, response.Error.Code)
	})
}

// sseData extracts the JSON payloads of the data lines in an SSE body.
func sseData(t *testing.T, body string) []string {
	t.Helper()
	var payloads []string
	for _, line := range strings.Split(body, "\n") {
		if after, ok := strings.CutPrefix(line, "data:"); ok {
			payloads = append(payloads, strings.TrimSpace(after))
		}
	}
	require.NotEmpty(t, payloads)
	return payloads
}

func TestMessageStream(t *testing.T) {
	t.Run("streams status updates then the settled task", func(t *testing.T) {
		engine, _ := newTestServer(t)

		body := `{
			"jsonrpc": "2.0",
			"id": 7,
			"method": "message/stream",
			"params": {
				"message": {
					"kind": "message",
					"messageId": "m3",
					"role": "user",
					"contextId": "ctx-stream",
					"parts": [{"kind": "text", "text": "{\"grid\":[[0,0,0],[0,0,0],[0,0,0]],\"start\":[0,0],\"goal\":[2,2]}"}]
				}
			}
		}`
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		request.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Header().Get("Content-Type"), "text/event-stream")

		payloads := sseData(t, recorder.Body.String())
		require.Len(t, payloads, 3)

		var working rpcResponse
		require.NoError(t, json.Unmarshal([]byte(payloads[0]), &working))
		var update a2a.TaskStatusUpdateEvent
		require.NoError(t, json.Unmarshal(working.Result, &update))
		assert.Equal(t, a2a.TaskStateWorking, update.Status.State)
		assert.False(t, update.Final)

		var last rpcResponse
		require.NoError(t, json.Unmarshal([]byte(payloads[1]), &last))
		require.NoError(t, json.Unmarshal(last.Result, &update))
		assert.Equal(t, a2a.TaskStateCompleted, update.Status.State)
		assert.True(t, update.Final)

		var final rpcResponse
		require.NoError(t, json.Unmarshal([]byte(payloads[2]), &final))
		var task a2a.Task
		require.NoError(t, json.Unmarshal(final.Result, &task))
		assert.Equal(t, a2a.TaskStateCompleted, task.Status.State)
		assert.Contains(t, task.Status.Message.Text(), "moves")
	})

	t.Run("missing message yields invalid params", func(t *testing.T) {
		engine, _ := newTestServer(t)
		response := doRPC(t, engine, `{"jsonrpc":"2.0","id":8,"method":"message/stream","params":{}}`)
		require.NotNil(t, response.Error)
		assert.Equal(t, a2a.CodeInvalidParams, response.Error.Code)
	})
}

func TestTasksGet(t *testing.T) {
	t.Run("returns a stored task", func(t *testing.T) {
		engine, store := newTestServer(t)

		task := a2a.NewTask(a2a.NewAgentTextMessage("hello", "ctx-9", ""))
		require.NoError(t, store.Save(context.Background(), task))

		response := doRPC(t, engine, `{"jsonrpc":"2.0","id":4,"method":"tasks/get","params":{"id":"`+task.ID+`"}}`)
		require.Nil(t, response.Error)

		var got a2a.Task
		require.NoError(t, json.Unmarshal(response.Result, &got))
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("unknown task id", func(t *testing.T) {
		engine, _ := newTestServer(t)
		response := doRPC(t, engine, `{"jsonrpc":"2.0","id":5,"method":"tasks/get","params":{"id":"missing"}}`)
		require.NotNil(t, response.Error)
		assert.Equal(t, a2a.CodeTaskNotFound, response.Error.Code)
	})
}

func TestUnknownMethod(t *testing.T) {
	engine, _ := newTestServer(t)
	response := doRPC(t, engine, `{"jsonrpc":"2.0","id":6,"method":"tasks/cancel","params":{}}`)
	require.NotNil(t, response.Error)
	assert.Equal(t, a2a.CodeMethodNotFound, response.Error.Code)
}

func TestMalformedRequestBody(t *testing.T) {
	engine, _ := newTestServer(t)
	response := doRPC(t, engine, `{"jsonrpc": "2.0", "method": `)
	require.NotNil(t, response.Error)
	assert.Equal(t, a2a.CodeParseError, response.Error.Code)
}
