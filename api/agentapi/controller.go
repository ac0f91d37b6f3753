// Package agentapi exposes the purple agent over the A2A protocol: the agent
// card for discovery and the JSON-RPC endpoint the green agent talks to.
package agentapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/a2a"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/infrastruture/taskstore"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/service"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/service/i"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// A2AController serves the agent card and dispatches JSON-RPC methods to the
// executor and task store.
type A2AController struct {
	card     *a2a.AgentCard
	executor i.AgentExecutor
	store    i.TaskStore
	logger   *zap.Logger
}

// NewA2AController initializes an A2AController.
func NewA2AController(card *a2a.AgentCard, executor i.AgentExecutor, store i.TaskStore, logger *zap.Logger) (*A2AController, error) {
	if card == nil {
		return nil, errors.New("a2a controller requires an agent card")
	}
	if executor == nil {
		return nil, errors.New("a2a controller requires an executor")
	}
	if store == nil {
		return nil, errors.New("a2a controller requires a task store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &A2AController{
		card:     card,
		executor: executor,
		store:    store,
		logger:   logger,
	}, nil
}

// Register adds the A2A routes.
func (c *A2AController) Register(route *gin.RouterGroup) {
	route.GET("/.well-known/agent.json", c.agentCard)
	route.POST("/", c.rpc)
}

// agentCard serves the agent's discovery document.
func (c *A2AController) agentCard(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.card)
}

// rpc handles one JSON-RPC request. Protocol-level failures are reported as
// JSON-RPC error objects on a 200 response, as JSON-RPC over HTTP requires.
func (c *A2AController) rpc(ctx *gin.Context) {
	var request a2a.Request
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusOK, a2a.NewErrorResponse(nil, a2a.CodeParseError, "malformed JSON-RPC request"))
		return
	}

	switch request.Method {
	case "message/send":
		c.messageSend(ctx, &request)
	case "message/stream":
		c.messageStream(ctx, &request)
	case "tasks/get":
		c.tasksGet(ctx, &request)
	default:
		ctx.JSON(http.StatusOK, a2a.NewErrorResponse(request.ID, a2a.CodeMethodNotFound, "unknown method "+request.Method))
	}
}

// messageSend runs one message through the executor and returns the settled task.
func (c *A2AController) messageSend(ctx *gin.Context, request *a2a.Request) {
	var params a2a.MessageSendParams
	if err := json.Unmarshal(request.Params, &params); err != nil || params.Message == nil {
		ctx.JSON(http.StatusOK, a2a.NewErrorResponse(request.ID, a2a.CodeInvalidParams, "message/send requires a message"))
		return
	}

	task, err := c.executor.Execute(ctx.Request.Context(), params.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrTaskTerminal):
			ctx.JSON(http.StatusOK, a2a.NewErrorResponse(request.ID, a2a.CodeInvalidRequest, err.Error()))
		default:
			c.logger.Error("executing message", zap.Error(err))
			ctx.JSON(http.StatusOK, a2a.NewErrorResponse(request.ID, a2a.CodeInternalError, "internal error"))
		}
		return
	}

	ctx.JSON(http.StatusOK, a2a.NewResponse(request.ID, task))
}

// messageStream runs one message through the executor and streams task status
// over SSE: one status-update event per transition, then the settled task as
// the final event.
func (c *A2AController) messageStream(ctx *gin.Context, request *a2a.Request) {
	var params a2a.MessageSendParams
	if err := json.Unmarshal(request.Params, &params); err != nil || params.Message == nil {
		ctx.JSON(http.StatusOK, a2a.NewErrorResponse(request.ID, a2a.CodeInvalidParams, "message/stream requires a message"))
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	send := func(response *a2a.Response) {
		ctx.SSEvent("message", response)
		ctx.Writer.Flush()
	}

	task, err := c.executor.ExecuteStream(ctx.Request.Context(), params.Message, func(snapshot *a2a.Task) {
		send(a2a.NewResponse(request.ID, a2a.NewTaskStatusUpdateEvent(snapshot, false)))
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrTaskTerminal):
			send(a2a.NewErrorResponse(request.ID, a2a.CodeInvalidRequest, err.Error()))
		default:
			c.logger.Error("executing message stream", zap.Error(err))
			send(a2a.NewErrorResponse(request.ID, a2a.CodeInternalError, "internal error"))
		}
		return
	}

	send(a2a.NewResponse(request.ID, a2a.NewTaskStatusUpdateEvent(task, true)))
	send(a2a.NewResponse(request.ID, task))
}

// tasksGet looks a task up by ID.
func (c *A2AController) tasksGet(ctx *gin.Context, request *a2a.Request) {
	var params a2a.TaskQueryParams
	if err := json.Unmarshal(request.Params, &params); err != nil || params.ID == "" {
		ctx.JSON(http.StatusOK, a2a.NewErrorResponse(request.ID, a2a.CodeInvalidParams, "tasks/get requires a task id"))
		return
	}

	task, err := c.store.ByID(ctx.Request.Context(), params.ID)
	if err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			ctx.JSON(http.StatusOK, a2a.NewErrorResponse(request.ID, a2a.CodeTaskNotFound, err.Error()))
			return
		}
		c.logger.Error("loading task", zap.String("task", params.ID), zap.Error(err))
		ctx.JSON(http.StatusOK, a2a.NewErrorResponse(request.ID, a2a.CodeInternalError, "internal error"))
		return
	}

	ctx.JSON(http.StatusOK, a2a.NewResponse(request.ID, task))
}
