/*
Package a2a defines the subset of the Agent-to-Agent (A2A) protocol the purple
agent speaks: the agent card served for discovery, messages and tasks
exchanged over a JSON-RPC 2.0 endpoint, and the task lifecycle states.

Specification: https://a2a-protocol.org/
*/
package a2a

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AgentCard advertises the agent's identity and capabilities. It is the
// agent's "business card", served at /.well-known/agent.json for discovery.
type AgentCard struct {
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	URL                string            `json:"url"`
	Version            string            `json:"version"`
	ProtocolVersion    string            `json:"protocolVersion,omitempty"`
	Capabilities       AgentCapabilities `json:"capabilities"`
	DefaultInputModes  []string          `json:"defaultInputModes"`
	DefaultOutputModes []string          `json:"defaultOutputModes"`
	Skills             []AgentSkill      `json:"skills"`
}

// AgentCapabilities flags optional protocol features the agent supports.
type AgentCapabilities struct {
	Streaming bool `json:"streaming"`
}

// AgentSkill describes one capability advertised on the agent card.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Examples    []string `json:"examples,omitempty"`
}

// Role identifies the author of a message.
type Role string

// Message roles.
const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Part is one piece of message content. Only text parts are produced by this
// agent; data parts are accepted for forward compatibility.
type Part struct {
	Kind string         `json:"kind"`
	Text string         `json:"text,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// Message is a single conversational turn between agents.
type Message struct {
	Kind      string `json:"kind"`
	MessageID string `json:"messageId"`
	Role      Role   `json:"role"`
	Parts     []Part `json:"parts"`
	ContextID string `json:"contextId,omitempty"`
	TaskID    string `json:"taskId,omitempty"`
}

// Text concatenates the message's text parts.
func (m *Message) Text() string {
	var out string
	for _, part := range m.Parts {
		if part.Kind == "text" {
			out += part.Text
		}
	}
	return out
}

// TaskState is the lifecycle state of a task.
type TaskState string

// Task lifecycle states.
const (
	TaskStateSubmitted TaskState = "submitted"
	TaskStateWorking   TaskState = "working"
	TaskStateCompleted TaskState = "completed"
	TaskStateFailed    TaskState = "failed"
	TaskStateCanceled  TaskState = "canceled"
	TaskStateRejected  TaskState = "rejected"
)

// Terminal reports whether a task in this state accepts no further messages.
func (s TaskState) Terminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled, TaskStateRejected:
		return true
	default:
		return false
	}
}

// TaskStatus carries a task's current state and the latest status message.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitempty"`
	Timestamp string    `json:"timestamp,omitempty"`
}

// Task is the unit of work exchanged with the green agent.
type Task struct {
	Kind      string     `json:"kind"`
	ID        string     `json:"id"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
	History   []*Message `json:"history,omitempty"`
}

// NewTask creates a submitted task for an incoming message, minting a task ID
// and adopting the message's context ID or minting one of those too.
func NewTask(msg *Message) *Task {
	contextID := msg.ContextID
	if contextID == "" {
		contextID = uuid.NewString()
	}
	return &Task{
		Kind:      "task",
		ID:        uuid.NewString(),
		ContextID: contextID,
		Status: TaskStatus{
			State:     TaskStateSubmitted,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		History: []*Message{msg},
	}
}

// NewAgentTextMessage builds an agent-role message holding a single text part.
func NewAgentTextMessage(text, contextID, taskID string) *Message {
	return &Message{
		Kind:      "message",
		MessageID: uuid.NewString(),
		Role:      RoleAgent,
		Parts:     []Part{{Kind: "text", Text: text}},
		ContextID: contextID,
		TaskID:    taskID,
	}
}

// Clone returns a copy of the task whose history and status can be mutated
// without affecting the original. Messages are immutable once built, so the
// copy shares them.
func (t *Task) Clone() *Task {
	clone := *t
	if t.History != nil {
		clone.History = make([]*Message, len(t.History))
		copy(clone.History, t.History)
	}
	return &clone
}

// SetStatus moves the task to a new state with an optional status message and
// a fresh timestamp.
func (t *Task) SetStatus(state TaskState, msg *Message) {
	t.Status = TaskStatus{
		State:     state,
		Message:   msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// TaskStatusUpdateEvent is one streamed status change of a task, sent over
// SSE in response to message/stream. Final marks the last event of the stream.
type TaskStatusUpdateEvent struct {
	Kind      string     `json:"kind"`
	TaskID    string     `json:"taskId"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
	Final     bool       `json:"final"`
}

// NewTaskStatusUpdateEvent snapshots a task's current status as a stream event.
func NewTaskStatusUpdateEvent(task *Task, final bool) *TaskStatusUpdateEvent {
	return &TaskStatusUpdateEvent{
		Kind:      "status-update",
		TaskID:    task.ID,
		ContextID: task.ContextID,
		Status:    task.Status,
		Final:     final,
	}
}

// JSON-RPC 2.0 envelope.

// Request is a JSON-RPC request as received on the agent endpoint.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSON-RPC and A2A error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
	CodeTaskNotFound   = -32001
)

// MessageSendParams are the params of the message/send method.
type MessageSendParams struct {
	Message *Message `json:"message"`
}

// TaskQueryParams are the params of the tasks/get method.
type TaskQueryParams struct {
	ID string `json:"id"`
}

// NewResponse builds a success response for a request ID.
func NewResponse(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}

// NewErrorResponse builds an error response for a request ID.
func NewErrorResponse(id json.RawMessage, code int, message string) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Error: &Error{Code: code, Message: message}}
}
