/*
Package service bridges the A2A transport to the solving code. The executor
owns the per-conversation agent sessions, drives the task lifecycle in the
task store, and maps solver failures onto failed tasks rather than transport
errors.
*/
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/a2a"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/agent"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/domain"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/infrastruture/taskstore"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/service/i"
	"github.com/EnspikondPlus/neophytic-rooms-purple-base/solver"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Executor errors, surfaced to the transport layer as invalid requests.
var (
	ErrEmptyMessage = errors.New("missing message text in request")
	ErrTaskTerminal = errors.New("task already processed")
)

// session serializes all prompts of one conversation onto one rooms agent.
type session struct {
	mu    sync.Mutex
	agent *agent.RoomsAgent
}

// Executor handles incoming A2A messages: it resolves the per-context agent
// session or the one-shot grid solver, runs the solve, and settles the task.
type Executor struct {
	roomSolver *solver.Solver
	store      i.TaskStore
	recorder   i.SolveRecorder
	logger     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// ExecutorConfig holds the executor's collaborators. Recorder is optional.
type ExecutorConfig struct {
	Solver   *solver.Solver
	Store    i.TaskStore
	Recorder i.SolveRecorder
	Logger   *zap.Logger
}

// NewExecutor creates an Executor from its configuration.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	if cfg.Solver == nil {
		return nil, errors.New("executor requires a solver")
	}
	if cfg.Store == nil {
		return nil, errors.New("executor requires a task store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Executor{
		roomSolver: cfg.Solver,
		store:      cfg.Store,
		recorder:   cfg.Recorder,
		logger:     logger,
		sessions:   make(map[string]*session),
	}, nil
}

// Execute handles one incoming message and returns the settled task. Solver
// failures settle the task as failed; only malformed requests (no text, or a
// message addressed to an already-terminal task) surface as errors.
func (e *Executor) Execute(ctx context.Context, msg *a2a.Message) (*a2a.Task, error) {
	return e.execute(ctx, msg, nil)
}

// ExecuteStream behaves like Execute but additionally invokes emit with a
// task snapshot at each status transition before the final one, so the
// transport can stream progress while the solve runs.
func (e *Executor) ExecuteStream(ctx context.Context, msg *a2a.Message, emit func(*a2a.Task)) (*a2a.Task, error) {
	return e.execute(ctx, msg, emit)
}

func (e *Executor) execute(ctx context.Context, msg *a2a.Message, emit func(*a2a.Task)) (*a2a.Task, error) {
	if msg == nil || strings.TrimSpace(msg.Text()) == "" {
		return nil, ErrEmptyMessage
	}

	task, err := e.resolveTask(ctx, msg)
	if err != nil {
		return nil, err
	}

	task.SetStatus(a2a.TaskStateWorking, nil)
	if err := e.store.Save(ctx, task); err != nil {
		return nil, err
	}
	if emit != nil {
		emit(task.Clone())
	}

	started := time.Now()
	responseText, solveErr := e.dispatch(task.ContextID, msg.Text())

	if solveErr != nil {
		e.logger.Warn("solve failed",
			zap.String("task", task.ID),
			zap.String("context", task.ContextID),
			zap.Error(solveErr))
		failure := fmt.Sprintf("agent error: %s", solveErr)
		task.SetStatus(a2a.TaskStateFailed, a2a.NewAgentTextMessage(failure, task.ContextID, task.ID))
		responseText = failure
	} else {
		task.SetStatus(a2a.TaskStateCompleted, a2a.NewAgentTextMessage(responseText, task.ContextID, task.ID))
	}

	if err := e.store.Save(ctx, task); err != nil {
		return nil, err
	}

	e.record(task, responseText, time.Since(started))
	return task, nil
}

// resolveTask continues the task the message addresses, or creates a new one
// when the message names no task or an unknown one. Store failures other than
// not-found propagate; a fresh task must not mask a storage outage.
func (e *Executor) resolveTask(ctx context.Context, msg *a2a.Message) (*a2a.Task, error) {
	if msg.TaskID != "" {
		existing, err := e.store.ByID(ctx, msg.TaskID)
		switch {
		case err == nil:
			if existing.Status.State.Terminal() {
				return nil, fmt.Errorf("%w: %s", ErrTaskTerminal, existing.ID)
			}
			existing.History = append(existing.History, msg)
			return existing, nil
		case !errors.Is(err, taskstore.ErrNotFound):
			return nil, fmt.Errorf("loading task %s: %w", msg.TaskID, err)
		}
	}
	return a2a.NewTask(msg), nil
}

// dispatch routes the payload: grid puzzle documents go to the room solver,
// anything else is a rooms prompt for the per-context agent.
func (e *Executor) dispatch(contextID, text string) (string, error) {
	puzzle, isGrid, err := parseGridPuzzle(text)
	if isGrid {
		if err != nil {
			return "", err
		}

		moves, err := e.roomSolver.Solve(puzzle)
		if err != nil {
			return "", err
		}

		raw, err := json.Marshal(gridPuzzleResponse{Moves: moves})
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	sess := e.session(contextID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.agent.SelectAction(text).Format()
}

// session returns the conversation's agent, creating it on first contact.
func (e *Executor) session(contextID string) *session {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, ok := e.sessions[contextID]
	if !ok {
		sess = &session{agent: agent.New()}
		e.sessions[contextID] = sess
	}
	return sess
}

// record persists a solve record when a recorder is configured. Persistence
// problems are logged, never propagated into the response.
func (e *Executor) record(task *a2a.Task, responseText string, elapsed time.Duration) {
	if e.recorder == nil {
		return
	}

	err := e.recorder.Save(&domain.SolveRecord{
		ID:        uuid.New(),
		ContextID: task.ContextID,
		TaskID:    task.ID,
		State:     string(task.Status.State),
		Response:  responseText,
		ElapsedMS: elapsed.Milliseconds(),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		e.logger.Warn("recording solve result", zap.String("task", task.ID), zap.Error(err))
	}
}
