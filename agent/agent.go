/*
Package agent implements the baseline purple agent for the Neophytic Rooms
benchmark.

The green agent drives an eight-room navigation puzzle through textual state
prompts; the purple agent answers each prompt with a single JSON action. Play
has two phases. During observation the agent explores from room 0 with a
breadth-first frontier, learning the real adjacency by watching which rooms
flip to visited after each MOVE, and commits as soon as the exit is known (or
every reachable room has been tried). During execution it replays the shortest
path from room 0 to the exit over the learned adjacency, picking up a key on
the way and using it when the exit is locked. This handles tutorial-difficulty
puzzles and the trivial single-key case.

A RoomsAgent is stateful across prompts of one conversation and is not safe
for concurrent use; callers serialize access per conversation.
*/
package agent

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// roomCount is fixed by the benchmark's room system.
const roomCount = 8

// noExit marks the exit room as not yet discovered.
const noExit = -1

// Action commands understood by the green agent.
const (
	CommandMove    = "MOVE"
	CommandInspect = "INSPECT"
	CommandGetKey  = "GETKEY"
	CommandUseKey  = "USEKEY"
	CommandCommit  = "COMMIT"
)

// Action is one reply to the green agent. TargetRoom is only present for MOVE.
type Action struct {
	Command    string `json:"command"`
	TargetRoom *int   `json:"target_room,omitempty"`
}

// Format serializes the action the way the green agent expects it.
func (a Action) Format() (string, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func moveAction(target int) Action {
	return Action{Command: CommandMove, TargetRoom: &target}
}

func commandAction(command string) Action {
	return Action{Command: command}
}

// Prompt field patterns. The green agent's template is stable, so the labels
// are matched literally.
var (
	currentRoomRe = regexp.MustCompile(`Current Room:\s*(\d+)`)
	keysHeldRe    = regexp.MustCompile(`Keys Held:\s*(\d+)`)
	phaseRe       = regexp.MustCompile(`Phase:\s*(\w+)`)
	visitedRe     = listPattern("Rooms Visited")
	lockedRe      = listPattern("Locked")
	hasKeyRe      = listPattern("Has Key")
	isExitRe      = listPattern("Is Exit")
)

func listPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(label + `:\s*\[([^\]]*)\]`)
}

// RoomsAgent is the stateful per-conversation solver for the rooms puzzle.
type RoomsAgent struct {
	adj map[int]map[int]struct{} // Learned room adjacency.

	roomLocked  [roomCount]int // 1 locked, 0 open, -1 unknown.
	roomHasKey  [roomCount]int // 1 has key, 0 none, -1 unknown.
	roomExit    [roomCount]int // 1 exit, 0 not, -1 unknown.
	roomVisited [roomCount]int // 1 visited, 0 not.

	currentRoom int
	keysHeld    int

	obsVisited  map[int]struct{}
	obsFrontier []int
	obsParent   map[int]int

	exitRoom   int
	pathToExit []int
	pathIndex  int

	hasCommitted  bool
	pendingGetKey bool
	pendingUseKey bool
}

// New creates a fresh agent for one conversation.
func New() *RoomsAgent {
	a := &RoomsAgent{}
	a.Reset()
	return a
}

// Reset wipes all learned state, called once per run.
func (a *RoomsAgent) Reset() {
	a.adj = make(map[int]map[int]struct{})
	for i := 0; i < roomCount; i++ {
		a.roomLocked[i] = -1
		a.roomHasKey[i] = -1
		a.roomExit[i] = -1
		a.roomVisited[i] = 0
	}

	a.currentRoom = 0
	a.keysHeld = 0
	a.obsVisited = map[int]struct{}{0: {}}
	a.obsFrontier = nil
	a.obsParent = map[int]int{0: noExit}

	a.exitRoom = noExit
	a.pathToExit = nil
	a.pathIndex = 0

	a.hasCommitted = false
	a.pendingGetKey = false
	a.pendingUseKey = false
}

// SelectAction consumes one state prompt and decides the next action.
func (a *RoomsAgent) SelectAction(prompt string) Action {
	prevVisited := a.roomVisited
	prevRoom := a.currentRoom

	a.syncState(prompt)

	if !a.hasCommitted {
		if a.currentRoom != prevRoom || a.roomVisited != prevVisited {
			a.recordNewNeighbors(prevRoom, prevVisited)
		}

		// Nothing learned yet: seed the frontier with every other room and
		// let failed moves prune the guesses.
		if len(a.obsFrontier) == 0 && len(a.obsVisited) == 1 {
			for candidate := 1; candidate < roomCount; candidate++ {
				a.obsFrontier = append(a.obsFrontier, candidate)
			}
		}

		return a.obsAction()
	}

	if len(a.pathToExit) == 0 && a.exitRoom != noExit {
		a.computePath()
	}

	if a.roomLocked[a.currentRoom] == 1 && a.keysHeld > 0 {
		return commandAction(CommandUseKey)
	}

	return a.execAction()
}

// syncState extracts every known field from the prompt into agent state.
func (a *RoomsAgent) syncState(prompt string) {
	if current, ok := parseInt(currentRoomRe, prompt); ok {
		a.currentRoom = current
	}

	if keys, ok := parseInt(keysHeldRe, prompt); ok {
		a.keysHeld = keys
	}

	if visited, ok := parseList(visitedRe, prompt); ok {
		a.roomVisited = visited
	}

	if locked, ok := parseList(lockedRe, prompt); ok {
		a.roomLocked = locked
	}

	if hasKey, ok := parseList(hasKeyRe, prompt); ok {
		a.roomHasKey = hasKey
	}

	if exits, ok := parseList(isExitRe, prompt); ok {
		a.roomExit = exits
		for i, val := range exits {
			if val == 1 {
				a.exitRoom = i
			}
		}
	}

	if match := phaseRe.FindStringSubmatch(prompt); match != nil && strings.Contains(match[1], "Execution") {
		a.hasCommitted = true
	}
}

// recordNewNeighbors figures out which rooms became visited since the last
// prompt. During observation a MOVE auto-inspects, and the only way a room
// flips from unvisited to visited is a successful move into it, so the diff
// of the visited list names exactly the room landed in. That room is a
// neighbor of the previous room.
func (a *RoomsAgent) recordNewNeighbors(prevRoom int, prevVisited [roomCount]int) {
	for i := 0; i < roomCount; i++ {
		if a.roomVisited[i] != 1 || prevVisited[i] != 0 {
			continue
		}

		a.addEdge(prevRoom, i)

		if _, seen := a.obsVisited[i]; !seen {
			a.obsVisited[i] = struct{}{}
			a.obsParent[i] = prevRoom
			for candidate := 0; candidate < roomCount; candidate++ {
				if _, visited := a.obsVisited[candidate]; !visited {
					a.obsFrontier = append(a.obsFrontier, candidate)
				}
			}
		}
	}
}

func (a *RoomsAgent) addEdge(from, to int) {
	if a.adj[from] == nil {
		a.adj[from] = make(map[int]struct{})
	}
	if a.adj[to] == nil {
		a.adj[to] = make(map[int]struct{})
	}
	a.adj[from][to] = struct{}{}
	a.adj[to][from] = struct{}{}
}

func (a *RoomsAgent) connected(from, to int) bool {
	_, ok := a.adj[from][to]
	return ok
}

// obsAction picks the next exploration step, or commits once the exit is
// known or the frontier has drained.
func (a *RoomsAgent) obsAction() Action {
	if a.exitRoom != noExit || len(a.obsFrontier) == 0 {
		a.computePath()
		return commandAction(CommandCommit)
	}

	target := a.obsFrontier[0]
	a.obsFrontier = a.obsFrontier[1:]
	return moveAction(target)
}

// computePath runs BFS over the learned adjacency from room 0 to the exit,
// storing the room sequence to replay during execution.
func (a *RoomsAgent) computePath() {
	if a.exitRoom == noExit {
		a.pathToExit = nil
		return
	}

	type node struct {
		room int
		path []int
	}

	visited := map[int]bool{0: true}
	queue := []node{{room: 0}}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		if n.room == a.exitRoom {
			a.pathToExit = n.path
			return
		}

		for neighbor := 0; neighbor < roomCount; neighbor++ {
			if !a.connected(n.room, neighbor) || visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			path := make([]int, 0, len(n.path)+1)
			path = append(path, n.path...)
			path = append(path, neighbor)
			queue = append(queue, node{room: neighbor, path: path})
		}
	}

	a.pathToExit = nil
}

// execAction replays the committed path, interleaving key pickup and use.
func (a *RoomsAgent) execAction() Action {
	if a.pendingGetKey {
		a.pendingGetKey = false
		return commandAction(CommandGetKey)
	}

	if a.pendingUseKey {
		a.pendingUseKey = false
		return commandAction(CommandUseKey)
	}

	if a.currentRoom == a.exitRoom && a.exitRoom != noExit {
		if a.roomLocked[a.exitRoom] == 1 && a.keysHeld > 0 {
			return commandAction(CommandUseKey)
		}
		// Standing on an unlocked exit should have ended the run; bounce to
		// any neighbor so the green agent re-evaluates.
		for neighbor := 0; neighbor < roomCount; neighbor++ {
			if a.connected(a.exitRoom, neighbor) {
				return moveAction(neighbor)
			}
		}
		return moveAction(a.exitRoom)
	}

	if a.pathIndex < len(a.pathToExit) {
		next := a.pathToExit[a.pathIndex]
		a.pathIndex++

		// A key in the current room takes priority over the next hop; the
		// hop is retried on the following prompt.
		if a.roomHasKey[a.currentRoom] == 1 {
			a.pathIndex--
			return commandAction(CommandGetKey)
		}

		return moveAction(next)
	}

	return commandAction(CommandInspect)
}

func parseInt(re *regexp.Regexp, prompt string) (int, bool) {
	match := re.FindStringSubmatch(prompt)
	if match == nil {
		return 0, false
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return value, true
}

func parseList(re *regexp.Regexp, prompt string) ([roomCount]int, bool) {
	var out [roomCount]int

	match := re.FindStringSubmatch(prompt)
	if match == nil {
		return out, false
	}

	fields := strings.Split(match[1], ",")
	if len(fields) != roomCount {
		return out, false
	}

	for i, field := range fields {
		value, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return out, false
		}
		out[i] = value
	}
	return out, true
}
