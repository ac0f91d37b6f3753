// Command localrun submits a Rooms benchmark request to an already running
// green agent and streams the task's progress to stdout and a log file. The
// purple agent under test is advertised to the green agent as the solver
// participant.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/EnspikondPlus/neophytic-rooms-purple-base/a2a"
	"github.com/google/uuid"
)

const (
	defaultGreenPort  = 9009
	defaultPurplePort = 8000

	pollInterval = 2 * time.Second
	runDeadline  = 2 * time.Minute
)

// teeLogger writes every line to stdout and, when configured, to a file.
type teeLogger struct {
	file *os.File
}

func newTeeLogger(path string) (*teeLogger, error) {
	if path == "" {
		return &teeLogger{}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &teeLogger{file: file}, nil
}

func (l *teeLogger) Log(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(msg)
	if l.file != nil {
		fmt.Fprintln(l.file, msg)
	}
}

func (l *teeLogger) Close() {
	if l.file != nil {
		name := l.file.Name()
		_ = l.file.Close()
		fmt.Printf("Logs saved to %s\n", name)
	}
}

// benchmarkRequest is the payload the green agent expects from a launcher.
type benchmarkRequest struct {
	Participants map[string]string `json:"participants"`
	Config       benchmarkConfig   `json:"config"`
}

type benchmarkConfig struct {
	Generate   bool   `json:"generate"`
	Count      int    `json:"count"`
	Difficulty string `json:"difficulty"`
}

// rpcResponse keeps the result raw so it can be decoded per method.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *a2a.Error      `json:"error,omitempty"`
}

func sendRPC(client *http.Client, url, method string, params any) (json.RawMessage, error) {
	rawParams, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	request := a2a.Request{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`"` + uuid.NewString() + `"`),
		Method:  method,
		Params:  rawParams,
	}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if decoded.Error != nil {
		return nil, fmt.Errorf("rpc error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	return decoded.Result, nil
}

func fetchCard(client *http.Client, baseURL string) (*a2a.AgentCard, error) {
	resp, err := client.Get(baseURL + "/.well-known/agent.json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var card a2a.AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, err
	}
	return &card, nil
}

func logTaskStatus(logger *teeLogger, task *a2a.Task) {
	text := ""
	if task.Status.Message != nil {
		text = task.Status.Message.Text()
	}
	logger.Log("  [%9s] %s", task.Status.State, text)
}

func run(logger *teeLogger, greenURL, purpleURL string, cfg benchmarkConfig) error {
	client := &http.Client{Timeout: runDeadline}

	card, err := fetchCard(client, greenURL)
	if err != nil {
		return fmt.Errorf("could not reach green agent at %s: %w", greenURL, err)
	}
	logger.Log("Green agent: %s (%s)", card.Name, card.URL)

	payload, err := json.Marshal(benchmarkRequest{
		Participants: map[string]string{"solver": purpleURL},
		Config:       cfg,
	})
	if err != nil {
		return err
	}

	logger.Log("Sending benchmark request to green agent...")
	logger.Log("   Config: %s", payload)

	msg := &a2a.Message{
		Kind:      "message",
		MessageID: uuid.NewString(),
		Role:      a2a.RoleUser,
		Parts:     []a2a.Part{{Kind: "text", Text: string(payload)}},
	}

	result, err := sendRPC(client, greenURL, "message/send", a2a.MessageSendParams{Message: msg})
	if err != nil {
		return err
	}

	var task a2a.Task
	if err := json.Unmarshal(result, &task); err != nil {
		return err
	}
	logTaskStatus(logger, &task)

	deadline := time.Now().Add(runDeadline)
	for !task.Status.State.Terminal() {
		if time.Now().After(deadline) {
			return fmt.Errorf("benchmark did not finish within %s", runDeadline)
		}
		time.Sleep(pollInterval)

		result, err := sendRPC(client, greenURL, "tasks/get", a2a.TaskQueryParams{ID: task.ID})
		if err != nil {
			return err
		}
		if err := json.Unmarshal(result, &task); err != nil {
			return err
		}
		logTaskStatus(logger, &task)
	}

	logger.Log("Benchmark finished with state: %s", task.Status.State)
	return nil
}

func main() {
	greenPort := flag.Int("green-port", defaultGreenPort, "Green agent port")
	purplePort := flag.Int("purple-port", defaultPurplePort, "Purple agent port")
	host := flag.String("host", "127.0.0.1", "Host address for both servers")
	logFile := flag.String("log-file", "benchmark.log", "File to save logs to")
	count := flag.Int("count", 3, "Number of benchmark runs")
	difficulty := flag.String("difficulty", "tutorial", "Difficulty level (tutorial, easy, medium, hard, very_hard, random)")
	noGenerate := flag.Bool("no-generate", false, "Load runs from standard systems instead of generating")
	flag.Parse()

	logger, err := newTeeLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not open log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	greenURL := fmt.Sprintf("http://%s:%d", *host, *greenPort)
	purpleURL := fmt.Sprintf("http://%s:%d", *host, *purplePort)

	cfg := benchmarkConfig{
		Generate:   !*noGenerate,
		Count:      *count,
		Difficulty: *difficulty,
	}

	if err := run(logger, greenURL, purpleURL, cfg); err != nil {
		logger.Log("Error: %v", err)
		os.Exit(1)
	}
}
