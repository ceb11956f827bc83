package tictactoe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/engine"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// WorkerCommand - first argument that makes the binary serve a single move.
const WorkerCommand = "engine-worker"

// time granted to the killed worker to release its pipes
const workerWaitDelay = 100 * time.Millisecond

type WorkerRequest struct {
	Engine engine.Kind  `json:"engine"`
	Mark   string       `json:"mark"`
	Dim    int          `json:"dim"`
	Board  entity.Board `json:"board"`
}

type WorkerResponse struct {
	Board entity.Board `json:"board,omitempty"`
	Error string       `json:"error,omitempty"`
}

// ProcessRunner - computes every move in a child process that is killed at the deadline.
// The child is Path started with Args and must call ServeWorker.
type ProcessRunner struct {
	Path string
	Args []string
	Env  []string
}

// NewProcessRunner - runner re-executing the current binary in worker mode.
func NewProcessRunner() (*ProcessRunner, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}

	return &ProcessRunner{Path: path, Args: []string{WorkerCommand}}, nil
}

func (that *ProcessRunner) Run(ctx context.Context, eng engine.Engine, board entity.Board, budget time.Duration) (entity.Board, error) {
	if eng.Kind() == engine.KindHuman {
		return "", fmt.Errorf("%w: human moves cannot run in a worker process", apperror.ErrEngineFault)
	}

	payload, err := json.Marshal(WorkerRequest{
		Engine: eng.Kind(),
		Mark:   eng.Mark().String(),
		Dim:    eng.Dim(),
		Board:  board,
	})
	if err != nil {
		return "", fmt.Errorf("%w: could not marshal request: %w", apperror.ErrEngineFault, err)
	}

	moveCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(moveCtx, that.Path, that.Args...) //nolint: gosec // path is our own executable
	cmd.Env = append(os.Environ(), that.Env...)
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = workerWaitDelay

	runErr := cmd.Run()

	if err = ctx.Err(); err != nil {
		return "", err
	}

	if moveCtx.Err() != nil {
		return "", fmt.Errorf("%w: %s exceeded %s, worker killed", apperror.ErrTimeout, eng, budget)
	}

	if runErr != nil {
		return "", fmt.Errorf("%w: %s worker failed: %w: %s", apperror.ErrEngineFault, eng, runErr, strings.TrimSpace(stderr.String()))
	}

	var response WorkerResponse
	if err = json.Unmarshal(stdout.Bytes(), &response); err != nil {
		return "", fmt.Errorf("%w: %s worker sent a malformed response: %w", apperror.ErrEngineFault, eng, err)
	}

	if response.Error != "" {
		return "", fmt.Errorf("%w: %s", apperror.ErrEngineFault, response.Error)
	}

	return response.Board, nil
}

// ServeWorker - reads one WorkerRequest, computes the move and writes a WorkerResponse.
// Engine failures are reported in the response, the returned error is about I/O only.
func ServeWorker(ctx context.Context, r io.Reader, w io.Writer) error {
	var request WorkerRequest
	if err := json.NewDecoder(r).Decode(&request); err != nil {
		return fmt.Errorf("failed to decode worker request: %w", err)
	}

	response := WorkerResponse{}

	next, err := workerMove(ctx, request)
	if err != nil {
		response.Error = err.Error()
	} else {
		response.Board = next
	}

	if err = json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("failed to encode worker response: %w", err)
	}

	return nil
}

func workerMove(ctx context.Context, request WorkerRequest) (entity.Board, error) {
	if len(request.Mark) != 1 {
		return "", fmt.Errorf("%w: mark %q", apperror.ErrInvalidConfig, request.Mark)
	}

	board, err := entity.ParseBoard(string(request.Board))
	if err != nil {
		return "", fmt.Errorf("failed to parse board: %w", err)
	}

	eng, err := engine.New(request.Engine, entity.Mark(request.Mark[0]), request.Dim)
	if err != nil {
		return "", fmt.Errorf("failed to build engine: %w", err)
	}

	return safeGetMove(ctx, eng, board)
}
