package pipeline

import (
	"context"
	"fmt"
	"os"
)

// Replay feeds a previously recorded result document back through the
// harness. It exists so reports and notifications can be exercised without
// running the real job.
type Replay struct {
	Path string
}

// NewReplay builds the replay driver; the file is read at Run time.
func NewReplay(path string) (*Replay, error) {
	if path == "" {
		return nil, fmt.Errorf("replay driver needs pipeline.result_file")
	}
	return &Replay{Path: path}, nil
}

func (r *Replay) Run(_ context.Context) Result {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return Fail(StageExec, fmt.Sprintf("reading result file: %v", err))
	}

	result, err := DecodeResult(data)
	if err != nil {
		return Fail(StageParse, err.Error())
	}

	return result
}
