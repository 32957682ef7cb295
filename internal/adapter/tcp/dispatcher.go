package tcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/asharavesh/Hashing-Techniques/internal/core/models"
	"github.com/asharavesh/Hashing-Techniques/internal/engine"
	"github.com/asharavesh/Hashing-Techniques/shared/ds/hashtable"
)

// Dispatcher executes one text command against the registry and renders a
// single JSON reply line.
//
//	PING
//	RESET [size]
//	INSERT <method> <key>
//	SEARCH <method> <key>
//	TABLE <method>
//	STATS <method>
//	COMPARE
type Dispatcher struct {
	registry *engine.Registry
}

func NewDispatcher(registry *engine.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

type errorReply struct {
	Error string            `json:"error"`
	Steps []models.StepView `json:"steps,omitempty"`
}

// Execute runs line and returns the reply terminated by a newline. ok is false
// when the reply is an error.
func (d *Dispatcher) Execute(line string) (reply []byte, ok bool) {
	v, err := d.run(strings.Fields(line))
	if err != nil {
		var full *tableFullError
		if errors.As(err, &full) {
			return encodeLine(errorReply{Error: full.err.Error(), Steps: full.steps}), false
		}
		return encodeLine(errorReply{Error: err.Error()}), false
	}
	return encodeLine(v), true
}

type tableFullError struct {
	err   error
	steps []models.StepView
}

func (e *tableFullError) Error() string { return e.err.Error() }

func (d *Dispatcher) run(args []string) (interface{}, error) {
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := strings.ToUpper(args[0])
	switch cmd {
	case "PING":
		return map[string]string{"message": "PONG"}, nil

	case "RESET":
		size := engine.DefaultCapacity
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return nil, fmt.Errorf("invalid size %q", args[1])
			}
			size = n
		}
		if err := d.registry.Reset(size); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Hash tables reset successfully"}, nil

	case "INSERT", "SEARCH":
		if len(args) != 3 {
			return nil, fmt.Errorf("usage: %s <method> <key>", cmd)
		}
		key, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("invalid key %q", args[2])
		}
		if cmd == "SEARCH" {
			res, err := d.registry.Search(args[1], key)
			if err != nil {
				return nil, methodError(err)
			}
			return models.ToSearchView(res), nil
		}
		res, err := d.registry.Insert(args[1], key)
		if errors.Is(err, hashtable.ErrTableFull) {
			return nil, &tableFullError{err: err, steps: models.ToStepViews(res.Steps)}
		}
		if err != nil {
			return nil, methodError(err)
		}
		return models.ToInsertView(res), nil

	case "TABLE", "STATS":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: %s <method>", cmd)
		}
		if cmd == "STATS" {
			st, err := d.registry.Stats(args[1])
			if err != nil {
				return nil, methodError(err)
			}
			return models.ToStatsView(st), nil
		}
		st, err := d.registry.State(args[1])
		if err != nil {
			return nil, methodError(err)
		}
		return models.ToStateView(st), nil

	case "COMPARE":
		out := make(map[string]models.StatsView, 4)
		for name, st := range d.registry.Compare() {
			out[name] = models.ToStatsView(st)
		}
		return out, nil
	}

	return nil, fmt.Errorf("unknown command %q", args[0])
}

func methodError(err error) error {
	if errors.Is(err, hashtable.ErrInvalidStrategy) {
		return errors.New("Invalid hashing method")
	}
	return err
}

func encodeLine(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		b = []byte(`{"error":"encode reply failed"}`)
	}
	return append(b, '\n')
}
