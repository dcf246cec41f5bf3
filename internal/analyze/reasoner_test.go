package analyze

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/forPelevin/reelmap/internal/ports"
)

type fakeReasoner struct {
	calls int
	raw   json.RawMessage
	err   error
}

func (f *fakeReasoner) Ask(_ context.Context, _, _ string) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func failingReasoner() *fakeReasoner {
	return &fakeReasoner{err: &ports.ReasoningError{Cause: errors.New("transport down")}}
}
