package supporters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	pkgerrors "github.com/mediastash/mediastash-backend/pkg/errors"
)

// Service reads the externally maintained supporters document. Nothing in
// this system ever writes it.
type Service interface {
	List(ctx context.Context) (json.RawMessage, error)
}

type service struct {
	path string
}

// NewService returns a service reading the document at path.
func NewService(path string) (Service, error) {
	if path == "" {
		return nil, fmt.Errorf("supporters document path required")
	}
	return &service{path: path}, nil
}

// List returns the document contents verbatim. A missing document is an empty
// array; an unreadable or malformed one is an error for the caller to report.
func (s *service) List(ctx context.Context) (json.RawMessage, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return json.RawMessage("[]"), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read supporters document")
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "parse supporters document")
	}
	return json.RawMessage(raw), nil
}
