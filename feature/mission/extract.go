package mission

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"livery-audit/core/livery"
	"livery-audit/core/logger"
	"livery-audit/core/miz"
	"livery-audit/core/script"

	"go.uber.org/zap"
)

const (
	// RootGlobal is the global holding the mission table.
	RootGlobal = "mission"
	// CoalitionKey is the mission table key holding the coalitions.
	CoalitionKey = "coalition"
	// LiveryKey and TypeKey identify a unit record.
	LiveryKey = "livery_id"
	TypeKey   = "type"
)

// ErrMissionStructure is returned when mission or mission.coalition is not a table.
var ErrMissionStructure = errors.New("unexpected mission structure")

// ParseError locates a table read failure.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("couldn't parse `%s`: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extract reads the mission archive at path and returns its required liveries.
func Extract(ctx context.Context, path string, log *zap.Logger) (livery.Map, error) {
	archive, err := miz.Open(path)
	if err != nil {
		return nil, err
	}
	defer archive.Close()
	logger.Trace(log, "Mapped mission file", zap.String("path", archive.Path()))

	r, err := archive.Script()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return ExtractReader(ctx, r, filepath.Base(archive.Path()), log)
}

// ExtractBytes extracts the required liveries of a mission held in memory,
// either a .miz archive or a bare script.
func ExtractBytes(ctx context.Context, data []byte, name string, log *zap.Logger) (livery.Map, error) {
	r, err := miz.Script(data)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return ExtractReader(ctx, r, name, log)
}

// ExtractReader decodes the mission script read from r and returns its
// required liveries. name is only used in decoder messages.
func ExtractReader(ctx context.Context, r io.Reader, name string, log *zap.Logger) (livery.Map, error) {
	tree, err := script.Decode(ctx, r, name)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse mission: %w", err)
	}
	defer tree.Close()

	required, err := ExtractCoalitions(tree.Global(RootGlobal), log)
	if err != nil {
		return nil, err
	}

	log.Debug("Extracted required liveries",
		zap.String("mission", name),
		zap.Int("types", len(required)),
		zap.Int("liveries", required.Count()),
	)
	return required, nil
}

// ExtractCoalitions searches every coalition of the decoded mission table.
func ExtractCoalitions(root script.Value, log *zap.Logger) (livery.Map, error) {
	structureErr := fmt.Errorf("couldn't parse mission.coalitions: %w", ErrMissionStructure)

	missionTable, ok := script.AsTable(root)
	if !ok {
		return nil, structureErr
	}
	value, err := missionTable.Get(CoalitionKey)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse mission.coalitions: %w", err)
	}
	coalitions, ok := script.AsTable(value)
	if !ok {
		return nil, structureErr
	}

	required := livery.Map{}
	err = coalitions.Pairs(func(k, v script.Value) error {
		name, ok := script.AsString(k)
		if !ok {
			return fmt.Errorf("couldn't parse mission.coalitions: %w: %s coalition key", ErrMissionStructure, k.Kind())
		}
		coalition, ok := script.AsTable(v)
		if !ok {
			return fmt.Errorf("couldn't parse %s coalition: %w: %s is not a table", name, ErrMissionStructure, v.Kind())
		}
		if err := Search(coalition, required, name, log); err != nil {
			return fmt.Errorf("couldn't parse %s coalition: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return required, nil
}

// Search adds every unit record reachable from t to required.
// name is the dotted path of t.
func Search(t script.Table, required livery.Map, name string, log *zap.Logger) error {
	logger.Trace(log, "Searching", zap.String("path", name))

	liveryID, err := t.Get(LiveryKey)
	if err != nil {
		return &ParseError{Path: name, Err: err}
	}
	unitType, err := t.Get(TypeKey)
	if err != nil {
		return &ParseError{Path: name, Err: err}
	}

	id, idOK := script.AsString(liveryID)
	ut, typeOK := script.AsString(unitType)
	if idOK && typeOK {
		required.Add(ut, id)
		return nil
	}

	var childErr error
	err = t.Pairs(func(k, v script.Value) error {
		child, ok := script.AsTable(v)
		if !ok {
			return nil
		}
		key, err := script.KeyString(k)
		if err != nil {
			return err
		}
		if err := Search(child, required, name+"."+key, log); err != nil {
			childErr = err
			return err
		}
		return nil
	})
	if childErr != nil {
		return childErr
	}
	if err != nil {
		return &ParseError{Path: name, Err: err}
	}
	return nil
}
