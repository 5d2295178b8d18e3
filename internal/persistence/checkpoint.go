package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/learning"
)

// DType is the element type recorded in every checkpoint
const DType = "float64"

// Format selects the on-disk encoding of a checkpoint
type Format string

const (
	// FormatJSON is protojson, readable and diffable
	FormatJSON Format = "json"
	// FormatBinary is the protobuf wire encoding
	FormatBinary Format = "binary"
)

// FormatFor picks the encoding from the file extension: .json is JSON,
// anything else is binary.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatBinary
}

// Checkpoint is a value table plus the metadata saved alongside it.
type Checkpoint struct {
	Table     *learning.ValueTable
	RunID     string
	Episodes  int
	BoardSize int
	SavedAt   time.Time
}

// NewRunID returns a fresh identifier for a training run
func NewRunID() string {
	return uuid.NewString()
}

// ToStruct converts the checkpoint into a google.protobuf.Struct document
func (c *Checkpoint) ToStruct() (*structpb.Struct, error) {
	rows, cols := c.Table.Dims()
	values := make([]interface{}, rows)
	for s, row := range c.Table.Values() {
		cells := make([]interface{}, len(row))
		for a, v := range row {
			cells[a] = v
		}
		values[s] = cells
	}

	return structpb.NewStruct(map[string]interface{}{
		"shape":      []interface{}{rows, cols},
		"dtype":      DType,
		"values":     values,
		"run_id":     c.RunID,
		"episodes":   c.Episodes,
		"board_size": c.BoardSize,
		"saved_at":   c.SavedAt.UTC().Format(time.RFC3339Nano),
	})
}

// FromStruct rebuilds a checkpoint, failing on a shape other than the
// value table's.
func FromStruct(doc *structpb.Struct) (*Checkpoint, error) {
	fields := doc.GetFields()

	if dtype := fields["dtype"].GetStringValue(); dtype != DType {
		return nil, fmt.Errorf("%w: dtype %q", ErrCorruptCheckpoint, dtype)
	}

	shape := fields["shape"].GetListValue().GetValues()
	if len(shape) != 2 {
		return nil, fmt.Errorf("%w: shape has %d dimensions", ErrCorruptCheckpoint, len(shape))
	}
	rows, cols := int(shape[0].GetNumberValue()), int(shape[1].GetNumberValue())
	if rows != learning.Rows || cols != learning.Cols {
		return nil, fmt.Errorf("%w: got [%d %d], want [%d %d]", learning.ErrShapeMismatch, rows, cols, learning.Rows, learning.Cols)
	}

	list := fields["values"].GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%w: missing values", ErrCorruptCheckpoint)
	}
	values := make([][]float64, len(list.GetValues()))
	for s, rowValue := range list.GetValues() {
		row := rowValue.GetListValue().GetValues()
		values[s] = make([]float64, len(row))
		for a, v := range row {
			if _, ok := v.GetKind().(*structpb.Value_NumberValue); !ok {
				return nil, fmt.Errorf("%w: values[%d][%d] is not a number", ErrCorruptCheckpoint, s, a)
			}
			values[s][a] = v.GetNumberValue()
		}
	}
	table, err := learning.NewValueTableFrom(values)
	if err != nil {
		return nil, err
	}

	cp := &Checkpoint{
		Table:     table,
		RunID:     fields["run_id"].GetStringValue(),
		Episodes:  int(fields["episodes"].GetNumberValue()),
		BoardSize: int(fields["board_size"].GetNumberValue()),
	}
	if ts := fields["saved_at"].GetStringValue(); ts != "" {
		savedAt, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: saved_at: %v", ErrCorruptCheckpoint, err)
		}
		cp.SavedAt = savedAt
	}
	return cp, nil
}

// Encode serialises the checkpoint in the given format
func Encode(c *Checkpoint, format Format) ([]byte, error) {
	doc, err := c.ToStruct()
	if err != nil {
		return nil, fmt.Errorf("failed to build checkpoint document: %w", err)
	}
	if format == FormatJSON {
		return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
	}
	return proto.Marshal(doc)
}

// Decode parses data written by Encode
func Decode(data []byte, format Format) (*Checkpoint, error) {
	doc := &structpb.Struct{}
	var err error
	if format == FormatJSON {
		err = protojson.Unmarshal(data, doc)
	} else {
		err = proto.Unmarshal(data, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCheckpoint, err)
	}
	return FromStruct(doc)
}

// Save writes the checkpoint to path atomically, stamping SavedAt when it
// is unset. The encoding follows FormatFor(path).
func Save(path string, c *Checkpoint) error {
	if c.SavedAt.IsZero() {
		c.SavedAt = time.Now()
	}
	data, err := Encode(c, FormatFor(path))
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// Load reads a checkpoint from path
func Load(path string) (*Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCheckpointNotFound, path)
		}
		return nil, fmt.Errorf("failed to read checkpoint %s: %w", path, err)
	}
	cp, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("checkpoint %s: %w", path, err)
	}
	return cp, nil
}

// LoadTable loads only the value table from path
func LoadTable(path string) (*learning.ValueTable, error) {
	cp, err := Load(path)
	if err != nil {
		return nil, err
	}
	return cp.Table, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close checkpoint: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move checkpoint into place: %w", err)
	}
	return nil
}
