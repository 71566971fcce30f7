// Package wire converts interactions to and from protobuf well-known types
// (google.protobuf.Struct / ListValue). Both the HTTP API's protobuf
// encoding and the gRPC service use it, so the two stay byte-compatible.
package wire

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/types"
)

// maxExactInt is the largest integer a float64 number value holds exactly.
const maxExactInt = 1 << 53

var ErrNotInteger = errors.New("not an integer")

func InteractionToStruct(l types.InteractionLog) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":         structpb.NewNumberValue(float64(l.ID)),
		"learner_id": structpb.NewNumberValue(float64(l.LearnerID)),
		"item_id":    structpb.NewNumberValue(float64(l.ItemID)),
		"kind":       structpb.NewStringValue(l.Kind),
		"created_at": structpb.NewStringValue(l.CreatedAt.UTC().Format(time.RFC3339Nano)),
	}}
}

func InteractionsToList(logs []types.InteractionLog) *structpb.ListValue {
	values := make([]*structpb.Value, 0, len(logs))
	for _, l := range logs {
		values = append(values, structpb.NewStructValue(InteractionToStruct(l)))
	}
	return &structpb.ListValue{Values: values}
}

func InteractionFromStruct(s *structpb.Struct) (types.InteractionLog, error) {
	var (
		l   types.InteractionLog
		err error
	)
	fields := s.GetFields()

	for name, dst := range map[string]*int64{"id": &l.ID, "learner_id": &l.LearnerID, "item_id": &l.ItemID} {
		v, err := optionalInt(fields, name)
		if err != nil {
			return types.InteractionLog{}, err
		}
		if v == nil {
			return types.InteractionLog{}, fmt.Errorf("%s: missing", name)
		}
		*dst = *v
	}

	l.Kind = fields["kind"].GetStringValue()
	if raw := fields["created_at"].GetStringValue(); raw != "" {
		l.CreatedAt, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return types.InteractionLog{}, fmt.Errorf("created_at: %w", err)
		}
	}
	return l, nil
}

func InteractionsFromList(list *structpb.ListValue) ([]types.InteractionLog, error) {
	out := make([]types.InteractionLog, 0, len(list.GetValues()))
	for i, v := range list.GetValues() {
		l, err := InteractionFromStruct(v.GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// RecordRequestFromStruct reads learner_id, item_id and kind. Missing ids
// stay nil so the service can report which one was absent.
func RecordRequestFromStruct(s *structpb.Struct) (types.RecordInteractionRequest, error) {
	fields := s.GetFields()

	learnerID, err := optionalInt(fields, "learner_id")
	if err != nil {
		return types.RecordInteractionRequest{}, err
	}
	itemID, err := optionalInt(fields, "item_id")
	if err != nil {
		return types.RecordInteractionRequest{}, err
	}

	req := types.RecordInteractionRequest{LearnerID: learnerID, ItemID: itemID}
	if v, ok := fields["kind"]; ok {
		sv, isString := v.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return types.RecordInteractionRequest{}, fmt.Errorf("kind: not a string")
		}
		req.Kind = sv.StringValue
	}
	return req, nil
}

// ItemIDFromStruct extracts the optional item_id filter. Absent or null
// means no filter.
func ItemIDFromStruct(s *structpb.Struct) (*int64, error) {
	return optionalInt(s.GetFields(), "item_id")
}

func optionalInt(fields map[string]*structpb.Value, name string) (*int64, error) {
	v, ok := fields[name]
	if !ok {
		return nil, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_NumberValue:
		f := k.NumberValue
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxExactInt {
			return nil, fmt.Errorf("%s: %w", name, ErrNotInteger)
		}
		n := int64(f)
		return &n, nil
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrNotInteger)
	}
}
