package policyserver

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/SnakeReinforcementLearning/internal/game/core"
)

// Client is a thin typed wrapper over the PolicyService
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// ActResult is the decoded Act response
type ActResult struct {
	Action   core.Action
	Values   []float64
	Features string
}

// EvaluateResult is the decoded Evaluate response
type EvaluateResult struct {
	Episodes   int
	BaseSeed   int64
	MeanReturn float64
	StdReturn  float64
	MeanScore  float64
	StdScore   float64
	MeanSteps  float64
	StdSteps   float64
	MaxScore   int
	BestSeed   int64
	Reasons    map[string]int
}

func (c *Client) invoke(ctx context.Context, method string, req map[string]interface{}, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Act asks for the greedy action for obs
func (c *Client) Act(ctx context.Context, obs int, opts ...grpc.CallOption) (*ActResult, error) {
	out, err := c.invoke(ctx, MethodAct, map[string]interface{}{"observation": obs}, opts...)
	if err != nil {
		return nil, err
	}
	f := out.GetFields()
	res := &ActResult{
		Action:   core.Action(int(f["action"].GetNumberValue())),
		Features: f["features"].GetStringValue(),
	}
	for _, v := range f["values"].GetListValue().GetValues() {
		res.Values = append(res.Values, v.GetNumberValue())
	}
	if err := res.Action.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return res, nil
}

// Evaluate runs a remote greedy evaluation. A zero seed lets the server
// pick one.
func (c *Client) Evaluate(ctx context.Context, episodes int, seed int64, opts ...grpc.CallOption) (*EvaluateResult, error) {
	req := map[string]interface{}{"episodes": episodes}
	if seed != 0 {
		req["seed"] = strconv.FormatInt(seed, 10)
	}
	out, err := c.invoke(ctx, MethodEvaluate, req, opts...)
	if err != nil {
		return nil, err
	}

	f := out.GetFields()
	res := &EvaluateResult{
		Episodes:   int(f["episodes"].GetNumberValue()),
		MeanReturn: f["mean_return"].GetNumberValue(),
		StdReturn:  f["std_return"].GetNumberValue(),
		MeanScore:  f["mean_score"].GetNumberValue(),
		StdScore:   f["std_score"].GetNumberValue(),
		MeanSteps:  f["mean_steps"].GetNumberValue(),
		StdSteps:   f["std_steps"].GetNumberValue(),
		MaxScore:   int(f["max_score"].GetNumberValue()),
		Reasons:    make(map[string]int),
	}
	if res.BaseSeed, err = strconv.ParseInt(f["base_seed"].GetStringValue(), 10, 64); err != nil {
		return nil, fmt.Errorf("%w: base_seed: %v", ErrMalformedMessage, err)
	}
	if res.BestSeed, err = strconv.ParseInt(f["best_seed"].GetStringValue(), 10, 64); err != nil {
		return nil, fmt.Errorf("%w: best_seed: %v", ErrMalformedMessage, err)
	}
	for name, v := range f["reasons"].GetStructValue().GetFields() {
		res.Reasons[name] = int(v.GetNumberValue())
	}
	return res, nil
}

// Info returns the raw Info document
func (c *Client) Info(ctx context.Context, opts ...grpc.CallOption) (map[string]interface{}, error) {
	out, err := c.invoke(ctx, MethodInfo, map[string]interface{}{}, opts...)
	if err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
