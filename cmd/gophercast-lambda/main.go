// Command gophercast-lambda serves the solver behind an AWS Lambda function URL.
//
// The request body is a JSON problem, as read by solver.ParseJSON, with optional
// "bound", "optimalityCut" and "feasibilityCut" keys.
// Invalid bodies are answered with status 400. The search stops shortly before the
// invocation deadline; the answer is then status 503.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/crillab/gophercast/solver"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// deadlineMargin is the time left to answer once the search was interrupted
// because the invocation deadline is near.
const deadlineMargin = 500 * time.Millisecond

type solveResult struct {
	Feasible  bool  `json:"feasible"`
	IDs       []int `json:"ids"`
	Cost      int   `json:"cost"`
	Generated int   `json:"generated"`
	Visited   int   `json:"visited"`
	ElapsedUs int64 `json:"elapsedUs"`
}

// options reads the solver options from the request body.
func options(body []byte) (solver.Options, error) {
	opts := solver.DefaultOptions()
	bound, err := solver.ParseEstimator(gjson.GetBytes(body, "bound").String())
	if err != nil {
		return opts, err
	}
	opts.Bound = bound
	for key, dst := range map[string]*bool{
		"optimalityCut":  &opts.OptimalityCut,
		"feasibilityCut": &opts.FeasibilityCut,
	} {
		v := gjson.GetBytes(body, key)
		if !v.Exists() {
			continue
		}
		if !v.IsBool() {
			return opts, fmt.Errorf("key %q is not a boolean: %s", key, v.Raw)
		}
		*dst = v.Bool()
	}
	return opts, nil
}

type server struct {
	logger *zap.Logger
}

func (srv *server) handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = decoded
	}
	opts, err := options(body)
	if err != nil {
		return errResp(400, err.Error())
	}
	pb, err := solver.ParseJSONBytes(body)
	if err != nil {
		return errResp(400, "invalid problem: "+err.Error())
	}
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, deadline.Add(-deadlineMargin))
		defer cancel()
	}
	s := solver.New(pb, opts)
	s.Logger = srv.logger
	res, err := s.SolveContext(ctx)
	if err != nil {
		return errResp(503, "search interrupted: "+err.Error())
	}
	out := solveResult{
		Feasible:  res.Status == solver.Feasible,
		IDs:       res.IDs,
		Cost:      res.Cost,
		Generated: res.Stats.NbGenerated,
		Visited:   res.Stats.NbVisited,
		ElapsedUs: res.Stats.Elapsed.Microseconds(),
	}
	if out.IDs == nil {
		out.IDs = []int{}
	}
	respJSON, _ := json.Marshal(out)
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	srv := &server{logger: logger.Named("solver")}
	lambda.Start(srv.handler)
}
