package hdlc

import (
	"encoding/hex"
	"fmt"
)

// Vector is a payload paired with the frame it must produce.
type Vector struct {
	Payload string
	Frame   string
}

// Vectors holds the fixed known-answer cases checked by SelfTest.
var Vectors = []Vector{
	{Payload: "7d028813a513", Frame: "7d5d028813a513c3407e"},
}

// Result is the outcome of one self-test vector.
type Result struct {
	Vector
	Got string
}

// OK reports whether the constructed frame matched.
func (r Result) OK() bool {
	return r.Got == r.Frame
}

// RunVectors builds every vector in vs and reports what was constructed.
func RunVectors(vs []Vector) ([]Result, error) {
	results := make([]Result, 0, len(vs))
	for _, v := range vs {
		payload, err := hex.DecodeString(v.Payload)
		if err != nil {
			return nil, fmt.Errorf("invalid vector payload %q: %w", v.Payload, err)
		}
		results = append(results, Result{Vector: v, Got: hex.EncodeToString(Build(payload))})
	}
	return results, nil
}

// SelfTest checks Build against Vectors.
func SelfTest() error {
	results, err := RunVectors(Vectors)
	if err != nil {
		return err
	}
	for _, r := range results {
		if !r.OK() {
			return fmt.Errorf("frame mismatch for %s: expected %s, got %s", r.Payload, r.Frame, r.Got)
		}
	}
	return nil
}
