package embedder

import (
	"fmt"
	"os"
	"slices"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// The ONNX Runtime environment is process-wide and initialized at most once;
// the first library path wins.
var (
	ortOnce sync.Once
	ortErr  error
)

func initRuntime(libPath string) error {
	ortOnce.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortErr = ort.InitializeEnvironment()
	})
	return ortErr
}

// bertInputs are the encoder inputs in the order run passes them.
var bertInputs = []string{"input_ids", "attention_mask", "token_type_ids"}

// preferredOutputs name the per-token hidden states in common exports.
var preferredOutputs = []string{"last_hidden_state", "token_embeddings"}

// session is an ONNX Runtime session over a BERT-style encoder that returns
// per-token hidden states.
type session struct {
	mu     sync.Mutex
	ort    *ort.DynamicAdvancedSession
	output string
	dim    int
}

func newSession(modelPath, libPath string) (*session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("onnx: model file: %w", err)
	}
	if err := initRuntime(libPath); err != nil {
		return nil, fmt.Errorf("onnx: initialize runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: read model info: %w", err)
	}
	for _, name := range bertInputs {
		if !slices.ContainsFunc(inputs, func(i ort.InputOutputInfo) bool { return i.Name == name }) {
			return nil, fmt.Errorf("onnx: model missing required input %q", name)
		}
	}
	out, err := tokenOutput(outputs)
	if err != nil {
		return nil, err
	}
	if out.Dimensions[2] <= 0 {
		return nil, fmt.Errorf("onnx: output %q has dynamic hidden size %v", out.Name, out.Dimensions)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(4)
	opts.SetInterOpNumThreads(1)

	s, err := ort.NewDynamicAdvancedSession(modelPath, bertInputs, []string{out.Name}, opts)
	if err != nil {
		return nil, fmt.Errorf("onnx: create session: %w", err)
	}
	return &session{ort: s, output: out.Name, dim: int(out.Dimensions[2])}, nil
}

// tokenOutput picks the rank-3 [batch, seq, dim] output, preferring the
// conventional names. Sentence-transformers exports may also carry a pooled
// rank-2 output, which is skipped.
func tokenOutput(outputs []ort.InputOutputInfo) (ort.InputOutputInfo, error) {
	var candidates []ort.InputOutputInfo
	for _, o := range outputs {
		if len(o.Dimensions) == 3 {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return ort.InputOutputInfo{}, fmt.Errorf("onnx: model has no rank-3 output among %d outputs", len(outputs))
	}
	for _, o := range candidates {
		if slices.Contains(preferredOutputs, o.Name) {
			return o, nil
		}
	}
	return candidates[0], nil
}

// run returns the hidden states for b as a flat [rows, cols, dim] slice.
func (s *session) run(b batch) ([]float32, error) {
	shape := ort.NewShape(b.rows, b.cols)
	inputs := make([]ort.Value, 0, len(bertInputs))
	defer func() {
		for _, v := range inputs {
			v.Destroy()
		}
	}()
	for i, data := range [][]int64{b.ids, b.mask, b.types} {
		t, err := ort.NewTensor(shape, data)
		if err != nil {
			return nil, fmt.Errorf("onnx: %s tensor: %w", bertInputs[i], err)
		}
		inputs = append(inputs, t)
	}

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(b.rows, b.cols, int64(s.dim)))
	if err != nil {
		return nil, fmt.Errorf("onnx: output tensor: %w", err)
	}
	defer out.Destroy()

	s.mu.Lock()
	err = s.ort.Run(inputs, []ort.Value{out})
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("onnx: inference: %w", err)
	}
	return slices.Clone(out.GetData()), nil
}

func (s *session) close() error {
	return s.ort.Destroy()
}
