package embedder

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// projection is a bias-free dense layer: out = W·in with W row-major
// [outDim, inDim].
type projection struct {
	w      []float32
	inDim  int
	outDim int
}

// loadProjection reads the "linear.weight" tensor of a sentence-transformers
// Dense module saved as safetensors.
func loadProjection(path string) (*projection, error) {
	shape, w, err := readSafetensorsF32(path, "linear.weight")
	if err != nil {
		return nil, fmt.Errorf("projection: %w", err)
	}
	if len(shape) != 2 {
		return nil, fmt.Errorf("projection: expected 2D weight, got shape %v", shape)
	}
	return &projection{w: w, outDim: shape[0], inDim: shape[1]}, nil
}

func (p *projection) apply(in []float32) []float32 {
	out := make([]float32, p.outDim)
	for i := range out {
		var sum float32
		for j, w := range p.w[i*p.inDim : (i+1)*p.inDim] {
			sum += w * in[j]
		}
		out[i] = sum
	}
	return out
}

// tensorMeta is one entry of a safetensors JSON header.
type tensorMeta struct {
	Dtype       string `json:"dtype"`
	Shape       []int  `json:"shape"`
	DataOffsets [2]int `json:"data_offsets"`
}

// readSafetensorsF32 loads the F32 tensor called name. The file layout is a
// little-endian uint64 header length, the JSON header, then the raw data
// block the header's offsets index into.
func readSafetensorsF32(path, name string) ([]int, []float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if len(data) < 8 {
		return nil, nil, fmt.Errorf("%s: file too small: %d bytes", path, len(data))
	}
	hlen := binary.LittleEndian.Uint64(data)
	if hlen > uint64(len(data)-8) {
		return nil, nil, fmt.Errorf("%s: header length %d exceeds file size", path, hlen)
	}
	body := data[8+hlen:]

	var header map[string]json.RawMessage
	if err := json.Unmarshal(data[8:8+hlen], &header); err != nil {
		return nil, nil, fmt.Errorf("%s: parse header: %w", path, err)
	}
	raw, ok := header[name]
	if !ok {
		return nil, nil, fmt.Errorf("%s: tensor %q not found", path, name)
	}
	var meta tensorMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, nil, fmt.Errorf("%s: tensor %q metadata: %w", path, name, err)
	}
	if meta.Dtype != "F32" {
		return nil, nil, fmt.Errorf("%s: tensor %q is %s, want F32", path, name, meta.Dtype)
	}

	n := 1
	for _, d := range meta.Shape {
		n *= d
	}
	start, end := meta.DataOffsets[0], meta.DataOffsets[1]
	if start < 0 || end > len(body) || end-start != n*4 {
		return nil, nil, fmt.Errorf("%s: tensor %q data [%d:%d] does not fit shape %v in %d bytes",
			path, name, start, end, meta.Shape, len(body))
	}

	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(body[start+4*i:]))
	}
	return meta.Shape, out, nil
}
