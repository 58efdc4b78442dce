package embedder

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeSafetensors writes a single F32 "linear.weight" tensor of shape
// [outDim, inDim] to a temp file and returns its path.
func writeSafetensors(t *testing.T, outDim, inDim int, weights []float32) string {
	t.Helper()

	header := map[string]any{
		"linear.weight": map[string]any{
			"dtype":        "F32",
			"shape":        []int{outDim, inDim},
			"data_offsets": []int{0, outDim * inDim * 4},
		},
	}
	hdr, err := json.Marshal(header)
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}

	buf := make([]byte, 8, 8+len(hdr)+len(weights)*4)
	binary.LittleEndian.PutUint64(buf, uint64(len(hdr)))
	buf = append(buf, hdr...)
	for _, w := range weights {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(w))
	}

	path := filepath.Join(t.TempDir(), "model.safetensors")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write safetensors: %v", err)
	}
	return path
}

func TestLoadProjection(t *testing.T) {
	// 2x3 weights, row-major.
	path := writeSafetensors(t, 2, 3, []float32{1, 0, 0, 0, 1, 1})

	proj, err := loadProjection(path)
	if err != nil {
		t.Fatalf("failed to load projection: %v", err)
	}
	if proj.inDim != 3 || proj.outDim != 2 {
		t.Fatalf("expected 3→2 projection, got %d→%d", proj.inDim, proj.outDim)
	}

	out := proj.apply([]float32{2, 3, 4})
	if !closeEnough(out[0], 2) || !closeEnough(out[1], 7) {
		t.Errorf("expected [2, 7], got %v", out)
	}
}

func TestReadSafetensorsShapeMismatch(t *testing.T) {
	// Header claims 2x3 but only four floats follow.
	path := writeSafetensors(t, 2, 3, []float32{1, 2, 3, 4})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := readSafetensorsF32(path, "linear.weight"); err == nil {
		t.Errorf("expected shape mismatch error for %d-byte file", len(data))
	}
	if _, _, err := readSafetensorsF32(path, "missing.weight"); err == nil {
		t.Error("expected error for unknown tensor name")
	}
}

func TestLoadProjectionErrors(t *testing.T) {
	dir := t.TempDir()

	tiny := filepath.Join(dir, "tiny.safetensors")
	if err := os.WriteFile(tiny, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadProjection(tiny); err == nil {
		t.Error("expected error for truncated file")
	}

	if _, err := loadProjection(filepath.Join(dir, "missing.safetensors")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEmbedEndToEnd(t *testing.T) {
	skipIfNoModel(t)
	skipIfNoVocab(t)

	emb, err := New(ONNXConfig{ModelPath: testModelPath, VocabPath: testVocabPath})
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}
	defer emb.Close()

	if emb.EmbedDim() != 384 {
		t.Errorf("expected EmbedDim()=384, got %d", emb.EmbedDim())
	}

	vec, err := emb.Embed("Define photosynthesis.")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 384 {
		t.Fatalf("expected 384-dim vector, got %d", len(vec))
	}

	allZero := true
	for _, v := range vec {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Error("embedding is all zeros")
	}
}

func TestEmbedBatchEndToEnd(t *testing.T) {
	skipIfNoModel(t)
	skipIfNoVocab(t)

	emb, err := New(ONNXConfig{ModelPath: testModelPath, VocabPath: testVocabPath})
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}
	defer emb.Close()

	texts := []string{
		"List the three states of matter.",
		"Design an experiment to test whether light affects plant growth.",
	}
	vecs, err := emb.EmbedBatch(texts)
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if len(vecs) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vecs))
	}

	same := true
	for i := range vecs[0] {
		if vecs[0][i] != vecs[1][i] {
			same = false
			break
		}
	}
	if same {
		t.Error("batch embeddings are identical; pooling may be broken")
	}
}

func TestEmbedBatchEmpty(t *testing.T) {
	skipIfNoModel(t)
	skipIfNoVocab(t)

	emb, err := New(ONNXConfig{ModelPath: testModelPath, VocabPath: testVocabPath})
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}
	defer emb.Close()

	vecs, err := emb.EmbedBatch(nil)
	if err != nil {
		t.Fatalf("EmbedBatch(nil) failed: %v", err)
	}
	if vecs != nil {
		t.Errorf("expected nil for empty batch, got %v", vecs)
	}
}
