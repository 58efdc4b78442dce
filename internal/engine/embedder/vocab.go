package embedder

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// vocab maps WordPiece tokens to IDs; a token's ID is its zero-based line
// number in vocab.txt.
type vocab struct {
	ids map[string]int64

	pad, unk, cls, sep int64
}

func loadVocab(path string) (*vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: %w", err)
	}
	defer f.Close()

	v, err := readVocab(f)
	if err != nil {
		return nil, fmt.Errorf("vocab %s: %w", path, err)
	}
	return v, nil
}

func readVocab(r io.Reader) (*vocab, error) {
	v := &vocab{ids: make(map[string]int64, 32000)}

	sc := bufio.NewScanner(r)
	var n int64
	for sc.Scan() {
		v.ids[sc.Text()] = n
		n++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("empty vocabulary")
	}

	for name, dst := range map[string]*int64{
		"[PAD]": &v.pad,
		"[UNK]": &v.unk,
		"[CLS]": &v.cls,
		"[SEP]": &v.sep,
	} {
		id, ok := v.ids[name]
		if !ok {
			return nil, fmt.Errorf("missing special token %s", name)
		}
		*dst = id
	}
	return v, nil
}

func (v *vocab) lookup(tok string) (int64, bool) {
	id, ok := v.ids[tok]
	return id, ok
}

func (v *vocab) size() int { return len(v.ids) }
