package embedder

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// maxWordRunes is the longest word WordPiece will try to split; longer
// words become [UNK].
const maxWordRunes = 100

// batch is a tokenized, right-padded batch in the flat row-major layout the
// ONNX session takes: every slice has rows*cols entries.
type batch struct {
	ids   []int64
	mask  []int64
	types []int64
	rows  int64
	cols  int64
}

// tokenizer is an uncased BERT WordPiece tokenizer.
type tokenizer struct {
	vocab  *vocab
	maxLen int
}

// newTokenizer loads vocab.txt. Encoded sequences, including [CLS] and
// [SEP], never exceed maxLen tokens.
func newTokenizer(vocabPath string, maxLen int) (*tokenizer, error) {
	if maxLen < 2 {
		return nil, fmt.Errorf("tokenizer: max sequence length %d leaves no room for [CLS]/[SEP]", maxLen)
	}
	v, err := loadVocab(vocabPath)
	if err != nil {
		return nil, err
	}
	return &tokenizer{vocab: v, maxLen: maxLen}, nil
}

// encode returns the IDs of [CLS] text [SEP], truncated to maxLen.
func (t *tokenizer) encode(text string) []int64 {
	limit := t.maxLen - 1
	ids := []int64{t.vocab.cls}
	for _, w := range pretokenize(text) {
		ids = t.pieces(w, ids)
		if len(ids) >= limit {
			ids = ids[:limit]
			break
		}
	}
	return append(ids, t.vocab.sep)
}

// encodeBatch encodes texts and pads every row to the longest one.
func (t *tokenizer) encodeBatch(texts []string) batch {
	if len(texts) == 0 {
		return batch{}
	}

	seqs := make([][]int64, len(texts))
	cols := 0
	for i, text := range texts {
		seqs[i] = t.encode(text)
		cols = max(cols, len(seqs[i]))
	}

	n := len(texts) * cols
	b := batch{
		ids:   make([]int64, n),
		mask:  make([]int64, n),
		types: make([]int64, n),
		rows:  int64(len(texts)),
		cols:  int64(cols),
	}
	for i, seq := range seqs {
		row := b.ids[i*cols : (i+1)*cols]
		copy(row, seq)
		for j := len(seq); j < cols; j++ {
			row[j] = t.vocab.pad
		}
		for j := range seq {
			b.mask[i*cols+j] = 1
		}
	}
	return b
}

// pieces appends the WordPiece IDs of word to out using greedy
// longest-match-first. A word with any unmatched remainder is a single [UNK].
func (t *tokenizer) pieces(word string, out []int64) []int64 {
	runes := []rune(word)
	if len(runes) > maxWordRunes {
		return append(out, t.vocab.unk)
	}

	mark := len(out)
	for start := 0; start < len(runes); {
		end := len(runes)
		for ; end > start; end-- {
			sub := string(runes[start:end])
			if start > 0 {
				sub = "##" + sub
			}
			if id, ok := t.vocab.lookup(sub); ok {
				out = append(out, id)
				break
			}
		}
		if end == start {
			return append(out[:mark], t.vocab.unk)
		}
		start = end
	}
	return out
}

// pretokenize lowercases and NFD-decomposes text, drops control characters
// and combining marks, and splits on whitespace. Punctuation and CJK
// ideographs become words of their own.
func pretokenize(text string) []string {
	var (
		words []string
		cur   strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}

	for _, r := range norm.NFD.String(strings.ToLower(text)) {
		switch {
		case r == 0, r == utf8.RuneError, isControl(r), unicode.Is(unicode.Mn, r):
		case isSpace(r):
			flush()
		case isPunct(r), isCJK(r):
			flush()
			words = append(words, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || unicode.Is(unicode.Zs, r)
}

func isControl(r rune) bool {
	return r != '\t' && r != '\n' && r != '\r' && unicode.IsControl(r)
}

// isPunct treats every non-alphanumeric printable ASCII character as
// punctuation, as BERT does, in addition to Unicode P*.
func isPunct(r rune) bool {
	if r < utf8.RuneSelf && r > ' ' && r != 0x7F {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}
	return unicode.IsPunct(r)
}

var cjkRanges = [][2]rune{
	{0x4E00, 0x9FFF},
	{0x3400, 0x4DBF},
	{0x20000, 0x2A6DF},
	{0x2A700, 0x2B73F},
	{0x2B740, 0x2B81F},
	{0x2B820, 0x2CEAF},
	{0xF900, 0xFAFF},
	{0x2F800, 0x2FA1F},
}

func isCJK(r rune) bool {
	for _, rg := range cjkRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}
