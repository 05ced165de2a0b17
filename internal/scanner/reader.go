package scanner

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"unicode/utf8"
)

// regexReader buffers everything read from an underlying io.Reader so that a
// regex match attempt can be "undone" — regexp's FindReaderSubmatchIndex
// only tells you whether something matched, not how much of the reader it
// consumed along the way, so matching against a live stream requires being
// able to rewind. Grounded on the teacher's lex.regexReader.
//
// Implements io.Reader, io.RuneReader, io.Seeker.
type regexReader struct {
	b     []byte
	r     *bufio.Reader
	cur   int
	marks map[string]int
}

func newRegexReader(r io.Reader) *regexReader {
	return &regexReader{r: bufio.NewReader(r), marks: make(map[string]int)}
}

func (rr *regexReader) avail() int {
	return len(rr.b) - rr.cur
}

func (rr *regexReader) readBuf(n int) []byte {
	limit := rr.avail()
	if n < limit {
		limit = n
	}
	read := rr.b[rr.cur : rr.cur+limit]
	rr.cur += limit
	return read
}

func (rr *regexReader) readIntoBuf(n int) (int, error) {
	read := make([]byte, n)
	actualRead, err := rr.r.Read(read)
	if actualRead > 0 {
		rr.b = append(rr.b, read[:actualRead]...)
	}
	return actualRead, err
}

func (rr *regexReader) Read(p []byte) (n int, err error) {
	read := rr.readBuf(len(p))
	stillNeed := len(p) - len(read)
	if stillNeed > 0 {
		actualRead, rerr := rr.readIntoBuf(stillNeed)
		err = rerr
		if actualRead > 0 {
			read = append(read, rr.readBuf(actualRead)...)
		}
	}
	n = len(read)
	copy(p, read)
	return n, err
}

func (rr *regexReader) ReadRune() (r rune, size int, err error) {
	charBytes := make([]byte, 1)
	n, err := rr.Read(charBytes)
	if n != 1 {
		return r, size, err
	}

	setErr := err
	firstByte := charBytes[0]
	var remBytes int
	switch {
	case firstByte>>7 == 0:
		remBytes = 0
	case firstByte>>5 == 0b110:
		remBytes = 1
	case firstByte>>4 == 0b1110:
		remBytes = 2
	case firstByte>>3 == 0b11110:
		remBytes = 3
	}

	if remBytes > 0 {
		if setErr != nil && setErr != io.EOF {
			return r, n, setErr
		}
		more := make([]byte, remBytes)
		mn, merr := rr.Read(more)
		if mn != remBytes {
			if merr == io.EOF {
				return r, mn, fmt.Errorf("incomplete utf-8 sequence at end of input")
			}
			return r, mn, merr
		}
		setErr = merr
		charBytes = append(charBytes, more...)
	}

	r, size = utf8.DecodeRune(charBytes)
	missedBy := len(charBytes) - size
	if missedBy > 0 {
		rr.cur -= missedBy
	}
	return r, size, setErr
}

func (rr *regexReader) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = int64(rr.cur) + offset
	case io.SeekEnd:
		newOffset = int64(len(rr.b)) + offset
	default:
		return 0, fmt.Errorf("unknown whence %d", whence)
	}
	if newOffset < 0 {
		return 0, fmt.Errorf("seek before start of buffer: %d", newOffset)
	}
	if newOffset > int64(len(rr.b)) {
		newOffset = int64(len(rr.b))
	}
	rr.cur = int(newOffset)
	return newOffset, nil
}

func (rr *regexReader) Mark(name string) {
	rr.marks[name] = rr.cur
}

func (rr *regexReader) Restore(name string) {
	offset, ok := rr.marks[name]
	if !ok {
		panic(fmt.Sprintf("invalid mark name: %q", name))
	}
	rr.cur = offset
}

// getMatches resolves the byte-offset pairs FindReaderSubmatchIndex returned
// (relative to the mark named by mark) into the matched substrings. Index 0
// is the whole match; a non-matching group yields an empty string.
func (rr *regexReader) getMatches(mark string, pairs []int) []string {
	markOffset, ok := rr.marks[mark]
	if !ok {
		panic(fmt.Sprintf("invalid mark name: %q", mark))
	}
	if len(pairs) == 0 {
		return nil
	}
	matches := make([]string, len(pairs)/2)
	matches[0] = string(rr.b[markOffset+pairs[0] : markOffset+pairs[1]])
	for i := 2; i < len(pairs); i += 2 {
		left, right := pairs[i], pairs[i+1]
		if left != -1 && right != -1 {
			matches[i/2] = string(rr.b[markOffset+left : markOffset+right])
		}
	}
	return matches
}

// searchAndAdvance applies re starting at the current cursor. On a match, it
// advances the cursor past the match and returns the submatch groups; group
// 0 is the whole match. On no match, the cursor is left unchanged and the
// return is (nil, nil) unless the underlying reader itself failed, in which
// case that error (including io.EOF) is returned.
func (rr *regexReader) searchAndAdvance(re *regexp.Regexp) ([]string, error) {
	rr.Mark("search")
	matchIndexes := re.FindReaderSubmatchIndex(rr)
	matches := rr.getMatches("search", matchIndexes)
	rr.Restore("search")

	if len(matches) > 0 {
		rr.Seek(int64(matchIndexes[1]), io.SeekCurrent)
		return matches, nil
	}

	// no match: distinguish "ran out of input" from "plain non-match". Input
	// still buffered after the cursor means a plain non-match; otherwise try
	// to read one more byte from the underlying reader.
	if rr.avail() > 0 {
		return nil, nil
	}
	_, err := rr.Read(make([]byte, 1))
	rr.Restore("search")
	if err != nil {
		return nil, err
	}
	return nil, nil
}
