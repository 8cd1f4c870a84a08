package provider

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/SharpAssistant/core/errors"
	"github.com/FocuswithJustin/SharpAssistant/core/text"
	"github.com/FocuswithJustin/SharpAssistant/internal/logging"
	"github.com/FocuswithJustin/SharpAssistant/internal/validation"
)

// chapterMap is the decoded form of a plain-text book document:
// chapter number -> verse number -> verse text.
type chapterMap map[string]map[string]string

// wordAccessor resolves tokenized word triplets for one verse of an
// ancient-language book. Returns nil when the verse is absent.
type wordAccessor func(chapter, verse int) []text.Word

// bookFilePath locates the data file for a book, probing the supported
// encodings in order. Returns "" when no file exists. Book names that
// fail validation never touch the filesystem.
func bookFilePath(dir, book string) string {
	if err := validation.ValidateBookName(book); err != nil {
		logging.Warn("book name rejected", "book", book, "error", err)
		return ""
	}
	for _, name := range []string{book + ".json", book + ".json.xz", book + ".xml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// readBookFile reads a book data file, decompressing .xz transparently.
// The content hash is logged so corpus drift shows up in the logs.
func readBookFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return nil, &errors.ParseError{Format: "xz", Path: path, Message: "corrupt stream", Err: err}
		}
		r = xzr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}

	sum := blake3.Sum256(data)
	logging.Debug("book_file_loaded",
		"path", path,
		"blake3", hex.EncodeToString(sum[:8]),
		"bytes", len(data),
	)
	return data, nil
}

// decodeTextBook decodes a plain-text book document. Two JSON shapes
// are accepted: a {"chapters": {...}} wrapper, or a bare chapter-keyed
// object. Anything else is a malformed data file.
func decodeTextBook(path string, data []byte) (chapterMap, error) {
	var wrapper struct {
		Chapters chapterMap `json:"chapters"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Chapters != nil {
		return wrapper.Chapters, nil
	}

	var bare chapterMap
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, &errors.ParseError{Format: "JSON", Path: path, Message: "unrecognized book document", Err: err}
	}
	for k := range bare {
		if !isNumericKey(k) {
			return nil, &errors.ParseError{Format: "JSON", Path: path, Message: "non-numeric chapter key " + strconv.Quote(k)}
		}
	}
	return bare, nil
}

// decodeWordBook decodes an ancient-language book document. Three
// shapes are accepted: the {"chapters": {...}} wrapper, a bare
// chapter-keyed object, and a top-level nested array indexed
// [chapter-1][verse-1].
func decodeWordBook(path string, data []byte) (wordAccessor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var arr [][][]text.Word
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, &errors.ParseError{Format: "JSON", Path: path, Message: "unrecognized word-book array", Err: err}
		}
		return func(chapter, verse int) []text.Word {
			if chapter < 1 || chapter > len(arr) {
				return nil
			}
			verses := arr[chapter-1]
			if verse < 1 || verse > len(verses) {
				return nil
			}
			return verses[verse-1]
		}, nil
	}

	var wrapper struct {
		Chapters map[string]map[string][]text.Word `json:"chapters"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.Chapters != nil {
		return keyedWordAccessor(wrapper.Chapters), nil
	}

	var bare map[string]map[string][]text.Word
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, &errors.ParseError{Format: "JSON", Path: path, Message: "unrecognized word-book document", Err: err}
	}
	return keyedWordAccessor(bare), nil
}

func keyedWordAccessor(chapters map[string]map[string][]text.Word) wordAccessor {
	return func(chapter, verse int) []text.Word {
		verses, ok := chapters[strconv.Itoa(chapter)]
		if !ok {
			return nil
		}
		return verses[strconv.Itoa(verse)]
	}
}

// decodeOSISBook extracts verse text from an OSIS XML book document.
// Only the container form is supported: <verse osisID="Book.C.V">text</verse>.
func decodeOSISBook(path string, data []byte) (chapterMap, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &errors.ParseError{Format: "OSIS XML", Path: path, Message: "invalid XML", Err: err}
	}

	chapters := chapterMap{}
	for _, node := range xmlquery.Find(doc, "//verse[@osisID]") {
		osisID := node.SelectAttr("osisID")
		parts := strings.Split(osisID, ".")
		if len(parts) < 3 {
			continue
		}
		chapter, verse := parts[len(parts)-2], parts[len(parts)-1]
		if !isNumericKey(chapter) || !isNumericKey(verse) {
			continue
		}
		textContent := strings.TrimSpace(node.InnerText())
		if textContent == "" {
			continue
		}
		if chapters[chapter] == nil {
			chapters[chapter] = map[string]string{}
		}
		chapters[chapter][verse] = textContent
	}

	if len(chapters) == 0 {
		return nil, &errors.ParseError{Format: "OSIS XML", Path: path, Message: "no verse elements found"}
	}
	return chapters, nil
}

func isNumericKey(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// versesInRange extracts a verse range from a chapter map in ascending
// order. verseStart == 0 selects the whole chapter.
func versesInRange(chapters chapterMap, id text.TranslationID, book string, chapter, verseStart, verseEnd int) []text.Verse {
	ch, ok := chapters[strconv.Itoa(chapter)]
	if !ok {
		return nil
	}

	var out []text.Verse
	appendVerse := func(v int) {
		if t, ok := ch[strconv.Itoa(v)]; ok && t != "" {
			out = append(out, text.Verse{
				Reference:   book + " " + strconv.Itoa(chapter) + ":" + strconv.Itoa(v),
				Text:        t,
				Translation: id,
				Language:    id.Language(),
				RTL:         id.RTL(),
			})
		}
	}

	if verseStart == 0 {
		nums := make([]int, 0, len(ch))
		for k := range ch {
			if n, err := strconv.Atoi(k); err == nil {
				nums = append(nums, n)
			}
		}
		sort.Ints(nums)
		for _, v := range nums {
			appendVerse(v)
		}
		return out
	}

	start, end := verseRange(verseStart, verseEnd)
	for v := start; v <= end; v++ {
		appendVerse(v)
	}
	return out
}
