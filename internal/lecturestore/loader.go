package lecturestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"

	"github.com/vteach/qa-backend/pkg/logger_i"
)

// LectureFile is one transcript read from the lectures directory, before
// it is persisted.
type LectureFile struct {
	Title   string
	Content string
	Path    string
}

var loaderLogger = logger_i.NewLogger("lectureLoader")

// LoadDirectory reads every supported transcript file in dir, sorted by
// name. Unsupported or unreadable files are skipped with a warning so one
// bad file does not block a full reload.
func LoadDirectory(dir string) ([]LectureFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read lectures directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var lectures []LectureFile
	for _, name := range names {
		path := filepath.Join(dir, name)
		content, err := extractText(path)
		if err != nil {
			loaderLogger.Warn("skipping lecture file", "path", path, "error", err)
			continue
		}
		content = strings.TrimSpace(content)
		if content == "" {
			loaderLogger.Warn("skipping empty lecture file", "path", path)
			continue
		}
		lectures = append(lectures, LectureFile{
			Title:   lectureTitle(path, content),
			Content: content,
			Path:    path,
		})
	}
	return lectures, nil
}

func extractText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return extractPDF(path)
	case ".txt", ".docx", ".rtf", ".odt":
		return cat.File(path)
	default:
		return "", fmt.Errorf("unsupported lecture file type: %s", ext)
	}
}

func extractPDF(path string) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var sb strings.Builder
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := protectExtract(page)
		if err != nil {
			loaderLogger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// protectExtract guards against pdf pages that hang the parser.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("timeout")
	}
}

// lectureTitle prefers the first line of the transcript when it looks like
// a heading, otherwise falls back to the file name.
func lectureTitle(path, content string) string {
	firstLine := content
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		firstLine = content[:idx]
	}
	firstLine = strings.TrimSpace(firstLine)
	if firstLine != "" && len(firstLine) <= 100 {
		return firstLine
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
