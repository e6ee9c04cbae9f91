// Package codescan builds bounded structural summaries of source trees for
// use as drafting context.
package codescan

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docsmith-labs/docsmith-cli/internal/core/domain"
	"github.com/docsmith-labs/docsmith-cli/internal/core/ports/driven"
)

// Ensure Summarizer implements the interface.
var _ driven.CodeSummarizer = (*Summarizer)(nil)

// TruncationNotice is appended when the budget cuts the summary short.
const TruncationNotice = "[summary truncated: remaining files omitted]"

// maxOutlineLines bounds the outline of a single non-Go file.
const maxOutlineLines = 40

// skipDirs are well-known vendor and VCS directories never worth scanning.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"vendor":       true,
	"node_modules": true,
	"__pycache__":  true,
	".venv":        true,
	"venv":         true,
	"dist":         true,
	"build":        true,
	"target":       true,
	".idea":        true,
	".vscode":      true,
}

// sourceExtensions are the file types included in a directory scan.
var sourceExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".ts": true, ".tsx": true,
	".jsx": true, ".java": true, ".rb": true, ".rs": true, ".c": true,
	".h": true, ".cpp": true, ".hpp": true, ".cs": true, ".php": true,
	".kt": true, ".swift": true, ".scala": true, ".sh": true, ".sql": true,
	".proto": true, ".tf": true, ".yaml": true, ".yml": true, ".toml": true,
}

// outlinePrefixes mark structurally significant lines in non-Go sources,
// matching the key-pattern scan used for languages we cannot parse.
var outlinePrefixes = []string{
	"import ", "from ", "package ", "#include", "using ",
	"def ", "class ", "function ", "func ", "fn ",
	"public ", "private ", "protected ", "static ",
	"interface ", "struct ", "enum ", "trait ", "module ",
	"export ", "type ", "resource ", "CREATE ", "create ",
}

// Summarizer walks source files and produces a deterministic, budget-bounded
// text block of per-file structural outlines. It never writes.
type Summarizer struct{}

// NewSummarizer creates a new code summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize builds the code summary for a request. Files are processed in
// lexicographic path order; once the budget would be exceeded the remaining
// files are omitted and a truncation notice is appended, so a larger budget
// always yields a superset of a smaller one.
func (s *Summarizer) Summarize(ctx context.Context, req domain.Request, budget int) (domain.CodeSummary, error) {
	if budget <= 0 {
		budget = domain.DefaultSettings().SummaryBudget
	}

	files, err := s.collectFiles(req)
	if err != nil {
		return domain.CodeSummary{}, err
	}
	if len(files) == 0 {
		return domain.CodeSummary{}, fmt.Errorf("%w: no source files found", domain.ErrValidation)
	}

	summary := domain.CodeSummary{FilesTotal: len(files)}

	var b strings.Builder
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return domain.CodeSummary{}, err
		}

		section, err := s.outlineFile(path)
		if err != nil {
			// Unreadable or binary files are skipped, not fatal.
			summary.FilesTotal--
			continue
		}

		// Reserve room for the truncation notice so the final text never
		// exceeds the budget even when the notice has to be appended.
		if b.Len()+len(section)+len(TruncationNotice)+2 > budget {
			summary.Truncated = true
			break
		}
		b.WriteString(section)
		summary.FilesIncluded++
	}

	if summary.Truncated && b.Len()+len(TruncationNotice)+2 <= budget {
		b.WriteString("\n" + TruncationNotice + "\n")
	}
	summary.Text = b.String()
	return summary, nil
}

// collectFiles resolves the request's code inputs to a sorted file list.
func (s *Summarizer) collectFiles(req domain.Request) ([]string, error) {
	var files []string

	if len(req.CodeFiles) > 0 {
		for _, path := range req.CodeFiles {
			info, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("%w: code file %s: %v", domain.ErrValidation, path, err)
			}
			if info.IsDir() {
				return nil, fmt.Errorf("%w: code file %s is a directory", domain.ErrValidation, path)
			}
			files = append(files, path)
		}
		sort.Strings(files)
		return files, nil
	}

	err := filepath.WalkDir(req.CodeDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan %s: %v", domain.ErrValidation, req.CodeDir, err)
	}

	sort.Strings(files)
	return files, nil
}

// outlineFile produces the summary section for one file.
func (s *Summarizer) outlineFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if isBinary(data) {
		return "", fmt.Errorf("binary file: %s", path)
	}

	var outline string
	if strings.EqualFold(filepath.Ext(path), ".go") {
		outline = outlineGo(path, data)
	} else {
		outline = outlineByPattern(data)
	}

	return fmt.Sprintf("## %s\n%s\n", filepath.ToSlash(path), outline), nil
}

// outlineGo lists the package clause and top-level declarations of a Go file.
// Files that fail to parse fall back to the pattern scan.
func outlineGo(path string, data []byte) string {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, data, parser.SkipObjectResolution)
	if err != nil {
		return outlineByPattern(data)
	}

	var lines []string
	lines = append(lines, "package "+file.Name.Name)

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			lines = append(lines, "func "+funcSignature(d))
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch sp := spec.(type) {
				case *ast.TypeSpec:
					lines = append(lines, "type "+sp.Name.Name)
				case *ast.ValueSpec:
					for _, name := range sp.Names {
						if name.Name == "_" {
							continue
						}
						lines = append(lines, d.Tok.String()+" "+name.Name)
					}
				}
			}
		}
	}
	return strings.Join(lines, "\n")
}

// funcSignature renders a function name with its receiver type, if any.
func funcSignature(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return d.Name.Name
	}
	return "(" + receiverType(d.Recv.List[0].Type) + ") " + d.Name.Name
}

func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return "*" + receiverType(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	default:
		return ""
	}
}

// outlineByPattern keeps structurally significant lines of a non-Go file.
func outlineByPattern(data []byte) string {
	var lines []string
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, prefix := range outlinePrefixes {
			if strings.HasPrefix(line, prefix) {
				lines = append(lines, line)
				break
			}
		}
		if len(lines) >= maxOutlineLines {
			break
		}
	}
	if len(lines) == 0 {
		return "(no structural elements found)"
	}
	return strings.Join(lines, "\n")
}

// isBinary reports whether the content looks like a binary blob.
func isBinary(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.IndexByte(head, 0) >= 0
}
