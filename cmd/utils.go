package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/dustin/go-humanize"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"gopkg.in/yaml.v3"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/pkg/ui"
)

// GetPreferredEditor returns the editor command from config, env, or default
func GetPreferredEditor() string {
	// 1. Check Config
	if appConfig != nil && appConfig.Editor != "" {
		return appConfig.Editor
	}
	// 2. Check Environment
	if env := os.Getenv("EDITOR"); env != "" {
		return env
	}
	// 3. Fallback
	return "vi"
}

// runEditor opens path in the preferred editor and waits for it to exit
func runEditor(path string) error {
	c := exec.Command(GetPreferredEditor(), path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// editAsYAML lets the user edit v as a YAML document keyed by its json field names.
// The edited document is decoded back into out.
func editAsYAML(v any, out any) error {
	doc, err := toYAML(v)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "inv-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := runEditor(f.Name()); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}

	edited, err := os.ReadFile(f.Name())
	if err != nil {
		return err
	}
	return fromYAML(edited, out)
}

// toYAML renders v with its json field names as YAML keys
func toYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)
	return yaml.Marshal(&node)
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		clearStyle(child)
	}
}

// fromYAML decodes a YAML document into out using out's json tags
func fromYAML(data []byte, out any) error {
	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	// Scalars like 16 or 2024-01-01 come back typed; drafts are all strings
	for k, v := range generic {
		switch val := v.(type) {
		case nil:
			generic[k] = ""
		case string:
		case time.Time:
			generic[k] = val.Format(domain.DateLayout)
		default:
			generic[k] = fmt.Sprint(val)
		}
	}

	data, err := json.Marshal(generic)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// highlight applies terminal syntax highlighting; unknown languages return content unchanged
func highlight(content, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		return content
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.TTY16m

	var buf strings.Builder
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return content
	}

	if err := formatter.Format(&buf, style, iterator); err != nil {
		return content
	}

	return buf.String()
}

// isTerminal reports whether f is attached to a character device
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// resolveAsset finds the asset named by ref, or lets the user pick one when ref is empty
func resolveAsset(ref string) (domain.Asset, error) {
	ctx := getContext()

	if strings.TrimSpace(ref) != "" {
		return listService.Resolve(ctx, ref)
	}

	assets := inventoryRepo.Snapshot(ctx).Assets
	if len(assets) == 0 {
		return domain.Asset{}, fmt.Errorf("%w: the inventory is empty", domain.ErrAssetNotFound)
	}

	idx, err := fuzzyfinder.Find(
		assets,
		func(i int) string {
			return fmt.Sprintf("%s  %s %s", assets[i].Name, assets[i].Brand, assets[i].Model)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return assetPreview(assets[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return domain.Asset{}, fmt.Errorf("selection cancelled")
		}
		return domain.Asset{}, err
	}
	return assets[idx], nil
}

func assetPreview(a domain.Asset) string {
	return fmt.Sprintf("%s\n\nBrand:    %s\nModel:    %s\nOS:       %s\nSpecs:    %s\nLocation: %s\nStatus:   %s\nID:       %s",
		a.Name, a.Brand, a.Model, a.OperatingSystem, a.GetSpecsString(), a.Location, a.Status, a.ID)
}

// printValidationError lists each invalid field on its own line
func printValidationError(w io.Writer, err error) bool {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return false
	}

	fields := make([]string, 0, len(verr.Fields))
	for f := range verr.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	fmt.Fprintln(w, ui.FormatError("Please fix the following fields:"))
	for _, f := range fields {
		fmt.Fprintf(w, "  %s %s\n", ui.StyleBold.Render(f), ui.StyleMuted.Render(verr.Fields[f]))
	}
	return true
}

// promptLine asks for a value on stdin, returning def when the answer is empty
func promptLine(reader *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Print(ui.StyleAccent.Render(label) + ui.StyleMuted.Render(" ["+def+"]") + ": ")
	} else {
		fmt.Print(ui.StyleAccent.Render(label) + ": ")
	}

	answer, err := reader.ReadString('\n')
	answer = strings.TrimSpace(answer)
	if err != nil && answer == "" {
		return def
	}
	if answer == "" {
		return def
	}
	return answer
}

// relativeDate renders a calendar date as "3 days ago"; malformed dates are shown verbatim
func relativeDate(date string, now time.Time) string {
	t, ok := domain.ParseDate(date)
	if !ok {
		return date
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if t.Equal(today) {
		return "today"
	}
	return humanize.RelTime(t, today, "ago", "from now")
}

// displayDate formats a calendar date with the configured layout
func displayDate(date string) string {
	layout := "Jan 02, 2006"
	if appConfig != nil && appConfig.DisplayDateFormat != "" {
		layout = appConfig.DisplayDateFormat
	}
	t, ok := domain.ParseDate(date)
	if !ok {
		return date
	}
	return t.Format(layout)
}

func today() string {
	return domain.FormatDate(time.Now())
}
