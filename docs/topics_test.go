package docs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fenced block kinds. A scenario starts with a setup block, in an empty
// folder for "bash setup" and in a folder holding the transactions of
// fixture() for "bash fixture".
const (
	bashSetup    = "bash setup"
	bashFixture  = "bash fixture"
	bashRun      = "bash run"
	consoleCheck = "console check"
	bashCheck    = "bash check"
)

// cfsDir holds the cfs binary built by TestMain.
var cfsDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cfs-docs")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfsDir = dir
	build := exec.Command("go", "build", "-o", filepath.Join(dir, "cfs"), "../cfs/")
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "cannot build cfs: %v\n%s", err, out)
		os.RemoveAll(dir)
		os.Exit(1)
	}
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

// fixture is the combined transactions file of "bash fixture" scenarios: two
// banks over two quarters.
func fixture() cashflow.Transactions {
	gbp := func(v float64) cashflow.Money { return cashflow.M(v, "GBP") }
	return cashflow.Transactions{
		{Date: date.New(2025, time.January, 5), Time: "12:01:02", Bank: "Monzo", Type: "Card payment", Merchant: "Tesco", Category: "groceries", Amount: gbp(-12.5), Original: gbp(-12.5)},
		{Date: date.New(2025, time.January, 6), Time: "09:00:00", Bank: "Monzo", Type: "Faster payment", Merchant: "ACME Ltd", Category: "income", Amount: gbp(2000), Original: gbp(2000), Income: true},
		{Date: date.New(2025, time.January, 20), Bank: "TravelWallet (Korea)", Type: "결제", Merchant: "GS25", Category: "convenience_store", Amount: gbp(-2), Original: cashflow.M(3500, "KRW")},
		{Date: date.New(2025, time.February, 3), Time: "18:30:00", Bank: "Monzo", Type: "Card payment", Merchant: "Pret", Category: "eating_out", Amount: gbp(-6.2), Original: gbp(-6.2)},
		{Date: date.New(2025, time.April, 10), Time: "08:15:00", Bank: "Monzo", Type: "Card payment", Merchant: "TfL", Category: "transport", Amount: gbp(-2.8), Original: gbp(-2.8)},
	}
}

// seed writes the fixture in the default data folder of dir.
func seed(t *testing.T, dir string) {
	t.Helper()
	var buf bytes.Buffer
	if err := cashflow.EncodeTransactions(&buf, fixture()); err != nil {
		t.Fatal(err)
	}
	data := filepath.Join(dir, "data")
	if err := os.MkdirAll(data, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(data, cashflow.CombinedFilename), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// readmeTopics returns the topic names listed in the readme, one per list item
// written "name: summary".
func readmeTopics(t *testing.T) []string {
	t.Helper()
	content, err := os.ReadFile(Readme + ".md")
	if err != nil {
		t.Fatal(err)
	}
	var topics []string
	root := goldmark.DefaultParser().Parse(text.NewReader(content))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		item, ok := n.(*ast.ListItem)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		line := item.FirstChild().Lines().At(0)
		if name, _, ok := strings.Cut(string(line.Value(content)), ":"); ok {
			topics = append(topics, strings.TrimSpace(name))
		}
		return ast.WalkSkipChildren, nil
	})
	return topics
}

func TestTopics(t *testing.T) {
	listed := readmeTopics(t)
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("readme lists %q: %v", topic, err)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	slices.Sort(listed)
	if diff := cmp.Diff(all, listed); diff != "" {
		t.Errorf("topics listed in the readme mismatch (-embedded +listed):\n%s", diff)
	}

	everything, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		content, _ := GetTopic(topic)
		if !strings.Contains(everything, content) {
			t.Errorf("topic * does not contain %q", topic)
		}
	}
	if readme, _ := GetTopic(Readme); strings.Contains(everything, readme) {
		t.Error("topic * contains the readme")
	}

	if _, err := GetTopic("budgets"); err == nil || !strings.Contains(err.Error(), "banks, categories") {
		t.Errorf("GetTopic(budgets) error = %v, want the available topics", err)
	}
}

func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			blocks := parseMarkdown(t, file)
			if len(blocks) == 0 {
				t.Skip("no scenario")
			}
			r := newScenario(t)
			for _, b := range blocks {
				r.run(t, b)
			}
		})
	}
}

// block is a fenced code block of a markdown file.
type block struct {
	kind    string
	content string
	pos     string // file:line
}

// parseMarkdown returns the scenario blocks of a markdown file, in order.
func parseMarkdown(t *testing.T, file string) []block {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("cannot read %s: %v", file, err)
	}

	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(content))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(content))
		switch kind {
		case bashSetup, bashFixture, bashRun, consoleCheck, bashCheck:
		default:
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		line := bytes.Count(content[:fcb.Info.Segment.Start], []byte("\n")) + 1
		blocks = append(blocks, block{kind, b.String(), fmt.Sprintf("%s:%d", file, line)})
		return ast.WalkContinue, nil
	})
	return blocks
}

// scenario runs blocks in a folder, with cfs in the PATH and none of the
// developer's cashflow settings.
type scenario struct {
	env    []string
	dir    string
	output string // of the last run block
}

func newScenario(t *testing.T) *scenario {
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "CASHFLOW_") && !strings.HasPrefix(kv, "KOREAN_BANK_PASSWORD=") {
			env = append(env, kv)
		}
	}
	env = append(env, fmt.Sprintf("PATH=%s%c%s", cfsDir, os.PathListSeparator, os.Getenv("PATH")))
	return &scenario{env: env, dir: t.TempDir()}
}

func (s *scenario) run(t *testing.T, b block) {
	t.Helper()
	switch b.kind {
	case consoleCheck:
		got := strings.ReplaceAll(strings.TrimSpace(s.output), "\t", "        ")
		if want := strings.TrimSpace(b.content); got != want {
			t.Errorf("%s: output mismatch:\ngot:\n\n%s\n\nwant:\n\n%s\n\ngot :%q\nwant:%q", b.pos, got, want, got, want)
		}
		return
	case bashSetup:
		s.dir = t.TempDir()
	case bashFixture:
		s.dir = t.TempDir()
		seed(t, s.dir)
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.content)
	cmd.Dir = s.dir
	cmd.Env = s.env
	out, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		s.output = string(out)
	}
	if err == nil {
		return
	}
	if b.kind == bashCheck {
		t.Errorf("%s: check failed: %v with output:\n%s", b.pos, err, out)
		return
	}
	t.Fatalf("%s: %s failed: %v with output:\n%s", b.pos, b.kind, err, out)
}
