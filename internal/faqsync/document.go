package faqsync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/transformer/splitter/markdown"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/Conversly/autoskola-bot/internal/search"
	"github.com/Conversly/autoskola-bot/internal/types"
)

const questionKey = "question"

// BuildDocument renders the active FAQ rows as one markdown document with a
// second-level heading per question, and returns it with its content hash.
func BuildDocument(records []types.Record) (string, string) {
	var b strings.Builder
	b.WriteString("# FAQ\n")
	for _, r := range records {
		if !r.IsActive() {
			continue
		}
		question := oneLine(r.Get(types.FieldQuestion))
		answer := strings.TrimSpace(r.Get(types.FieldAnswer))
		if question == "" || answer == "" {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n%s\n", question, answer)
		if v := oneLine(r.Get(types.FieldExamples)); v != "" {
			fmt.Fprintf(&b, "\nVarijante: %s\n", v)
		}
		if v := oneLine(r.Get(types.FieldKeywords)); v != "" {
			fmt.Fprintf(&b, "Ključne riječi: %s\n", v)
		}
	}
	doc := b.String()
	sum := sha256.Sum256([]byte(doc))
	return doc, hex.EncodeToString(sum[:])
}

// SplitDocument cuts the markdown document into one search doc per question.
func SplitDocument(ctx context.Context, doc string) ([]search.Doc, error) {
	splitter, err := markdown.NewHeaderSplitter(ctx, &markdown.HeaderConfig{
		Headers: map[string]string{"##": questionKey},
	})
	if err != nil {
		return nil, fmt.Errorf("create markdown splitter: %w", err)
	}

	chunks, err := splitter.Transform(ctx, []*schema.Document{{ID: "faq", Content: doc}})
	if err != nil {
		return nil, fmt.Errorf("split faq document: %w", err)
	}

	out := make([]search.Doc, 0, len(chunks))
	for _, c := range chunks {
		question, _ := c.MetaData[questionKey].(string)
		question = strings.TrimSpace(question)
		if question == "" {
			continue
		}
		content := strings.TrimSpace(c.Content)
		out = append(out, search.Doc{
			ID:       docID(len(out), question, content),
			Question: question,
			Content:  content,
		})
	}
	return out, nil
}

// docID is stable across syncs of the same document. The position keeps rows
// that repeat a question and answer apart.
func docID(pos int, question, content string) string {
	name := fmt.Sprintf("faq:%d:%s\n%s", pos, question, content)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
