// ABOUTME: FAQ batch editor submitted as one replacement list
// ABOUTME: Rows left completely blank are dropped on submit

package forms

import (
	"fmt"
	"os"
	"strings"

	"github.com/eventdesk/console/internal/client"
	"github.com/eventdesk/console/internal/validate"
	"gopkg.in/yaml.v3"
)

// FAQBatch holds the rows of the FAQ editor
type FAQBatch struct {
	Rows []client.FAQ `json:"faqs" yaml:"faqs" validate:"dive"`
}

// NewFAQBatch starts an editor from the current server list
func NewFAQBatch(current []client.FAQ) *FAQBatch {
	return &FAQBatch{Rows: append([]client.FAQ{}, current...)}
}

// LoadFAQBatch reads a batch from a YAML file with a top-level faqs list
func LoadFAQBatch(path string) (*FAQBatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read faq file: %w", err)
	}
	var b FAQBatch
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse faq file %s: %w", path, err)
	}
	return &b, nil
}

// YAML renders the batch in the format LoadFAQBatch reads
func (b *FAQBatch) YAML() ([]byte, error) {
	return yaml.Marshal(b)
}

// Add appends an empty row and returns its index
func (b *FAQBatch) Add() int {
	b.Rows = append(b.Rows, client.FAQ{})
	return len(b.Rows) - 1
}

// Edit sets the question and answer of row i, keeping its ID
func (b *FAQBatch) Edit(i int, question, answer string) error {
	if err := checkIndex(len(b.Rows), i); err != nil {
		return err
	}
	b.Rows[i].Question = question
	b.Rows[i].Answer = answer
	return nil
}

func (b *FAQBatch) Remove(i int) error {
	rows, err := removeAt(b.Rows, i)
	b.Rows = rows
	return err
}

// Submit returns the rows to send. Blank rows are dropped and half-filled rows
// are reported by their position in the submitted list.
func (b *FAQBatch) Submit() ([]client.FAQ, error) {
	out := make([]client.FAQ, 0, len(b.Rows))
	for _, row := range b.Rows {
		row.Question = strings.TrimSpace(row.Question)
		row.Answer = strings.TrimSpace(row.Answer)
		if row.Question == "" && row.Answer == "" {
			continue
		}
		out = append(out, row)
	}
	if err := validate.Struct(FAQBatch{Rows: out}); err != nil {
		return nil, err
	}
	return out, nil
}
